package jira_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/portway/mapping-core/internal/appconfig"
	"github.com/portway/mapping-core/internal/mapper"
	"github.com/portway/mapping-core/internal/source/jira"
)

func TestKnownKinds(t *testing.T) {
	want := []string{"issue", "project", "user"}
	got := jira.KnownKinds()
	if len(got) != len(want) {
		t.Fatalf("KnownKinds() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("KnownKinds()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	for _, name := range want {
		k, ok := jira.Lookup(name)
		if !ok {
			t.Errorf("Lookup(%q) missing", name)
			continue
		}
		if len(k.Fields) == 0 {
			t.Errorf("kind %q has no documented fields", name)
		}
	}
	if _, ok := jira.Lookup("sprint"); ok {
		t.Error("Lookup(sprint) unexpectedly present")
	}
}

func TestWebhookEvents(t *testing.T) {
	events := jira.WebhookEvents()
	if len(events) != len(jira.CreateUpdateWebhookEvents)+len(jira.DeleteWebhookEvents) {
		t.Errorf("WebhookEvents() lost events: %v", events)
	}
}

// Every kind's sample record must map cleanly through the shipped config.
func TestSampleRecords_MapWithShippedConfig(t *testing.T) {
	cfg, err := appconfig.LoadFile("../../../integrations/jira/port-app-config.yaml")
	if err != nil {
		t.Fatalf("failed to load shipped config: %v", err)
	}
	p := mapper.New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	for _, kind := range jira.KnownKinds() {
		rec := jira.SampleRecord(kind)
		if rec == nil {
			t.Fatalf("no sample record for kind %q", kind)
		}
		result, err := p.ProcessBatch(context.Background(), kind, []mapper.Record{rec})
		if err != nil {
			t.Fatalf("ProcessBatch(%q) failed: %v", kind, err)
		}
		if len(result.Entities) != 1 {
			t.Errorf("kind %q: got %d entities, want 1 (errors: %v)", kind, len(result.Entities), result.Errors)
		}
	}

	if jira.SampleRecord("sprint") != nil {
		t.Error("SampleRecord(sprint) unexpectedly present")
	}
}
