package jira

import "sort"

// KindProject, KindUser, and KindIssue are the record kinds the Jira source
// exposes to the mapping layer.
const (
	KindProject = "project"
	KindUser    = "user"
	KindIssue   = "issue"
)

// Kind describes one upstream record kind.
type Kind struct {
	Name        string
	Description string

	// Fields lists representative field paths of the upstream REST
	// representation, for documentation and config linting.
	Fields []string
}

var kinds = map[string]*Kind{
	KindProject: {
		Name:        KindProject,
		Description: "Jira project (REST /project/search values)",
		Fields: []string{
			"id", "key", "name", "self", "projectTypeKey",
			"lead.displayName", "insight.totalIssueCount",
		},
	},
	KindUser: {
		Name:        KindUser,
		Description: "Jira user (REST /users/search values)",
		Fields: []string{
			"accountId", "displayName", "emailAddress", "accountType",
			"active", "avatarUrls.48x48", "self",
		},
	},
	KindIssue: {
		Name:        KindIssue,
		Description: "Jira issue (REST /search issues, filtered by the selector's JQL)",
		Fields: []string{
			"id", "key", "self", "fields.summary", "fields.status.name",
			"fields.issuetype.name", "fields.priority.name",
			"fields.project.key", "fields.parent.key", "fields.subtasks",
			"fields.assignee.displayName", "fields.reporter.displayName",
			"fields.labels", "fields.created", "fields.updated",
		},
	},
}

// KnownKinds returns the supported kind names, sorted.
func KnownKinds() []string {
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the descriptor for a kind name.
func Lookup(name string) (*Kind, bool) {
	k, ok := kinds[name]
	return k, ok
}

// --- Webhook events ---

// CreateUpdateWebhookEvents are the source events that should trigger a
// re-map and upsert of the affected record.
var CreateUpdateWebhookEvents = []string{
	"jira:issue_created",
	"jira:issue_updated",
	"project_created",
	"project_updated",
	"project_restored_deleted",
	"project_restored_archived",
}

// DeleteWebhookEvents are the source events that should trigger deletion of
// the mapped entity.
var DeleteWebhookEvents = []string{
	"jira:issue_deleted",
	"project_deleted",
	"project_soft_deleted",
	"project_archived",
}

// WebhookEvents is the full subscription list for the source webhook.
func WebhookEvents() []string {
	events := make([]string, 0, len(CreateUpdateWebhookEvents)+len(DeleteWebhookEvents))
	events = append(events, CreateUpdateWebhookEvents...)
	events = append(events, DeleteWebhookEvents...)
	return events
}
