package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/portway/mapping-core/internal/appconfig"
	"github.com/portway/mapping-core/pkg/entity"
)

var (
	beforePath string
	afterPath  string
)

// diffReport is the JSON shape printed by the diff command.
type diffReport struct {
	Created  []entity.Ref `json:"created"`
	Modified []entity.Ref `json:"modified"`
	Deleted  []entity.Ref `json:"deleted"`

	// SafeToDelete is the deletion plan after protecting entities still
	// referenced by kept ones, per the config flags.
	SafeToDelete []entity.Ref `json:"safeToDelete"`
}

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Diff two entity states and plan which stale entities are safe to delete",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := appconfig.LoadFile(configPath)
		if err != nil {
			return err
		}

		before, err := loadEntities(beforePath)
		if err != nil {
			return err
		}
		after, err := loadEntities(afterPath)
		if err != nil {
			return err
		}

		diff := entity.Compare(before, after)
		report := diffReport{
			Created:      refs(diff.Created),
			Modified:     refs(diff.Modified),
			Deleted:      refs(diff.Deleted),
			SafeToDelete: entity.PlanDeletions(refs(diff.Deleted), diff.Kept(), cfg.CreateMissingRelatedEntities()),
		}

		out := json.NewEncoder(cmd.OutOrStdout())
		out.SetIndent("", "  ")
		return out.Encode(report)
	},
}

func init() {
	diffCmd.Flags().StringVar(&beforePath, "before", "", "JSON file with the previous entity state")
	diffCmd.Flags().StringVar(&afterPath, "after", "", "JSON file with the current entity state")
	_ = diffCmd.MarkFlagRequired("before")
	_ = diffCmd.MarkFlagRequired("after")
}

func loadEntities(path string) ([]*entity.Entity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read entities %s: %w", path, err)
	}
	var entities []*entity.Entity
	if err := json.Unmarshal(data, &entities); err != nil {
		return nil, fmt.Errorf("parse entities %s: %w", path, err)
	}
	return entities, nil
}

func refs(entities []*entity.Entity) []entity.Ref {
	out := make([]entity.Ref, len(entities))
	for i, e := range entities {
		out[i] = e.Ref()
	}
	return out
}
