package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/portway/mapping-core/internal/appconfig"
	"github.com/portway/mapping-core/internal/mapper"
	"github.com/portway/mapping-core/internal/source/jira"
)

var (
	mapKind     string
	recordsPath string
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Dry-run raw records through the mapping and print the resulting entities",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := appconfig.LoadFile(configPath)
		if err != nil {
			return err
		}

		records, err := loadRecords()
		if err != nil {
			return err
		}

		p := mapper.New(cfg, newLogger())
		result, err := p.ProcessBatch(cmd.Context(), mapKind, records)
		if err != nil {
			return err
		}

		out := json.NewEncoder(cmd.OutOrStdout())
		out.SetIndent("", "  ")
		if err := out.Encode(result.Entities); err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "mapped %d/%d records (filtered %d, rejected %d)\n",
			len(result.Entities), len(records), result.Filtered, result.Rejected)
		for _, recErr := range result.Errors {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %v\n", recErr)
		}
		return nil
	},
}

func init() {
	mapCmd.Flags().StringVarP(&mapKind, "kind", "k", "", "record kind to map (project, user, issue)")
	mapCmd.Flags().StringVarP(&recordsPath, "records", "r", "",
		"JSON file with an array of raw records; defaults to the kind's built-in sample")
	_ = mapCmd.MarkFlagRequired("kind")
}

func loadRecords() ([]mapper.Record, error) {
	if recordsPath == "" {
		sample := jira.SampleRecord(mapKind)
		if sample == nil {
			return nil, fmt.Errorf("no built-in sample for kind %q, pass --records", mapKind)
		}
		return []mapper.Record{sample}, nil
	}

	data, err := os.ReadFile(recordsPath)
	if err != nil {
		return nil, fmt.Errorf("read records %s: %w", recordsPath, err)
	}
	var records []mapper.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse records %s: %w", recordsPath, err)
	}
	return records, nil
}
