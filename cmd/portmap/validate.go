package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/portway/mapping-core/internal/appconfig"
	"github.com/portway/mapping-core/internal/source/jira"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and compile a mapping configuration, failing on any malformed expression",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := appconfig.LoadFile(configPath)
		if err != nil {
			return err
		}

		for _, res := range cfg.Resources() {
			line := fmt.Sprintf("resource %q -> blueprint %q (%d properties, %d relations)",
				res.Kind(), res.Blueprint(), len(res.Properties()), len(res.Relations()))
			if _, known := jira.Lookup(res.Kind()); !known {
				line += "  [warning: kind unknown to the jira source]"
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}

		fmt.Fprintf(cmd.OutOrStdout(),
			"ok: %d resources, createMissingRelatedEntities=%v, deleteDependentEntities=%v\n",
			len(cfg.Resources()), cfg.CreateMissingRelatedEntities(), cfg.DeleteDependentEntities())
		return nil
	},
}
