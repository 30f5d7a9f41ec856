package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakoss/ui-registry/internal/registry"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate starter manifests",
	Long: `Check every starters/*/registry.json against the manifest schema.

Beyond the schema, validate reports duplicate item names, items without files,
file paths that leave src/, dependency specs with an unparsable version range
and referenced source files that do not exist. Nothing is written.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}

		p, err := registry.New(cfg, logger)
		if err != nil {
			return err
		}
		issues, err := p.Validate()
		if err != nil {
			return err
		}

		if len(issues) > 0 {
			printIssues(cmd, issues)
			return fmt.Errorf("validation failed with %d issue(s)", len(issues))
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All manifests are valid.")
		return nil
	},
}

func printIssues(cmd *cobra.Command, issues []registry.Issue) {
	w := cmd.ErrOrStderr()
	for _, issue := range issues {
		fmt.Fprintf(w, "  - %s\n", issue)
	}
}
