package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/oakoss/ui-registry/internal/config"
	"github.com/oakoss/ui-registry/internal/scaffold"
)

func init() {
	rootCmd.AddCommand(initStarterCmd)
}

var initStarterCmd = &cobra.Command{
	Use:   "init-starter <name>",
	Short: "Scaffold a new starter",
	Long: `Create starters/<name>/ with a registry.json manifest and a src/ tree
ready for components.

Example:
  oakui init-starter react-aria-vanilla`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := setup(cmd)
		if err != nil {
			return err
		}

		data, err := scaffold.NewStarterData(args[0])
		if err != nil {
			return err
		}
		result, err := scaffold.Generate(data, cfg.StartersDir)
		if err != nil {
			return err
		}

		printScaffoldResult(cmd, cfg, result)
		return nil
	},
}

func printScaffoldResult(cmd *cobra.Command, cfg *config.Config, result *scaffold.Result) {
	out := cmd.OutOrStdout()
	dir := result.OutputDir
	if rel, err := filepath.Rel(cfg.SourceRoot, dir); err == nil {
		dir = rel
	}

	fmt.Fprintf(out, "Created starter in %s/\n", dir)
	for _, f := range result.Files {
		fmt.Fprintf(out, "  %s\n", f)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(out, "Warning: %s\n", w)
	}

	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintf(out, "  1. Add components under %s/src/components/ui/\n", dir)
	fmt.Fprintf(out, "  2. List them in %s/%s\n", dir, config.ManifestFile)
	fmt.Fprintln(out, "  3. Run 'oakui validate' and 'oakui build'")
}
