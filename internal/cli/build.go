package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oakoss/ui-registry/internal/registry"
)

var (
	buildAtomic bool
	buildStrict bool
)

func init() {
	addBuildFlags(buildCmd.Flags())
	rootCmd.AddCommand(buildCmd)
}

// addBuildFlags registers the build flags on fs. The root command shares
// them since running it without a sub-command builds.
func addBuildFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&buildAtomic, "atomic", false, "Stage the build and swap it into place only on success")
	fs.BoolVar(&buildStrict, "strict", false, "Validate every manifest before building")
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the registry",
	Long: `Build one registry file per starter item plus the registry index.

Starters without a registry.json are skipped. Any other failure (a missing
source file, a malformed manifest) stops the build with a non-zero exit.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("atomic") {
		cfg.Atomic = buildAtomic
	}

	p, err := registry.New(cfg, logger)
	if err != nil {
		return err
	}

	if buildStrict {
		issues, err := p.Validate()
		if err != nil {
			return err
		}
		if len(issues) > 0 {
			printIssues(cmd, issues)
			return fmt.Errorf("validation failed with %d issue(s)", len(issues))
		}
	}

	res, err := p.Run()
	if err != nil {
		return fmt.Errorf("registry build failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Built %d item(s) from %d starter(s) into %s\n",
		res.Items, len(res.Starters)-len(res.Skipped()), res.OutputDir)
	if skipped := res.Skipped(); len(skipped) > 0 {
		fmt.Fprintf(out, "Skipped (no registry.json): %s\n", strings.Join(skipped, ", "))
	}
	return nil
}
