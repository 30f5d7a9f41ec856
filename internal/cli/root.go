package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/oakoss/ui-registry/internal/branding"
	"github.com/oakoss/ui-registry/internal/config"
	"github.com/oakoss/ui-registry/internal/logging"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// settings is the viper instance every command resolves its Config from.
var settings = config.New()

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` packages the component starters under starters/ into
shadcn-compatible registry files. Each starter's registry.json lists its items;
every item is written to <out>/<starter>-<item>.json with its source files
inlined, and an index of all items is written to <out>/registry.json.

Run without a sub-command to build the registry.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBuild,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("root", config.DefaultRoot, "Project root containing starters/ and oakui.yaml")
	flags.String("out", "", "Output directory (default: <root>/"+config.DefaultOutDir+")")
	flags.String("starters", "", "Starters directory (default: <root>/"+config.StartersDir+")")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.String("log-format", "text", "Log format: text or json")

	bindFlag(settings, config.KeyRoot, flags.Lookup("root"))
	bindFlag(settings, config.KeyOut, flags.Lookup("out"))
	bindFlag(settings, config.KeyStarters, flags.Lookup("starters"))
	bindFlag(settings, config.KeyLogLevel, flags.Lookup("log-level"))
	bindFlag(settings, config.KeyLogFormat, flags.Lookup("log-format"))

	addBuildFlags(rootCmd.Flags())
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

// setup resolves the configuration and builds the logger for cmd. Logs go
// to the command's stderr so stdout stays clean for --json output.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(settings)
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", flag.Name, err))
	}
}
