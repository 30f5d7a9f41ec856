package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/oakoss/ui-registry/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration",
	Long: `Print the configuration after merging flags, OAKUI_* environment
variables, <root>/.env and <root>/oakui.yaml over the defaults.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := setup(cmd)
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# config file: %s\n", config.FilePath(cfg.SourceRoot))
		_, err = out.Write(data)
		return err
	},
}
