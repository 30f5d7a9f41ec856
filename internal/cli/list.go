package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/oakoss/ui-registry/internal/registry"
)

var (
	listStarter string
	listJSON    bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registry items",
	Long:  `List every item declared by the starter manifests with the file it builds to.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listStarter, "starter", "", "Only list items of this starter")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents a registry item for display.
type listEntry struct {
	Starter string `json:"starter"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	File    string `json:"file"`
	Files   int    `json:"files"`
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	p, err := registry.New(cfg, logger)
	if err != nil {
		return err
	}
	reader := p.Reader()
	starters, err := reader.StartersWithManifest()
	if err != nil {
		return err
	}

	entries := []listEntry{}
	for _, starter := range starters {
		if listStarter != "" && starter != listStarter {
			continue
		}
		m, err := reader.LoadManifest(starter)
		if err != nil {
			return err
		}
		for _, item := range m.Items {
			entries = append(entries, listEntry{
				Starter: starter,
				Name:    registry.OutputName(starter, item.Name),
				Type:    item.Type,
				File:    registry.OutputFile(starter, item.Name),
				Files:   len(item.Files),
			})
		}
	}

	if listJSON {
		return printListJSON(cmd, entries)
	}

	if len(entries) == 0 {
		if listStarter != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "No items found for --starter=%s\n", listStarter)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No registry items found.")
		}
		return nil
	}
	return printListTable(cmd, entries)
}

func printListTable(cmd *cobra.Command, entries []listEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "STARTER\tNAME\tTYPE\tFILES\tOUTPUT")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", e.Starter, e.Name, e.Type, e.Files, e.File)
	}
	return w.Flush()
}

func printListJSON(cmd *cobra.Command, entries []listEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
