package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/marcus/navkit/pkg/keynav"
	"github.com/marcus/navkit/pkg/playground"
)

var keysCmd = &cobra.Command{
	Use:   "keys [key...]",
	Short: "Normalize key identifiers or show a preset's key map",
	Example: `  navkit keys Up Spacebar Esc
  navkit keys --preset listbox`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, k := range args {
			fmt.Fprintf(out, "%q -> %q\n", k, keynav.NormalizeKey(k))
		}

		preset, _ := cmd.Flags().GetString("preset")
		if preset == "" {
			if len(args) == 0 {
				return cmd.Help()
			}
			return nil
		}
		table, ok := keynav.Preset(preset)
		if !ok {
			return fmt.Errorf("unknown preset %q", preset)
		}
		md := presetMarkdown(preset, table)
		if plain, _ := cmd.Flags().GetBool("plain"); plain {
			fmt.Fprint(out, md)
			return nil
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			return fmt.Errorf("markdown renderer: %w", err)
		}
		rendered, err := r.Render(md)
		if err != nil {
			return fmt.Errorf("render key map: %w", err)
		}
		fmt.Fprint(out, rendered)
		return nil
	},
}

// presetMarkdown describes a binding table as markdown tables.
func presetMarkdown(name string, t keynav.KeyBindingTable) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", name)
	writeBindings(&sb, "Items", t.Navigation)
	writeBindings(&sb, "Widget root", t.Toggle)
	return sb.String()
}

func writeBindings(sb *strings.Builder, title string, bs keynav.Bindings) {
	if len(bs) == 0 {
		return
	}
	fmt.Fprintf(sb, "## %s\n\n| Action | Keys |\n| --- | --- |\n", title)
	for _, b := range bs {
		keys := make([]string, len(b.Keys))
		for i, k := range b.Keys {
			keys[i] = "`" + playground.KeyLabel(k) + "`"
		}
		fmt.Fprintf(sb, "| %s | %s |\n", b.Action, strings.Join(keys, " "))
	}
	sb.WriteString("\n")
}

func init() {
	keysCmd.Flags().String("preset", "", "show the key map of a preset (listbox, tabs)")
	keysCmd.Flags().Bool("plain", false, "print markdown without rendering it")
	rootCmd.AddCommand(keysCmd)
}
