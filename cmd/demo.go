package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marcus/navkit/internal/config"
	"github.com/marcus/navkit/pkg/keynav"
	"github.com/marcus/navkit/pkg/playground"
)

var demoFlags engineFlags

var demoCmd = &cobra.Command{
	Use:   "demo [label...]",
	Short: "Try a navigation engine in the terminal",
	Long: `Start an interactive widget driven by a keynav engine.

The listbox preset shows a trigger button that opens a vertical list; the tabs
preset shows a horizontal tab row. Keys and mouse clicks travel through the
same event flow a browser would deliver. Press q to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(getBaseDir())
		if err != nil {
			return err
		}
		demoFlags.apply(cmd.Flags(), cfg)
		if len(args) > 0 {
			cfg.Labels = args
		}

		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("demo needs an interactive terminal")
		}

		if configure, _ := cmd.Flags().GetBool("configure"); configure {
			if err := configureForm(cfg).Run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					return nil
				}
				return err
			}
		}

		opts, err := playgroundOptions(cfg)
		if err != nil {
			return err
		}
		m, err := playground.New(opts)
		if err != nil {
			return err
		}
		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(cmd.Context()))
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("demo: %w", err)
		}
		return nil
	},
}

// playgroundOptions turns the effective config into playground options.
func playgroundOptions(cfg *config.Config) (playground.Options, error) {
	preset := strings.ToLower(strings.TrimSpace(cfg.Preset))
	if preset == "" {
		preset = "listbox"
	}
	table, ok := keynav.Preset(preset)
	if !ok {
		return playground.Options{}, fmt.Errorf("unknown preset %q", cfg.Preset)
	}
	opts := playground.Options{
		Labels:                cfg.Labels,
		Bindings:              table,
		Toggle:                preset == "listbox",
		InfiniteNavigation:    cfg.InfiniteNavigation,
		SelectionFollowsFocus: cfg.SelectionFollowsFocus,
		ToggleAfterSelected:   cfg.ToggleAfterSelected,
		UseRovingTabIndex:     cfg.UseRovingTabIndex,
		Typeahead:             cfg.Typeahead,
		Logger:                slog.Default(),
	}
	if !opts.Toggle {
		opts.Layout = playground.Horizontal
	}
	return opts, nil
}

// configureForm edits cfg in place.
func configureForm(cfg *config.Config) *huh.Form {
	if cfg.Preset == "" {
		cfg.Preset = "listbox"
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Preset").
				Options(huh.NewOptions("listbox", "tabs")...).
				Value(&cfg.Preset),
			huh.NewConfirm().
				Title("Wrap around at either end?").
				Value(&cfg.InfiniteNavigation),
			huh.NewConfirm().
				Title("Select items when they receive focus?").
				Value(&cfg.SelectionFollowsFocus),
			huh.NewConfirm().
				Title("Activate the toggle after a selection?").
				Value(&cfg.ToggleAfterSelected),
			huh.NewConfirm().
				Title("Keep a single tab stop on the selection?").
				Value(&cfg.UseRovingTabIndex),
			huh.NewConfirm().
				Title("Focus items by typing their label?").
				Value(&cfg.Typeahead),
		),
	)
}

func init() {
	demoFlags.register(demoCmd.Flags())
	demoCmd.Flags().Bool("configure", false, "choose engine options in a form before starting")
	rootCmd.AddCommand(demoCmd)
}
