package cmd

import (
	"github.com/spf13/pflag"

	"github.com/marcus/navkit/internal/config"
)

// engineFlags are the behaviour switches shared by commands that build an
// engine. Unset flags leave the config value alone.
type engineFlags struct {
	preset            string
	infinite          bool
	followFocus       bool
	toggleAfterSelect bool
	roving            bool
	typeahead         bool
}

func (f *engineFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.preset, "preset", "", "binding preset: listbox or tabs")
	fs.BoolVar(&f.infinite, "infinite", false, "wrap around at either end")
	fs.BoolVar(&f.followFocus, "follow-focus", false, "select an item whenever it receives focus")
	fs.BoolVar(&f.toggleAfterSelect, "toggle-after-select", false, "activate the toggle after a selection")
	fs.BoolVar(&f.roving, "roving", false, "keep a single tab stop on the selected item")
	fs.BoolVar(&f.typeahead, "typeahead", false, "focus items by typing their label")
}

// apply copies every flag the user set onto cfg.
func (f *engineFlags) apply(fs *pflag.FlagSet, cfg *config.Config) {
	fs.Visit(func(fl *pflag.Flag) {
		switch fl.Name {
		case "preset":
			cfg.Preset = f.preset
		case "infinite":
			cfg.InfiniteNavigation = f.infinite
		case "follow-focus":
			cfg.SelectionFollowsFocus = f.followFocus
		case "toggle-after-select":
			cfg.ToggleAfterSelected = f.toggleAfterSelect
		case "roving":
			cfg.UseRovingTabIndex = f.roving
		case "typeahead":
			cfg.Typeahead = f.typeahead
		}
	})
}
