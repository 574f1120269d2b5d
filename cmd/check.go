package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcus/navkit/internal/config"
	"github.com/marcus/navkit/internal/output"
	"github.com/marcus/navkit/internal/scenario"
	"github.com/marcus/navkit/internal/workdir"
)

var checkCmd = &cobra.Command{
	Use:   "check [file-or-dir...]",
	Short: "Replay interaction scenarios and report failures",
	Long: `Replay YAML interaction scenarios against a headless element tree.

Directories are searched (not recursively) for .yaml and .yml files. With no
arguments the project's .navkit/scenarios directory is used, or scenarios/
when that does not exist.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(getBaseDir())
		if err != nil {
			return err
		}
		parallel := cfg.Parallel
		if cmd.Flags().Changed("parallel") {
			parallel, _ = cmd.Flags().GetInt("parallel")
		}
		if len(args) == 0 {
			args = []string{workdir.Scenarios(getBaseDir())}
		}

		paths, err := collectScenarioPaths(args)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no scenario files in %s", strings.Join(args, ", "))
		}

		results, err := scenario.RunAll(cmd.Context(), paths, parallel)
		if err != nil {
			return err
		}

		failed := 0
		nodes := make([]output.TreeNode, 0, len(results))
		for _, r := range results {
			node := output.TreeNode{Label: r.Name, Detail: r.Path, Status: output.StatusPass}
			if !r.Passed() {
				failed++
				node.Status = output.StatusFail
				for _, f := range r.Failures {
					node.Children = append(node.Children, output.TreeNode{Label: f.String()})
				}
			}
			nodes = append(nodes, node)
		}
		out := cmd.OutOrStdout()
		for _, line := range output.RenderTreeLines(nodes, output.TreeRenderOptions{ShowStatus: true}) {
			fmt.Fprintln(out, line)
		}

		summary := fmt.Sprintf("%d passed, %d failed", len(results)-failed, failed)
		if failed > 0 {
			fmt.Fprintln(out, output.Failure(summary))
			return fmt.Errorf("%d of %d scenarios failed", failed, len(results))
		}
		fmt.Fprintln(out, output.Success(summary))
		return nil
	},
}

// collectScenarioPaths expands directories into the scenario files they
// contain. Files named explicitly are kept whatever their extension.
func collectScenarioPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			ext := strings.ToLower(filepath.Ext(e.Name()))
			if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
				continue
			}
			paths = append(paths, filepath.Join(arg, e.Name()))
		}
	}
	return slices.Compact(paths), nil
}

func init() {
	checkCmd.Flags().IntP("parallel", "p", 0, "scenarios to run at once (0 means no limit)")
	rootCmd.AddCommand(checkCmd)
}
