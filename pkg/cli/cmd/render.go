package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/flightdeck-dev/flightdeck/pkg/cli/format"
	"github.com/flightdeck-dev/flightdeck/pkg/render"
)

var (
	renderOutDir string
	renderStdout bool
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the pipeline configuration files",
	Long: `Render every configuration file the release pipeline needs -
Gemfile, Appfile, Matchfile, Fastfile, and the hosted workflow - from
the project settings in flightdeck.yaml.

For example:
  flightdeck render
  flightdeck render --out ../my-app
  flightdeck render --stdout`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderOutDir, "out", "o", ".", "Directory to write the rendered files into")
	renderCmd.Flags().BoolVar(&renderStdout, "stdout", false, "Print rendered files instead of writing them")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	renderer, err := render.NewRenderer()
	if err != nil {
		return err
	}

	rendered, err := renderer.RenderAll(cfg.Project)
	if err != nil {
		return err
	}

	if renderStdout {
		for _, family := range render.SortedFamilies(rendered) {
			format.Header("--- %s", family.Path())
			fmt.Print(rendered[family])
		}
		return nil
	}

	for _, family := range render.SortedFamilies(rendered) {
		path := filepath.Join(renderOutDir, family.Path())
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(rendered[family]), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		format.Success("wrote %s", path)
	}
	return nil
}
