package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/flightdeck-dev/flightdeck/internal/config"
	"github.com/flightdeck-dev/flightdeck/pkg/cli/format"
	"github.com/flightdeck-dev/flightdeck/pkg/secrets"
)

var initForce bool

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up a project configuration interactively",
	Long: `Ask for the project's identifiers and write flightdeck.yaml in the
current directory. The match password is read without echo and never
written to disk; export it in the environment instead.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing flightdeck.yaml")
}

func runInit(cmd *cobra.Command, args []string) error {
	const path = "flightdeck.yaml"
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	format.Header("Project setup")
	in := bufio.NewReader(cmd.InOrStdin())

	cfg := config.Default()
	var err error
	if cfg.Project.BundleID, err = prompt(in, "Bundle identifier", ""); err != nil {
		return err
	}
	if cfg.Project.TeamID, err = prompt(in, "Team identifier", ""); err != nil {
		return err
	}
	if cfg.Project.Scheme, err = prompt(in, "Xcode scheme", "App"); err != nil {
		return err
	}
	if cfg.Project.MatchRepo, err = prompt(in, "Signing credential repo (ssh url)", ""); err != nil {
		return err
	}
	if cfg.Project.DefaultBranch, err = prompt(in, "Default branch", "main"); err != nil {
		return err
	}
	cfg.Project = cfg.Project.WithDefaults()
	if err := cfg.Project.Validate(); err != nil {
		return err
	}

	if err := promptMatchPassword(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}

	format.Success("wrote %s", path)
	format.Dim("next: flightdeck render --out . && flightdeck validate")
	return nil
}

func prompt(in *bufio.Reader, label, def string) (string, error) {
	if def != "" {
		fmt.Printf("%s [%s]: ", label, def)
	} else {
		fmt.Printf("%s: ", label)
	}
	line, err := in.ReadString('\n')
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

// promptMatchPassword reads the credential store passphrase without
// echoing it, then confirms the operator exported it. Nothing is
// persisted; the validator checks the environment at deploy time.
func promptMatchPassword() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil
	}
	fmt.Printf("%s (not stored, just checked): ", secrets.MatchPassword)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return err
	}
	if len(pw) == 0 {
		format.Warning("no password entered; remember to export %s before deploying", secrets.MatchPassword)
		return nil
	}
	format.Dim("export %s before running a deploy", secrets.MatchPassword)
	return nil
}
