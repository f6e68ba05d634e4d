package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/flightdeck-dev/flightdeck/pkg/cli/format"
	"github.com/flightdeck-dev/flightdeck/pkg/secrets"
	"github.com/flightdeck-dev/flightdeck/pkg/types"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the deploy secrets are present",
	Long: `Check that every secret the deploy stage requires is present and
non-empty in the environment. All missing names are listed, not just
the first, so gaps can be fixed in one pass.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	validator := secrets.NewValidator(cfg.Pipeline.ExtraSecrets...)
	err = validator.Validate(secrets.EnvSource{})
	if err == nil {
		format.Success("all %d deploy secrets present", len(validator.Required()))
		return nil
	}

	var mse *types.MissingSecretError
	if errors.As(err, &mse) {
		for _, name := range mse.Names {
			format.Error("missing: %s", name)
		}
	}
	return err
}
