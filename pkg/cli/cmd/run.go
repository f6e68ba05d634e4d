package cmd

import (
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/flightdeck-dev/flightdeck/pkg/cli/format"
	"github.com/flightdeck-dev/flightdeck/pkg/log"
	"github.com/flightdeck-dev/flightdeck/pkg/pipeline"
	"github.com/flightdeck-dev/flightdeck/pkg/pipeline/steps"
	"github.com/flightdeck-dev/flightdeck/pkg/secrets"
	"github.com/flightdeck-dev/flightdeck/pkg/store"
	"github.com/flightdeck-dev/flightdeck/pkg/types"
)

var (
	runTrigger     string
	runStage       string
	runEnvironment string
	runDryRun      bool
	runBuildNumber int64
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute a pipeline run",
	Long: `Execute the stage the trigger gates in: test for pull requests and
schedules, deploy for pushes to the default branch. Manual dispatch
picks a stage by name.

For example:
  flightdeck run --trigger pull-request
  flightdeck run --trigger push --env hosted --build-number 128
  flightdeck run --trigger manual --stage deploy
  flightdeck run --trigger push --dry-run`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runTrigger, "trigger", "t", "", "Trigger for this run: push, pull-request, manual, schedule (required)")
	runCmd.Flags().StringVar(&runStage, "stage", "", "Stage to run on manual dispatch: test or deploy")
	runCmd.Flags().StringVar(&runEnvironment, "env", "", "Run environment: local or hosted (default from config)")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Trace the step sequence without executing anything")
	runCmd.Flags().Int64Var(&runBuildNumber, "build-number", 0, "Use this build number instead of the stored counter")
	runCmd.MarkFlagRequired("trigger")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	trigger, err := types.ParseTrigger(runTrigger)
	if err != nil {
		return err
	}

	envName := runEnvironment
	if envName == "" {
		envName = cfg.Pipeline.Environment
	}
	environment, err := types.ParseRunEnvironment(envName)
	if err != nil {
		return err
	}

	runStore, closeStore, err := openRunStore(cfg.DataDir, runDryRun)
	if err != nil {
		return err
	}
	defer closeStore()

	deps := steps.Deps{
		Store:               runStore,
		BuildNumberOverride: runBuildNumber,
	}
	testSteps := steps.TestSteps(deps)
	deploySteps := steps.DeploySteps(deps)
	if runDryRun {
		testSteps = []pipeline.Step{pipeline.Noop(steps.StepRunTests)}
		deploySteps = pipeline.NoopDeploySteps()
	}

	seq, err := pipeline.NewSequencer(pipeline.Options{
		Project:     cfg.Project,
		Environment: environment,
		Secrets:     secrets.EnvSource{},
		Validator:   secrets.NewValidator(cfg.Pipeline.ExtraSecrets...),
		TestSteps:   testSteps,
		DeploySteps: deploySteps,
		Store:       runStore,
		Stage:       types.StageName(runStage),
		Logger:      log.GetDefaultLogger(),
	})
	if err != nil {
		return err
	}

	pterm.DefaultSection.Printf("Run: trigger=%s env=%s", trigger, environment)

	record, runErr := seq.Run(cmd.Context(), trigger)

	for _, name := range record.StepTrace {
		format.Dim("  • %s", name)
	}
	switch record.Outcome {
	case types.OutcomePassed:
		format.Success("run %s passed (%s stage)", record.ID, record.Stages[0])
	case types.OutcomeCancelled:
		format.Warning("run %s cancelled", record.ID)
	default:
		format.Error("run %s failed: %s", record.ID, record.Error)
	}
	return runErr
}

// openRunStore opens the persistent store, or an in-memory one for dry
// runs so tracing never touches the real counter.
func openRunStore(dataDir string, dryRun bool) (store.Store, func(), error) {
	if dryRun {
		return store.NewMemoryStore(), func() {}, nil
	}

	s := store.NewBadgerStore(log.GetDefaultLogger())
	if err := s.Open(filepath.Join(dataDir, "runs")); err != nil {
		return nil, nil, err
	}
	return s, func() { _ = s.Close() }, nil
}
