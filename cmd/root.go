package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mclang/kiho-wt-puncher/internal/api"
	"github.com/mclang/kiho-wt-puncher/internal/config"
	"github.com/mclang/kiho-wt-puncher/internal/logger"
)

const (
	appName    = "Kiho Worktime Puncher"
	appVersion = "1.2.0"
	userAgent  = appName + " v" + appVersion
)

// Exit codes returned by Execute. ExitConfigCreated is distinct from
// ExitFailure so scripts can tell a first run (sample config written, edit it
// and re-run) apart from a hard failure.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitConfigCreated = 2
)

// Persistent flag values shared by all subcommands.
var (
	verbose    bool // -v/--verbose: print progress information
	debug      bool // -d/--debug: print request/response details (implies verbose)
	dryRun     bool // -n/--dry-run: show what would be sent, skip all HTTP requests
	configPath string
)

// rootCmd is the base command of the puncher CLI.
// It only carries the global flags; the actual work lives in the subcommands.
var rootCmd = &cobra.Command{
	Use:     "kiho-wt-puncher",
	Short:   "Record and query Kiho worktime punches from the command line",
	Version: appVersion,

	// Initialize the logger before any subcommand runs, based on the flags.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(verbose, debug)
		if dryRun {
			logger.Info("[INFO] This is a DRY-RUN - no HTTP requests will be made!\n")
		}
	},

	// Runtime errors are reported once by Execute with the proper exit code;
	// printing usage for them would only bury the actual message.
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute parses the command line, runs the selected subcommand and maps its
// outcome to a process exit code. It is the only place errors are printed.
func Execute() int {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print progress information")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Print request and response details")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "Skip HTTP requests that might have side effects")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")

	err := rootCmd.Execute()
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, config.ErrCreated):
		logger.Warn("[WARN] %v\n", err)
		return ExitConfigCreated
	default:
		logger.Error("[ERROR] %v\n", err)
		return ExitFailure
	}
}

// loadConfig resolves the configuration file path (flag value or the per-user
// default location) and loads it.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return config.Load(path)
}

// newClient loads the configuration and builds the API client from it.
func newClient() (*api.Client, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return api.New(cfg, userAgent), cfg, nil
}
