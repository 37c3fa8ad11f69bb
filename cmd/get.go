package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mclang/kiho-wt-puncher/internal/api"
	"github.com/mclang/kiho-wt-puncher/internal/history"
	"github.com/mclang/kiho-wt-puncher/internal/logger"
	"github.com/mclang/kiho-wt-puncher/internal/report"
)

// getCmd groups the read-only subcommands: config, latest, tasks and ccc.
var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Get things like current configuration or latest worktime punches",
}

// getConfigCmd prints the currently loaded configuration.
var getConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Get current loaded configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Printf("Current configuration: %+v\n", *cfg)
		return nil
	},
}

// getLatestCmd fetches the latest N punch lines, optionally filtered by kind.
var getLatestCmd = &cobra.Command{
	Use:   "latest <count> [login|logout|all]",
	Short: "Get latest COUNT worktime punch lines",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := strconv.Atoi(args[0])
		if err != nil {
			return &api.Error{
				Category: api.InvalidArgument,
				Message:  fmt.Sprintf("punch count must be a number, got %q", args[0]),
			}
		}
		filter := "all"
		if len(args) == 2 {
			filter = args[1]
		}

		client, _, err := newClient()
		if err != nil {
			return err
		}
		if dryRun {
			logger.Info("[INFO] DRY-RUN - would GET latest %d '%s' punch lines\n", count, filter)
			return nil
		}

		records, err := history.NewService(client).Latest(count, filter)
		if err != nil {
			return err
		}
		fmt.Printf("Latest %d '%s' punch line(s) in ascending order:\n", count, filter)
		report.PunchTable(os.Stdout, records)
		return nil
	},
}

// getTasksCmd lists the configured recurring tasks, grouped.
var getTasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Get list of configured recurring tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Println("Available recurring tasks:")
		report.TaskGroups(os.Stdout, cfg.RecurringTasks)
		return nil
	},
}

// getCCCCmd lists the customer cost centres available in the configuration.
var getCCCCmd = &cobra.Command{
	Use:   "ccc",
	Short: "Get customer cost centres that are available in configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Println("Available customer cost centres:")
		report.CostCentres(os.Stdout, cfg.CostCentres)
		return nil
	},
}

// init registers the `get` command tree with the root command.
func init() {
	getCmd.AddCommand(getConfigCmd)
	getCmd.AddCommand(getLatestCmd)
	getCmd.AddCommand(getTasksCmd)
	getCmd.AddCommand(getCCCCmd)
	rootCmd.AddCommand(getCmd)
}
