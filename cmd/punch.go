package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mclang/kiho-wt-puncher/internal/logger"
	"github.com/mclang/kiho-wt-puncher/internal/punch"
	"github.com/mclang/kiho-wt-puncher/internal/tasks"
)

// startCmd submits a LOGIN punch. When no description is given on the command
// line, the user picks one interactively from the configured recurring tasks.
var startCmd = &cobra.Command{
	Use:   "start [description]",
	Short: "Start working on something work related",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newClient()
		if err != nil {
			return err
		}

		var description string
		if len(args) == 1 {
			description = args[0]
		} else {
			fmt.Println("No punch description given! Please choose one from the recurring tasks:")
			description, err = tasks.PickDescription(os.Stdin, os.Stdout, cfg.RecurringTasks)
			if err != nil {
				return err
			}
		}

		if dryRun {
			// Dry runs skip the pre-check as well - nothing is fetched or sent.
			body, err := client.PunchBody(punch.Login, description)
			if err != nil {
				return err
			}
			logger.Info("[INFO] DRY-RUN - would POST the following punch:\n%s\n", body)
			return nil
		}

		logger.Verbose("Starting worktime '%s'\n", description)
		rec, err := punch.NewController(client).Start(description)
		if err != nil {
			return err
		}
		fmt.Printf("Following new punch line created:\n%s\n", rec)
		return nil
	},
}

// stopCmd submits a LOGOUT punch, closing the currently open work session.
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop whatever worktime task was active",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		if dryRun {
			body, err := client.PunchBody(punch.Logout, "")
			if err != nil {
				return err
			}
			logger.Info("[INFO] DRY-RUN - would POST the following punch:\n%s\n", body)
			return nil
		}

		logger.Verbose("Stopping worktime\n")
		rec, err := punch.NewController(client).Stop()
		if err != nil {
			return err
		}
		fmt.Printf("Following new punch line created:\n%s\n", rec)
		return nil
	},
}

// breakCmd is a placeholder: the Kiho API supports BREAK punches but this
// tool does not submit them yet.
var breakCmd = &cobra.Command{
	Use:   "break",
	Short: "Add worktime break (NOT IMPLEMENTED)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return errors.New("starting a BREAK is not supported yet")
	},
}

// init registers the punch commands with the root command.
func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(breakCmd)
}
