// ABOUTME: CLI commands for managing users.
// ABOUTME: Users own routines; exercises and weights are shared.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/liftlog/internal/models"
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
	Long: `Manage the users that own routines.

Most commands act for the user given by --user, the "username" config
setting, LIFTLOG_USER, or $USER, in that order. That user is created on
first use.`,
}

var userAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Add a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u := models.NewUser(args[0])
		if err := app.Repo().CreateUser(u); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Added user %s\n", u.Username)
		fmt.Fprintf(out, "  %s\n", faint.Sprint(shortID(u.ID.String())))
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List users",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := app.Repo().ListUsers()
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(users) == 0 {
			fmt.Fprintln(out, "No users found.")
			return nil
		}
		for _, u := range users {
			fmt.Fprintf(out, "%s %s\n", faint.Sprint(shortID(u.ID.String())), u.Username)
		}
		return nil
	},
}

var userDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a user and their routines",
	Long: `Delete a user by ID or ID prefix.

The user's routines, with their days and exercise links, are deleted too.
Exercises and their weight history are kept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := app.Repo().GetUser(args[0])
		if err != nil {
			return fmt.Errorf("user not found: %w", err)
		}
		if err := app.Repo().DeleteUser(u.ID.String()); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "✗ Deleted user %s\n", u.Username)
		return nil
	},
}

func init() {
	userCmd.AddCommand(userAddCmd, userListCmd, userDeleteCmd)
	rootCmd.AddCommand(userCmd)
}
