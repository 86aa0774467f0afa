// Package cmd implements the command-line interface for zapp.
package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/zapp-cli/zapp/auth"
	"github.com/zapp-cli/zapp/icon"
)

func init() {
	rootCmd.AddCommand(authCmd)

	authCmd.PersistentFlags().StringP("host", "H", "", "The playlist host the credentials belong to")
	lo.Must0(authCmd.MarkPersistentFlagRequired("host"))

	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authDeleteCmd)
}

// authCmd manages playlist provider credentials in the system keyring.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage playlist provider credentials in the system keyring",
	Long:  "Store per-host basic auth credentials in the system keyring. They are attached automatically when a playlist is fetched from that host.",
}

// authSetCmd prompts for and persists credentials for a playlist host.
var authSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store credentials for a playlist host",
	RunE: func(cmd *cobra.Command, args []string) error {
		host := lo.Must(cmd.Flags().GetString("host"))

		var username, password string
		if err := survey.AskOne(&survey.Input{Message: "Username:"}, &username); err != nil {
			return err
		}
		if err := survey.AskOne(&survey.Password{Message: "Password:"}, &password); err != nil {
			return err
		}

		if err := auth.SetCredentials(host, username, password); err != nil {
			return err
		}

		fmt.Printf("%s credentials for %s persisted to the system keyring\n", icon.Get(icon.Success), host)
		return nil
	},
}

// authDeleteCmd removes stored credentials for a playlist host.
var authDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Remove stored credentials for a playlist host",
	Aliases: []string{"remove"},
	RunE: func(cmd *cobra.Command, args []string) error {
		host := lo.Must(cmd.Flags().GetString("host"))

		if err := auth.DeleteCredentials(host); err != nil {
			return err
		}

		fmt.Printf("%s credentials for %s removed\n", icon.Get(icon.Success), host)
		return nil
	},
}
