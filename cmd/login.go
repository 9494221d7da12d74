package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kwyt0087/AI-employee-takes-leave/internal/datautil"
	"github.com/kwyt0087/AI-employee-takes-leave/internal/navigation"
	"github.com/kwyt0087/AI-employee-takes-leave/internal/user"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the leave service",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		dto := user.LoginDTO{Username: loginUsername, Password: loginPassword}
		if err := dto.Validate(); err != nil {
			return err
		}

		result, err := app.Users.Login(context.Background(), dto)
		if err != nil {
			return fmt.Errorf("login failed: %s", app.Users.Err())
		}

		app.Navigator.Navigate(navigation.ViewHome)
		profile := app.Users.Current()
		if profile != nil {
			fmt.Printf("logged in as %s (%s)\n", profile.Username, profile.FullName)
		} else {
			fmt.Printf("logged in, user id %d\n", result.UserID)
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Destroy the local session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.Users.Logout(); err != nil {
			return err
		}
		app.Navigator.Navigate(navigation.ViewLogin)
		fmt.Println("logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		profile := app.Users.Current()
		if profile == nil {
			fmt.Println("not logged in")
			return nil
		}

		fmt.Printf("user:      %s (%s)\n", profile.Username, profile.FullName)
		fmt.Printf("admin:     %v\n", profile.IsAdmin)
		if profile.AnnualLeave != nil {
			fmt.Printf("annual leave: %.1f of %.1f days remaining\n",
				profile.AnnualLeave.RemainingDays, profile.AnnualLeave.TotalDays)
		}
		if claims, err := app.Store.Claims(); err == nil && !claims.ExpiresAt.IsZero() {
			fmt.Printf("token expires: %s\n", datautil.FormatDateTime(claims.ExpiresAt))
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password")
	loginCmd.MarkFlagRequired("username")
	loginCmd.MarkFlagRequired("password")
}
