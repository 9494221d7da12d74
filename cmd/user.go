package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kwyt0087/AI-employee-takes-leave/internal/navigation"
	"github.com/kwyt0087/AI-employee-takes-leave/internal/user"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Profile and leave statistics",
}

var userShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Fetch and show the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.openView(navigation.ViewUser); err != nil {
			return err
		}

		profile, err := app.Users.FetchUser(context.Background(), app.Store.UserID())
		if err != nil {
			return fmt.Errorf("%s", app.Users.Err())
		}

		fmt.Printf("id:         %d\n", profile.ID)
		fmt.Printf("username:   %s\n", profile.Username)
		fmt.Printf("full name:  %s\n", profile.FullName)
		fmt.Printf("email:      %s\n", profile.Email)
		fmt.Printf("department: %s\n", profile.Department)
		fmt.Printf("position:   %s\n", profile.Position)
		fmt.Printf("hired:      %s\n", profile.HireDate)
		fmt.Printf("admin:      %v\n", profile.IsAdmin)
		if profile.AnnualLeave != nil {
			fmt.Printf("annual leave: %.1f used, %.1f remaining of %.1f\n",
				profile.AnnualLeave.UsedDays,
				profile.AnnualLeave.RemainingDays,
				profile.AnnualLeave.TotalDays)
		}
		return nil
	},
}

var (
	updateEmail      string
	updateFullName   string
	updateDepartment string
	updatePosition   string
)

var userUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.openView(navigation.ViewUser); err != nil {
			return err
		}

		dto := user.UpdateProfileDTO{
			Email:      updateEmail,
			FullName:   updateFullName,
			Department: updateDepartment,
			Position:   updatePosition,
		}
		if _, err := app.Users.UpdateProfile(context.Background(), app.Store.UserID(), dto); err != nil {
			return fmt.Errorf("%s", app.Users.Err())
		}
		fmt.Println("profile updated")
		return nil
	},
}

var (
	oldPassword string
	newPassword string
)

var userPasswordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "Change the account password",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.openView(navigation.ViewUser); err != nil {
			return err
		}

		dto := user.ChangePasswordDTO{OldPassword: oldPassword, NewPassword: newPassword}
		if err := dto.Validate(); err != nil {
			return err
		}
		if err := app.Users.ChangePassword(context.Background(), app.Store.UserID(), dto); err != nil {
			return fmt.Errorf("%s", app.Users.Err())
		}
		fmt.Println("password changed")
		return nil
	},
}

var userStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show leave statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.openView(navigation.ViewUser); err != nil {
			return err
		}

		stats, err := app.Users.FetchLeaveStats(context.Background(), app.Store.UserID())
		if err != nil {
			return fmt.Errorf("%s", app.Users.Err())
		}

		fmt.Printf("requests:  %d total, %d pending, %d approved, %d rejected, %d cancelled\n",
			stats.Total, stats.Pending, stats.Approved, stats.Rejected, stats.Cancelled)
		fmt.Printf("days taken: %.1f\n", stats.TotalDays)
		return nil
	},
}

func init() {
	userUpdateCmd.Flags().StringVar(&updateEmail, "email", "", "email address")
	userUpdateCmd.Flags().StringVar(&updateFullName, "full-name", "", "full name")
	userUpdateCmd.Flags().StringVar(&updateDepartment, "department", "", "department")
	userUpdateCmd.Flags().StringVar(&updatePosition, "position", "", "position")

	userPasswordCmd.Flags().StringVar(&oldPassword, "old", "", "current password")
	userPasswordCmd.Flags().StringVar(&newPassword, "new", "", "new password")
	userPasswordCmd.MarkFlagRequired("old")
	userPasswordCmd.MarkFlagRequired("new")

	userCmd.AddCommand(userShowCmd)
	userCmd.AddCommand(userUpdateCmd)
	userCmd.AddCommand(userPasswordCmd)
	userCmd.AddCommand(userStatsCmd)
}
