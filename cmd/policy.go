package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kwyt0087/AI-employee-takes-leave/internal/navigation"
	"github.com/kwyt0087/AI-employee-takes-leave/internal/policy"
)

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Browse and manage company policies",
}

var policyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List policies",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.openView(navigation.ViewPolicyList); err != nil {
			return err
		}

		policies, err := app.Policies.FetchAll(context.Background())
		if err != nil {
			return fmt.Errorf("%s", app.Policies.Err())
		}
		for _, p := range policies {
			fmt.Printf("%d  [%-10s] %s (%s) %s\n", p.ID, p.Category, p.Title, p.FileType, p.CreatedAt)
		}
		return nil
	},
}

var policyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one policy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		policyID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid policy id %q", args[0])
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.openView(navigation.ViewPolicyList); err != nil {
			return err
		}

		p, err := app.Policies.FetchDetail(context.Background(), policyID)
		if err != nil {
			return fmt.Errorf("%s", app.Policies.Err())
		}
		fmt.Printf("policy:      %d\n", p.ID)
		fmt.Printf("title:       %s\n", p.Title)
		fmt.Printf("category:    %s\n", p.Category)
		fmt.Printf("file type:   %s\n", p.FileType)
		fmt.Printf("description: %s\n", p.Description)
		return nil
	},
}

var (
	policyTitle       string
	policyDescription string
	policyCategory    string
)

var policyUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a policy document (admin only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.openView(navigation.ViewPolicyUpload); err != nil {
			return err
		}

		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open policy file: %w", err)
		}
		defer file.Close()

		result, err := app.Policies.Upload(context.Background(), policy.UploadDTO{
			Title:       policyTitle,
			Description: policyDescription,
			Category:    policyCategory,
			FileName:    filepath.Base(args[0]),
			Content:     file,
		})
		if err != nil {
			return fmt.Errorf("%s", app.Policies.Err())
		}
		fmt.Printf("%s: %s\n", result.Status, result.Message)
		return nil
	},
}

var policyUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update policy metadata (admin only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		policyID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid policy id %q", args[0])
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.openView(navigation.ViewPolicyUpload); err != nil {
			return err
		}

		if _, err := app.Policies.Update(context.Background(), policyID, policy.UpdateDTO{
			Title:       policyTitle,
			Description: policyDescription,
			Category:    policyCategory,
		}); err != nil {
			return fmt.Errorf("%s", app.Policies.Err())
		}
		fmt.Println("policy updated")
		return nil
	},
}

var policyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a policy (admin only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		policyID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid policy id %q", args[0])
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.openView(navigation.ViewPolicyUpload); err != nil {
			return err
		}

		if err := app.Policies.Delete(context.Background(), policyID); err != nil {
			return fmt.Errorf("%s", app.Policies.Err())
		}
		fmt.Println("policy deleted")
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{policyUploadCmd, policyUpdateCmd} {
		c.Flags().StringVar(&policyTitle, "title", "", "policy title")
		c.Flags().StringVar(&policyDescription, "description", "", "policy description")
		c.Flags().StringVar(&policyCategory, "category", "", "policy category")
	}
	policyUploadCmd.MarkFlagRequired("title")
	policyUploadCmd.MarkFlagRequired("category")

	policyCmd.AddCommand(policyListCmd)
	policyCmd.AddCommand(policyShowCmd)
	policyCmd.AddCommand(policyUploadCmd)
	policyCmd.AddCommand(policyUpdateCmd)
	policyCmd.AddCommand(policyDeleteCmd)
}
