package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kwyt0087/AI-employee-takes-leave/internal/datautil"
	"github.com/kwyt0087/AI-employee-takes-leave/internal/leave"
	"github.com/kwyt0087/AI-employee-takes-leave/internal/navigation"
)

var leaveCmd = &cobra.Command{
	Use:   "leave",
	Short: "Apply for and track leave requests",
}

var leaveTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List leave types",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.openView(navigation.ViewLeaveApply); err != nil {
			return err
		}

		types, err := app.Leaves.FetchTypes(context.Background())
		if err != nil {
			return fmt.Errorf("%s", app.Leaves.Err())
		}
		for _, t := range types {
			paid := "unpaid"
			if t.IsPaid {
				paid = "paid"
			}
			fmt.Printf("%d  %-12s %s (max %d days, %s)\n", t.ID, t.Name, t.Description, t.MaxDays, paid)
		}
		return nil
	},
}

var (
	leaveStart  string
	leaveEnd    string
	leaveReason string
	leaveTypeID int64
	leaveAIRec  string
)

var leaveRecommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Get leave plan recommendations",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.openView(navigation.ViewLeaveRecommend); err != nil {
			return err
		}

		days := datautil.CalculateDays(leaveStart, leaveEnd)
		workDays := datautil.CalculateWorkDays(leaveStart, leaveEnd)
		fmt.Printf("requesting %s to %s: %d calendar days, %d working days\n",
			leaveStart, leaveEnd, days, workDays)

		result, err := app.Leaves.FetchRecommendations(context.Background(), leave.RecommendationDTO{
			UserID:    app.Store.UserID(),
			StartDate: leaveStart,
			EndDate:   leaveEnd,
			Reason:    leaveReason,
		})
		if err != nil {
			return fmt.Errorf("%s", app.Leaves.Err())
		}

		for _, plan := range result.Recommendations {
			fmt.Printf("\n%s (%s, %.1f days) — level %s\n",
				plan.PlanName, plan.LeaveType, plan.Days, plan.RecommendationLevel)
			fmt.Printf("  impact: %s\n", plan.Impact)
			for _, pro := range plan.Pros {
				fmt.Printf("  + %s\n", pro)
			}
			for _, con := range plan.Cons {
				fmt.Printf("  - %s\n", con)
			}
		}
		return nil
	},
}

var leaveApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Submit a leave application",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.openView(navigation.ViewLeaveApply); err != nil {
			return err
		}

		result, err := app.Leaves.Apply(context.Background(), leave.ApplyLeaveDTO{
			UserID:           app.Store.UserID(),
			LeaveTypeID:      leaveTypeID,
			StartDate:        leaveStart,
			EndDate:          leaveEnd,
			Reason:           leaveReason,
			AIRecommendation: leaveAIRec,
		})
		if err != nil {
			return fmt.Errorf("%s", app.Leaves.Err())
		}

		fmt.Printf("%s: %s\n", result.Status, result.Message)
		if result.LeaveRequest != nil {
			fmt.Printf("request %d is %s\n", result.LeaveRequest.ID, result.LeaveRequest.Status)
		}
		return nil
	},
}

var leaveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your leave requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.openView(navigation.ViewLeaveList); err != nil {
			return err
		}

		requests, err := app.Leaves.FetchRequests(context.Background(), app.Store.UserID())
		if err != nil {
			return fmt.Errorf("%s", app.Leaves.Err())
		}
		for _, req := range requests {
			fmt.Printf("%d  %-10s %s .. %s  %.1f days  [%s]  %s\n",
				req.ID, req.LeaveType, req.StartDate, req.EndDate, req.Days, req.Status, req.Reason)
		}
		return nil
	},
}

var leaveShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one leave request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		leaveID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid leave id %q", args[0])
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.openView(navigation.ViewLeaveDetail); err != nil {
			return err
		}

		detail, err := app.Leaves.FetchDetail(context.Background(), leaveID)
		if err != nil {
			return fmt.Errorf("%s", app.Leaves.Err())
		}
		printLeaveDetail(detail)
		return nil
	},
}

var leaveCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel a leave request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		leaveID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid leave id %q", args[0])
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.openView(navigation.ViewLeaveDetail); err != nil {
			return err
		}

		detail, err := app.Leaves.Cancel(context.Background(), leaveID)
		if err != nil {
			return fmt.Errorf("%s", app.Leaves.Err())
		}
		printLeaveDetail(detail)
		return nil
	},
}

var approveStatus string

var leaveApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve or reject a leave request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		leaveID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid leave id %q", args[0])
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.openView(navigation.ViewLeaveDetail); err != nil {
			return err
		}

		detail, err := app.Leaves.Approve(context.Background(), leaveID, leave.ApproveDTO{Status: approveStatus})
		if err != nil {
			return fmt.Errorf("%s", app.Leaves.Err())
		}
		printLeaveDetail(detail)
		return nil
	},
}

func printLeaveDetail(req *leave.LeaveRequest) {
	fmt.Printf("request:  %d\n", req.ID)
	fmt.Printf("type:     %s\n", req.LeaveType)
	fmt.Printf("dates:    %s .. %s (%.1f days)\n", req.StartDate, req.EndDate, req.Days)
	fmt.Printf("reason:   %s\n", req.Reason)
	fmt.Printf("status:   %s\n", req.Status)
	fmt.Printf("created:  %s\n", req.CreatedAt)
}

func init() {
	for _, c := range []*cobra.Command{leaveRecommendCmd, leaveApplyCmd} {
		c.Flags().StringVar(&leaveStart, "start", "", "start date (YYYY-MM-DD)")
		c.Flags().StringVar(&leaveEnd, "end", "", "end date (YYYY-MM-DD)")
		c.Flags().StringVar(&leaveReason, "reason", "", "reason for leave")
		c.MarkFlagRequired("start")
		c.MarkFlagRequired("end")
		c.MarkFlagRequired("reason")
	}
	leaveApplyCmd.Flags().Int64Var(&leaveTypeID, "type", 0, "leave type id")
	leaveApplyCmd.Flags().StringVar(&leaveAIRec, "ai-recommendation", "", "chosen AI recommendation plan")
	leaveApplyCmd.MarkFlagRequired("type")

	leaveApproveCmd.Flags().StringVar(&approveStatus, "status", "approved", "decision: approved or rejected")

	leaveCmd.AddCommand(leaveTypesCmd)
	leaveCmd.AddCommand(leaveRecommendCmd)
	leaveCmd.AddCommand(leaveApplyCmd)
	leaveCmd.AddCommand(leaveListCmd)
	leaveCmd.AddCommand(leaveShowCmd)
	leaveCmd.AddCommand(leaveCancelCmd)
	leaveCmd.AddCommand(leaveApproveCmd)
}
