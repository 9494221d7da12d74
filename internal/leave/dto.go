package leave

import "encoding/json"

// Leave request status as the backend reports it. The client never
// computes a transition; it re-fetches after every mutating call.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// LeaveType is a selectable category of leave.
type LeaveType struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	MaxDays      int    `json:"max_days"`
	NeedApproval bool   `json:"need_approval"`
	IsPaid       bool   `json:"is_paid"`
}

// LeaveRequest is one leave record mirrored from the backend.
type LeaveRequest struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	LeaveTypeID int64   `json:"leave_type_id,omitempty"`
	LeaveType   string  `json:"leave_type,omitempty"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Days        float64 `json:"days"`
	Reason      string  `json:"reason"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

// ApplyLeaveDTO is the leave application payload.
type ApplyLeaveDTO struct {
	UserID           int64  `json:"user_id"`
	LeaveTypeID      int64  `json:"leave_type_id"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	Reason           string `json:"reason"`
	AIRecommendation string `json:"ai_recommendation,omitempty"`
}

// ApplyResult is the apply response. Status carries the backend's literal
// outcome marker; the container's follow-up refresh keys off it.
type ApplyResult struct {
	Status       string        `json:"status"`
	Message      string        `json:"message"`
	LeaveRequest *LeaveRequest `json:"leave_request,omitempty"`
}

// RecommendationDTO is the input to the recommendation endpoint.
type RecommendationDTO struct {
	UserID    int64  `json:"user_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

// RecommendationPlan is one suggested way to take the requested days off.
type RecommendationPlan struct {
	PlanName            string   `json:"plan_name"`
	LeaveType           string   `json:"leave_type"`
	Days                float64  `json:"days"`
	IsCompliant         bool     `json:"is_compliant"`
	Impact              string   `json:"impact"`
	Pros                []string `json:"pros"`
	Cons                []string `json:"cons"`
	RecommendationLevel string   `json:"recommendation_level"`
}

// RecommendationResult is the recommendation response. EmployeeInfo is the
// backend's employee context document, kept opaque: the client only
// displays it.
type RecommendationResult struct {
	Recommendations []RecommendationPlan `json:"recommendations"`
	EmployeeInfo    json.RawMessage      `json:"employee_info,omitempty"`
	LeaveRequest    *RecommendationEcho  `json:"leave_request,omitempty"`
}

// RecommendationEcho repeats the requested range back with the computed
// working-day count.
type RecommendationEcho struct {
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Days      float64 `json:"days"`
	Reason    string  `json:"reason"`
}

// ApproveDTO is the approval decision an admin submits.
type ApproveDTO struct {
	Status  string `json:"status"`
	Comment string `json:"comment,omitempty"`
}
