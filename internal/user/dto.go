package user

import "errors"

// AnnualLeaveInfo mirrors the backend's annual-leave record for one user.
type AnnualLeaveInfo struct {
	TotalDays     float64 `json:"total_days"`
	UsedDays      float64 `json:"used_days"`
	RemainingDays float64 `json:"remaining_days"`
}

// User is the profile snapshot as the backend returns it. Read-only from
// the client's perspective; AnnualLeave is merged in after a separate fetch.
type User struct {
	ID          int64            `json:"id"`
	Username    string           `json:"username"`
	Email       string           `json:"email"`
	FullName    string           `json:"full_name"`
	Department  string           `json:"department"`
	Position    string           `json:"position"`
	EmployeeID  string           `json:"employee_id"`
	HireDate    string           `json:"hire_date"`
	IsActive    bool             `json:"is_active"`
	IsAdmin     bool             `json:"is_admin"`
	AnnualLeave *AnnualLeaveInfo `json:"annual_leave,omitempty"`
}

// LoginDTO carries the credentials the login form submits.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() error {
	if d.Username == "" {
		return errors.New("username is required")
	}
	if d.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// LoginResult is the login response envelope.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	UserID      int64  `json:"user_id"`
}

// UpdateProfileDTO is the editable slice of the profile.
type UpdateProfileDTO struct {
	Email      string `json:"email,omitempty"`
	FullName   string `json:"full_name,omitempty"`
	Department string `json:"department,omitempty"`
	Position   string `json:"position,omitempty"`
}

type ChangePasswordDTO struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (d ChangePasswordDTO) Validate() error {
	if d.OldPassword == "" {
		return errors.New("old password is required")
	}
	if d.NewPassword == "" {
		return errors.New("new password is required")
	}
	return nil
}

// LeaveStats aggregates a user's leave history for the profile view.
type LeaveStats struct {
	Total     int     `json:"total"`
	Pending   int     `json:"pending"`
	Approved  int     `json:"approved"`
	Rejected  int     `json:"rejected"`
	Cancelled int     `json:"cancelled"`
	TotalDays float64 `json:"total_days"`
}
