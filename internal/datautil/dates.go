package datautil

import "time"

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// FormatDateTime renders t as "2006-01-02 15:04:05", "" for the zero time.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateTimeLayout)
}

// FormatDate renders t as "2006-01-02", "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// CalculateDays returns the inclusive calendar-day span between two
// "2006-01-02" dates: same day counts as 1. Unparseable or empty input
// yields 0.
func CalculateDays(startDate, endDate string) int {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return 0
	}
	end, err := time.Parse(DateLayout, endDate)
	if err != nil {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// CalculateWorkDays returns the inclusive span between two "2006-01-02"
// dates counting only Monday through Friday.
func CalculateWorkDays(startDate, endDate string) int {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return 0
	}
	end, err := time.Parse(DateLayout, endDate)
	if err != nil {
		return 0
	}

	days := int(end.Sub(start).Hours()/24) + 1
	workDays := 0
	for i := 0; i < days; i++ {
		switch start.AddDate(0, 0, i).Weekday() {
		case time.Saturday, time.Sunday:
		default:
			workDays++
		}
	}
	return workDays
}
