package engine

import (
	"fmt"
	"math"
	"time"
)

// Deadline urgency buckets
const (
	DeadlineNone     = "none"
	DeadlineOverdue  = "overdue"
	DeadlineUrgent   = "urgent"
	DeadlineUpcoming = "upcoming"
	DeadlineNormal   = "normal"
)

// DeadlineStatus is the urgency classification of a record's deadline
type DeadlineStatus struct {
	Kind string `json:"kind"`
	Days int    `json:"days"`
	Text string `json:"text"`
}

// ClassifyDeadline buckets a deadline date (YYYY-MM-DD, may be empty) relative
// to now. The day count is the ceiling of the remaining time divided by one
// day, so a deadline later today still counts as 0 days left.
func ClassifyDeadline(deadline string, now time.Time) DeadlineStatus {
	if deadline == "" {
		return DeadlineStatus{Kind: DeadlineNone}
	}

	due, err := time.ParseInLocation("2006-01-02", deadline, now.Location())
	if err != nil {
		return DeadlineStatus{Kind: DeadlineNone}
	}

	days := int(math.Ceil(due.Sub(now).Hours() / 24))

	switch {
	case days < 0:
		return DeadlineStatus{Kind: DeadlineOverdue, Days: days, Text: "Overdue"}
	case days <= 3:
		return DeadlineStatus{Kind: DeadlineUrgent, Days: days, Text: daysLeft(days)}
	case days <= 7:
		return DeadlineStatus{Kind: DeadlineUpcoming, Days: days, Text: daysLeft(days)}
	default:
		return DeadlineStatus{Kind: DeadlineNormal, Days: days, Text: daysLeft(days)}
	}
}

func daysLeft(days int) string {
	if days == 1 {
		return "1 day left"
	}
	return fmt.Sprintf("%d days left", days)
}
