package engine

import (
	"testing"
	"time"
)

func TestClassifyDeadline(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	day := func(offset int) string {
		return now.AddDate(0, 0, offset).Format("2006-01-02")
	}

	tests := []struct {
		name     string
		deadline string
		wantKind string
		wantDays int
	}{
		{"no deadline", "", DeadlineNone, 0},
		{"two days out is urgent", day(2), DeadlineUrgent, 2},
		{"five days out is upcoming", day(5), DeadlineUpcoming, 5},
		{"ten days out is normal", day(10), DeadlineNormal, 10},
		{"yesterday is overdue", day(-1), DeadlineOverdue, -1},
		{"today is urgent", day(0), DeadlineUrgent, 0},
		{"three days is still urgent", day(3), DeadlineUrgent, 3},
		{"four days is upcoming", day(4), DeadlineUpcoming, 4},
		{"seven days is upcoming", day(7), DeadlineUpcoming, 7},
		{"eight days is normal", day(8), DeadlineNormal, 8},
		{"unparseable date treated as unset", "not-a-date", DeadlineNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyDeadline(tt.deadline, now)
			if got.Kind != tt.wantKind {
				t.Errorf("ClassifyDeadline(%q) kind = %q, want %q", tt.deadline, got.Kind, tt.wantKind)
			}
			if got.Days != tt.wantDays {
				t.Errorf("ClassifyDeadline(%q) days = %d, want %d", tt.deadline, got.Days, tt.wantDays)
			}
		})
	}
}

func TestClassifyDeadlineIsDeterministic(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	deadline := "2024-03-12"

	first := ClassifyDeadline(deadline, now)
	for i := 0; i < 10; i++ {
		if got := ClassifyDeadline(deadline, now); got != first {
			t.Fatalf("classification changed between calls: %+v vs %+v", got, first)
		}
	}
}

func TestClassifyDeadlineText(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	if got := ClassifyDeadline("2024-03-11", now); got.Text != "1 day left" {
		t.Errorf("one-day text = %q, want %q", got.Text, "1 day left")
	}
	if got := ClassifyDeadline("2024-03-13", now); got.Text != "3 days left" {
		t.Errorf("three-day text = %q, want %q", got.Text, "3 days left")
	}
	if got := ClassifyDeadline("2024-03-01", now); got.Text != "Overdue" {
		t.Errorf("overdue text = %q, want %q", got.Text, "Overdue")
	}
}
