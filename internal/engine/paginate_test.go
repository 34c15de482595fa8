package engine

import (
	"reflect"
	"testing"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name                string
		n, page, size       int
		wantPage, wantTotal int
		wantStart, wantEnd  int
	}{
		{"23 records, page 1 of 10", 23, 1, 10, 1, 3, 0, 10},
		{"23 records, page 3 has 3", 23, 3, 10, 3, 3, 20, 23},
		{"empty collection still has one page", 0, 1, 10, 1, 1, 0, 0},
		{"page clamped to last", 23, 9, 10, 3, 3, 20, 23},
		{"page clamped to first", 23, 0, 10, 1, 3, 0, 10},
		{"exact multiple", 20, 2, 10, 2, 2, 10, 20},
		{"size five", 23, 5, 5, 5, 5, 20, 23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(tt.n, tt.page, tt.size)
			if got.Number != tt.wantPage || got.TotalPages != tt.wantTotal {
				t.Errorf("page %d/%d, want %d/%d", got.Number, got.TotalPages, tt.wantPage, tt.wantTotal)
			}
			if got.Start != tt.wantStart || got.End != tt.wantEnd {
				t.Errorf("bounds [%d:%d], want [%d:%d]", got.Start, got.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestPageNumbers(t *testing.T) {
	tests := []struct {
		name           string
		current, total int
		want           []string
	}{
		{"all pages fit", 2, 4, []string{"1", "2", "3", "4"}},
		{"single page", 1, 1, []string{"1"}},
		{"early window", 2, 10, []string{"1", "2", "3", "4", "...", "10"}},
		{"boundary of early window", 3, 10, []string{"1", "2", "3", "4", "...", "10"}},
		{"middle window", 5, 10, []string{"1", "...", "4", "5", "6", "...", "10"}},
		{"late window", 9, 10, []string{"1", "...", "7", "8", "9", "10"}},
		{"last page", 10, 10, []string{"1", "...", "7", "8", "9", "10"}},
		{"exactly five pages", 3, 5, []string{"1", "2", "3", "4", "5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PageNumbers(tt.current, tt.total)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PageNumbers(%d, %d) = %v, want %v", tt.current, tt.total, got, tt.want)
			}
		})
	}
}
