package model

import "time"

// View modes for the record list
const (
	ViewCard  = "card"
	ViewTable = "table"
)

// DefaultPageSize is used until the owner picks another size
const DefaultPageSize = 10

// PageSizes are the selectable page sizes
var PageSizes = []int{5, 10, 20, 50}

// ValidPageSize reports whether n is a selectable page size
func ValidPageSize(n int) bool {
	for _, s := range PageSizes {
		if s == n {
			return true
		}
	}
	return false
}

// Preference holds the per-owner UI preferences persisted outside the main
// record collection. Read once per session and on a settings change.
type Preference struct {
	ID          uint      `json:"-" gorm:"primarykey"`
	OwnerID     string    `json:"-" gorm:"type:varchar(64);uniqueIndex;not null"`
	PageSize    int       `json:"page_size" gorm:"default:10"`
	DefaultView string    `json:"default_view" gorm:"type:varchar(8);default:card"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// TableName specifies the table name
func (Preference) TableName() string {
	return "preferences"
}
