package model

import (
	"strings"
	"time"
)

// Application statuses. saved is a pre-application holding state; the
// conventional lifecycle is saved -> applied -> interviewing -> offer/rejected,
// but records are commonly created directly as applied.
const (
	StatusSaved        = "saved"
	StatusApplied      = "applied"
	StatusInterviewing = "interviewing"
	StatusOffer        = "offer"
	StatusRejected     = "rejected"
)

// Location types
const (
	LocationRemote = "remote"
	LocationOnSite = "on-site"
	LocationHybrid = "hybrid"
)

// Priorities, meaningful only while status is saved
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Attachment references an uploaded file. Upload and storage mechanics live
// behind the object-storage gateway; the record keeps only these references.
type Attachment struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
	URL  string `json:"url"`
	Path string `json:"path"`
}

// Application represents one tracked internship/job application record
type Application struct {
	ID      uint   `json:"id" gorm:"primarykey"`
	OwnerID string `json:"-" gorm:"type:varchar(64);index;not null"`

	CompanyName   string `json:"company_name" gorm:"type:varchar(255);not null"`
	Role          string `json:"role" gorm:"type:varchar(255);not null"`
	Location      string `json:"location" gorm:"type:varchar(16);default:remote"`
	LocationPlace string `json:"location_place" gorm:"type:varchar(255)"`
	Status        string `json:"status" gorm:"type:varchar(16);index;default:applied"`

	// Calendar dates as YYYY-MM-DD, matching the date-only inputs they come from
	AppliedDate string `json:"applied_date" gorm:"type:varchar(10)"`
	Deadline    string `json:"deadline" gorm:"type:varchar(10)"`

	Salary     string `json:"salary" gorm:"type:varchar(100)"`
	Notes      string `json:"notes" gorm:"type:text"`
	SavedNotes string `json:"saved_notes" gorm:"type:text"`
	Priority   string `json:"priority" gorm:"type:varchar(8)"`

	Tags  []string     `json:"tags" gorm:"serializer:json"`
	Files []Attachment `json:"files" gorm:"serializer:json"`

	SavedDate *time.Time `json:"saved_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName specifies the table name
func (Application) TableName() string {
	return "applications"
}

// HasTag reports whether the record carries the named tag
func (a *Application) HasTag(name string) bool {
	for _, t := range a.Tags {
		if t == name {
			return true
		}
	}
	return false
}

// RemoveTag drops the named tag from the record's tag set
func (a *Application) RemoveTag(name string) {
	tags := a.Tags[:0]
	for _, t := range a.Tags {
		if t != name {
			tags = append(tags, t)
		}
	}
	a.Tags = tags
}

// ValidStatus reports whether s is one of the known application statuses
func ValidStatus(s string) bool {
	switch s {
	case StatusSaved, StatusApplied, StatusInterviewing, StatusOffer, StatusRejected:
		return true
	}
	return false
}

// ValidLocation reports whether s is one of the known location types
func ValidLocation(s string) bool {
	switch s {
	case LocationRemote, LocationOnSite, LocationHybrid:
		return true
	}
	return false
}

// Validate checks the required fields before any gateway call
func (a *Application) Validate() error {
	if strings.TrimSpace(a.CompanyName) == "" {
		return &ValidationError{Field: "company_name", Message: "company name is required"}
	}
	if strings.TrimSpace(a.Role) == "" {
		return &ValidationError{Field: "role", Message: "role is required"}
	}
	if a.Status != "" && !ValidStatus(a.Status) {
		return &ValidationError{Field: "status", Message: "unknown status"}
	}
	if a.Location != "" && !ValidLocation(a.Location) {
		return &ValidationError{Field: "location", Message: "unknown location type"}
	}
	return nil
}
