package model

import "time"

// Tag is a user-scoped label attachable to application records. Names are
// unique per owner, case-insensitively; deletion cascades into every record
// that references the tag.
type Tag struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	OwnerID   string    `json:"-" gorm:"type:varchar(64);index:idx_tags_owner_name,unique;not null"`
	Name      string    `json:"name" gorm:"type:varchar(64);index:idx_tags_owner_name,unique;not null"`
	Color     string    `json:"color" gorm:"type:varchar(16);default:#6b7280"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Tag) TableName() string {
	return "tags"
}

// PredefinedTags is the starter set seeded the first time an owner with no
// tags lists them. Seeding is an initialization convenience, not a
// correctness requirement.
var PredefinedTags = []Tag{
	{Name: "Dream Company", Color: "#ef4444"},
	{Name: "Priority", Color: "#f59e0b"},
	{Name: "Tech", Color: "#3b82f6"},
	{Name: "Finance", Color: "#10b981"},
	{Name: "Remote", Color: "#8b5cf6"},
	{Name: "Startup", Color: "#ec4899"},
}
