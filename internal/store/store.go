package store

import (
	"context"

	"github.com/krizhnx/internyx/internal/model"
)

// ApplicationStore is the persistence gateway for application records.
// Every operation is scoped by the owner identifier.
type ApplicationStore interface {
	// ListApplications returns all records for the owner, newest first
	ListApplications(ctx context.Context, ownerID string) ([]model.Application, error)
	GetApplication(ctx context.Context, ownerID string, id uint) (*model.Application, error)
	CreateApplication(ctx context.Context, app *model.Application) error
	UpdateApplication(ctx context.Context, app *model.Application) error
	// UpdateApplicationTags rewrites only the tag set of one record; this is
	// the per-record checkpoint of the tag-deletion cascade
	UpdateApplicationTags(ctx context.Context, ownerID string, id uint, tags []string) error
	DeleteApplication(ctx context.Context, ownerID string, id uint) error
}

// TagStore is the persistence gateway for tags
type TagStore interface {
	// ListTags returns the owner's tags ordered by name
	ListTags(ctx context.Context, ownerID string) ([]model.Tag, error)
	CreateTag(ctx context.Context, tag *model.Tag) error
	DeleteTag(ctx context.Context, ownerID, name string) error
}

// PreferenceStore persists the per-owner UI preferences
type PreferenceStore interface {
	GetPreference(ctx context.Context, ownerID string) (*model.Preference, error)
	SavePreference(ctx context.Context, pref *model.Preference) error
}

// Gateway bundles the stores the engine needs
type Gateway interface {
	ApplicationStore
	TagStore
	PreferenceStore
}
