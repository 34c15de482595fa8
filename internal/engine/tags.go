package engine

import (
	"context"
	"strings"

	"github.com/krizhnx/internyx/internal/model"
)

// ListTags returns the owner's tags ordered by name. An owner with no tags
// gets the predefined starter set seeded first.
func (s *Session) ListTags(ctx context.Context) ([]model.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tags, err := s.gw.ListTags(ctx, s.ownerID)
	if err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		return tags, nil
	}

	for _, seed := range model.PredefinedTags {
		tag := model.Tag{OwnerID: s.ownerID, Name: seed.Name, Color: seed.Color}
		if err := s.gw.CreateTag(ctx, &tag); err != nil {
			// seeding is a convenience; an owner with zero tags still works
			return tags, nil
		}
	}
	return s.gw.ListTags(ctx, s.ownerID)
}

// CreateTag persists a new tag after trimming the name and rejecting
// case-insensitive duplicates
func (s *Session) CreateTag(ctx context.Context, name, color string) (*model.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &model.ValidationError{Field: "name", Message: "tag name is required"}
	}
	if color == "" {
		color = "#6b7280"
	}

	existing, err := s.gw.ListTags(ctx, s.ownerID)
	if err != nil {
		return nil, err
	}
	for _, t := range existing {
		if strings.EqualFold(t.Name, name) {
			return nil, model.ErrDuplicateTag
		}
	}

	tag := &model.Tag{OwnerID: s.ownerID, Name: name, Color: color}
	if err := s.gw.CreateTag(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// DeleteTag removes the tag from every record that references it, one
// persisted update at a time, and only then deletes the tag itself. The
// cascade halts on the first failing update and reports exactly which
// records were stripped; the tag row stays intact so the deletion can be
// retried. On success the tag is also purged from the active filter
// selection.
func (s *Session) DeleteTag(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// cascade over fresh data, not a possibly stale session cache
	if err := s.refetch(ctx); err != nil {
		return err
	}

	var holders []*model.Application
	for i := range s.apps {
		if s.apps[i].HasTag(name) {
			holders = append(holders, &s.apps[i])
		}
	}

	updated := make([]uint, 0, len(holders))
	for _, app := range holders {
		app.RemoveTag(name)
		if err := s.gw.UpdateApplicationTags(ctx, s.ownerID, app.ID, app.Tags); err != nil {
			s.refetchAfterWrite(ctx)
			return &model.CascadeError{
				Tag:       name,
				Updated:   updated,
				Remaining: len(holders) - len(updated),
				Err:       err,
			}
		}
		updated = append(updated, app.ID)
	}

	if err := s.gw.DeleteTag(ctx, s.ownerID, name); err != nil {
		s.refetchAfterWrite(ctx)
		return err
	}

	s.filter = s.filter.WithoutTag(name)
	s.refetchAfterWrite(ctx)
	return nil
}
