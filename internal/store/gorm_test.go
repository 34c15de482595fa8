package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/krizhnx/internyx/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	s := New(db)
	if err := s.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return s
}

func TestApplicationCRUD(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	app := &model.Application{
		OwnerID:     "owner-1",
		CompanyName: "Acme",
		Role:        "Backend Intern",
		Status:      model.StatusApplied,
		Location:    model.LocationRemote,
		AppliedDate: "2024-03-10",
		Tags:        []string{"Tech", "Remote"},
		Files: []model.Attachment{
			{Name: "resume.pdf", Size: 1024, Type: "application/pdf", Path: "abc.pdf"},
		},
	}
	if err := s.CreateApplication(ctx, app); err != nil {
		t.Fatalf("CreateApplication: %v", err)
	}
	if app.ID == 0 {
		t.Fatal("id not assigned on create")
	}

	got, err := s.GetApplication(ctx, "owner-1", app.ID)
	if err != nil {
		t.Fatalf("GetApplication: %v", err)
	}
	if got.CompanyName != "Acme" || got.Role != "Backend Intern" {
		t.Errorf("got %q / %q", got.CompanyName, got.Role)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "Tech" {
		t.Errorf("tags did not round-trip: %v", got.Tags)
	}
	if len(got.Files) != 1 || got.Files[0].Name != "resume.pdf" {
		t.Errorf("files did not round-trip: %v", got.Files)
	}

	got.Status = model.StatusInterviewing
	got.Notes = "phone screen scheduled"
	if err := s.UpdateApplication(ctx, got); err != nil {
		t.Fatalf("UpdateApplication: %v", err)
	}
	got, err = s.GetApplication(ctx, "owner-1", app.ID)
	if err != nil {
		t.Fatalf("GetApplication after update: %v", err)
	}
	if got.Status != model.StatusInterviewing || got.Notes != "phone screen scheduled" {
		t.Errorf("update not persisted: %q / %q", got.Status, got.Notes)
	}

	if err := s.DeleteApplication(ctx, "owner-1", app.ID); err != nil {
		t.Fatalf("DeleteApplication: %v", err)
	}
	if _, err := s.GetApplication(ctx, "owner-1", app.ID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("err after delete = %v, want ErrNotFound", err)
	}
	if err := s.DeleteApplication(ctx, "owner-1", app.ID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}

func TestListApplicationsNewestFirst(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, name := range []string{"First", "Second", "Third"} {
		app := &model.Application{
			OwnerID:     "owner-1",
			CompanyName: name,
			Role:        "Intern",
			Status:      model.StatusApplied,
			Location:    model.LocationRemote,
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		}
		if err := s.CreateApplication(ctx, app); err != nil {
			t.Fatalf("CreateApplication: %v", err)
		}
	}

	apps, err := s.ListApplications(ctx, "owner-1")
	if err != nil {
		t.Fatalf("ListApplications: %v", err)
	}
	want := []string{"Third", "Second", "First"}
	if len(apps) != len(want) {
		t.Fatalf("listed %d records, want %d", len(apps), len(want))
	}
	for i, name := range want {
		if apps[i].CompanyName != name {
			t.Errorf("apps[%d] = %q, want %q", i, apps[i].CompanyName, name)
		}
	}
}

func TestApplicationOwnerIsolation(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	mine := &model.Application{OwnerID: "owner-1", CompanyName: "Mine", Role: "Intern", Status: model.StatusApplied, Location: model.LocationRemote}
	theirs := &model.Application{OwnerID: "owner-2", CompanyName: "Theirs", Role: "Intern", Status: model.StatusApplied, Location: model.LocationRemote}
	for _, app := range []*model.Application{mine, theirs} {
		if err := s.CreateApplication(ctx, app); err != nil {
			t.Fatalf("CreateApplication: %v", err)
		}
	}

	apps, err := s.ListApplications(ctx, "owner-1")
	if err != nil {
		t.Fatalf("ListApplications: %v", err)
	}
	if len(apps) != 1 || apps[0].CompanyName != "Mine" {
		t.Errorf("owner-1 sees %v", apps)
	}

	if _, err := s.GetApplication(ctx, "owner-1", theirs.ID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("cross-owner get = %v, want ErrNotFound", err)
	}
	if err := s.DeleteApplication(ctx, "owner-1", theirs.ID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("cross-owner delete = %v, want ErrNotFound", err)
	}
	if err := s.UpdateApplicationTags(ctx, "owner-1", theirs.ID, nil); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("cross-owner tag update = %v, want ErrNotFound", err)
	}
}

func TestUpdateApplicationTagsTouchesOnlyTags(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	app := &model.Application{
		OwnerID:     "owner-1",
		CompanyName: "Acme",
		Role:        "Intern",
		Status:      model.StatusApplied,
		Location:    model.LocationRemote,
		Notes:       "keep me",
		Tags:        []string{"Tech", "Remote"},
	}
	if err := s.CreateApplication(ctx, app); err != nil {
		t.Fatalf("CreateApplication: %v", err)
	}

	if err := s.UpdateApplicationTags(ctx, "owner-1", app.ID, []string{"Remote"}); err != nil {
		t.Fatalf("UpdateApplicationTags: %v", err)
	}

	got, err := s.GetApplication(ctx, "owner-1", app.ID)
	if err != nil {
		t.Fatalf("GetApplication: %v", err)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "Remote" {
		t.Errorf("tags = %v, want [Remote]", got.Tags)
	}
	if got.Notes != "keep me" {
		t.Errorf("notes clobbered: %q", got.Notes)
	}

	if err := s.UpdateApplicationTags(ctx, "owner-1", 9999, nil); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("unknown id = %v, want ErrNotFound", err)
	}
}

func TestTagStore(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	for _, name := range []string{"Startup", "Dream Company", "Remote"} {
		tag := &model.Tag{OwnerID: "owner-1", Name: name, Color: "#3b82f6"}
		if err := s.CreateTag(ctx, tag); err != nil {
			t.Fatalf("CreateTag %q: %v", name, err)
		}
	}

	tags, err := s.ListTags(ctx, "owner-1")
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	want := []string{"Dream Company", "Remote", "Startup"}
	if len(tags) != len(want) {
		t.Fatalf("listed %d tags, want %d", len(tags), len(want))
	}
	for i, name := range want {
		if tags[i].Name != name {
			t.Errorf("tags[%d] = %q, want %q", i, tags[i].Name, name)
		}
	}

	if err := s.DeleteTag(ctx, "owner-1", "Remote"); err != nil {
		t.Fatalf("DeleteTag: %v", err)
	}
	tags, _ = s.ListTags(ctx, "owner-1")
	if len(tags) != 2 {
		t.Errorf("%d tags after delete, want 2", len(tags))
	}

	if err := s.DeleteTag(ctx, "owner-1", "Remote"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("deleting a missing tag = %v, want ErrNotFound", err)
	}
	if err := s.DeleteTag(ctx, "owner-2", "Startup"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("cross-owner tag delete = %v, want ErrNotFound", err)
	}
}

func TestPreferenceDefaultsAndUpsert(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	pref, err := s.GetPreference(ctx, "owner-1")
	if err != nil {
		t.Fatalf("GetPreference: %v", err)
	}
	if pref.PageSize != model.DefaultPageSize || pref.DefaultView != model.ViewCard {
		t.Errorf("defaults = %d / %q", pref.PageSize, pref.DefaultView)
	}

	if err := s.SavePreference(ctx, &model.Preference{OwnerID: "owner-1", PageSize: 20, DefaultView: model.ViewTable}); err != nil {
		t.Fatalf("SavePreference: %v", err)
	}
	pref, err = s.GetPreference(ctx, "owner-1")
	if err != nil {
		t.Fatalf("GetPreference: %v", err)
	}
	if pref.PageSize != 20 || pref.DefaultView != model.ViewTable {
		t.Errorf("stored = %d / %q", pref.PageSize, pref.DefaultView)
	}

	// second save updates in place instead of inserting a duplicate
	if err := s.SavePreference(ctx, &model.Preference{OwnerID: "owner-1", PageSize: 50, DefaultView: model.ViewCard}); err != nil {
		t.Fatalf("SavePreference upsert: %v", err)
	}
	pref, _ = s.GetPreference(ctx, "owner-1")
	if pref.PageSize != 50 || pref.DefaultView != model.ViewCard {
		t.Errorf("upserted = %d / %q", pref.PageSize, pref.DefaultView)
	}

	var count int64
	s.db.Model(&model.Preference{}).Where("owner_id = ?", "owner-1").Count(&count)
	if count != 1 {
		t.Errorf("%d preference rows, want 1", count)
	}
}
