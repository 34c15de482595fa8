package handler

import (
	"net/http"
	"testing"

	"github.com/krizhnx/internyx/internal/engine"
	"github.com/krizhnx/internyx/internal/model"
)

func TestPreferencesDefaultsAndUpdate(t *testing.T) {
	rig := newTestRig(t, 1<<20)

	rec := rig.do(t, rig.h.GetPreferences, http.MethodGet, "/api/preferences", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var pref model.Preference
	decode(t, rec, &pref)
	if pref.PageSize != model.DefaultPageSize || pref.DefaultView != model.ViewCard {
		t.Errorf("defaults = %d / %q", pref.PageSize, pref.DefaultView)
	}

	rec = rig.do(t, rig.h.UpdatePreferences, http.MethodPut, "/api/preferences",
		`{"page_size":20,"default_view":"table"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update = %d: %s", rec.Code, rec.Body.String())
	}
	decode(t, rec, &pref)
	if pref.PageSize != 20 || pref.DefaultView != model.ViewTable {
		t.Errorf("updated = %d / %q", pref.PageSize, pref.DefaultView)
	}

	rec = rig.do(t, rig.h.GetPreferences, http.MethodGet, "/api/preferences", "")
	decode(t, rec, &pref)
	if pref.PageSize != 20 || pref.DefaultView != model.ViewTable {
		t.Errorf("reload = %d / %q", pref.PageSize, pref.DefaultView)
	}
}

func TestPreferencesValidation(t *testing.T) {
	rig := newTestRig(t, 1<<20)

	rec := rig.do(t, rig.h.UpdatePreferences, http.MethodPut, "/api/preferences",
		`{"page_size":7,"default_view":"card"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("page size 7 = %d, want 400", rec.Code)
	}

	rec = rig.do(t, rig.h.UpdatePreferences, http.MethodPut, "/api/preferences",
		`{"page_size":10,"default_view":"kanban"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown view = %d, want 400", rec.Code)
	}
}

func TestPreferenceDrivesListPageSize(t *testing.T) {
	rig := newTestRig(t, 1<<20)

	rec := rig.do(t, rig.h.UpdatePreferences, http.MethodPut, "/api/preferences",
		`{"page_size":5,"default_view":"card"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update = %d: %s", rec.Code, rec.Body.String())
	}

	for i := 0; i < 7; i++ {
		createApplication(t, rig, `{"company_name":"Acme","role":"Intern"}`)
	}
	rec = rig.do(t, rig.h.ListApplications, http.MethodGet, "/api/applications", "")
	var view engine.View
	decode(t, rec, &view)
	if view.PageSize != 5 || view.TotalPages != 2 || len(view.Applications) != 5 {
		t.Errorf("view = size %d pages %d len %d, want 5/2/5", view.PageSize, view.TotalPages, len(view.Applications))
	}
	if view.DefaultView != model.ViewCard {
		t.Errorf("default view = %q", view.DefaultView)
	}
}
