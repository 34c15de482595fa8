package handler

import (
	"net/http"
	"testing"

	"github.com/krizhnx/internyx/internal/engine"
	"github.com/krizhnx/internyx/internal/model"
)

func TestListTagsSeedsStarterSet(t *testing.T) {
	rig := newTestRig(t, 1<<20)

	rec := rig.do(t, rig.h.ListTags, http.MethodGet, "/api/tags", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var tags []model.Tag
	decode(t, rec, &tags)
	if len(tags) != len(model.PredefinedTags) {
		t.Errorf("seeded %d tags, want %d", len(tags), len(model.PredefinedTags))
	}
}

func TestCreateTag(t *testing.T) {
	rig := newTestRig(t, 1<<20)

	rec := rig.do(t, rig.h.CreateTag, http.MethodPost, "/api/tags",
		`{"name":"Fintech","color":"#10b981"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var tag model.Tag
	decode(t, rec, &tag)
	if tag.Name != "Fintech" || tag.Color != "#10b981" {
		t.Errorf("tag = %q / %q", tag.Name, tag.Color)
	}

	// duplicate differs only by case
	rec = rig.do(t, rig.h.CreateTag, http.MethodPost, "/api/tags",
		`{"name":"fintech","color":"#000000"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate = %d, want 409", rec.Code)
	}

	rec = rig.do(t, rig.h.CreateTag, http.MethodPost, "/api/tags", `{"name":"  "}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("blank name = %d, want 400", rec.Code)
	}
}

func TestDeleteTagCascadesThroughRecords(t *testing.T) {
	rig := newTestRig(t, 1<<20)

	createApplication(t, rig, `{"company_name":"Acme","role":"Intern","tags":["Fintech","Keep"]}`)
	createApplication(t, rig, `{"company_name":"Globex","role":"Intern","tags":["Keep"]}`)
	rec := rig.do(t, rig.h.CreateTag, http.MethodPost, "/api/tags",
		`{"name":"Fintech","color":"#10b981"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create tag = %d", rec.Code)
	}

	rec = rig.do(t, rig.h.DeleteTag, http.MethodDelete, "/api/tags/Fintech", "",
		"name", "Fintech")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete = %d: %s", rec.Code, rec.Body.String())
	}

	rec = rig.do(t, rig.h.ListApplications, http.MethodGet, "/api/applications", "")
	var view engine.View
	decode(t, rec, &view)
	for _, app := range view.Applications {
		for _, tag := range app.Tags {
			if tag == "Fintech" {
				t.Errorf("record %d still tagged after cascade", app.ID)
			}
		}
		if !app.HasTag("Keep") && app.CompanyName == "Acme" {
			t.Error("unrelated tag lost in cascade")
		}
	}
}

func TestDeleteTagMissing(t *testing.T) {
	rig := newTestRig(t, 1<<20)

	rec := rig.do(t, rig.h.DeleteTag, http.MethodDelete, "/api/tags/Nope", "",
		"name", "Nope")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
