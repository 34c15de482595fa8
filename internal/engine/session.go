package engine

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/krizhnx/internyx/internal/model"
	"github.com/krizhnx/internyx/internal/store"
)

// QueryParams carries the complete filter and pagination state of one list
// request. Page and PageSize of 0 keep the session's current values.
type QueryParams struct {
	Search   string
	Status   string
	Location string
	Tab      string
	Tags     []string
	Page     int
	PageSize int
}

// ApplicationView is a record decorated with its deadline classification
type ApplicationView struct {
	model.Application
	DeadlineStatus DeadlineStatus `json:"deadline_status"`
}

// View is the filtered, paginated slice of the owner's collection plus the
// navigation state needed to render it
type View struct {
	Applications []ApplicationView `json:"applications"`
	Total        int               `json:"total"`
	Saved        int               `json:"saved"`
	Filtered     int               `json:"filtered"`
	Page         int               `json:"page"`
	PageSize     int               `json:"page_size"`
	TotalPages   int               `json:"total_pages"`
	Pages        []string          `json:"pages"`
	DefaultView  string            `json:"default_view"`
}

// Session holds one owner's loaded record collection and its view state:
// filter axes, pagination and the session-local manual ordering. Access is
// serialized by a mutex, the counterpart of the single UI event loop the
// state machine was designed for. All persistent reads and writes go through
// the gateway; every successful mutation refetches the authoritative
// collection, discarding any unpersisted ordering.
type Session struct {
	mu sync.Mutex

	ownerID string
	gw      store.Gateway
	now     func() time.Time

	loaded bool
	apps   []model.Application

	filter      Filter
	page        int
	pageSize    int
	defaultView string
	prefLoaded  bool
}

// NewSession creates a session for one owner over the gateway
func NewSession(ownerID string, gw store.Gateway) *Session {
	return &Session{
		ownerID:     ownerID,
		gw:          gw,
		now:         time.Now,
		filter:      NewFilter(),
		page:        1,
		pageSize:    model.DefaultPageSize,
		defaultView: model.ViewCard,
	}
}

// refetch reloads the whole collection from the gateway. The store returns
// records in created-at order, so any manual reordering is discarded here.
func (s *Session) refetch(ctx context.Context) error {
	apps, err := s.gw.ListApplications(ctx, s.ownerID)
	if err != nil {
		s.loaded = false
		return err
	}
	s.apps = apps
	s.loaded = true
	return nil
}

func (s *Session) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	return s.refetch(ctx)
}

// refetchAfterWrite reloads after a successful mutation. A failed reload
// marks the session stale for the next read instead of failing the write.
func (s *Session) refetchAfterWrite(ctx context.Context) {
	if err := s.refetch(ctx); err != nil {
		s.loaded = false
	}
}

func (s *Session) loadPreferences(ctx context.Context) {
	if s.prefLoaded {
		return
	}
	pref, err := s.gw.GetPreference(ctx, s.ownerID)
	if err != nil {
		return
	}
	if model.ValidPageSize(pref.PageSize) {
		s.pageSize = pref.PageSize
	}
	if pref.DefaultView != "" {
		s.defaultView = pref.DefaultView
	}
	s.prefLoaded = true
}

// Query applies the requested filter and pagination state and returns the
// resulting view. Changing any filter axis resets to page 1; changing the
// page size also persists the new preference.
func (s *Session) Query(ctx context.Context, p QueryParams) (*View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadPreferences(ctx)
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	next := Filter{
		Search:   strings.TrimSpace(p.Search),
		Status:   orAll(p.Status),
		Location: orAll(p.Location),
		Tab:      orAll(p.Tab),
		Tags:     p.Tags,
	}
	if !next.Equal(s.filter) {
		s.filter = next
		s.page = 1
	} else if p.Page > 0 {
		s.page = p.Page
	}

	if p.PageSize > 0 && p.PageSize != s.pageSize && model.ValidPageSize(p.PageSize) {
		s.pageSize = p.PageSize
		s.page = 1
		s.persistPreferences(ctx)
	}

	return s.view(), nil
}

// CurrentView returns the view for the session's present state without
// applying any transitions
func (s *Session) CurrentView(ctx context.Context) (*View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadPreferences(ctx)
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return s.view(), nil
}

// view computes the filtered, paginated slice; callers hold the lock
func (s *Session) view() *View {
	filtered := s.filter.Apply(s.apps)
	pg := Paginate(len(filtered), s.page, s.pageSize)
	s.page = pg.Number

	now := s.now()
	views := make([]ApplicationView, 0, pg.End-pg.Start)
	for _, app := range filtered[pg.Start:pg.End] {
		views = append(views, ApplicationView{
			Application:    app,
			DeadlineStatus: ClassifyDeadline(app.Deadline, now),
		})
	}

	saved := 0
	for i := range s.apps {
		if s.apps[i].Status == model.StatusSaved {
			saved++
		}
	}

	return &View{
		Applications: views,
		Total:        len(s.apps),
		Saved:        saved,
		Filtered:     len(filtered),
		Page:         pg.Number,
		PageSize:     pg.Size,
		TotalPages:   pg.TotalPages,
		Pages:        PageNumbers(pg.Number, pg.TotalPages),
		DefaultView:  s.defaultView,
	}
}

// Create validates and persists a new record, then refetches. The status is
// caller-supplied; an empty one defaults to applied.
func (s *Session) Create(ctx context.Context, app *model.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	app.OwnerID = s.ownerID
	if app.Status == "" {
		app.Status = model.StatusApplied
	}
	if app.Location == "" {
		app.Location = model.LocationRemote
	}
	if err := app.Validate(); err != nil {
		return err
	}

	if err := s.gw.CreateApplication(ctx, app); err != nil {
		return err
	}
	s.refetchAfterWrite(ctx)
	return nil
}

// CreateSaved persists a record in the saved holding state, stamping the
// saved date and keeping priority and saved notes
func (s *Session) CreateSaved(ctx context.Context, app *model.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	app.OwnerID = s.ownerID
	app.Status = model.StatusSaved
	now := s.now()
	app.SavedDate = &now
	if app.Priority == "" {
		app.Priority = model.PriorityMedium
	}
	if app.Location == "" {
		app.Location = model.LocationRemote
	}
	if err := app.Validate(); err != nil {
		return err
	}

	if err := s.gw.CreateApplication(ctx, app); err != nil {
		return err
	}
	s.refetchAfterWrite(ctx)
	return nil
}

// Update overwrites the editable fields of one record and refetches
func (s *Session) Update(ctx context.Context, id uint, fields *model.Application) (*model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, err := s.gw.GetApplication(ctx, s.ownerID, id)
	if err != nil {
		return nil, err
	}

	app.CompanyName = fields.CompanyName
	app.Role = fields.Role
	app.Location = fields.Location
	app.LocationPlace = fields.LocationPlace
	if fields.Status != "" {
		app.Status = fields.Status
	}
	app.AppliedDate = fields.AppliedDate
	app.Deadline = fields.Deadline
	app.Salary = fields.Salary
	app.Notes = fields.Notes
	app.SavedNotes = fields.SavedNotes
	app.Priority = fields.Priority
	app.Tags = fields.Tags
	if err := app.Validate(); err != nil {
		return nil, err
	}

	if err := s.gw.UpdateApplication(ctx, app); err != nil {
		return nil, err
	}
	s.refetchAfterWrite(ctx)
	return app, nil
}

// UpdateStatus sets the status directly. The saved -> applied -> interviewing
// -> offer/rejected lifecycle is a convention, not an invariant: the manual
// override is deliberately unconstrained beyond enum validity.
func (s *Session) UpdateStatus(ctx context.Context, id uint, status string) (*model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !model.ValidStatus(status) {
		return nil, &model.ValidationError{Field: "status", Message: "unknown status"}
	}

	app, err := s.gw.GetApplication(ctx, s.ownerID, id)
	if err != nil {
		return nil, err
	}
	app.Status = status

	if err := s.gw.UpdateApplication(ctx, app); err != nil {
		return nil, err
	}
	s.refetchAfterWrite(ctx)
	return app, nil
}

// MarkApplied promotes a saved record to applied, stamping today's calendar
// date as the applied date. Any other starting state is rejected.
func (s *Session) MarkApplied(ctx context.Context, id uint) (*model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, err := s.gw.GetApplication(ctx, s.ownerID, id)
	if err != nil {
		return nil, err
	}
	if app.Status != model.StatusSaved {
		return nil, model.ErrNotSaved
	}

	app.Status = model.StatusApplied
	app.AppliedDate = s.now().Format("2006-01-02")

	if err := s.gw.UpdateApplication(ctx, app); err != nil {
		return nil, err
	}
	s.refetchAfterWrite(ctx)
	return app, nil
}

// Delete removes one record and refetches
func (s *Session) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gw.DeleteApplication(ctx, s.ownerID, id); err != nil {
		return err
	}
	s.refetchAfterWrite(ctx)
	return nil
}

// Reorder applies a drag completion to the session-local ordering: the record
// at from is moved to to. The ordering is not persisted; the next refetch
// restores creation-date order.
func (s *Session) Reorder(ctx context.Context, from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	s.apps = Move(s.apps, from, to)
	return nil
}

// AddAttachment appends an uploaded file reference to the record
func (s *Session) AddAttachment(ctx context.Context, id uint, att model.Attachment) (*model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, err := s.gw.GetApplication(ctx, s.ownerID, id)
	if err != nil {
		return nil, err
	}
	app.Files = append(app.Files, att)

	if err := s.gw.UpdateApplication(ctx, app); err != nil {
		return nil, err
	}
	s.refetchAfterWrite(ctx)
	return app, nil
}

// RemoveAttachment drops the file reference with the given storage path from
// the record and returns it so the caller can delete the stored object
func (s *Session) RemoveAttachment(ctx context.Context, id uint, path string) (*model.Attachment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, err := s.gw.GetApplication(ctx, s.ownerID, id)
	if err != nil {
		return nil, err
	}

	var removed *model.Attachment
	files := app.Files[:0]
	for _, f := range app.Files {
		if f.Path == path && removed == nil {
			att := f
			removed = &att
			continue
		}
		files = append(files, f)
	}
	if removed == nil {
		return nil, model.ErrNotFound
	}
	app.Files = files

	if err := s.gw.UpdateApplication(ctx, app); err != nil {
		return nil, err
	}
	s.refetchAfterWrite(ctx)
	return removed, nil
}

// Preferences returns the owner's persisted UI preferences
func (s *Session) Preferences(ctx context.Context) (*model.Preference, error) {
	return s.gw.GetPreference(ctx, s.ownerID)
}

// SetPreferences validates and persists the page size and default view, then
// applies them to the session state. A page-size change resets to page 1.
func (s *Session) SetPreferences(ctx context.Context, pageSize int, defaultView string) (*model.Preference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !model.ValidPageSize(pageSize) {
		return nil, &model.ValidationError{Field: "page_size", Message: "must be one of 5, 10, 20, 50"}
	}
	if defaultView != model.ViewCard && defaultView != model.ViewTable {
		return nil, &model.ValidationError{Field: "default_view", Message: "must be card or table"}
	}

	pref := &model.Preference{
		OwnerID:     s.ownerID,
		PageSize:    pageSize,
		DefaultView: defaultView,
	}
	if err := s.gw.SavePreference(ctx, pref); err != nil {
		return nil, err
	}

	if pageSize != s.pageSize {
		s.pageSize = pageSize
		s.page = 1
	}
	s.defaultView = defaultView
	s.prefLoaded = true
	return pref, nil
}

func (s *Session) persistPreferences(ctx context.Context) {
	pref := &model.Preference{
		OwnerID:     s.ownerID,
		PageSize:    s.pageSize,
		DefaultView: s.defaultView,
	}
	// best-effort
	_ = s.gw.SavePreference(ctx, pref)
}

func orAll(v string) string {
	if v == "" {
		return FilterAll
	}
	return v
}
