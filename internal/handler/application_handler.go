package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/krizhnx/internyx/internal/engine"
	"github.com/krizhnx/internyx/internal/model"
	"github.com/krizhnx/internyx/pkg/logger"
	"github.com/krizhnx/internyx/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ApplicationRequest defines the structure for record creation/update requests
type ApplicationRequest struct {
	CompanyName   string   `json:"company_name"`
	Role          string   `json:"role"`
	Location      string   `json:"location"`
	LocationPlace string   `json:"location_place"`
	Status        string   `json:"status"`
	AppliedDate   string   `json:"applied_date"`
	Deadline      string   `json:"deadline"`
	Salary        string   `json:"salary"`
	Notes         string   `json:"notes"`
	SavedNotes    string   `json:"saved_notes"`
	Priority      string   `json:"priority"`
	Tags          []string `json:"tags"`
}

func (r *ApplicationRequest) toModel() *model.Application {
	return &model.Application{
		CompanyName:   strings.TrimSpace(r.CompanyName),
		Role:          strings.TrimSpace(r.Role),
		Location:      r.Location,
		LocationPlace: r.LocationPlace,
		Status:        r.Status,
		AppliedDate:   r.AppliedDate,
		Deadline:      r.Deadline,
		Salary:        r.Salary,
		Notes:         r.Notes,
		SavedNotes:    r.SavedNotes,
		Priority:      r.Priority,
		Tags:          r.Tags,
	}
}

// ListApplications handles the filtered, paginated list view
func (h *Handler) ListApplications(c echo.Context) error {
	log := logger.FromContext(c)

	s, err := h.session(c)
	if err != nil {
		return err
	}

	params := engine.QueryParams{
		Search:   c.QueryParam("search"),
		Status:   c.QueryParam("status"),
		Location: c.QueryParam("location"),
		Tab:      c.QueryParam("tab"),
	}
	if tags := c.QueryParam("tags"); tags != "" {
		params.Tags = strings.Split(tags, ",")
	}
	if page, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		params.Page = page
	}
	if size, err := strconv.Atoi(c.QueryParam("page_size")); err == nil {
		params.PageSize = size
	}

	view, err := s.Query(c.Request().Context(), params)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Applications listed",
		zap.Int("total", view.Total),
		zap.Int("filtered", view.Filtered),
		zap.Int("page", view.Page))
	return c.JSON(http.StatusOK, view)
}

// CreateApplication handles creating a new record, typically already applied
func (h *Handler) CreateApplication(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordApplicationOperation("create")

	s, err := h.session(c)
	if err != nil {
		return err
	}

	var req ApplicationRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	app := req.toModel()
	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := s.Create(c.Request().Context(), app); err != nil {
		return respondError(c, log, err)
	}

	log.Info("Application created",
		zap.Uint("id", app.ID),
		zap.String("company", app.CompanyName),
		zap.String("status", app.Status))
	return c.JSON(http.StatusCreated, app)
}

// CreateSavedApplication handles the save-for-later action
func (h *Handler) CreateSavedApplication(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordApplicationOperation("create_saved")

	s, err := h.session(c)
	if err != nil {
		return err
	}

	var req ApplicationRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	app := req.toModel()
	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := s.CreateSaved(c.Request().Context(), app); err != nil {
		return respondError(c, log, err)
	}

	log.Info("Application saved for later",
		zap.Uint("id", app.ID),
		zap.String("company", app.CompanyName),
		zap.String("priority", app.Priority))
	return c.JSON(http.StatusCreated, app)
}

// UpdateApplication handles editing an existing record
func (h *Handler) UpdateApplication(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordApplicationOperation("update")

	s, err := h.session(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req ApplicationRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	app, err := s.Update(c.Request().Context(), id, req.toModel())
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Application updated",
		zap.Uint("id", app.ID),
		zap.String("company", app.CompanyName))
	return c.JSON(http.StatusOK, app)
}

// UpdateApplicationStatus handles the manual status override
func (h *Handler) UpdateApplicationStatus(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordApplicationOperation("update_status")

	s, err := h.session(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	app, err := s.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Application status updated",
		zap.Uint("id", app.ID),
		zap.String("status", app.Status))
	return c.JSON(http.StatusOK, app)
}

// MarkApplied promotes a saved record to applied with today's date
func (h *Handler) MarkApplied(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordApplicationOperation("mark_applied")

	s, err := h.session(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	app, err := s.MarkApplied(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Application marked as applied",
		zap.Uint("id", app.ID),
		zap.String("applied_date", app.AppliedDate))
	return c.JSON(http.StatusOK, app)
}

// DeleteApplication handles deleting a record
func (h *Handler) DeleteApplication(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordApplicationOperation("delete")

	s, err := h.session(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := s.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, log, err)
	}

	log.Info("Application deleted", zap.Uint("id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "application deleted"})
}

// ReorderApplications applies a drag completion to the session-local
// ordering. The order is not persisted; a refetch restores creation order.
func (h *Handler) ReorderApplications(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordApplicationOperation("reorder")

	s, err := h.session(c)
	if err != nil {
		return err
	}

	var req struct {
		From int `json:"from"`
		To   int `json:"to"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if err := s.Reorder(c.Request().Context(), req.From, req.To); err != nil {
		return respondError(c, log, err)
	}

	log.Info("Applications reordered",
		zap.Int("from", req.From),
		zap.Int("to", req.To))
	return c.JSON(http.StatusOK, echo.Map{"message": "order updated"})
}

// ApplicationStats returns the dashboard overview numbers
func (h *Handler) ApplicationStats(c echo.Context) error {
	log := logger.FromContext(c)

	s, err := h.session(c)
	if err != nil {
		return err
	}

	stats, err := s.Stats(c.Request().Context())
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}
