package handler

import (
	"net/http"
	"time"

	"github.com/krizhnx/internyx/pkg/logger"
	"github.com/krizhnx/internyx/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TagRequest defines the structure for tag creation requests
type TagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ListTags returns the owner's tags ordered by name, seeding the starter set
// for a first-time owner
func (h *Handler) ListTags(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTagOperation("list")

	s, err := h.session(c)
	if err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("select")(time.Now())
	tags, err := s.ListTags(c.Request().Context())
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Tags listed", zap.Int("count", len(tags)))
	return c.JSON(http.StatusOK, tags)
}

// CreateTag handles creating a new tag with case-insensitive dedup
func (h *Handler) CreateTag(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTagOperation("create")

	s, err := h.session(c)
	if err != nil {
		return err
	}

	var req TagRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	tag, err := s.CreateTag(c.Request().Context(), req.Name, req.Color)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Tag created",
		zap.String("name", tag.Name),
		zap.String("color", tag.Color))
	return c.JSON(http.StatusCreated, tag)
}

// DeleteTag handles the cascading tag deletion: every referencing record is
// updated before the tag itself is removed
func (h *Handler) DeleteTag(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTagOperation("delete")

	s, err := h.session(c)
	if err != nil {
		return err
	}

	name := c.Param("name")
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tag name is required"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := s.DeleteTag(c.Request().Context(), name); err != nil {
		return respondError(c, log, err)
	}

	log.Info("Tag deleted", zap.String("name", name))
	return c.JSON(http.StatusOK, echo.Map{"message": "tag deleted"})
}
