package handler

import (
	"net/http"
	"time"

	"github.com/krizhnx/internyx/pkg/logger"
	"github.com/krizhnx/internyx/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// PreferenceRequest defines the structure for preference update requests
type PreferenceRequest struct {
	PageSize    int    `json:"page_size"`
	DefaultView string `json:"default_view"`
}

// GetPreferences returns the owner's persisted UI preferences
func (h *Handler) GetPreferences(c echo.Context) error {
	log := logger.FromContext(c)

	s, err := h.session(c)
	if err != nil {
		return err
	}

	pref, err := s.Preferences(c.Request().Context())
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, pref)
}

// UpdatePreferences persists the page size and default view; the session
// picks the change up immediately
func (h *Handler) UpdatePreferences(c echo.Context) error {
	log := logger.FromContext(c)

	s, err := h.session(c)
	if err != nil {
		return err
	}

	var req PreferenceRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	pref, err := s.SetPreferences(c.Request().Context(), req.PageSize, req.DefaultView)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Preferences updated",
		zap.Int("page_size", pref.PageSize),
		zap.String("default_view", pref.DefaultView))
	return c.JSON(http.StatusOK, pref)
}
