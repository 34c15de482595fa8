package handler

import (
	"errors"
	"net/http"

	"github.com/krizhnx/internyx/internal/engine"
	"github.com/krizhnx/internyx/internal/middleware"
	"github.com/krizhnx/internyx/internal/model"
	"github.com/krizhnx/internyx/internal/storage"
	"github.com/krizhnx/internyx/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// storeSetupGuidance is shown when the backing relations are missing; the
// user is sent to provisioning instead of a retry loop
const storeSetupGuidance = "The database tables have not been provisioned yet. " +
	"Run the service once with database credentials that allow migrations, " +
	"or apply the schema manually, then retry."

// Handler serves the HTTP surface over the state engine and the object store
type Handler struct {
	reg   *engine.Registry
	files *storage.Local
}

// New creates a handler over the session registry and the object store
func New(reg *engine.Registry, files *storage.Local) *Handler {
	return &Handler{reg: reg, files: files}
}

// session resolves the authenticated owner's session
func (h *Handler) session(c echo.Context) (*engine.Session, error) {
	ownerID, ok := middleware.OwnerIDFromContext(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return h.reg.Session(ownerID), nil
}

// respondError converts engine errors into HTTP responses. Validation errors
// stay inline; gateway failures become short notifications; a missing store
// redirects to the setup flow; a partial cascade reports exactly what was
// updated.
func respondError(c echo.Context, log *zap.Logger, err error) error {
	var vErr *model.ValidationError
	var cErr *model.CascadeError

	switch {
	case errors.As(err, &vErr):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": vErr.Message,
			"field": vErr.Field,
		})

	case errors.Is(err, model.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})

	case errors.Is(err, model.ErrDuplicateTag):
		return c.JSON(http.StatusConflict, echo.Map{"error": "tag already exists"})

	case errors.Is(err, model.ErrNotSaved):
		return c.JSON(http.StatusConflict, echo.Map{"error": "application is not in saved state"})

	case errors.As(err, &cErr):
		prometheus.CascadeFailuresCounter.Inc()
		log.Error("Tag deletion cascade stopped partway",
			zap.String("tag", cErr.Tag),
			zap.Uints("updated", cErr.Updated),
			zap.Int("remaining", cErr.Remaining),
			zap.Error(cErr.Err))
		return c.JSON(http.StatusConflict, echo.Map{
			"error":     "tag deletion stopped partway; the tag was kept and the deletion can be retried",
			"tag":       cErr.Tag,
			"updated":   cErr.Updated,
			"remaining": cErr.Remaining,
		})

	case errors.Is(err, model.ErrStoreUnavailable):
		log.Error("Backing store not provisioned", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"error": "backing store is not provisioned",
			"setup": storeSetupGuidance,
		})

	default:
		log.Error("Request failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
