package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/krizhnx/internyx/internal/model"
	"github.com/krizhnx/internyx/pkg/logger"
	"github.com/krizhnx/internyx/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// signedURLTTL matches the original one-hour expiry of refreshed links
const signedURLTTL = time.Hour

// UploadAttachment stores a multipart file and appends its reference to the
// record; the record keeps only the returned reference
func (h *Handler) UploadAttachment(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordAttachmentOperation("upload")

	s, err := h.session(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Error("Missing file in upload request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
	}
	if fileHeader.Size > h.files.MaxSize() {
		log.Warn("File exceeds size limit",
			zap.String("name", fileHeader.Filename),
			zap.Int64("size", fileHeader.Size))
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "file exceeds the size limit"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to read upload"})
	}
	defer src.Close()

	obj, err := h.files.Save(fileHeader.Filename, src)
	if err != nil {
		log.Error("Failed to store file",
			zap.String("name", fileHeader.Filename),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to store file"})
	}

	att := model.Attachment{
		Name: fileHeader.Filename,
		Size: fileHeader.Size,
		Type: fileHeader.Header.Get("Content-Type"),
		URL:  obj.URL,
		Path: obj.Path,
	}
	app, err := s.AddAttachment(c.Request().Context(), id, att)
	if err != nil {
		// the record update failed; do not leave the object orphaned
		if rmErr := h.files.Remove(obj.Path); rmErr != nil {
			log.Warn("Failed to clean up stored file", zap.String("path", obj.Path), zap.Error(rmErr))
		}
		return respondError(c, log, err)
	}

	log.Info("Attachment uploaded",
		zap.Uint("id", app.ID),
		zap.String("name", att.Name),
		zap.String("path", att.Path))
	return c.JSON(http.StatusOK, app)
}

// DeleteAttachment removes the file reference from the record and deletes
// the stored object
func (h *Handler) DeleteAttachment(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordAttachmentOperation("delete")

	s, err := h.session(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	path := c.Param("path")

	removed, err := s.RemoveAttachment(c.Request().Context(), id, path)
	if err != nil {
		return respondError(c, log, err)
	}

	if err := h.files.Remove(removed.Path); err != nil {
		log.Warn("Failed to remove stored file",
			zap.String("path", removed.Path),
			zap.Error(err))
	}

	log.Info("Attachment deleted",
		zap.Uint("id", id),
		zap.String("path", removed.Path))
	return c.JSON(http.StatusOK, echo.Map{"message": "attachment deleted"})
}

// RefreshAttachmentURL returns a fresh signed URL for a stored object, used
// when a previously issued link has expired
func (h *Handler) RefreshAttachmentURL(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordAttachmentOperation("refresh_url")

	path := c.QueryParam("path")
	if path == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "path is required"})
	}

	url, err := h.files.SignedURL(path, signedURLTTL)
	if err != nil {
		log.Error("Failed to sign URL", zap.String("path", path), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid path"})
	}

	return c.JSON(http.StatusOK, echo.Map{"url": url})
}

// DownloadFile serves a stored object after verifying the URL signature and
// expiry. This route sits outside the authenticated group; the signature is
// the access control.
func (h *Handler) DownloadFile(c echo.Context) error {
	log := logger.FromContext(c)

	name := c.Param("name")
	exp, err := strconv.ParseInt(c.QueryParam("exp"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid expiry"})
	}
	sig := c.QueryParam("sig")

	if !h.files.Verify(name, exp, sig) {
		log.Warn("Rejected file download",
			zap.String("name", name),
			zap.Int64("exp", exp))
		return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid or expired link"})
	}

	f, err := h.files.Open(name)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "file not found"})
	}
	defer f.Close()

	http.ServeContent(c.Response(), c.Request(), name, time.Time{}, f)
	return nil
}
