package handlers

import (
	"net/http"

	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/anonto42/faithconnect/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// MediaHandler accepts multipart uploads in the "file" field.
type MediaHandler struct {
	mediaService *services.MediaService
}

func NewMediaHandler(mediaService *services.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

func (h *MediaHandler) RegisterMediaRoutes(g *echo.Group) {
	g.POST("/media/upload/image", h.upload(models.MediaImage))
	g.POST("/media/upload/video", h.upload(models.MediaVideo))
}

func (h *MediaHandler) upload(kind string) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := currentUser(c); err != nil {
			return err
		}
		fh, err := c.FormFile("file")
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "file is required").SetInternal(err)
		}
		src, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "could not read upload").SetInternal(err)
		}
		defer src.Close()

		resp, err := h.mediaService.Upload(c.Request().Context(), kind, fh.Filename, src)
		if err != nil {
			return httpError(err)
		}
		return ok(c, http.StatusOK, resp)
	}
}
