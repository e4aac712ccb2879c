package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/anonto42/faithconnect/backend/internal/apperr"
	"github.com/anonto42/faithconnect/backend/internal/middleware"
	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/labstack/echo/v4"
)

func currentUser(c echo.Context) (*models.User, error) {
	u := middleware.CurrentUser(c)
	if u == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return u, nil
}

func parseID(c echo.Context, name, label string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+label+" ID")
	}
	return uint(id), nil
}

// bind decodes and validates the request body into req.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
	}
	return c.Validate(req)
}

// httpError maps a service error onto an echo.HTTPError. Internal errors
// never leak their message.
func httpError(err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Kind != apperr.KindInternal {
		return echo.NewHTTPError(ae.Kind.HTTPStatus(), ae.Message)
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
}

func ok(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

func pageMeta(page, perPage int, total int64) echo.Map {
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	return echo.Map{
		"currentPage":     page,
		"totalPages":      totalPages,
		"totalItems":      total,
		"itemsPerPage":    perPage,
		"hasNextPage":     page < totalPages,
		"hasPreviousPage": page > 1,
	}
}

func queryInt(c echo.Context, name string, def int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return def
	}
	return v
}

func queryBool(c echo.Context, name string, def bool) bool {
	v, err := strconv.ParseBool(c.QueryParam(name))
	if err != nil {
		return def
	}
	return v
}
