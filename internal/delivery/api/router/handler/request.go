package handler

import (
	"strings"
	"time"

	domainerrors "courierhub/internal/domain/errors"
	"courierhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// bindAndValidate decodes the request body into req and runs its validation rules.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrInvalidInput.WithDetails("malformed request body")
	}

	return c.Validate(req)
}

// pathID parses the named path parameter as a UUID.
func pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrInvalidInput.WithDetails("invalid " + name)
	}

	return id, nil
}

// pageQuery reads the page and limit query parameters. Normalization is left to the use case.
func pageQuery(c echo.Context) (usecase.PageRequest, error) {
	var page usecase.PageRequest
	err := echo.QueryParamsBinder(c).
		Int("page", &page.Page).
		Int("limit", &page.Limit).
		BindError()
	if err != nil {
		return page, domainerrors.ErrInvalidInput.WithDetails("page and limit must be integers")
	}

	return page, nil
}

// dateQuery parses an optional RFC 3339 or YYYY-MM-DD query parameter.
// Date-only upper bounds cover the whole day.
func dateQuery(c echo.Context, name string, endOfDay bool) (*time.Time, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}

	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, domainerrors.ErrInvalidInput.WithDetails(name + " must be a date")
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}

	return &t, nil
}
