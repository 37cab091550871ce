// Package handler translates HTTP requests into workflow calls and workflow
// results into the uniform response envelope.
package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"catalog/internal/errors"
)

// PrincipalKey is the context key under which the access gate stores the
// authenticated user.
const PrincipalKey = "principal"

// parseID validates the id path segment before any store lookup. Anything
// but a digit string is rejected as a bad request, distinct from not found.
func parseID(c echo.Context) (uint, error) {
	raw := c.Param("id")
	if raw == "" {
		return 0, errors.ErrInvalidID
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, errors.ErrInvalidID
		}
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.ErrInvalidID
	}
	return uint(id), nil
}

// respondError classifies a workflow error and writes the envelope.
func respondError(c echo.Context, err error) error {
	status, resp := errors.MapToHTTP(err)
	return c.JSON(status, resp)
}

// explicitNulls reports which of the given keys carry a JSON null in the
// request body. The body is restored so binding still works afterwards.
func explicitNulls(c echo.Context, keys ...string) map[string]bool {
	nulls := map[string]bool{}
	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return nulls
	}
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nulls
	}
	c.Request().Body = io.NopCloser(bytes.NewReader(body))

	var raw map[string]json.RawMessage
	if json.Unmarshal(body, &raw) != nil {
		return nulls
	}
	for _, key := range keys {
		if v, ok := raw[key]; ok && bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			nulls[key] = true
		}
	}
	return nulls
}
