package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"catalog/internal/errors"
)

func contextWithID(id string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    uint
		wantErr error
	}{
		{name: "plain digits", raw: "42", want: 42},
		{name: "letters rejected", raw: "abc", wantErr: errors.ErrInvalidID},
		{name: "mixed rejected", raw: "12a", wantErr: errors.ErrInvalidID},
		{name: "negative rejected", raw: "-1", wantErr: errors.ErrInvalidID},
		{name: "decimal rejected", raw: "1.5", wantErr: errors.ErrInvalidID},
		{name: "empty rejected", raw: "", wantErr: errors.ErrInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := parseID(contextWithID(tt.raw))
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, id)
			}
		})
	}
}

func queryContext(query string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/products?"+query, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestParseFilters(t *testing.T) {
	t.Run("empty query yields empty filters", func(t *testing.T) {
		filters := parseFilters(queryContext(""))
		assert.True(t, filters.Empty())
	})

	t.Run("all filters resolved", func(t *testing.T) {
		filters := parseFilters(queryContext("category=3&price_min=100&price_max=200&name=mouse"))
		assert.Equal(t, "3", filters.Category)
		assert.True(t, filters.PriceMin.Equal(decimal.RequireFromString("100")))
		assert.True(t, filters.PriceMax.Equal(decimal.RequireFromString("200")))
		assert.Equal(t, "mouse", filters.Name)
	})

	t.Run("unparsable bound treated as absent", func(t *testing.T) {
		filters := parseFilters(queryContext("price_min=cheap&price_max=200"))
		assert.Nil(t, filters.PriceMin)
		assert.NotNil(t, filters.PriceMax)
	})
}

func jsonContext(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestExplicitNulls(t *testing.T) {
	t.Run("null value detected", func(t *testing.T) {
		nulls := explicitNulls(jsonContext(`{"name": null, "price": "10"}`), "name", "price")
		assert.True(t, nulls["name"])
		assert.False(t, nulls["price"])
	})

	t.Run("absent key is not null", func(t *testing.T) {
		nulls := explicitNulls(jsonContext(`{"price": "10"}`), "name")
		assert.False(t, nulls["name"])
	})

	t.Run("body still bindable afterwards", func(t *testing.T) {
		c := jsonContext(`{"name": "Widget"}`)
		_ = explicitNulls(c, "name")

		var payload struct {
			Name string `json:"name"`
		}
		assert.NoError(t, c.Bind(&payload))
		assert.Equal(t, "Widget", payload.Name)
	})

	t.Run("non-json body ignored", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader("name=x"))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		c := e.NewContext(req, httptest.NewRecorder())
		assert.Empty(t, explicitNulls(c, "name"))
	})
}
