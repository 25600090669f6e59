package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/storefront/shop-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"category not found", domain.ErrCategoryNotFound, http.StatusNotFound, "category not found"},
		{"wrapped product not found", fmt.Errorf("find: %w", domain.ErrProductNotFound), http.StatusNotFound, "product not found"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusNotFound, "invalid username or password"},
		{"conflict", domain.ErrConflict, http.StatusConflict, "this record has already been updated"},
		{"user exists", domain.ErrUserExists, http.StatusConflict, "username already taken"},
		{"throttled", domain.ErrTooManyAttempts, http.StatusTooManyRequests, "too many failed login attempts, try again later"},
		{"persistence over not found", domain.Persistence("could not create product", domain.ErrCategoryNotFound), http.StatusBadRequest, "could not create product"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{"unexpected", errors.New("driver exploded"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tc.msg {
				t.Fatalf("expected %q, got %q", tc.msg, body.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_ValidationFields(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	err := &domain.ValidationError{Fields: map[string]string{"title": "title is a required field"}}
	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body errorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Fields["title"] != "title is a required field" {
		t.Fatalf("unexpected fields: %+v", body.Fields)
	}
}
