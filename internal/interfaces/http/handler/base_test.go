package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopops/backend/internal/domain/shared"
	"github.com/shopops/backend/internal/interfaces/http/dto"
	"github.com/shopops/backend/internal/interfaces/http/middleware"
	"github.com/shopops/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func serveError(err error) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(middleware.RequestIDKey, "req-1")
	h := &BaseHandler{}
	h.HandleError(c, err)
	return w
}

func TestGetRequestID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, getRequestID(c))

	c.Request.Header.Set(middleware.RequestIDHeader, "header-id")
	assert.Equal(t, "header-id", getRequestID(c))

	c.Set(middleware.RequestIDKey, "ctx-id")
	assert.Equal(t, "ctx-id", getRequestID(c))
}

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"not found", shared.NewNotFoundError("Comanda nu a fost găsită"), http.StatusNotFound, dto.ErrCodeNotFound, "Comanda nu a fost găsită"},
		{"conflict", shared.NewConflictError("AWB deja generat"), http.StatusBadRequest, dto.ErrCodeAlreadyExists, "AWB deja generat"},
		{"validation", shared.NewValidationError("Curier invalid"), http.StatusBadRequest, dto.ErrCodeInvalidInput, "Curier invalid"},
		{"entity validation", shared.NewDomainError("INVALID_PASSWORD", "Parolă prea scurtă"), http.StatusBadRequest, "ERR_INVALID_PASSWORD", "Parolă prea scurtă"},
		{"sync in progress", shared.ErrSyncInProgress, http.StatusBadRequest, dto.ErrCodeSyncInProgress, "Sincronizare deja în curs"},
		{"unavailable", shared.ErrServiceUnavailable, http.StatusServiceUnavailable, dto.ErrCodeServiceUnavailable, "Service temporarily unavailable"},
		{"invalid state", shared.ErrInvalidState, http.StatusUnprocessableEntity, dto.ErrCodeInvalidState, "Operation not allowed in current state"},
		{"credentials", shared.NewDomainError("INVALID_CREDENTIALS", "Email sau parolă incorecte"), http.StatusUnauthorized, dto.ErrCodeInvalidCredentials, "Email sau parolă incorecte"},
		{"wrapped", fmt.Errorf("load: %w", shared.NewNotFoundError("Magazin negăsit")), http.StatusNotFound, dto.ErrCodeNotFound, "Magazin negăsit"},
		{"internal domain code", shared.NewDomainError("INTERNAL_ERROR", "token signing failed"), http.StatusInternalServerError, dto.ErrCodeInternal, msgInternal},
		{"plain error", errors.New("pq: connection refused"), http.StatusInternalServerError, dto.ErrCodeInternal, msgInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveError(tt.err)
			testutil.AssertError(t, w, tt.status, tt.code)
			env := testutil.DecodeEnvelope(t, w)
			assert.Equal(t, tt.message, env.Error.Message)
			assert.Equal(t, "req-1", env.Error.RequestID)
		})
	}
}

func TestBaseHandler_HandleErrorNil(t *testing.T) {
	w := serveError(nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestBaseHandler_RequestGuards(t *testing.T) {
	engine := gin.New()
	h := &BaseHandler{}
	engine.GET("/items/:id", testUser, func(c *gin.Context) {
		if _, ok := h.requireUser(c); !ok {
			return
		}
		id, ok := h.pathUUID(c, "id")
		if !ok {
			return
		}
		h.Success(c, id)
	})

	w := testutil.Do(t, engine, testutil.Request{Path: "/items/not-a-uuid"})
	testutil.AssertError(t, w, http.StatusUnauthorized, dto.ErrCodeUnauthorized)

	w = testutil.Do(t, engine, testutil.Request{
		Path:    "/items/not-a-uuid",
		Headers: map[string]string{testUserHeader: "also-not-a-uuid"},
	})
	testutil.AssertError(t, w, http.StatusUnauthorized, dto.ErrCodeUnauthorized)

	w = testutil.Do(t, engine, testutil.Request{
		Path:    "/items/not-a-uuid",
		Headers: map[string]string{testUserHeader: "5f0c3f4e-8d0c-4a53-9a53-0c7d1c0b8a11"},
	})
	testutil.AssertError(t, w, http.StatusBadRequest, dto.ErrCodeBadRequest)

	w = testutil.Do(t, engine, testutil.Request{
		Path:    "/items/0b8e0b7e-7c1f-4b8e-9a7c-5d2b7f1c9e01",
		Headers: map[string]string{testUserHeader: "5f0c3f4e-8d0c-4a53-9a53-0c7d1c0b8a11"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0b8e0b7e-7c1f-4b8e-9a7c-5d2b7f1c9e01", testutil.DecodeData[string](t, w))
}
