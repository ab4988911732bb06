// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Obscura Labs

package http

import (
	"bytes"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obscuralabs/blind-payroll/internal/app"
	"github.com/obscuralabs/blind-payroll/internal/config"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/service"
	"github.com/obscuralabs/blind-payroll/internal/utils"
)

// --- Helpers ---

func newIntegrityHandler(t *testing.T, hashKey string) *Handler {
	t.Helper()
	return NewHandler(&service.Services{}, config.App{HashKey: hashKey}, logger.Nop())
}

func integrityHeader(body []byte) string {
	return hex.EncodeToString(utils.Hash(body))
}

// --- withBodyIntegrity tests ---

func TestWithBodyIntegrity_TableTest(t *testing.T) {
	utils.InitHasherPool("test-secret-key")

	body := []byte(`{"subject_id":1001,"tier":2,"active":true}`)

	tests := []struct {
		name           string
		header         string
		setHeader      bool
		expectedStatus int
	}{
		{
			name:           "valid hash",
			header:         integrityHeader(body),
			setHeader:      true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong hash value",
			header:         "0000000000000000000000000000000000000000000000000000000000000000",
			setHeader:      true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty header value",
			header:         "",
			setHeader:      true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "header missing entirely",
			setHeader:      false,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			h := newIntegrityHandler(t, "test-secret-key")
			middleware := h.withBodyIntegrity(next)

			req := httptest.NewRequest(http.MethodPost, "/api/items", bytes.NewReader(body))
			if tt.setHeader {
				req.Header.Set("HashSHA256", tt.header)
			}
			rr := httptest.NewRecorder()
			middleware.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.True(t, nextCalled, "next handler should be called")
			} else {
				assert.False(t, nextCalled, "next handler should NOT be called")
				assert.Contains(t, rr.Body.String(), app.MsgIntegrityCheckFailed)
			}
		})
	}
}

// Without a configured hash key the middleware is a pass-through: requests
// without any integrity header must reach the handler untouched.
func TestWithBodyIntegrity_NoKeyIsPassThrough(t *testing.T) {
	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusOK)
	})

	h := newIntegrityHandler(t, "")
	middleware := h.withBodyIntegrity(next)

	req := httptest.NewRequest(http.MethodPost, "/api/items", bytes.NewReader([]byte(`{}`)))
	rr := httptest.NewRecorder()
	middleware.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, nextCalled)
}

func TestWithBodyIntegrity_BodyRestoredForNextHandler(t *testing.T) {
	utils.InitHasherPool("test-secret-key")

	originalBody := []byte(`{"adjustment":{"ciphertext":"YQ==","proof":"Yg=="}}`)

	var bodyReadByNext []byte
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Middleware must restore the body; read it twice.
		b1, err := io.ReadAll(r.Body)
		require.NoError(t, err, "first read failed")

		// Second read should be empty (NopCloser does not rewind).
		b2, err := io.ReadAll(r.Body)
		require.NoError(t, err, "second read failed")
		assert.Empty(t, b2, "second read should be empty")

		bodyReadByNext = b1
		w.WriteHeader(http.StatusOK)
	})

	h := newIntegrityHandler(t, "test-secret-key")
	middleware := h.withBodyIntegrity(next)

	req := httptest.NewRequest(http.MethodPost, "/api/items", bytes.NewReader(originalBody))
	req.Header.Set("HashSHA256", integrityHeader(originalBody))
	rr := httptest.NewRecorder()
	middleware.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, originalBody, bodyReadByNext, "next handler should receive full original body")
}

func TestWithBodyIntegrity_MultipleSequentialRequests(t *testing.T) {
	utils.InitHasherPool("test-secret-key")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	h := newIntegrityHandler(t, "test-secret-key")
	middleware := h.withBodyIntegrity(next)

	for i := 0; i < 5; i++ {
		body := []byte{byte('a' + i)}

		req := httptest.NewRequest(http.MethodPost, "/api/items", bytes.NewReader(body))
		req.Header.Set("HashSHA256", integrityHeader(body))
		rr := httptest.NewRecorder()
		middleware.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "request %d failed", i)
	}
}

func TestWithBodyIntegrity_ConcurrentRequests(t *testing.T) {
	utils.InitHasherPool("test-secret-key")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	h := newIntegrityHandler(t, "test-secret-key")
	middleware := h.withBodyIntegrity(next)

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)

	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			body := []byte{byte(i)}

			req := httptest.NewRequest(http.MethodPost, "/api/items", bytes.NewReader(body))
			req.Header.Set("HashSHA256", integrityHeader(body))
			rr := httptest.NewRecorder()
			middleware.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code, "goroutine %d failed", i)
		}(i)
	}

	wg.Wait()
}

// A tampered payload no longer matches the submitted hash even though the
// hash itself is well formed.
func TestWithBodyIntegrity_TamperedBody(t *testing.T) {
	utils.InitHasherPool("test-secret-key")

	original := []byte(`{"subject_id":1001}`)
	tampered := []byte(`{"subject_id":9999}`)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run for a tampered body")
	})

	h := newIntegrityHandler(t, "test-secret-key")
	middleware := h.withBodyIntegrity(next)

	req := httptest.NewRequest(http.MethodPost, "/api/items", bytes.NewReader(tampered))
	req.Header.Set("HashSHA256", integrityHeader(original))
	rr := httptest.NewRecorder()
	middleware.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), app.MsgIntegrityCheckFailed)
}
