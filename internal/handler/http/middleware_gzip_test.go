// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Obscura Labs

package http

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipBytes(t *testing.T, data []byte) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return &buf
}

func gunzipBody(t *testing.T, body io.Reader) string {
	t.Helper()

	zr, err := gzip.NewReader(body)
	require.NoError(t, err)
	defer zr.Close()

	decompressed, err := io.ReadAll(zr)
	require.NoError(t, err)

	return string(decompressed)
}

func TestWithGZip_ResponseCompression(t *testing.T) {
	const listing = `[{"run_id":1,"state":"sealed"},{"run_id":2,"state":"accumulating"}]`

	tests := []struct {
		name           string
		acceptEncoding string
		wantCompressed bool
	}{
		{
			name:           "client accepts gzip",
			acceptEncoding: "gzip",
			wantCompressed: true,
		},
		{
			name:           "client accepts gzip among others",
			acceptEncoding: "deflate, gzip, br",
			wantCompressed: true,
		},
		{
			name:           "client accepts gzip with quality value",
			acceptEncoding: "gzip;q=1.0, identity;q=0.5",
			wantCompressed: true,
		},
		{
			name:           "client does not accept gzip",
			acceptEncoding: "",
			wantCompressed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(listing))
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)

			if tt.wantCompressed {
				assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
				assert.Equal(t, listing, gunzipBody(t, rr.Body))
			} else {
				assert.NotEqual(t, "gzip", rr.Header().Get("Content-Encoding"))
				assert.Equal(t, listing, rr.Body.String())
			}
		})
	}
}

func TestWithGZip_RequestDecompression(t *testing.T) {
	const payload = `{"start":0,"end":250}`

	var seenBody string
	var seenEncoding string
	handler := withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		seenBody = string(body)
		seenEncoding = r.Header.Get("Content-Encoding")
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/runs/1/batches", gzipBytes(t, []byte(payload)))
	req.Header.Set("Content-Encoding", "gzip")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, payload, seenBody, "handler should see the decompressed body")
	assert.Empty(t, seenEncoding, "Content-Encoding should be stripped after decompression")
}

func TestWithGZip_RoundTrip(t *testing.T) {
	// Compressed request in, compressed response out.
	handler := withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		w.WriteHeader(http.StatusOK)
		w.Write(append([]byte("echo: "), body...))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/items", gzipBytes(t, []byte("ciphertext")))
	req.Header.Set("Content-Encoding", "gzip")
	req.Header.Set("Accept-Encoding", "gzip")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
	assert.Equal(t, "echo: ciphertext", gunzipBody(t, rr.Body))
}

func TestWithGZip_InvalidRequestBody(t *testing.T) {
	handler := withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run on malformed gzip input")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader("not gzipped data"))
	req.Header.Set("Content-Encoding", "gzip")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestWithGZip_StatusCodePreserved(t *testing.T) {
	handler := withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"run":{"run_id":3}}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/runs", nil)
	req.Header.Set("Accept-Encoding", "gzip")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
}

func TestWithGZip_CompressionShrinksListing(t *testing.T) {
	// Run listings are repetitive JSON; compression has to pay for itself.
	row := `{"run_id":7,"state":"sealed","item_count":250,"processed_count":250},`
	listing := "[" + strings.Repeat(row, 500) + "]"

	handler := withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(listing))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	req.Header.Set("Accept-Encoding", "gzip")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Less(t, rr.Body.Len(), len(listing)/10, "compressed listing should be much smaller")
}

func TestWithGZip_PoolReuseAcrossRequests(t *testing.T) {
	handler := withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}))

	// Sequential requests exercise writer and reader pool round-trips.
	for i := 0; i < 10; i++ {
		payload := []byte(strings.Repeat("x", i+1))

		req := httptest.NewRequest(http.MethodPost, "/api/items", gzipBytes(t, payload))
		req.Header.Set("Content-Encoding", "gzip")
		req.Header.Set("Accept-Encoding", "gzip")

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, "request %d failed", i)
		assert.Equal(t, string(payload), gunzipBody(t, rr.Body), "request %d: wrong body", i)
	}
}

func TestWithGZip_ConcurrentRequests(t *testing.T) {
	handler := withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("concurrent response"))
	}))

	const goroutines = 50

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()

			req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
			req.Header.Set("Accept-Encoding", "gzip")

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "concurrent response", gunzipBody(t, rr.Body))
		}()
	}
	wg.Wait()
}

func TestWrappedReadCloser_Close(t *testing.T) {
	closeCalled := false

	wrapped := &wrappedReadCloser{
		Reader:  strings.NewReader("test"),
		OnClose: func() { closeCalled = true },
	}

	require.NoError(t, wrapped.Close())
	assert.True(t, closeCalled, "OnClose should be called")

	wrapped = &wrappedReadCloser{Reader: strings.NewReader("test")}
	assert.NoError(t, wrapped.Close(), "Close must tolerate a nil OnClose")
}
