// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Obscura Labs

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler via
// [chi.Mux.MethodNotAllowed].
//
// Chi answers 405 when a path matches but the method does not. The API
// answers 404 instead: the same policy that hides foreign decryption
// requests also hides which routes exist from callers probing with the
// wrong method. When the method is in fact registered, the request is
// handed back to the router's normal pipeline.
//
// Only exact pattern matches against [http.Request.URL.Path] are checked;
// parameterised segments are not expanded here.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var matched chi.Route
		for _, route := range router.Routes() {
			if route.Pattern == r.URL.Path {
				matched = route
				break
			}
		}

		if _, ok := matched.Handlers[r.Method]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		router.ServeHTTP(w, r)
	}
}
