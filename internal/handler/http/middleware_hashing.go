package http

import (
	"bytes"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/obscuralabs/blind-payroll/internal/app"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/utils"
)

// withBodyIntegrity verifies the HashSHA256 request header on routes that
// carry sealed inputs. The header must hold the hex-encoded HMAC-SHA256 of
// the raw (decompressed) request body, keyed with the shared hash key.
//
// When no hash key is configured the middleware is a pass-through, so
// deployments without a shared key keep working. With a key configured a
// missing or mismatching header rejects the request with HTTP 400 before it
// reaches the handler.
func (h *Handler) withBodyIntegrity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.hashKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Err(err).Str("func", "*Handler.withBodyIntegrity").Msg("failed to read request body")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		// restore request body for the handler
		r.Body = io.NopCloser(bytes.NewReader(body))

		requestHash := r.Header.Get("HashSHA256")
		if requestHash == "" {
			log.Error().Str("func", "*Handler.withBodyIntegrity").Msg("integrity header is missing")
			http.Error(w, app.MsgIntegrityCheckFailed, http.StatusBadRequest)
			return
		}

		hashedBody := hex.EncodeToString(utils.Hash(body))
		if hashedBody != requestHash {
			log.Error().Str("func", "*Handler.withBodyIntegrity").
				Str("hash from request", requestHash).
				Str("hashed body", hashedBody).
				Msg("hashes are not equal")
			http.Error(w, app.MsgIntegrityCheckFailed, http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r)
	})
}
