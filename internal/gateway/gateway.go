// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Obscura Labs

// Package gateway is the only asynchronous boundary of the payroll core.
// Decryption never happens inline: a caller files a request for handles it
// holds grants on and gets a request id back immediately; plaintexts arrive
// later through an HMAC-authenticated callback from the decryption network,
// or never, if the deadline lapses first. No payroll computation ever waits
// on a result.
package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/obscuralabs/blind-payroll/internal/engine"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/utils"
	"github.com/obscuralabs/blind-payroll/models"
)

// Gateway keeps the pending-request table and authenticates fulfillment
// callbacks. Expired entries are swept out by a background worker, so the
// table never accumulates unanswerable requests.
type Gateway struct {
	mu      sync.Mutex
	pending map[string]*models.DecryptionRequest
	results map[string]models.DecryptionResult

	engine engine.Engine

	// key authenticates callbacks. Derived once at startup from the
	// configured gateway shared secret.
	key []byte

	// ids assigns request identifiers; V7 UUIDs keep listings in
	// creation order.
	ids *utils.UUIDGenerator

	log *logger.Logger
}

func NewGateway(eng engine.Engine, callbackKey []byte, log *logger.Logger) *Gateway {
	return &Gateway{
		pending: make(map[string]*models.DecryptionRequest),
		results: make(map[string]models.DecryptionResult),
		engine:  eng,
		key:     callbackKey,
		ids:     utils.NewUUIDGenerator(),
		log:     log,
	}
}

// RequestDecryption files an asynchronous decryption of handles on behalf of
// requester and returns immediately. Grants gate the request, not the
// callback: a principal without access on every listed handle learns
// nothing, not even a pending request id.
func (g *Gateway) RequestDecryption(ctx context.Context, requester models.Principal, handles []models.HandleID, deadline time.Time) (models.DecryptionRequest, error) {
	if len(handles) == 0 {
		return models.DecryptionRequest{}, ErrNoHandles
	}

	now := time.Now()
	if !deadline.After(now) {
		return models.DecryptionRequest{}, fmt.Errorf("%w: deadline %s already passed", ErrRequestExpired, deadline.Format(time.RFC3339))
	}

	for _, handle := range handles {
		ok, err := g.engine.HasAccess(ctx, handle, requester)
		if err != nil {
			return models.DecryptionRequest{}, fmt.Errorf("checking grant on %s: %w", handle, err)
		}
		if !ok {
			return models.DecryptionRequest{}, fmt.Errorf("%w: %s on %s", engine.ErrUngrantedAccess, requester, handle)
		}
	}

	request := models.DecryptionRequest{
		RequestID: g.ids.Generate(),
		Requester: requester,
		Handles:   append([]models.HandleID(nil), handles...),
		Deadline:  deadline,
		State:     models.DecryptionPending,
		CreatedAt: now,
	}

	g.mu.Lock()
	g.pending[request.RequestID] = &request
	g.mu.Unlock()

	g.log.Debug().
		Str("request_id", request.RequestID).
		Str("requester", requester.String()).
		Int("handles", len(handles)).
		Time("deadline", deadline).
		Msg("decryption requested")

	return request, nil
}

// Fulfill processes one callback from the decryption network. The signature
// is checked before the contents; an authenticated callback must answer
// exactly the requested handles. A callback arriving after the deadline
// expires the request instead of fulfilling it.
func (g *Gateway) Fulfill(ctx context.Context, callback models.GatewayCallback) (models.DecryptionResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	request, ok := g.pending[callback.RequestID]
	if !ok {
		return models.DecryptionResult{}, fmt.Errorf("%w: %s", ErrRequestNotFound, callback.RequestID)
	}

	now := time.Now()
	switch {
	case request.State == models.DecryptionFulfilled:
		return models.DecryptionResult{}, fmt.Errorf("%w: %s", ErrAlreadyFulfilled, callback.RequestID)
	case request.State == models.DecryptionExpired || now.After(request.Deadline):
		request.State = models.DecryptionExpired
		return models.DecryptionResult{}, fmt.Errorf("%w: %s", ErrRequestExpired, callback.RequestID)
	}

	want := SignCallback(g.key, callback.RequestID, callback.Values)
	if !hmac.Equal([]byte(want), []byte(strings.ToLower(callback.Signature))) {
		return models.DecryptionResult{}, ErrBadSignature
	}

	if len(callback.Values) != len(request.Handles) {
		return models.DecryptionResult{}, fmt.Errorf("%w: %d values for %d handles", ErrMalformedCallback, len(callback.Values), len(request.Handles))
	}
	values := make(map[models.HandleID]models.Micro, len(request.Handles))
	for _, handle := range request.Handles {
		v, ok := callback.Values[string(handle)]
		if !ok {
			return models.DecryptionResult{}, fmt.Errorf("%w: no value for %s", ErrMalformedCallback, handle)
		}
		values[handle] = models.Micro(v)
	}

	request.State = models.DecryptionFulfilled
	request.FulfilledAt = &now

	result := models.DecryptionResult{
		RequestID:   request.RequestID,
		Values:      values,
		FulfilledAt: now,
	}
	g.results[request.RequestID] = result

	g.log.Info().
		Str("request_id", request.RequestID).
		Int("values", len(values)).
		Msg("decryption fulfilled")

	return result, nil
}

// Request returns the current state of one request.
func (g *Gateway) Request(requestID string) (models.DecryptionRequest, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	request, ok := g.pending[requestID]
	if !ok {
		return models.DecryptionRequest{}, fmt.Errorf("%w: %s", ErrRequestNotFound, requestID)
	}

	snapshot := *request
	snapshot.Handles = append([]models.HandleID(nil), request.Handles...)

	return snapshot, nil
}

// Result returns the delivered plaintexts for a fulfilled request.
func (g *Gateway) Result(requestID string) (models.DecryptionResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if result, ok := g.results[requestID]; ok {
		return result, nil
	}
	if request, ok := g.pending[requestID]; ok && request.State == models.DecryptionPending {
		return models.DecryptionResult{}, fmt.Errorf("%w: %s", ErrRequestPending, requestID)
	}

	return models.DecryptionResult{}, fmt.Errorf("%w: %s", ErrRequestNotFound, requestID)
}

// ExpireOverdue transitions every pending request whose deadline lies before
// now and removes it from the table, returning the expired copies for
// persistence. The original requester is not notified; the request simply
// becomes unanswerable.
func (g *Gateway) ExpireOverdue(now time.Time) []models.DecryptionRequest {
	g.mu.Lock()
	defer g.mu.Unlock()

	var expired []models.DecryptionRequest
	for id, request := range g.pending {
		if request.State != models.DecryptionPending || !now.After(request.Deadline) {
			continue
		}
		request.State = models.DecryptionExpired
		expired = append(expired, *request)
		delete(g.pending, id)
	}

	if len(expired) > 0 {
		g.log.Info().Int("count", len(expired)).Msg("expired overdue decryption requests")
	}

	return expired
}

// PendingCount reports how many requests currently await a callback.
func (g *Gateway) PendingCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := 0
	for _, request := range g.pending {
		if request.State == models.DecryptionPending {
			n++
		}
	}

	return n
}

// SignCallback computes the hex HMAC-SHA256 signature the gateway accepts
// for a fulfillment payload. The canonical form is the request id followed
// by every handle/value pair in lexicographic handle order, values encoded
// big-endian, so the signature is independent of map iteration order.
func SignCallback(key []byte, requestID string, values map[string]uint64) string {
	handles := make([]string, 0, len(values))
	for handle := range values {
		handles = append(handles, handle)
	}
	sort.Strings(handles)

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(requestID))
	for _, handle := range handles {
		mac.Write([]byte(handle))
		var v [8]byte
		binary.BigEndian.PutUint64(v[:], values[handle])
		mac.Write(v[:])
	}

	return hex.EncodeToString(mac.Sum(nil))
}
