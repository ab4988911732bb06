package adapter

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/obscuralabs/blind-payroll/internal/config"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/utils"
	"github.com/obscuralabs/blind-payroll/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	hashKey string

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress,
// configures the underlying HTTP client with the resolved base URL and request
// timeout, and initialises the shared HMAC hasher pool used for transport
// integrity hashes on encrypted-input submissions.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (ServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	if appCfg.HashKey != "" {
		utils.InitHasherPool(appCfg.HashKey)
	}

	return &httpServerAdapter{client: client, hashKey: appCfg.HashKey, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
// Safe for concurrent use with the refresh job.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the bearer token currently held
// by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter]. It POSTs the operator credentials to
// POST /api/auth/register. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken, and the operator ID
// is recovered from the token subject. Returns an error if the request fails,
// the server returns a non-2xx status, or the token cannot be parsed.
func (h *httpServerAdapter) Register(ctx context.Context, request models.RegisterRequest) (models.Operator, error) {
	var operator models.Operator

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		SetResult(&operator).
		Post("/api/auth/register")
	if err != nil {
		return models.Operator{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Operator{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Operator{}, fmt.Errorf("register parse bearer token: %w", err)
	}
	operatorID, err := utils.ParseOperatorIDFromJWT(token)
	if err != nil {
		return models.Operator{}, fmt.Errorf("register parse operator id: %w", err)
	}

	h.SetToken(token)
	operator.OperatorID = operatorID
	return operator, nil
}

// Login implements [ServerAdapter]. It POSTs the operator credentials to
// POST /api/auth/login. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken, and the operator ID
// is recovered from the token subject. Returns [ErrUnauthorized] (wrapped) on
// bad credentials.
func (h *httpServerAdapter) Login(ctx context.Context, request models.LoginRequest) (models.Operator, error) {
	var operator models.Operator

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		SetResult(&operator).
		Post("/api/auth/login")
	if err != nil {
		return models.Operator{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Operator{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Operator{}, fmt.Errorf("login parse bearer token: %w", err)
	}
	operatorID, err := utils.ParseOperatorIDFromJWT(token)
	if err != nil {
		return models.Operator{}, fmt.Errorf("login parse operator id: %w", err)
	}

	h.SetToken(token)
	operator.OperatorID = operatorID
	return operator, nil
}

// InitRun implements [ServerAdapter]. It POSTs an empty body to
// POST /api/runs and decodes the public metadata of the freshly initialized
// run. Returns [ErrConflict] (wrapped) while the previous run keeps the
// frequency gate closed. Requires a valid bearer token.
func (h *httpServerAdapter) InitRun(ctx context.Context) (models.RunMetadata, error) {
	resp, err := h.authedRequest(ctx).Post("/api/runs")
	if err != nil {
		return models.RunMetadata{}, fmt.Errorf("init run request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RunMetadata{}, err
	}

	var initResponse models.InitRunResponse
	if err = json.Unmarshal(resp.Body(), &initResponse); err != nil {
		return models.RunMetadata{}, fmt.Errorf("decode init run response: %w", err)
	}

	return initResponse.Run, nil
}

// ProcessBatch implements [ServerAdapter]. It POSTs the item index range to
// POST /api/runs/{runID}/batches and decodes the batch outcome. Requires a
// valid bearer token.
func (h *httpServerAdapter) ProcessBatch(ctx context.Context, runID int64, request models.BatchRequest) (models.BatchResponse, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		Post(fmt.Sprintf("/api/runs/%d/batches", runID))
	if err != nil {
		return models.BatchResponse{}, fmt.Errorf("process batch request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.BatchResponse{}, err
	}

	var batchResponse models.BatchResponse
	if err = json.Unmarshal(resp.Body(), &batchResponse); err != nil {
		return models.BatchResponse{}, fmt.Errorf("decode batch response: %w", err)
	}

	return batchResponse, nil
}

// SealRun implements [ServerAdapter]. It POSTs the seal request to
// POST /api/runs/{runID}/seal and decodes the sealed run metadata, including
// the audit fingerprint. Returns [ErrConflict] (wrapped) when unprocessed
// active items remain and force is false. Requires a valid bearer token.
func (h *httpServerAdapter) SealRun(ctx context.Context, runID int64, force bool) (models.RunMetadata, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.SealRequest{Force: force}).
		Post(fmt.Sprintf("/api/runs/%d/seal", runID))
	if err != nil {
		return models.RunMetadata{}, fmt.Errorf("seal run request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RunMetadata{}, err
	}

	var run models.RunMetadata
	if err = json.Unmarshal(resp.Body(), &run); err != nil {
		return models.RunMetadata{}, fmt.Errorf("decode seal run response: %w", err)
	}

	return run, nil
}

// GetRuns implements [ServerAdapter]. It GETs /api/runs and decodes the
// response into a slice of [models.RunMetadata]. Requires a valid bearer
// token.
func (h *httpServerAdapter) GetRuns(ctx context.Context) ([]models.RunMetadata, error) {
	resp, err := h.authedRequest(ctx).Get("/api/runs")
	if err != nil {
		return nil, fmt.Errorf("get runs request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var runs []models.RunMetadata
	if err = json.Unmarshal(resp.Body(), &runs); err != nil {
		return nil, fmt.Errorf("decode runs response: %w", err)
	}

	return runs, nil
}

// GetRun implements [ServerAdapter]. It GETs /api/runs/{runID} and decodes
// one run's public metadata. Returns [ErrNotFound] (wrapped) for an unknown
// run ID. Requires a valid bearer token.
func (h *httpServerAdapter) GetRun(ctx context.Context, runID int64) (models.RunMetadata, error) {
	resp, err := h.authedRequest(ctx).Get(fmt.Sprintf("/api/runs/%d", runID))
	if err != nil {
		return models.RunMetadata{}, fmt.Errorf("get run request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RunMetadata{}, err
	}

	var run models.RunMetadata
	if err = json.Unmarshal(resp.Body(), &run); err != nil {
		return models.RunMetadata{}, fmt.Errorf("decode run response: %w", err)
	}

	return run, nil
}

// GetItems implements [ServerAdapter]. It GETs /api/items and decodes the
// response into a slice of [models.ItemView]. Requires a valid bearer token.
func (h *httpServerAdapter) GetItems(ctx context.Context) ([]models.ItemView, error) {
	resp, err := h.authedRequest(ctx).Get("/api/items")
	if err != nil {
		return nil, fmt.Errorf("get items request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var items []models.ItemView
	if err = json.Unmarshal(resp.Body(), &items); err != nil {
		return nil, fmt.Errorf("decode items response: %w", err)
	}

	return items, nil
}

// EnrollItem implements [ServerAdapter]. It POSTs the enrollment request to
// POST /api/items with a transport integrity hash covering the payload, and
// decodes the enrolled item view. The base value crosses the wire encrypted;
// the integrity hash covers the ciphertext, never a plaintext amount.
// Requires a valid bearer token.
func (h *httpServerAdapter) EnrollItem(ctx context.Context, request models.EnrollItemRequest) (models.ItemView, error) {
	resp, err := h.hashedJSONRequest(ctx, request, "/api/items")
	if err != nil {
		return models.ItemView{}, fmt.Errorf("enroll item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ItemView{}, err
	}

	var item models.ItemView
	if err = json.Unmarshal(resp.Body(), &item); err != nil {
		return models.ItemView{}, fmt.Errorf("decode enroll item response: %w", err)
	}

	return item, nil
}

// AttachAdjustment implements [ServerAdapter]. It POSTs the encrypted
// adjustment to POST /api/items/{index}/adjustment with a transport integrity
// hash covering the payload, and decodes the updated item view. Returns
// [ErrNotFound] (wrapped) for an unknown index. Requires a valid bearer
// token.
func (h *httpServerAdapter) AttachAdjustment(ctx context.Context, index int64, request models.AdjustmentRequest) (models.ItemView, error) {
	resp, err := h.hashedJSONRequest(ctx, request, fmt.Sprintf("/api/items/%d/adjustment", index))
	if err != nil {
		return models.ItemView{}, fmt.Errorf("attach adjustment request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ItemView{}, err
	}

	var item models.ItemView
	if err = json.Unmarshal(resp.Body(), &item); err != nil {
		return models.ItemView{}, fmt.Errorf("decode attach adjustment response: %w", err)
	}

	return item, nil
}

// ClaimAboveThreshold implements [ServerAdapter]. It POSTs the claim request
// to POST /api/claims/above-threshold and decodes the response carrying the
// encrypted-boolean handle. Requires a valid bearer token.
func (h *httpServerAdapter) ClaimAboveThreshold(ctx context.Context, request models.ClaimRequest) (models.ClaimResponse, error) {
	return h.claim(ctx, request, "/api/claims/above-threshold")
}

// ClaimWithinRange implements [ServerAdapter]. It POSTs the claim request to
// POST /api/claims/within-range and decodes the response carrying the
// encrypted-boolean handle. Requires a valid bearer token.
func (h *httpServerAdapter) ClaimWithinRange(ctx context.Context, request models.ClaimRequest) (models.ClaimResponse, error) {
	return h.claim(ctx, request, "/api/claims/within-range")
}

func (h *httpServerAdapter) claim(ctx context.Context, request models.ClaimRequest, path string) (models.ClaimResponse, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		Post(path)
	if err != nil {
		return models.ClaimResponse{}, fmt.Errorf("claim request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ClaimResponse{}, err
	}

	var claimResponse models.ClaimResponse
	if err = json.Unmarshal(resp.Body(), &claimResponse); err != nil {
		return models.ClaimResponse{}, fmt.Errorf("decode claim response: %w", err)
	}

	return claimResponse, nil
}

// RequestDecryption implements [ServerAdapter]. It POSTs the handle list to
// POST /api/decryptions and decodes the acknowledgement carrying the request
// ID and resolved deadline. Returns [ErrForbidden] (wrapped) when a listed
// handle carries no grant for the calling operator. Requires a valid bearer
// token.
func (h *httpServerAdapter) RequestDecryption(ctx context.Context, request models.DecryptRequest) (models.DecryptResponse, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		Post("/api/decryptions")
	if err != nil {
		return models.DecryptResponse{}, fmt.Errorf("request decryption request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DecryptResponse{}, err
	}

	var decryptResponse models.DecryptResponse
	if err = json.Unmarshal(resp.Body(), &decryptResponse); err != nil {
		return models.DecryptResponse{}, fmt.Errorf("decode decryption response: %w", err)
	}

	return decryptResponse, nil
}

// GetDecryption implements [ServerAdapter]. It GETs
// /api/decryptions/{requestID} and decodes the poll view of the request.
// Returns [ErrNotFound] (wrapped) for an unknown request ID. Requires a
// valid bearer token.
func (h *httpServerAdapter) GetDecryption(ctx context.Context, requestID string) (models.DecryptionStatusResponse, error) {
	resp, err := h.authedRequest(ctx).Get("/api/decryptions/" + url.PathEscape(requestID))
	if err != nil {
		return models.DecryptionStatusResponse{}, fmt.Errorf("get decryption request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DecryptionStatusResponse{}, err
	}

	var status models.DecryptionStatusResponse
	if err = json.Unmarshal(resp.Body(), &status); err != nil {
		return models.DecryptionStatusResponse{}, fmt.Errorf("decode decryption status response: %w", err)
	}

	return status, nil
}

// GetVersion implements [ServerAdapter]. It GETs the plain-text build version
// from GET /api/version.
func (h *httpServerAdapter) GetVersion(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("get version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// hashedJSONRequest POSTs payload to path with a HashSHA256 integrity header.
// The payload is marshalled once so the hash and the request body are
// guaranteed to cover the same bytes. The header is omitted when no hash key
// is configured.
func (h *httpServerAdapter) hashedJSONRequest(ctx context.Context, payload any, path string) (*resty.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	req := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	if h.hashKey != "" {
		req.SetHeader("HashSHA256", hex.EncodeToString(utils.Hash(body)))
	}

	return req.Post(path)
}
