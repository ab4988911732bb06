package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/obscuralabs/blind-payroll/internal/adapter"
	"github.com/obscuralabs/blind-payroll/internal/crypto"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/store"
	"github.com/obscuralabs/blind-payroll/models"
)

type clientDecryptionService struct {
	adapter         adapter.ServerAdapter
	decryptionCache store.LocalDecryptionCacheRepository
	keyring         crypto.KeyringService

	mu       sync.RWMutex
	cacheKey []byte
}

func NewClientDecryptionService(serverAdapter adapter.ServerAdapter, decryptionCache store.LocalDecryptionCacheRepository, keyring crypto.KeyringService) ClientDecryptionService {
	return &clientDecryptionService{adapter: serverAdapter, decryptionCache: decryptionCache, keyring: keyring}
}

func (d *clientDecryptionService) SetCacheKey(key []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cacheKey = append([]byte(nil), key...)
}

func (d *clientDecryptionService) getCacheKey() []byte {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cacheKey
}

func (d *clientDecryptionService) RequestDecryption(ctx context.Context, operatorID int64, handles []models.HandleID, deadlineSeconds int64) (models.DecryptResponse, error) {
	response, err := d.adapter.RequestDecryption(ctx, models.DecryptRequest{Handles: handles, DeadlineSeconds: deadlineSeconds})
	if err != nil {
		return models.DecryptResponse{}, fmt.Errorf("request decryption on server: %w", mapAdapterError(err))
	}

	cached := models.CachedDecryption{
		RequestID: response.RequestID,
		State:     models.DecryptionPending,
		CreatedAt: time.Now().UTC(),
	}
	if err = d.decryptionCache.SaveRequest(ctx, operatorID, cached); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("request_id", response.RequestID).Msg("caching decryption request failed")
	}

	return response, nil
}

func (d *clientDecryptionService) Refresh(ctx context.Context, operatorID int64) (int, error) {
	log := logger.FromContext(ctx)

	key := d.getCacheKey()
	if len(key) == 0 {
		return 0, ErrCacheKeyNotSet
	}

	pending, err := d.decryptionCache.GetPendingRequestIDs(ctx, operatorID)
	if err != nil {
		return 0, fmt.Errorf("list pending decryption requests: %w", err)
	}

	changed := 0
	for _, requestID := range pending {
		status, err := d.adapter.GetDecryption(ctx, requestID)
		if err != nil {
			// A request the server no longer knows will never settle;
			// stop polling it.
			if errors.Is(err, adapter.ErrNotFound) {
				if markErr := d.decryptionCache.MarkExpired(ctx, operatorID, requestID); markErr == nil {
					changed++
				}
				continue
			}

			log.Warn().Err(err).Str("request_id", requestID).Msg("refreshing decryption request failed")
			continue
		}

		switch status.Request.State {
		case models.DecryptionFulfilled:
			if status.Result == nil {
				log.Warn().Str("request_id", requestID).Msg("fulfilled request arrived without a result")
				continue
			}

			payload, encErr := d.keyring.EncryptData(status.Result, key)
			if encErr != nil {
				log.Err(encErr).Str("request_id", requestID).Msg("encrypting decryption result for cache failed")
				continue
			}

			if markErr := d.decryptionCache.MarkFulfilled(ctx, operatorID, requestID, payload); markErr != nil {
				log.Err(markErr).Str("request_id", requestID).Msg("storing fulfilled decryption failed")
				continue
			}
			changed++

		case models.DecryptionExpired:
			if markErr := d.decryptionCache.MarkExpired(ctx, operatorID, requestID); markErr != nil {
				log.Err(markErr).Str("request_id", requestID).Msg("marking decryption expired failed")
				continue
			}
			changed++
		}
	}

	return changed, nil
}

func (d *clientDecryptionService) GetRequests(ctx context.Context, operatorID int64) ([]models.CachedDecryption, error) {
	requests, err := d.decryptionCache.GetAllRequests(ctx, operatorID)
	if err != nil {
		return nil, fmt.Errorf("list cached decryption requests: %w", err)
	}

	return requests, nil
}

func (d *clientDecryptionService) GetResult(ctx context.Context, operatorID int64, requestID string) (models.DecryptionResult, error) {
	cached, err := d.decryptionCache.GetRequest(ctx, requestID, operatorID)
	if err != nil {
		return models.DecryptionResult{}, fmt.Errorf("load cached decryption request: %w", err)
	}

	switch cached.State {
	case models.DecryptionPending:
		return models.DecryptionResult{}, ErrResultNotReady
	case models.DecryptionExpired:
		return models.DecryptionResult{}, ErrResultUnavailable
	}

	key := d.getCacheKey()
	if len(key) == 0 {
		return models.DecryptionResult{}, ErrCacheKeyNotSet
	}

	var result models.DecryptionResult
	if err = d.keyring.DecryptData(cached.Payload, key, &result); err != nil {
		return models.DecryptionResult{}, fmt.Errorf("decrypt cached result: %w", err)
	}

	return result, nil
}
