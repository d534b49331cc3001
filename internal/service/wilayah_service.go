package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Kryx404/gohealth/internal/config"
	"github.com/Kryx404/gohealth/internal/persistence"
	apperrors "github.com/Kryx404/gohealth/pkg/util"
)

// WilayahService proxies the Indonesian region API used by the registration
// form. Upstream data is effectively static, so responses are cached in
// Redis.
type WilayahService struct {
	cfg    config.WilayahConfig
	cache  *persistence.Redis
	client *http.Client
	logger *zap.Logger
}

// NewWilayahService builds the proxy.
func NewWilayahService(cfg config.WilayahConfig, cache *persistence.Redis, logger *zap.Logger) *WilayahService {
	timeout := time.Duration(cfg.RequestTimeoutS) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WilayahService{
		cfg:    cfg,
		cache:  cache,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Lookup fetches one region listing. lookupType is one of provinces,
// regencies, districts, villages; all but provinces need the parent code.
func (s *WilayahService) Lookup(ctx context.Context, lookupType, code string) (json.RawMessage, error) {
	var path string
	switch {
	case lookupType == "provinces":
		path = "/provinces.json"
	case lookupType == "regencies" && code != "":
		path = "/regencies/" + code + ".json"
	case lookupType == "districts" && code != "":
		path = "/districts/" + code + ".json"
	case lookupType == "villages" && code != "":
		path = "/villages/" + code + ".json"
	default:
		return nil, apperrors.NewValidationError("Invalid parameters", nil)
	}

	cacheKey := "wilayah:" + lookupType + ":" + code
	if cached, err := s.cacheGet(ctx, cacheKey); err == nil {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+path, nil)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewInternalError(fmt.Errorf("wilayah upstream returned %d", resp.StatusCode))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if !json.Valid(body) {
		return nil, apperrors.NewInternalError(fmt.Errorf("wilayah upstream returned invalid json"))
	}

	s.cacheSet(ctx, cacheKey, body)
	return body, nil
}

func (s *WilayahService) cacheGet(ctx context.Context, key string) (json.RawMessage, error) {
	if s.cache == nil || s.cache.Client == nil {
		return nil, redis.Nil
	}
	raw, err := s.cache.Client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (s *WilayahService) cacheSet(ctx context.Context, key string, body []byte) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	ttl := time.Duration(s.cfg.CacheTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if err := s.cache.Client.Set(ctx, key, body, ttl).Err(); err != nil {
		s.logger.Warn("wilayah cache write failed", zap.Error(err))
	}
}
