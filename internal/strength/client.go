package strength

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"keycrypt-backend/internal/apperror"
)

// Prediction is the strength engine's verdict on one password.
type Prediction struct {
	PredictedLabel string  `json:"predicted_label"`
	Confidence     float64 `json:"confidence"`
	ModelUsed      string  `json:"model_used"`
}

// Client calls the external password-strength engine. Responses are cached in
// Redis keyed by the password's SHA-256, so the cache never holds plaintext.
// A nil Redis client disables caching.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *redis.Client
	ttl     time.Duration
	logger  *zap.Logger
}

// NewClient creates a strength engine Client. cache may be nil.
func NewClient(baseURL string, cache *redis.Client, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
		ttl:     time.Hour,
		logger:  logger,
	}
}

func cacheKey(password string) string {
	sum := sha256.Sum256([]byte(password))
	return "strength:" + hex.EncodeToString(sum[:])
}

// Predict returns the engine's strength verdict for the password, consulting
// the cache first. Cache failures are logged and treated as misses.
func (c *Client) Predict(ctx context.Context, userID, password string) (*Prediction, error) {
	key := cacheKey(password)

	if c.cache != nil {
		cached, err := c.cache.Get(ctx, key).Result()
		if err == nil {
			var p Prediction
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return &p, nil
			}
		} else if err != redis.Nil {
			c.logger.Warn("strength cache read failed", zap.Error(err))
		}
	}

	p, err := c.predict(ctx, userID, password)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		encoded, err := json.Marshal(p)
		if err == nil {
			if err := c.cache.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
				c.logger.Warn("strength cache write failed", zap.Error(err))
			}
		}
	}
	return p, nil
}

func (c *Client) predict(ctx context.Context, userID, password string) (*Prediction, error) {
	body, err := json.Marshal(map[string]string{"password": password})
	if err != nil {
		return nil, fmt.Errorf("failed to encode strength request: %w", err)
	}

	url := fmt.Sprintf("%s/strength/predict-strength/%s", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build strength request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: strength engine unreachable: %v", apperror.ErrBackend, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: strength engine returned %d: %s", apperror.ErrBackend, resp.StatusCode, snippet)
	}

	var p Prediction
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: failed to decode strength response: %v", apperror.ErrBackend, err)
	}
	return &p, nil
}
