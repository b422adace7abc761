package strength

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"keycrypt-backend/internal/apperror"
)

func TestClientPredict(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(Prediction{
			PredictedLabel: "strong",
			Confidence:     0.93,
			ModelUsed:      "rf-v2",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, zaptest.NewLogger(t))
	p, err := client.Predict(context.Background(), "user-a", "correct horse battery staple")
	require.NoError(t, err)

	assert.Equal(t, "/strength/predict-strength/user-a", gotPath)
	assert.Equal(t, "correct horse battery staple", gotBody["password"])
	assert.Equal(t, "strong", p.PredictedLabel)
	assert.InDelta(t, 0.93, p.Confidence, 1e-9)
	assert.Equal(t, "rf-v2", p.ModelUsed)
}

func TestClientPredictEngineError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, zaptest.NewLogger(t))
	_, err := client.Predict(context.Background(), "user-a", "pw")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrBackend)
}

func TestClientPredictUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", nil, zaptest.NewLogger(t))
	_, err := client.Predict(context.Background(), "user-a", "pw")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrBackend)
}

func TestCacheKeyHidesPassword(t *testing.T) {
	key := cacheKey("hunter2")
	assert.NotContains(t, key, "hunter2")
	assert.Equal(t, key, cacheKey("hunter2"))
	assert.NotEqual(t, key, cacheKey("hunter3"))
}
