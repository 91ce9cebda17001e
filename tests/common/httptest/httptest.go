//go:build unit || e2e

// Package httptest drives a gin router in-process and checks the API's
// JSON envelopes.
package httptest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// PerformRequest sends body as JSON. An empty token sends no
// Authorization header.
func PerformRequest(t *testing.T, router *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	return PerformRequestWithHeaders(t, router, method, path, body, token, nil)
}

// PerformRequestWithHeaders adds headers such as Idempotency-Key.
func PerformRequestWithHeaders(t *testing.T, router *gin.Engine, method, path string, body any, token string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var payload io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err, "encode request body")
		payload = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, payload)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func IdempotencyKey(key string) map[string]string {
	return map[string]string{"Idempotency-Key": key}
}
