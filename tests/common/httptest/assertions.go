//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Detail json.RawMessage `json:"detail"`
}

// AssertSuccessResponse checks the status and, for 2xx, decodes the body
// into target.
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code, "response: %s", w.Body.String()) {
		return
	}
	if expectedStatus >= 200 && expectedStatus < 300 && target != nil {
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), target), "decode: %s", w.Body.String())
	}
}

// AssertErrorResponse checks the status and that the error message
// contains expectedMsg. An empty expectedMsg only checks the envelope.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedMsg string) {
	t.Helper()
	body := decodeError(t, w, expectedStatus)
	if expectedMsg != "" {
		assert.Contains(t, body.Error.Message, expectedMsg)
	}
}

// AssertErrorCode checks the machine-readable code clients branch on.
func AssertErrorCode(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedCode string) {
	t.Helper()
	body := decodeError(t, w, expectedStatus)
	assert.Equal(t, expectedCode, body.Error.Code)
}

// ErrorDetail decodes the detail object of an error response.
func ErrorDetail(t *testing.T, w *httptest.ResponseRecorder, target any) {
	t.Helper()
	body := decodeError(t, w, w.Code)
	assert.NoError(t, json.Unmarshal(body.Detail, target), "detail: %s", string(body.Detail))
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int) errorBody {
	t.Helper()
	assert.Equal(t, expectedStatus, w.Code, "response: %s", w.Body.String())

	var body errorBody
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "decode: %s", w.Body.String())
	return body
}
