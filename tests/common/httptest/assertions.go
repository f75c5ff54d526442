//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"freight-core/internal/handler/httperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertSuccessResponse stops the test on a status mismatch, since every
// later step of a flow depends on the earlier one having succeeded.
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, targetStruct any) {
	t.Helper()

	require.Equal(t, expectedStatus, w.Code, "unexpected status, response: %s", w.Body.String())

	if expectedStatus >= 200 && expectedStatus < 300 && targetStruct != nil {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), targetStruct), "failed to decode response JSON: %s", w.Body.String())
	}
}

// AssertErrorResponse decodes the API error envelope and checks its message.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedErrorMsg string) httperr.Response {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "unexpected status, response: %s", w.Body.String())

	var resp httperr.Response
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "failed to decode error response JSON: %s", w.Body.String())

	if expectedErrorMsg != "" {
		assert.Contains(t, resp.Error.Message, expectedErrorMsg, "response error message doesn't contain expected text")
	}
	return resp
}

func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		assert.Equal(t, v, w.Header().Get(k), "header %s mismatch", k)
	}
}
