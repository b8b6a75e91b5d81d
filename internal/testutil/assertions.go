package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ErrorResponse matches the API's error body
type ErrorResponse struct {
	Message string `json:"message"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v and verifies success
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertErrorResponse verifies error response with expected status and message
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	var body ErrorResponse
	AssertJSONResponse(t, resp, &body)
	assert.Equal(t, expectedMessage, body.Message, "error message mismatch")
}

// AssertFieldErrors verifies a 400 response names exactly the given fields
func AssertFieldErrors(t *testing.T, resp *http.Response, fields ...string) {
	t.Helper()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "unexpected status code")

	var body ErrorResponse
	AssertJSONResponse(t, resp, &body)

	got := make([]string, 0, len(body.Errors))
	for _, e := range body.Errors {
		got = append(got, e.Field)
	}
	assert.ElementsMatch(t, fields, got, "field errors mismatch")
}
