package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quantity-editor/core/field"
)

func newTestServer() *Server {
	return NewServer("test", field.NewBuiltinRegistry(), DefaultConfig())
}

func do(t *testing.T, s *Server, method, path string, body interface{}, out interface{}) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

func TestHealthAndVersion(t *testing.T) {
	s := newTestServer()

	var health map[string]interface{}
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health", nil, &health))
	assert.Equal(t, "healthy", health["status"])

	var version map[string]string
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/version", nil, &version))
	assert.Equal(t, "test", version["version"])
}

func TestListFields(t *testing.T) {
	s := newTestServer()

	var resp FieldsResponse
	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/fields", nil, &resp))
	require.Len(t, resp.Fields, 3)
	assert.Equal(t, "memory", resp.Fields[0].Name)

	var errResp ErrorResponse
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/fields/disk", nil, &errResp))
	assert.Equal(t, "FIELD_NOT_FOUND", errResp.Error.Code)
}

func TestText(t *testing.T) {
	s := newTestServer()

	var resp TextResponse
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/fields/memory-bytes/text",
		TextRequest{Text: "1 mib"}, &resp))
	assert.Equal(t, "complete", resp.State)
	assert.Equal(t, "1 MiB", resp.FormattedValue)
	require.NotNil(t, resp.Quantity)
	assert.Equal(t, "1048576 B", resp.Quantity.Base)

	resp = TextResponse{}
	do(t, s, http.MethodPost, "/fields/memory/text", TextRequest{Text: "512", Unit: "MiB"}, &resp)
	assert.Equal(t, "512 MiB", resp.FormattedValue)

	resp = TextResponse{}
	do(t, s, http.MethodPost, "/fields/memory/text", TextRequest{Text: "1,5"}, &resp)
	assert.Equal(t, "invalid", resp.State)
	assert.Equal(t, "INVALID_CHARACTER", resp.Reason)
	assert.Nil(t, resp.Quantity)

	resp = TextResponse{}
	do(t, s, http.MethodPost, "/fields/cpu/text", TextRequest{Text: "65"}, &resp)
	assert.Equal(t, "invalid", resp.State)
	assert.Equal(t, "TOO_HIGH", resp.Reason)
	require.NotNil(t, resp.Quantity)
	assert.Equal(t, "65 vCPU", resp.Quantity.Text)

	resp = TextResponse{}
	do(t, s, http.MethodPost, "/fields/cpu/text", TextRequest{Text: " "}, &resp)
	assert.Equal(t, "empty", resp.State)
}

func TestStep(t *testing.T) {
	s := newTestServer()

	var resp StepResponse
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/fields/memory/increment",
		StepRequest{Quantity: QuantityPayload{Value: "1024", Unit: "MiB"}}, &resp))
	assert.False(t, resp.Rejected)
	assert.True(t, resp.UnitChanged)
	assert.Equal(t, "1", resp.Quantity.Value)
	assert.Equal(t, "GiB", resp.Quantity.Unit)

	resp = StepResponse{}
	do(t, s, http.MethodPost, "/fields/cpu/decrement",
		StepRequest{Quantity: QuantityPayload{Value: "0", Unit: "m"}}, &resp)
	assert.True(t, resp.Rejected)
	assert.Equal(t, "MIN_VAL_REACHED", resp.Reason)
	assert.Equal(t, "0 m", resp.Quantity.Text)

	resp = StepResponse{}
	do(t, s, http.MethodPost, "/fields/cpu/increment",
		StepRequest{Quantity: QuantityPayload{Value: "1", Unit: "parsec"}}, &resp)
	assert.True(t, resp.Rejected)
	assert.Equal(t, "UNIT_NOT_RECOGNIZED", resp.Reason)

	var errResp ErrorResponse
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/fields/cpu/increment",
		StepRequest{Quantity: QuantityPayload{Value: "lots", Unit: "m"}}, &errResp))
	assert.Equal(t, "INVALID_VALUE", errResp.Error.Code)
}

func TestStepRejectsValuesOutsideTheGrammar(t *testing.T) {
	s := newTestServer()

	values := []string{
		"",
		"-5000",
		"1e50000000",
		"1 GiB",
		"0x10",
		strings.Repeat("9", 300),
	}
	for _, v := range values {
		var errResp ErrorResponse
		assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/fields/memory/increment",
			StepRequest{Quantity: QuantityPayload{Value: v, Unit: "GiB"}}, &errResp), "value %q", v)
		assert.Equal(t, "INVALID_VALUE", errResp.Error.Code, "value %q", v)
	}

	var errResp ErrorResponse
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/fields/memory/unit",
		UnitRequest{Quantity: QuantityPayload{Value: "-1", Unit: "GiB"}, Unit: "MiB"}, &errResp))
	assert.Equal(t, "INVALID_VALUE", errResp.Error.Code)

	var resp StepResponse
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/fields/memory/increment",
		StepRequest{Quantity: QuantityPayload{Value: ".5", Unit: "GiB"}}, &resp))
	assert.Equal(t, "0.75 GiB", resp.Quantity.Text)
}

func TestUnitSwitch(t *testing.T) {
	s := newTestServer()

	var resp UnitResponse
	do(t, s, http.MethodPost, "/fields/memory-bytes/unit",
		UnitRequest{Quantity: QuantityPayload{Value: "1536", Unit: "MiB"}, Unit: "GiB"}, &resp)
	assert.False(t, resp.Rejected)
	assert.Equal(t, "1.5 GiB", resp.Quantity.Text)
	assert.Equal(t, "1610612736 B", resp.Quantity.Base)

	resp = UnitResponse{}
	do(t, s, http.MethodPost, "/fields/memory-bytes/unit",
		UnitRequest{Quantity: QuantityPayload{Value: "2", Unit: "GiB"}, Unit: "furlong"}, &resp)
	assert.True(t, resp.Rejected)
	assert.Equal(t, "UNSUPPORTED_UNIT_CONVERSION", resp.Reason)
	assert.Equal(t, "2 GiB", resp.Quantity.Text)
}

func TestBadRequests(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/fields/memory/text", bytes.NewBufferString(`{"txt": "1"}`))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, http.StatusMethodNotAllowed, do(t, s, http.MethodGet, "/fields/memory/text", nil, nil))
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/nowhere", nil, nil))

	var errResp ErrorResponse
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/fields/memory/text",
		TextRequest{Text: "1", Unit: "parsec"}, &errResp))
	assert.Equal(t, "UNIT_NOT_RECOGNIZED", errResp.Error.Code)
}

func TestStatsCountRequests(t *testing.T) {
	s := newTestServer()
	do(t, s, http.MethodGet, "/health", nil, nil)
	do(t, s, http.MethodGet, "/fields/nope", nil, nil)

	var st Stats
	do(t, s, http.MethodGet, "/stats", nil, &st)
	assert.Equal(t, int64(2), st.Requests)
	assert.Equal(t, int64(1), st.Errors)
}
