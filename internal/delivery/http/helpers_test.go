package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// newRequest создает запрос с JSON телом и параметрами маршрута chi
func newRequest(t *testing.T, method, target string, body interface{}, params map[string]string) *http.Request {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}
	return req
}

// decodeResponse разбирает JSON ответ
func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

// AssertSuccess проверяет успешный ответ API
func AssertSuccess(t *testing.T, response map[string]interface{}) {
	t.Helper()
	success, ok := response["success"].(bool)
	if !ok || !success {
		t.Errorf("Expected success=true, got %v", response)
	}
}

// AssertError проверяет ошибочный ответ API
func AssertError(t *testing.T, response map[string]interface{}) {
	t.Helper()
	success, ok := response["success"].(bool)
	if !ok || success {
		t.Errorf("Expected success=false, got %v", response)
	}
}
