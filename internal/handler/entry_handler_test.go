package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestGinContext создает *gin.Context для тестов с JSON body
func newTestGinContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()

	var req *http.Request
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, path, bytes.NewReader(bodyBytes))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

// parseJSONResponse парсит JSON ответ из *httptest.ResponseRecorder
func parseJSONResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "Тело ответа должно быть валидным JSON: %s", w.Body.String())
	return resp
}

// ============================================================================
// Request validation tests — не требуют реального EntryService
// Handler возвращает 400 до вызова сервиса
// ============================================================================

func TestSubmitEntry_ValidationErrors(t *testing.T) {
	handler := &EntryHandler{} // nil service — OK для validation tests

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
	}{
		{
			name:       "empty body",
			body:       nil,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing participant_name",
			body:       map[string]interface{}{"team_name": "Showmance", "picks": []string{"Alice"}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing team_name",
			body:       map[string]interface{}{"participant_name": "Dana", "picks": []string{"Alice"}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty picks",
			body:       map[string]interface{}{"participant_name": "Dana", "team_name": "Showmance", "picks": []string{}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "team_name too short",
			body:       map[string]interface{}{"participant_name": "Dana", "team_name": "X", "picks": []string{"Alice"}},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext("POST", "/api/pools/1/entries", tt.body)
			c.Set("poolID", uint(1))
			handler.SubmitEntry(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := parseJSONResponse(t, w)
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestConfirmPayment_ValidationErrors(t *testing.T) {
	handler := &EntryHandler{}

	// confirmed — обязательное поле: через указатель различаем
	// отсутствие поля и явное false
	c, w := newTestGinContext("PUT", "/api/admin/entries/1/payment", map[string]interface{}{})
	c.Set("entryID", uint(1))
	handler.ConfirmPayment(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
