package activity

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/carbon-tracker/internal/auth"
	"github.com/redmonkez12/carbon-tracker/internal/httputil"
)

func serve(t *testing.T, hf http.HandlerFunc, method, body string, userID uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, "/activities", strings.NewReader(body))
	if userID != uuid.Nil {
		req = req.WithContext(auth.ContextWithUser(req.Context(), userID, "a@x.com"))
	}

	rec := httptest.NewRecorder()
	hf(rec, req)
	return rec
}

func TestHandler_CreateAndList(t *testing.T) {
	h := NewHandler(newTestService(NewMemoryStore()))
	userID := uuid.New()

	rec := serve(t, h.Create, http.MethodPost, `{"activity_type":"electricity","amount":12.5}`, userID)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created Activity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "kWh", created.Unit)
	assert.InDelta(t, 2.91, created.Emission, 1e-9)

	rec = serve(t, h.Create, http.MethodPost, `{"activity_type":"beef","amount":"0.5"}`, userID)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = serve(t, h.List, http.MethodGet, "", userID)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []Activity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "beef", list[0].ActivityType)

	rec = serve(t, h.Summary, http.MethodGet, "", userID)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, "beef", summary.TopActivity)
	assert.InDelta(t, 16.41, summary.TotalEmission, 1e-9)
}

func TestHandler_Create_Errors(t *testing.T) {
	h := NewHandler(newTestService(NewMemoryStore()))
	userID := uuid.New()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{name: "malformed", body: `{`, wantStatus: http.StatusBadRequest, wantCode: httputil.CodeInvalidRequestBody},
		{name: "missing amount", body: `{"activity_type":"beef"}`, wantStatus: http.StatusBadRequest, wantCode: httputil.CodeInvalidAmount},
		{name: "negative amount", body: `{"activity_type":"beef","amount":-1}`, wantStatus: http.StatusBadRequest, wantCode: httputil.CodeInvalidAmount},
		{name: "missing type", body: `{"amount":1}`, wantStatus: http.StatusBadRequest, wantCode: httputil.CodeActivityTypeRequired},
		{name: "unknown type", body: `{"activity_type":"teleport","amount":1}`, wantStatus: http.StatusNotFound, wantCode: httputil.CodeEmissionFactorNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, h.Create, http.MethodPost, tt.body, userID)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp httputil.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}

func TestHandler_StoreFailure(t *testing.T) {
	h := NewHandler(newTestService(failingStore{err: errors.New("db down")}))
	userID := uuid.New()

	rec := serve(t, h.List, http.MethodGet, "", userID)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = serve(t, h.Create, http.MethodPost, `{"activity_type":"beef","amount":1}`, userID)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = serve(t, h.Summary, http.MethodGet, "", userID)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandler_RequiresUserInContext(t *testing.T) {
	h := NewHandler(newTestService(NewMemoryStore()))

	rec := serve(t, h.List, http.MethodGet, "", uuid.Nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

