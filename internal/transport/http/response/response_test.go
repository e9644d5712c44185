package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citystats/citystats-service/internal/domain"
)

func TestErr(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{
			name:       "not_found",
			err:        domain.ErrNotFound("Atlanta, ZZ not found!"),
			wantStatus: http.StatusNotFound,
			wantDetail: "Atlanta, ZZ not found!",
		},
		{
			name:       "wrapped_not_found",
			err:        fmt.Errorf("lookup: %w", domain.ErrNotFound(`City name "St" not found!`)),
			wantStatus: http.StatusNotFound,
			wantDetail: `City name "St" not found!`,
		},
		{
			name:       "unknown_code_is_500",
			err:        &domain.AppError{Code: "conflict", Message: "conflict"},
			wantStatus: http.StatusInternalServerError,
			wantDetail: "conflict",
		},
		{
			name:       "generic_error_hides_details",
			err:        errors.New("pq: password authentication failed"),
			wantStatus: http.StatusInternalServerError,
			wantDetail: "internal error",
		},
		{
			name:       "nil_error",
			err:        nil,
			wantStatus: http.StatusInternalServerError,
			wantDetail: "unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/bls_jobs/Atlanta_ga", nil)
			Err(rr, req, tt.err)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var body ErrorBody
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tt.wantDetail, body.Detail)
		})
	}
}

func TestData(t *testing.T) {
	rr := httptest.NewRecorder()
	Data(rr, http.StatusOK, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":{"status":"ok"}}`, rr.Body.String())
}

func TestJSON_BareArray(t *testing.T) {
	rr := httptest.NewRecorder()
	JSON(rr, http.StatusOK, []int{1, 2})

	assert.JSONEq(t, `[1,2]`, rr.Body.String())
}

func TestPNG(t *testing.T) {
	rr := httptest.NewRecorder()
	PNG(rr, []byte("\x89PNG"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.Equal(t, "4", rr.Header().Get("Content-Length"))
	assert.Equal(t, "\x89PNG", rr.Body.String())
}
