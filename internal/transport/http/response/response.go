package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/citystats/citystats-service/internal/domain"
	"github.com/citystats/citystats-service/internal/logger"
)

// ErrorBody is the error shape of the public surface.
type ErrorBody struct {
	Detail string `json:"detail"`
}

type DataBody struct {
	Data any `json:"data"`
}

// JSON writes v as-is.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Data wraps v in a {"data": ...} envelope.
func Data(w http.ResponseWriter, status int, v any) {
	JSON(w, status, DataBody{Data: v})
}

func Detail(w http.ResponseWriter, status int, detail string) {
	JSON(w, status, ErrorBody{Detail: detail})
}

// PNG writes an image body.
func PNG(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// Err maps domain errors onto HTTP status codes. Anything that is not an
// AppError is logged and answered with a generic 500.
func Err(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		Detail(w, http.StatusInternalServerError, "unknown error")
		return
	}

	var ae *domain.AppError
	if errors.As(err, &ae) {
		Detail(w, statusFromCode(ae.Code), ae.Message)
		return
	}

	// keep details in logs only
	logger.WithCtx(r.Context()).Error().Err(err).
		Str("path", r.URL.Path).
		Msg("unhandled error")
	Detail(w, http.StatusInternalServerError, "internal error")
}

func statusFromCode(code domain.ErrCode) int {
	switch code {
	case domain.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
