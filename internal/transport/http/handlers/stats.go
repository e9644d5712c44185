package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/citystats/citystats-service/internal/domain"
	appCtx "github.com/citystats/citystats-service/internal/pkg/context"
	"github.com/citystats/citystats-service/internal/transport/http/dto"
	"github.com/citystats/citystats-service/internal/transport/http/response"
)

// CityStats is the lookup surface the HTTP layer needs.
type CityStats interface {
	LookupJobs(ctx context.Context, rawCity, rawState string) ([]domain.JobStat, error)
	RentalChart(ctx context.Context, rawCity, rawState string) ([]byte, error)
}

type StatsHandler struct {
	svc CityStats
}

func NewStatsHandler(svc CityStats) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// BLSJobs handles GET /bls_jobs/{place}.
func (h *StatsHandler) BLSJobs(w http.ResponseWriter, r *http.Request) {
	city, state, ok := placeParam(r)
	if !ok {
		NotFound(w, r)
		return
	}
	appCtx.SetPlace(r.Context(), city+", "+state)

	rows, err := h.svc.LookupJobs(r.Context(), city, state)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.ToJobStatResps(rows))
}

// RentViz handles GET /rent_viz_view/{place}.
func (h *StatsHandler) RentViz(w http.ResponseWriter, r *http.Request) {
	city, state, ok := placeParam(r)
	if !ok {
		NotFound(w, r)
		return
	}
	appCtx.SetPlace(r.Context(), city+", "+state)

	img, err := h.svc.RentalChart(r.Context(), city, state)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.PNG(w, img)
}

// NotFound is the router-wide 404.
func NotFound(w http.ResponseWriter, r *http.Request) {
	response.Detail(w, http.StatusNotFound, "Not Found")
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	response.Detail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
}

func placeParam(r *http.Request) (city, state string, ok bool) {
	raw := chi.URLParam(r, "place")
	// chi matches on RawPath when the request carried escapes
	if r.URL.RawPath != "" {
		v, err := url.PathUnescape(raw)
		if err != nil {
			return "", "", false
		}
		raw = v
	}
	return SplitPlace(raw)
}

// SplitPlace splits "<city>_<state>" on the last underscore, so
// "Los_Angeles_CA" yields ("Los_Angeles", "CA"). Both halves must be
// non-empty.
func SplitPlace(s string) (city, state string, ok bool) {
	i := strings.LastIndexByte(s, '_')
	if i <= 0 || i == len(s)-1 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}
