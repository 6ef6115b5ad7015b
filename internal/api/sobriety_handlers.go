package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/moodjournal/mood-api/internal/domain"
	"github.com/moodjournal/mood-api/internal/pkg/httputil"
	"github.com/moodjournal/mood-api/internal/service/sobriety"
)

type createClockRequest struct {
	UserID        string `json:"user_id"`
	AddictionType string `json:"addiction_type"`
	CustomName    string `json:"custom_name"`
	StartDate     string `json:"start_date"`
}

type resetClockRequest struct {
	NewDate string `json:"new_date"`
}

// clockResponse is a clock plus its elapsed time at response time.
type clockResponse struct {
	domain.SobrietyClock
	Elapsed sobriety.Elapsed `json:"elapsed"`
}

func (h *Handlers) clockView(c domain.SobrietyClock) clockResponse {
	return clockResponse{SobrietyClock: c, Elapsed: h.sobriety.Elapsed(c)}
}

// HandleCreateClock starts a sobriety clock.
//
//	POST /sobriety/clocks
func (h *Handlers) HandleCreateClock(w http.ResponseWriter, r *http.Request) {
	var req createClockRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	start, err := parseRequiredDate("start_date", req.StartDate)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	c, err := h.sobriety.Create(r.Context(), req.UserID, req.AddictionType, req.CustomName, start)
	if err != nil {
		writeSobrietyError(w, err)
		return
	}
	httputil.Created(w, h.clockView(*c))
}

// HandleListClocks returns a user's clocks, newest first.
//
//	GET /sobriety/clocks/{user_id}
func (h *Handlers) HandleListClocks(w http.ResponseWriter, r *http.Request) {
	clocks, err := h.sobriety.List(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		writeSobrietyError(w, err)
		return
	}
	out := make([]clockResponse, 0, len(clocks))
	for _, c := range clocks {
		out = append(out, h.clockView(c))
	}
	httputil.OK(w, out)
}

// HandleDeleteClock removes a clock.
//
//	DELETE /sobriety/clocks/{clock_id}
func (h *Handlers) HandleDeleteClock(w http.ResponseWriter, r *http.Request) {
	if err := h.sobriety.Delete(r.Context(), chi.URLParam(r, "clock_id")); err != nil {
		writeSobrietyError(w, err)
		return
	}
	httputil.OK(w, map[string]string{"message": "Clock deleted"})
}

// HandleResetClock restarts a clock from new_date.
//
//	PUT /sobriety/clocks/{clock_id}/reset
func (h *Handlers) HandleResetClock(w http.ResponseWriter, r *http.Request) {
	var req resetClockRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	newStart, err := parseRequiredDate("new_date", req.NewDate)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	c, err := h.sobriety.Reset(r.Context(), chi.URLParam(r, "clock_id"), newStart)
	if err != nil {
		writeSobrietyError(w, err)
		return
	}
	httputil.OK(w, map[string]any{
		"message":        "Clock reset successfully",
		"new_start_date": c.StartDate.Format(time.RFC3339),
	})
}

func writeSobrietyError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sobriety.ErrNotFound):
		httputil.NotFound(w, "Clock not found")
	case errors.Is(err, sobriety.ErrUserRequired),
		errors.Is(err, sobriety.ErrAddictionRequired),
		errors.Is(err, sobriety.ErrStartRequired):
		httputil.BadRequest(w, err.Error())
	default:
		httputil.InternalError(w, err)
	}
}
