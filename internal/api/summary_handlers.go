package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/moodjournal/mood-api/internal/pkg/httputil"
	"github.com/moodjournal/mood-api/internal/service/summary"
)

// summaryRequest is the optional body of POST /ai/weekly_summary/{user_id}.
type summaryRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Lang      string `json:"lang"`
}

// analyzeRequest is the body of POST /ai/analyze_mood.
type analyzeRequest struct {
	Text            string `json:"text"`
	PreviousContext string `json:"previous_context"`
	Lang            string `json:"lang"`
}

// HandleWeeklySummary returns statistics and advice for a window. Without
// dates it covers the last seven days.
//
//	POST /ai/weekly_summary/{user_id}
func (h *Handlers) HandleWeeklySummary(w http.ResponseWriter, r *http.Request) {
	var body summaryRequest
	if !httputil.DecodeOptional(w, r, &body) {
		return
	}
	if body.Lang == "" {
		body.Lang = r.URL.Query().Get("lang")
	}
	h.summarize(w, r, body)
}

// HandleSummaryQuery is the query-string form of HandleWeeklySummary.
//
//	GET /ai/summary/{user_id}?start=&end=&lang=
func (h *Handlers) HandleSummaryQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.summarize(w, r, summaryRequest{
		StartDate: q.Get("start"),
		EndDate:   q.Get("end"),
		Lang:      q.Get("lang"),
	})
}

func (h *Handlers) summarize(w http.ResponseWriter, r *http.Request, body summaryRequest) {
	start, err := parseDate("start_date", body.StartDate)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	end, err := parseRangeEnd("end_date", body.EndDate)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	resp, err := h.summaries.Summarize(r.Context(), summary.Request{
		OwnerID:  chi.URLParam(r, "user_id"),
		Start:    start,
		End:      end,
		Language: h.language(r, body.Lang),
	})
	if err != nil {
		switch {
		case errors.Is(err, summary.ErrOwnerRequired),
			errors.Is(err, summary.ErrPartialRange),
			errors.Is(err, summary.ErrInvalidRange),
			errors.Is(err, summary.ErrRangeTooLong):
			httputil.BadRequest(w, err.Error())
		default:
			httputil.InternalError(w, err)
		}
		return
	}
	httputil.OK(w, resp)
}

// HandleAnalyzeMood reflects on one entry's text. The result is never cached.
//
//	POST /ai/analyze_mood
func (h *Handlers) HandleAnalyzeMood(w http.ResponseWriter, r *http.Request) {
	var body analyzeRequest
	if !httputil.Decode(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.Text) == "" {
		httputil.BadRequest(w, "text is required")
		return
	}

	res := h.analyzer.Analyze(r.Context(), body.Text, body.PreviousContext, h.language(r, body.Lang))
	httputil.OK(w, map[string]any{
		"analysis":  res.Text,
		"generated": res.Generated,
	})
}

// language picks the explicit value, then Accept-Language, then the default.
func (h *Handlers) language(r *http.Request, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if al := r.Header.Get("Accept-Language"); al != "" {
		tag, _, _ := strings.Cut(al, ",")
		tag, _, _ = strings.Cut(tag, ";")
		return strings.TrimSpace(tag)
	}
	return h.defaultLang
}
