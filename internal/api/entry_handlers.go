package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/moodjournal/mood-api/internal/domain"
	"github.com/moodjournal/mood-api/internal/pkg/httputil"
	"github.com/moodjournal/mood-api/internal/service/entry"
)

// HandleCreateEntry adds a journal entry for a user.
//
//	POST /entries/{user_id}
func (h *Handlers) HandleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var in entry.CreateInput
	if !httputil.Decode(w, r, &in) {
		return
	}

	e, err := h.entries.Create(r.Context(), chi.URLParam(r, "user_id"), in)
	if err != nil {
		if errors.Is(err, entry.ErrOwnerRequired) || errors.Is(err, entry.ErrCategoryRequired) {
			httputil.BadRequest(w, err.Error())
			return
		}
		httputil.InternalError(w, err)
		return
	}
	httputil.Created(w, e)
}

// HandleListEntries returns a page of a user's journal, newest first.
//
//	GET /entries/{user_id}?skip=0&limit=100
func (h *Handlers) HandleListEntries(w http.ResponseWriter, r *http.Request) {
	skip, err := queryInt(r, "skip")
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	entries, err := h.entries.List(r.Context(), chi.URLParam(r, "user_id"), skip, limit)
	if err != nil {
		if errors.Is(err, entry.ErrOwnerRequired) {
			httputil.BadRequest(w, err.Error())
			return
		}
		httputil.InternalError(w, err)
		return
	}
	if entries == nil {
		entries = []domain.MoodEntry{}
	}
	httputil.OK(w, entries)
}

func queryInt(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(name + " must be an integer")
	}
	return n, nil
}
