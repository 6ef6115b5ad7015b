package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// PeriodStats is derived per request from the entries of one window.
type PeriodStats struct {
	EntryCount    int
	AverageRating float64 // unrounded; 0 when EntryCount == 0
	Categories    *CategoryHistogram
	Daily         map[string]int // one key per calendar day, zero-filled
}

// CategoryHistogram counts entries per category and remembers the order in
// which categories were first seen.
type CategoryHistogram struct {
	order  []string
	counts map[string]int
}

// NewCategoryHistogram returns an empty histogram.
func NewCategoryHistogram() *CategoryHistogram {
	return &CategoryHistogram{counts: make(map[string]int)}
}

// Add increments the count for category.
func (h *CategoryHistogram) Add(category string) {
	if _, ok := h.counts[category]; !ok {
		h.order = append(h.order, category)
	}
	h.counts[category]++
}

// Count returns the count for category.
func (h *CategoryHistogram) Count(category string) int {
	if h == nil {
		return 0
	}
	return h.counts[category]
}

// Keys returns categories in first-seen order.
func (h *CategoryHistogram) Keys() []string {
	if h == nil {
		return nil
	}
	return append([]string(nil), h.order...)
}

// Len returns the number of distinct categories.
func (h *CategoryHistogram) Len() int {
	if h == nil {
		return 0
	}
	return len(h.order)
}

// Map returns a plain copy of the counts.
func (h *CategoryHistogram) Map() map[string]int {
	out := make(map[string]int, h.Len())
	for _, k := range h.Keys() {
		out[k] = h.counts[k]
	}
	return out
}

// String renders "label: count" pairs, comma-joined, in first-seen order.
func (h *CategoryHistogram) String() string {
	parts := make([]string, 0, h.Len())
	for _, k := range h.Keys() {
		parts = append(parts, fmt.Sprintf("%s: %d", k, h.counts[k]))
	}
	return strings.Join(parts, ", ")
}

// MarshalJSON writes a JSON object whose keys keep first-seen order.
func (h *CategoryHistogram) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range h.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		fmt.Fprintf(&buf, ":%d", h.counts[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
