package advice

import (
	"fmt"
	"strconv"
	"time"

	"github.com/osteele/liquid"

	"github.com/moodjournal/mood-api/internal/domain"
)

const dateLayout = "2006-01-02"

var defaultSummaryTemplates = map[string]string{
	"en": `You are a warm, supportive wellbeing assistant. Here is a summary of my mood journal from {{ start }} to {{ end }}.
Number of entries: {{ count }}.
Average mood: {{ average }}/5.0.
Moods recorded: {{ categories }}.
Write a short reflection (3-4 sentences) on this period and suggest one concrete, gentle thing I could do next. Do not give medical diagnoses.`,
	"pl": `Jesteś ciepłym, wspierającym asystentem dbającym o dobrostan. Oto podsumowanie mojego dziennika nastroju od {{ start }} do {{ end }}.
Liczba wpisów: {{ count }}.
Średnia nastroju: {{ average }}/5.0.
Zapisane nastroje: {{ categories }}.
Napisz krótką refleksję (3-4 zdania) o tym okresie i zaproponuj jedną konkretną, łagodną rzecz, którą mogę zrobić. Nie stawiaj diagnoz medycznych.`,
}

var defaultAnalysisTemplates = map[string]string{
	"en": `You are a warm, supportive wellbeing assistant. {% if previous_context != "" %}Earlier context: {{ previous_context }}
{% endif %}Journal entry: "{{ text }}"
In 2-3 sentences, reflect back how I seem to feel and suggest one small helpful step.`,
	"pl": `Jesteś ciepłym, wspierającym asystentem dbającym o dobrostan. {% if previous_context != "" %}Wcześniejszy kontekst: {{ previous_context }}
{% endif %}Wpis w dzienniku: "{{ text }}"
W 2-3 zdaniach opisz, jak się czuję, i zaproponuj jeden mały pomocny krok.`,
}

// promptSet holds parsed Liquid templates keyed by language.
type promptSet struct {
	summary  map[string]*liquid.Template
	analysis map[string]*liquid.Template
}

// newPromptSet parses the built-in templates, replacing summary templates
// with any overrides from configuration. Override keys must name a
// supported language.
func newPromptSet(overrides map[string]string) (*promptSet, error) {
	engine := liquid.NewEngine()
	ps := &promptSet{
		summary:  make(map[string]*liquid.Template),
		analysis: make(map[string]*liquid.Template),
	}

	summarySrc := make(map[string]string, len(defaultSummaryTemplates))
	for lang, src := range defaultSummaryTemplates {
		summarySrc[lang] = src
	}
	for tag, src := range overrides {
		lang, ok := supportedLanguage(tag)
		if !ok {
			return nil, fmt.Errorf("prompt template for unsupported language %q", tag)
		}
		summarySrc[lang] = src
	}

	for lang, src := range summarySrc {
		tpl, err := engine.ParseString(src)
		if err != nil {
			return nil, fmt.Errorf("parse %s summary prompt: %w", lang, err)
		}
		ps.summary[lang] = tpl
	}
	for lang, src := range defaultAnalysisTemplates {
		tpl, err := engine.ParseString(src)
		if err != nil {
			return nil, fmt.Errorf("parse %s analysis prompt: %w", lang, err)
		}
		ps.analysis[lang] = tpl
	}
	return ps, nil
}

// renderSummary builds the period prompt from aggregate statistics.
func (ps *promptSet) renderSummary(lang string, stats domain.PeriodStats, start, end time.Time) (string, error) {
	tpl, ok := ps.summary[lang]
	if !ok {
		tpl = ps.summary["en"]
	}
	out, err := tpl.RenderString(liquid.Bindings{
		"start":      start.UTC().Format(dateLayout),
		"end":        end.UTC().Format(dateLayout),
		"count":      stats.EntryCount,
		"average":    strconv.FormatFloat(stats.AverageRating, 'f', 1, 64),
		"categories": stats.Categories.String(),
	})
	if err != nil {
		return "", fmt.Errorf("render summary prompt: %w", err)
	}
	return out, nil
}

// renderAnalysis builds the single-entry prompt.
func (ps *promptSet) renderAnalysis(lang, text, previous string) (string, error) {
	tpl, ok := ps.analysis[lang]
	if !ok {
		tpl = ps.analysis["en"]
	}
	out, err := tpl.RenderString(liquid.Bindings{
		"text":             text,
		"previous_context": previous,
	})
	if err != nil {
		return "", fmt.Errorf("render analysis prompt: %w", err)
	}
	return out, nil
}
