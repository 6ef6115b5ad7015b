package advice

import "strings"

// Fixed texts returned when no suggestion is generated. None of them is
// ever written to the advice cache.
type messages struct {
	NoData        string
	NotConfigured string
	Failed        string
}

var catalog = map[string]messages{
	"en": {
		NoData:        "No entries in this period yet. Add a few more and check back!",
		NotConfigured: "AI suggestions are unavailable: no API key is configured.",
		Failed:        "We couldn't generate a suggestion right now. Please try again later.",
	},
	"pl": {
		NoData:        "Brak danych z tego okresu. Dodaj więcej wpisów!",
		NotConfigured: "Sugestie AI są niedostępne: brak skonfigurowanego klucza API.",
		Failed:        "Nie udało się teraz wygenerować porady. Spróbuj ponownie później.",
	},
}

// normalizeLanguage picks a supported language: the requested one, then the
// fallback, then English. "pl-PL" resolves to "pl".
func normalizeLanguage(lang, fallback string) string {
	for _, l := range []string{lang, fallback} {
		if code, ok := supportedLanguage(l); ok {
			return code
		}
	}
	return "en"
}

// supportedLanguage reduces a tag such as "pl-PL" to its catalog code.
func supportedLanguage(tag string) (string, bool) {
	l := strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(l, "-_"); i > 0 {
		l = l[:i]
	}
	_, ok := catalog[l]
	return l, ok
}

func messagesFor(lang string) messages {
	return catalog[lang]
}
