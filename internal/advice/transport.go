package advice

import (
	"net/http"

	"github.com/moodjournal/mood-api/internal/config"
	"github.com/moodjournal/mood-api/internal/pkg/httpretry"
)

// newHTTPDoer builds the transport for the chat endpoint. Per-attempt
// deadlines come from the request context, so the client itself has no
// timeout; MaxRetries defaults to 0, one request per model.
func newHTTPDoer(cfg config.LLMConfig) httpretry.HTTPDoer {
	return httpretry.NewRetryClient(&http.Client{}, cfg.MaxRetries)
}
