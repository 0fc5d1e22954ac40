package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/curiouscoder-cmd/mindmend-api/internal/generation"
)

// parseStructuredResponse decodes model output into out. It tolerates
// exactly two kinds of wrapping — surrounding whitespace and Markdown code
// fences (``` or ```json) — and nothing else. Any other deviation from valid
// JSON of the expected shape is a malformed-response error; there is no
// partial recovery.
func parseStructuredResponse(raw string, out any) error {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}

	if text == "" {
		return fmt.Errorf("%w: empty response body", generation.ErrInvalidResponse)
	}

	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("%w: failed to parse JSON response: %v", generation.ErrInvalidResponse, err)
	}
	return nil
}
