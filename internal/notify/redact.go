package notify

import (
	"encoding/json"
	"strings"
)

// sensitiveKeys never reach the error-log sheet in clear text.
var sensitiveKeys = map[string]bool{
	"email":       true,
	"phone":       true,
	"password":    true,
	"newpassword": true,
	"token":       true,
	"authorization": true,
}

// RedactContext serializes a request context map for the error log, masking
// sensitive fields.
func RedactContext(ctx map[string]any) string {
	redacted := make(map[string]any, len(ctx))
	for k, v := range ctx {
		if sensitiveKeys[strings.ToLower(k)] {
			redacted[k] = "[redacted]"
			continue
		}
		redacted[k] = v
	}

	raw, err := json.Marshal(redacted)
	if err != nil {
		return "unserializable context"
	}
	return string(raw)
}
