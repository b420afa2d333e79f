// Package redact provides utilities for redacting sensitive information from strings
// and JSON payloads before they are logged. Failure payloads returned by the remote
// query service can echo back the context they were given, which for user
// operations includes emails and passwords.
package redact

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// rules are applied in order; the JWT rule must run before the bearer rule.
var rules = []rule{
	{
		pattern:     regexp.MustCompile(`(?i)(postgres|postgresql|mysql|mongodb)://[^@\s]+@`),
		placeholder: RedactedCredentialPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
		placeholder: RedactedJWTPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/=]+`),
		placeholder: RedactedKeyPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)(password|passwd|pwd)\s*[=:]\s*['"]?[^'"&\s,}]+`),
		placeholder: RedactedCredentialPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)(api[_-]?key|token|secret)\s*[=:]\s*['"]?[A-Za-z0-9_\-.~+/]{8,}`),
		placeholder: RedactedKeyPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		placeholder: RedactedEmailPlaceholder,
	},
}

// sensitiveKeys are JSON object keys whose values are always replaced,
// compared case-insensitively with '_' and '-' removed.
var sensitiveKeys = []string{"password", "passwd", "secret", "token", "apikey", "authorization"}

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}

// Payload renders a JSON payload for logging with sensitive values masked.
// Values under sensitive keys are replaced outright; every other string is
// passed through String. Input that is not valid JSON is treated as text.
func Payload(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return String(string(raw))
	}

	out, err := json.Marshal(walk(v))
	if err != nil {
		return RedactionPlaceholder
	}
	return string(out)
}

func walk(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			if isSensitiveKey(k) {
				val[k] = RedactionPlaceholder
				continue
			}
			val[k] = walk(child)
		}
		return val
	case []any:
		for i, child := range val {
			val[i] = walk(child)
		}
		return val
	case string:
		return String(val)
	default:
		return val
	}
}

func isSensitiveKey(key string) bool {
	normalized := strings.ToLower(strings.NewReplacer("_", "", "-", "").Replace(key))
	for _, s := range sensitiveKeys {
		if strings.Contains(normalized, s) {
			return true
		}
	}
	return false
}
