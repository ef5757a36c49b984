package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/knakagawa/agile-dashboard-api/internal/constants"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-z0-9._-]+$`)
	jsProtocol      = regexp.MustCompile(`(?i)javascript:`)
	eventHandler    = regexp.MustCompile(`(?i)on\w+=`)
)

// SanitizeString trims, caps the length, and strips markup-injection
// fragments from free-text input. Check-in narratives and task descriptions
// are rendered back into the browser dashboard, so angle brackets and inline
// handlers are removed rather than escaped.
func SanitizeString(input string, maxLength int) string {
	s := strings.TrimSpace(input)
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	s = jsProtocol.ReplaceAllString(s, "")
	s = eventHandler.ReplaceAllString(s, "")
	return s
}

// NormalizeUsername lowercases and validates a username, returning the
// canonical form used as the storage key.
func NormalizeUsername(username string) (string, error) {
	u := strings.ToLower(strings.TrimSpace(username))
	if len(u) < constants.MinUsernameLength {
		return "", fmt.Errorf("username must be at least %d characters", constants.MinUsernameLength)
	}
	if len(u) > constants.MaxUsernameLength {
		return "", fmt.Errorf("username must be %d characters or less", constants.MaxUsernameLength)
	}
	if !usernamePattern.MatchString(u) {
		return "", fmt.Errorf("username can only contain letters, numbers, dots, dashes, and underscores")
	}
	return u, nil
}
