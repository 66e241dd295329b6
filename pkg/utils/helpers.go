package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateRequestID generates a unique request ID for tracking
func GenerateRequestID() string {
	return uuid.New().String()
}

// GenerateSubmissionID generates a unique application submission ID
func GenerateSubmissionID() string {
	return "app_" + uuid.New().String()
}

// GenerateConfirmationCode generates a short human-readable confirmation code
// for a submitted application.
func GenerateConfirmationCode() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "JH-" + strings.ToUpper(raw[:8])
}

// FormatDuration formats a duration to a human-readable string
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return d.String()
	}
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.1fm", d.Minutes())
	}
	return fmt.Sprintf("%.1fh", d.Hours())
}

// GetIntOrDefault returns the value if positive, otherwise returns the default
func GetIntOrDefault(value, defaultValue int) int {
	if value <= 0 {
		return defaultValue
	}
	return value
}
