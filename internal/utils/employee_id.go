package utils

import (
	"fmt"
	"time"
)

// FormatEmployeeID derives a human-readable employee ID of the form
// PREFIX-YYNNNNN, e.g. "GRD-2604713". The digits come from a
// cryptographically secure source; uniqueness is enforced by the caller
// against the identity store.
func FormatEmployeeID(prefix string, now time.Time) (string, error) {
	digits, err := GenerateSecureRandomDigits(5)
	if err != nil {
		return "", fmt.Errorf("failed to generate employee ID digits: %w", err)
	}
	return fmt.Sprintf("%s-%02d%s", prefix, now.Year()%100, digits), nil
}
