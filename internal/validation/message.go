package validation

import (
	"fmt"
	"strings"

	"warbler/internal/models"
)

// ValidateMessageText checks that message text is present and within bounds.
func ValidateMessageText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("message text is required")
	}

	if len(text) > models.MaxMessageLength {
		return fmt.Errorf("message text must not exceed %d characters", models.MaxMessageLength)
	}

	return nil
}
