// id.go implements validation for content item identifiers.
//
// A versioned item is addressed by the pair (content id, content type).
// Both are opaque strings supplied by the caller; the engine only rejects
// inputs that would break storage or querying. Correctness of identifiers
// is otherwise the caller's responsibility.

package validate

import (
	"fmt"
	"strings"
)

// ID validates a content identifier.
//
// Validation rules:
//   - Empty identifiers rejected (nothing to key on)
//   - Null bytes rejected (security: prevents injection in queries/storage)
//   - Max length enforced if maxLen > 0 (0 means no limit)
func ID(id string, maxLen int) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: empty identifier", ErrInvalidID)
	}
	if strings.ContainsRune(id, 0) {
		return "", fmt.Errorf("%w: null byte in identifier", ErrInvalidID)
	}
	if maxLen > 0 && len(id) > maxLen {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrIDTooLong, len(id), maxLen)
	}
	return id, nil
}

// ContentType validates a content type label (e.g. "speech", "bio", "page").
//
// Types share the identifier rules but are additionally lowercased so that
// "Speech" and "speech" address the same versioned item.
func ContentType(t string, maxLen int) (string, error) {
	t = strings.TrimSpace(t)
	if t == "" {
		return "", fmt.Errorf("%w: empty type", ErrInvalidType)
	}
	if strings.ContainsRune(t, 0) {
		return "", fmt.Errorf("%w: null byte in type", ErrInvalidType)
	}
	if maxLen > 0 && len(t) > maxLen {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrIDTooLong, len(t), maxLen)
	}
	return strings.ToLower(t), nil
}

// VersionNumber validates a version number argument.
// Version numbers start at 1; zero and negatives never address a snapshot.
func VersionNumber(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: must be >= 1, got %d", ErrInvalidVersion, n)
	}
	return nil
}
