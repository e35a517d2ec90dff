// tag.go implements tag string validation.
//
// Tags are free-form labels attached to a specific version. Validation is
// minimal by design: tags are user-defined, and overly restrictive rules
// would limit legitimate use. Only clearly dangerous inputs (empty, null
// bytes) are rejected.

package validate

import (
	"fmt"
	"strings"
)

// Tag validates a tag string.
//
// Validation rules:
//   - Empty or whitespace-only tags rejected (meaningless label)
//   - Null bytes rejected (security: prevents injection in queries/storage)
//
// Note: No max length enforced - tags are typically short labels and SQL
// handles arbitrary lengths.
func Tag(t string) error {
	if strings.TrimSpace(t) == "" {
		return fmt.Errorf("%w: empty tag", ErrInvalidTag)
	}
	if strings.ContainsRune(t, 0) {
		return fmt.Errorf("%w: null byte in tag", ErrInvalidTag)
	}
	return nil
}
