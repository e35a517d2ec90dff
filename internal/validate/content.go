// content.go implements snapshot content validation.
//
// Content validation is intentionally minimal - only size is checked, not
// format. The engine treats content as an opaque string for hashing and
// diffing; it never interprets structure. Snapshots can hold any UTF-8 text
// (speeches, biographies, markdown, data).

package validate

// Content validates snapshot content size.
//
// Validation rules:
//   - Max length enforced if maxLen > 0 (0 means no limit)
//
// The default limit (via service config) prevents accidental storage of huge
// payloads that would bloat the SQLite database.
func Content(content string, maxLen int64) error {
	if maxLen > 0 && int64(len(content)) > maxLen {
		return ErrContentTooLarge
	}
	return nil
}
