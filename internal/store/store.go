// Package store defines version persistence types and the Store interface.
// Implementations handle the actual database operations while consumers
// depend only on this interface, enabling testing and alternative backends.
package store

import (
	"encoding/json"
	"time"
)

// Version represents a single immutable snapshot of a content item. Each
// distinct write creates a new version, preserving full history for audit,
// comparison and restoration. Only the tag set is mutable after creation.
type Version struct {
	ID          int64    // Database primary key (internal)
	Key         string   // Unique 8-char identifier
	ContentID   string   // Identifier of the owning content item
	ContentType string   // Kind of content (e.g. "speech", "bio", "page")
	Version     int      // Version number (1, 2, 3, ...)
	Title       string   // Optional human label, empty if absent
	Content     string   // Full text snapshot (not a delta)
	ContentHash string   // BLAKE2b-256 hex digest of Content
	Author      string   // Opaque identifier of who created this version
	Summary     string   // Optional free-text change summary
	Major       bool     // Advisory milestone flag; does not affect numbering
	CreatedAt   int64    // Unix timestamp of creation
	Tags        []string // Sorted tag set; the only mutable field
}

// ContentSummary describes one versioned item without loading content.
// One row per distinct (content id, content type) pair.
type ContentSummary struct {
	ContentID     string `json:"content_id"`
	ContentType   string `json:"content_type"`
	VersionCount  int    `json:"version_count"`
	LatestVersion int    `json:"latest_version"`
	LastUpdated   int64  `json:"last_updated"`
}

// Contributor is one author's share of an item's history. The Name field is
// filled in by the identity collaborator; the store only knows the opaque ID.
type Contributor struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	VersionCount int    `json:"version_count"`
}

// VersionStats aggregates one item's version history.
type VersionStats struct {
	TotalVersions  int           `json:"total_versions"`
	MajorVersions  int           `json:"major_versions"`
	Contributors   []Contributor `json:"contributors"`
	FirstVersionAt int64         `json:"first_version_date"`
	LastVersionAt  int64         `json:"last_version_date"`
}

// VersionJSON is the API-friendly representation of a Version with RFC3339
// timestamps and optional content omission for bandwidth efficiency.
type VersionJSON struct {
	Key         string   `json:"key"`
	ContentID   string   `json:"content_id"`
	ContentType string   `json:"content_type"`
	Version     int      `json:"version"`
	Title       string   `json:"title,omitempty"`
	Content     string   `json:"content,omitempty"`
	ContentHash string   `json:"content_hash"`
	Author      string   `json:"created_by"`
	Summary     string   `json:"change_summary,omitempty"`
	Major       bool     `json:"is_major_version"`
	Tags        []string `json:"tags,omitempty"`
	CreatedAt   string   `json:"created_at"`
}

// ToJSON converts a Version to its API representation. The content parameter
// controls whether to include snapshot content, allowing efficient listings.
func (v *Version) ToJSON(content bool) VersionJSON {
	j := VersionJSON{
		Key:         v.Key,
		ContentID:   v.ContentID,
		ContentType: v.ContentType,
		Version:     v.Version,
		Title:       v.Title,
		ContentHash: v.ContentHash,
		Author:      v.Author,
		Summary:     v.Summary,
		Major:       v.Major,
		Tags:        v.Tags,
		CreatedAt:   time.Unix(v.CreatedAt, 0).UTC().Format(time.RFC3339),
	}
	if content {
		j.Content = v.Content
	}
	return j
}

// MarshalJSON encodes a value with indentation for human-readable CLI output.
// Use this instead of json.Marshal when the output will be displayed to users.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// CreateOptions configures a version write.
type CreateOptions struct {
	Title      string   // Optional human label
	Summary    string   // Optional change summary
	Author     string   // Who is creating this version
	Major      bool     // Mark as a milestone snapshot
	Tags       []string // Initial tag set
	MaxID      int      // Max identifier length for validation (0 = no limit)
	MaxContent int64    // Max content bytes for validation (0 = no limit)
}

// HistoryOptions configures a history listing.
type HistoryOptions struct {
	MajorOnly bool // Only versions flagged as major
	Limit     int  // Bound the number of versions returned (0 = all)
}

// Stats provides aggregate database statistics for capacity planning and
// operational visibility without querying individual tables.
type Stats struct {
	Items         int64 `json:"items"`          // Distinct versioned items
	TotalVersions int64 `json:"total_versions"` // Sum of all versions (history depth)
	MajorVersions int64 `json:"major_versions"` // Versions flagged as major
	Tags          int64 `json:"tags"`           // Tag associations
	Comparisons   int64 `json:"comparisons"`    // Cached diff results
	Authors       int64 `json:"authors"`        // Distinct authors who have written versions
	OldestVersion int64 `json:"oldest_version"` // Unix timestamp of earliest version
	NewestVersion int64 `json:"newest_version"` // Unix timestamp of most recent write
}
