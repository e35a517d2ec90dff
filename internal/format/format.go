// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// business logic while this package handles presentation concerns like
// column alignment, unified diff rendering, and colourised output.
package format

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/caldera-cms/vers/internal/diff"
	"github.com/caldera-cms/vers/internal/engine"
	"github.com/caldera-cms/vers/internal/store"
	"github.com/pmezard/go-difflib/difflib"
)

// contextLines is the number of unchanged lines shown around changes in
// unified diff output.
const contextLines = 3

// humanSize formats a byte count as human-readable (e.g., "1.2K", "3.4M").
func humanSize(bytes int64) string {
	const (
		_        = iota
		KB int64 = 1 << (10 * iota)
		MB
		GB
	)
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1fG", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1fM", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1fK", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

// Version prints a single version's metadata in long format.
func Version(w io.Writer, v *store.Version) {
	fmt.Fprintf(w, "%s/%s v%d", v.ContentID, v.ContentType, v.Version)
	if v.Major {
		fmt.Fprint(w, " [major]")
	}
	fmt.Fprintln(w)
	if v.Title != "" {
		fmt.Fprintf(w, "Title:   %s\n", v.Title)
	}
	fmt.Fprintf(w, "Key:     %s\n", v.Key)
	fmt.Fprintf(w, "Author:  %s\n", v.Author)
	fmt.Fprintf(w, "Created: %s\n", time.Unix(v.CreatedAt, 0).Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "Size:    %s\n", humanSize(int64(len(v.Content))))
	if v.Summary != "" {
		fmt.Fprintf(w, "Summary: %s\n", v.Summary)
	}
	if len(v.Tags) > 0 {
		fmt.Fprintf(w, "Tags:    %s\n", strings.Join(v.Tags, ", "))
	}
}

// History prints version history in list format, newest first.
func History(w io.Writer, versions []store.Version) {
	for i := range versions {
		v := &versions[i]
		t := time.Unix(v.CreatedAt, 0)
		msg := "-"
		if v.Summary != "" {
			msg = fmt.Sprintf("%q", v.Summary)
		}
		marker := " "
		if v.Major {
			marker = "*"
		}
		fmt.Fprintf(w, "%s  v%-3d%s %s  %-16s  %s", v.Key, v.Version, marker, t.Format("2006-01-02 15:04"), v.Author, msg)
		if len(v.Tags) > 0 {
			fmt.Fprintf(w, "  [%s]", strings.Join(v.Tags, ", "))
		}
		fmt.Fprintln(w)
	}
}

// HistoryDiff prints version history with unified diffs between adjacent
// versions. Versions are expected in descending order (newest first).
func HistoryDiff(w io.Writer, versions []store.Version, colour bool) error {
	for i := 0; i < len(versions)-1; i++ {
		newer := &versions[i]
		older := &versions[i+1]

		t := time.Unix(newer.CreatedAt, 0)
		fmt.Fprintf(w, "=== v%d -> v%d (%s by %s) ===\n",
			older.Version, newer.Version,
			t.Format("2006-01-02 15:04"),
			newer.Author,
		)
		if newer.Summary != "" {
			fmt.Fprintf(w, "Summary: %s\n", newer.Summary)
		}

		u, err := Unified(older, newer)
		if err != nil {
			return err
		}
		if colour {
			u = Colourise(u)
		}
		fmt.Fprint(w, u)
		fmt.Fprintln(w)
	}
	return nil
}

// Unified renders a line-level unified diff between two versions, labelled
// by version number.
func Unified(from, to *store.Version) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(from.Content),
		B:        difflib.SplitLines(to.Content),
		FromFile: fmt.Sprintf("v%d", from.Version),
		ToFile:   fmt.Sprintf("v%d", to.Version),
		Context:  contextLines,
	})
}

// Colourise adds ANSI colours to unified diff output.
func Colourise(d string) string {
	const (
		red   = "\033[31m"
		green = "\033[32m"
		cyan  = "\033[36m"
		reset = "\033[0m"
	)

	var b strings.Builder
	for _, line := range strings.Split(d, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			b.WriteString(line + "\n")
		case strings.HasPrefix(line, "@@"):
			b.WriteString(cyan + line + reset + "\n")
		case strings.HasPrefix(line, "-"):
			b.WriteString(red + line + reset + "\n")
		case strings.HasPrefix(line, "+"):
			b.WriteString(green + line + reset + "\n")
		default:
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// Comparison prints a structured comparison with change stats followed by a
// unified diff of the two snapshots.
func Comparison(w io.Writer, cmp *engine.Comparison, from, to *store.Version, colour bool) error {
	unit := "lines"
	switch cmp.Kind {
	case diff.KindWord:
		unit = "words"
	case diff.KindText:
		unit = "characters"
	}

	fmt.Fprintf(w, "%s/%s v%d -> v%d (%s)\n", cmp.ContentID, cmp.ContentType, cmp.FromVersion, cmp.ToVersion, cmp.Kind)
	fmt.Fprintf(w, "+%d -%d %s, %d unchanged\n\n",
		cmp.Diff.Stats.Additions, cmp.Diff.Stats.Deletions, unit, cmp.Diff.Stats.Unchanged)

	u, err := Unified(from, to)
	if err != nil {
		return err
	}
	if u == "" {
		fmt.Fprintln(w, "No changes.")
		return nil
	}
	if colour {
		u = Colourise(u)
	}
	fmt.Fprint(w, u)
	return nil
}

// ContentList prints one row per versioned item.
func ContentList(w io.Writer, items []store.ContentSummary) {
	if len(items) == 0 {
		return
	}

	maxID := 2 // minimum "ID"
	for _, it := range items {
		if len(it.ContentID) > maxID {
			maxID = len(it.ContentID)
		}
	}

	fmt.Fprintf(w, "%-*s  %-12s  %4s  %8s  %s\n", maxID, "ID", "TYPE", "VER", "VERSIONS", "UPDATED")
	for _, it := range items {
		updated := time.Unix(it.LastUpdated, 0).Format("2006-01-02 15:04")
		fmt.Fprintf(w, "%-*s  %-12s  v%-3d  %8d  %s\n", maxID, it.ContentID, it.ContentType, it.LatestVersion, it.VersionCount, updated)
	}
}

// ItemStats prints aggregated statistics for one item's history.
func ItemStats(w io.Writer, contentID, contentType string, st *store.VersionStats) {
	fmt.Fprintf(w, "%s/%s\n", contentID, contentType)
	fmt.Fprintf(w, "Versions:  %d (%d major)\n", st.TotalVersions, st.MajorVersions)
	fmt.Fprintf(w, "First:     %s\n", time.Unix(st.FirstVersionAt, 0).Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "Last:      %s\n", time.Unix(st.LastVersionAt, 0).Format("2006-01-02 15:04"))
	fmt.Fprintln(w, "Contributors:")
	for _, c := range st.Contributors {
		fmt.Fprintf(w, "  %-20s  %d\n", c.Name, c.VersionCount)
	}
}

// GlobalStats prints aggregate database statistics.
func GlobalStats(w io.Writer, st *store.Stats, dbPath string) {
	fmt.Fprintf(w, "Database:     %s\n", dbPath)
	fmt.Fprintf(w, "Items:        %d\n", st.Items)
	fmt.Fprintf(w, "Versions:     %d (%d major)\n", st.TotalVersions, st.MajorVersions)
	fmt.Fprintf(w, "Tags:         %d\n", st.Tags)
	fmt.Fprintf(w, "Comparisons:  %d\n", st.Comparisons)
	fmt.Fprintf(w, "Authors:      %d\n", st.Authors)
	if st.TotalVersions > 0 {
		fmt.Fprintf(w, "Oldest:       %s\n", time.Unix(st.OldestVersion, 0).Format("2006-01-02 15:04"))
		fmt.Fprintf(w, "Newest:       %s\n", time.Unix(st.NewestVersion, 0).Format("2006-01-02 15:04"))
	}
}
