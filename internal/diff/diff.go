// Package diff computes structured differences between two content
// snapshots at one of three granularities: characters, whitespace-delimited
// words, or lines.
//
// The alignment is LCS-based via go-diff's diffmatchpatch. Word and line
// modes map each distinct token to a rune and diff the rune sequences, the
// same technique diffmatchpatch uses internally for its line mode. The diff
// timeout is disabled so output is byte-identical for identical inputs,
// which the comparison cache depends on.
package diff

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Kind selects the comparison unit.
type Kind string

const (
	// KindText compares individual characters.
	KindText Kind = "text_only"
	// KindWord compares whitespace-delimited words.
	KindWord Kind = "structural"
	// KindLine compares lines. This is the default and most common mode.
	KindLine Kind = "full"
)

// ParseKind maps a user-supplied granularity string to a Kind.
// The empty string selects the default line granularity.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case "":
		return KindLine, nil
	case KindText, KindWord, KindLine:
		return Kind(s), nil
	}
	return "", fmt.Errorf("invalid comparison type %q (valid: %s, %s, %s)",
		s, KindText, KindWord, KindLine)
}

// ChangeType classifies a run of units.
type ChangeType string

const (
	Addition ChangeType = "addition"
	Deletion ChangeType = "deletion"
)

// Change is one contiguous run of added or removed units. Count is in
// comparison units (characters, words or lines depending on Kind), not bytes.
type Change struct {
	Type  ChangeType `json:"type"`
	Value string     `json:"value"`
	Count int        `json:"count"`
}

// Stats summarises a diff in comparison-unit terms. Unchanged runs are
// counted here but not enumerated in Changes, bounding output size.
// Changes always equals Additions + Deletions.
type Stats struct {
	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
	Changes   int `json:"changes"`
	Unchanged int `json:"unchanged"`
}

// Result is the structured outcome of diffing two snapshots.
type Result struct {
	Kind    Kind     `json:"type"`
	Stats   Stats    `json:"stats"`
	Changes []Change `json:"changes"`
}

// Compute returns the difference from one snapshot to another at the given
// granularity. For fixed inputs and kind the output is identical on every
// invocation.
func Compute(from, to string, kind Kind) Result {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0 // no time-boxed bailout: determinism over speed

	switch kind {
	case KindText:
		runs := toRuns(dmp.DiffMain(from, to, false), utf8.RuneCountInString)
		return collect(kind, runs)
	case KindWord:
		return tokenDiff(dmp, kind, strings.Fields(from), strings.Fields(to), " ")
	default:
		return tokenDiff(dmp, kind, strings.Split(from, "\n"), strings.Split(to, "\n"), "\n")
	}
}

// run is one classified stretch of comparison units.
type run struct {
	op    diffmatchpatch.Operation
	text  string
	count int
}

// tokenDiff aligns two token sequences by encoding each distinct token as a
// rune and diffing the rune strings. Unit counts come from the encoded runs
// (one rune per token), so empty tokens such as blank lines count correctly.
func tokenDiff(dmp *diffmatchpatch.DiffMatchPatch, kind Kind, from, to []string, sep string) Result {
	var table []string
	index := make(map[string]rune)

	encode := func(tokens []string) []rune {
		rs := make([]rune, len(tokens))
		for i, tok := range tokens {
			r, ok := index[tok]
			if !ok {
				r = indexToRune(len(table))
				index[tok] = r
				table = append(table, tok)
			}
			rs[i] = r
		}
		return rs
	}

	a, b := encode(from), encode(to)
	diffs := dmp.DiffMainRunes(a, b, false)

	runs := make([]run, 0, len(diffs))
	for _, d := range diffs {
		var toks []string
		for _, r := range d.Text {
			toks = append(toks, table[runeToIndex(r)])
		}
		runs = append(runs, run{
			op:    d.Type,
			text:  strings.Join(toks, sep),
			count: len(toks),
		})
	}
	return collect(kind, runs)
}

// toRuns converts raw diffs into runs using the supplied unit counter.
func toRuns(diffs []diffmatchpatch.Diff, units func(string) int) []run {
	runs := make([]run, 0, len(diffs))
	for _, d := range diffs {
		runs = append(runs, run{op: d.Type, text: d.Text, count: units(d.Text)})
	}
	return runs
}

// collect classifies runs into the result shape. Zero-unit runs are
// artefacts of the alignment and carry no information.
func collect(kind Kind, runs []run) Result {
	r := Result{Kind: kind, Changes: []Change{}}
	for _, d := range runs {
		if d.count == 0 {
			continue
		}
		switch d.op {
		case diffmatchpatch.DiffInsert:
			r.Stats.Additions += d.count
			r.Changes = append(r.Changes, Change{Type: Addition, Value: d.text, Count: d.count})
		case diffmatchpatch.DiffDelete:
			r.Stats.Deletions += d.count
			r.Changes = append(r.Changes, Change{Type: Deletion, Value: d.text, Count: d.count})
		case diffmatchpatch.DiffEqual:
			r.Stats.Unchanged += d.count
		}
	}
	r.Stats.Changes = r.Stats.Additions + r.Stats.Deletions
	return r
}

// indexToRune maps a token table index to a rune, skipping the surrogate
// range which cannot round-trip through a Go string.
func indexToRune(i int) rune {
	r := rune(i + 1)
	if r >= 0xD800 {
		r += 0x800
	}
	return r
}

func runeToIndex(r rune) int {
	if r >= 0xE000 {
		r -= 0x800
	}
	return int(r) - 1
}
