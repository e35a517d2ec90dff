package diff

import (
	"reflect"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Kind
		wantErr bool
	}{
		{name: "empty defaults to line", input: "", want: KindLine},
		{name: "full", input: "full", want: KindLine},
		{name: "structural", input: "structural", want: KindWord},
		{name: "text_only", input: "text_only", want: KindText},
		{name: "unknown", input: "semantic", wantErr: true},
		{name: "wrong case", input: "Full", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseKind(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKind(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestComputeWord(t *testing.T) {
	r := Compute("Hello world", "Hello there world", KindWord)

	if r.Kind != KindWord {
		t.Errorf("Kind = %v, want %v", r.Kind, KindWord)
	}
	want := Stats{Additions: 1, Deletions: 0, Changes: 1, Unchanged: 2}
	if r.Stats != want {
		t.Errorf("Stats = %+v, want %+v", r.Stats, want)
	}
	if len(r.Changes) != 1 {
		t.Fatalf("Changes = %+v, want one addition", r.Changes)
	}
	if r.Changes[0].Type != Addition || r.Changes[0].Value != "there" || r.Changes[0].Count != 1 {
		t.Errorf("Changes[0] = %+v, want addition of %q", r.Changes[0], "there")
	}
}

func TestComputeLine(t *testing.T) {
	from := "alpha\nbravo\ncharlie"
	to := "alpha\ndelta\ncharlie"

	r := Compute(from, to, KindLine)

	want := Stats{Additions: 1, Deletions: 1, Changes: 2, Unchanged: 2}
	if r.Stats != want {
		t.Errorf("Stats = %+v, want %+v", r.Stats, want)
	}

	var added, removed []string
	for _, c := range r.Changes {
		switch c.Type {
		case Addition:
			added = append(added, c.Value)
		case Deletion:
			removed = append(removed, c.Value)
		}
	}
	if !reflect.DeepEqual(added, []string{"delta"}) || !reflect.DeepEqual(removed, []string{"bravo"}) {
		t.Errorf("added %v removed %v, want [delta] and [bravo]", added, removed)
	}
}

func TestComputeText(t *testing.T) {
	r := Compute("colour", "color", KindText)

	if r.Stats.Deletions != 1 || r.Stats.Additions != 0 {
		t.Errorf("Stats = %+v, want one deleted character", r.Stats)
	}
	if r.Stats.Unchanged != 5 {
		t.Errorf("Unchanged = %d, want 5", r.Stats.Unchanged)
	}
}

func TestComputeIdentical(t *testing.T) {
	for _, kind := range []Kind{KindText, KindWord, KindLine} {
		r := Compute("same text\nacross lines", "same text\nacross lines", kind)
		if r.Stats.Additions != 0 || r.Stats.Deletions != 0 || r.Stats.Changes != 0 {
			t.Errorf("%s: identical inputs should report no changes, got %+v", kind, r.Stats)
		}
		if len(r.Changes) != 0 {
			t.Errorf("%s: Changes = %+v, want empty", kind, r.Changes)
		}
	}
}

func TestComputeEmptySides(t *testing.T) {
	r := Compute("", "new line", KindLine)
	if r.Stats.Additions == 0 {
		t.Errorf("empty from should yield additions, got %+v", r.Stats)
	}

	r = Compute("old line", "", KindLine)
	if r.Stats.Deletions == 0 {
		t.Errorf("empty to should yield deletions, got %+v", r.Stats)
	}
}

func TestComputeBlankLinesCount(t *testing.T) {
	// A blank line is a unit at line granularity and must be counted.
	r := Compute("alpha\nbravo", "alpha\n\nbravo", KindLine)
	if r.Stats.Additions != 1 {
		t.Errorf("Additions = %d, want 1 for inserted blank line", r.Stats.Additions)
	}
}

func TestComputeDeterministic(t *testing.T) {
	from := "The quick brown fox jumps over the lazy dog.\nPack my box with five dozen liquor jugs.\n"
	to := "The quick red fox leaps over the lazy dog.\nPack my crate with five dozen liquor jugs.\n"

	for _, kind := range []Kind{KindText, KindWord, KindLine} {
		first := Compute(from, to, kind)
		for range 5 {
			if got := Compute(from, to, kind); !reflect.DeepEqual(got, first) {
				t.Fatalf("%s: Compute is not deterministic", kind)
			}
		}
	}
}

func TestComputeDirectionMirrors(t *testing.T) {
	from := "alpha\nbravo\ncharlie"
	to := "alpha\ncharlie\ndelta"

	fwd := Compute(from, to, KindLine)
	rev := Compute(to, from, KindLine)

	if fwd.Stats.Additions != rev.Stats.Deletions || fwd.Stats.Deletions != rev.Stats.Additions {
		t.Errorf("reversed diff should mirror counts: fwd %+v rev %+v", fwd.Stats, rev.Stats)
	}
}

func TestComputeUnicode(t *testing.T) {
	// Counts are in runes, not bytes.
	r := Compute("héllo", "héllo!", KindText)
	if r.Stats.Unchanged != 5 || r.Stats.Additions != 1 {
		t.Errorf("Stats = %+v, want 5 unchanged runes and 1 addition", r.Stats)
	}
}

func TestTokenTableRoundTrip(t *testing.T) {
	// Exercises the surrogate-range gap in the rune encoding.
	for _, i := range []int{0, 1, 0xD7FE, 0xD7FF, 0xD800, 0xE000, 0x10000} {
		r := indexToRune(i)
		if r >= 0xD800 && r < 0xE000 {
			t.Errorf("indexToRune(%d) = %U, inside surrogate range", i, r)
		}
		if got := runeToIndex(r); got != i {
			t.Errorf("runeToIndex(indexToRune(%d)) = %d", i, got)
		}
	}
}
