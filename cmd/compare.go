// compare.go implements the "vers compare" command for diffing two versions.
//
// Design: Comparisons go through the engine's persisted cache: the first
// compare of a version pair computes and stores the diff, later compares
// are served from the database. Terminal output shows change stats followed
// by a unified diff; JSON output carries the structured change list used by
// scripted consumers.

package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/caldera-cms/vers/internal/diff"
	"github.com/caldera-cms/vers/internal/format"
	"github.com/caldera-cms/vers/internal/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newCompareCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "compare <id> <type> <from> <to>",
		Short: "Compare two versions of a content item",
		Long: `Compute the difference between two versions of a content item.

  vers compare healthcare-2026 speech 1 2
  vers compare healthcare-2026 speech 1 2 -k structural

Granularities (-k):
  full        line-level comparison (default)
  structural  word-level comparison
  text_only   character-level comparison

Results are cached: comparing the same pair again is served from the
database without recomputing.`,
		Args: cobra.ExactArgs(4),
		RunE: runCompare,
	}
	c.Flags().StringP("kind", "k", "", "Comparison granularity (full, structural, text_only)")
	return c
}

func runCompare(c *cobra.Command, args []string) error {
	ctx := c.Context()
	id, ctype := args[0], args[1]

	from, err := strconv.Atoi(args[2])
	if err != nil {
		return PrintJSONError(fmt.Errorf("invalid from version %q", args[2]))
	}
	to, err := strconv.Atoi(args[3])
	if err != nil {
		return PrintJSONError(fmt.Errorf("invalid to version %q", args[3]))
	}

	kindFlag, _ := c.Flags().GetString("kind")
	kind, err := diff.ParseKind(kindFlag)
	if err != nil {
		return PrintJSONError(err)
	}

	cmp, err := svc.Compare(ctx, id, ctype, from, to, kind)

	log.Event("cli:compare", "compare").
		Author(Author()).
		Item(id, ctype).
		Detail("from", from).
		Detail("to", to).
		Detail("kind", string(kind)).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("compare %s/%s v%d v%d: %w", id, ctype, from, to, err))
	}

	if JSON() {
		return PrintJSON(cmp)
	}

	fromV, err := svc.Get(ctx, id, ctype, from)
	if err != nil {
		return err
	}
	toV, err := svc.Get(ctx, id, ctype, to)
	if err != nil {
		return err
	}
	colour := term.IsTerminal(int(os.Stdout.Fd()))
	return format.Comparison(Out(), cmp, fromV, toV, colour)
}

func init() {
	rootCmd.AddCommand(newCompareCmd())
}
