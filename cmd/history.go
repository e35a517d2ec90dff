// history.go implements the "vers history" command for viewing version history.
//
// Design: History shows all versions with metadata (author, timestamp,
// summary, tags), newest first. This enables audit trails and informed
// decisions about which version to restore. The -d flag renders unified
// diffs between adjacent versions, colourised on a terminal.

package cmd

import (
	"fmt"
	"os"

	"github.com/caldera-cms/vers/internal/format"
	"github.com/caldera-cms/vers/internal/log"
	"github.com/caldera-cms/vers/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newHistoryCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "history <id> <type>",
		Short: "Show version history for a content item",
		Long: `Display version history for a content item, newest first.

  vers history healthcare-2026 speech
  vers history healthcare-2026 speech -n 5      # last 5 versions
  vers history healthcare-2026 speech --major   # milestones only
  vers history healthcare-2026 speech -d        # with diffs`,
		Args: cobra.ExactArgs(2),
		RunE: runHistory,
	}
	c.Flags().IntP("limit", "n", 0, "Limit number of versions shown")
	c.Flags().BoolP("diff", "d", false, "Show diffs between versions")
	return c
}

func runHistory(c *cobra.Command, args []string) error {
	ctx := c.Context()
	id, ctype := args[0], args[1]
	limit, _ := c.Flags().GetInt("limit")
	showDiff, _ := c.Flags().GetBool("diff")

	if limit < 0 {
		return PrintJSONError(fmt.Errorf("limit must be >= 0, got %d", limit))
	}

	versions, err := svc.History(ctx, id, ctype, store.HistoryOptions{
		MajorOnly: Major(),
		Limit:     limit,
	})

	log.Event("cli:history", "history").
		Author(Author()).
		Item(id, ctype).
		Detail("count", len(versions)).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("history %s/%s: %w", id, ctype, err))
	}
	if len(versions) == 0 {
		return PrintJSONError(fmt.Errorf("history %s/%s: %w", id, ctype, store.ErrNotFound))
	}

	if JSON() {
		out := make([]store.VersionJSON, len(versions))
		for i := range versions {
			out[i] = versions[i].ToJSON(false)
		}
		return PrintJSON(out)
	}

	if showDiff {
		colour := term.IsTerminal(int(os.Stdout.Fd()))
		return format.HistoryDiff(Out(), versions, colour)
	}
	format.History(Out(), versions)
	return nil
}

func init() {
	rootCmd.AddCommand(newHistoryCmd())
}
