// stats.go implements the "vers stats" command for aggregate statistics.
//
// Design: With no arguments the command reports database-wide counts for
// operational visibility; with an id/type pair it reports that item's
// history profile including per-contributor version counts.

package cmd

import (
	"fmt"

	"github.com/caldera-cms/vers/internal/format"
	"github.com/caldera-cms/vers/internal/log"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [id] [type]",
		Short: "Show version statistics",
		Long: `Show aggregate statistics for the whole database or one item.

  vers stats                          # database-wide
  vers stats healthcare-2026 speech   # one item`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("expected no arguments or <id> <type>, got %d arguments", len(args))
			}
			return nil
		},
		RunE: runStats,
	}
}

func runStats(c *cobra.Command, args []string) error {
	ctx := c.Context()

	if len(args) == 2 {
		id, ctype := args[0], args[1]
		st, err := svc.VersionStats(ctx, id, ctype)

		log.Event("cli:stats", "item_stats").
			Author(Author()).
			Item(id, ctype).
			Write(err)

		if err != nil {
			return PrintJSONError(fmt.Errorf("stats %s/%s: %w", id, ctype, err))
		}
		if JSON() {
			return PrintJSON(st)
		}
		format.ItemStats(Out(), id, ctype, st)
		return nil
	}

	st, err := svc.Stats(ctx)

	log.Event("cli:stats", "stats").
		Author(Author()).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("stats: %w", err))
	}
	if JSON() {
		return PrintJSON(st)
	}
	format.GlobalStats(Out(), st, svc.DBPath())
	return nil
}

func init() {
	rootCmd.AddCommand(newStatsCmd())
}
