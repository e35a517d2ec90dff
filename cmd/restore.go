// restore.go implements the "vers restore" command for recovering past versions.
//
// Design: Restore never rewrites history. The target snapshot is re-created
// as a brand-new version at the head of history, tagged so the provenance
// is visible later. Restoring the version that is already current is a
// no-op thanks to content dedup.

package cmd

import (
	"fmt"
	"strconv"

	"github.com/caldera-cms/vers/internal/log"
	"github.com/caldera-cms/vers/internal/store"
	"github.com/spf13/cobra"
)

// restoreResult contains the outcome of a restore operation.
type restoreResult struct {
	Created bool              `json:"created"`
	Version store.VersionJSON `json:"version"`
}

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id> <type> <version>",
		Short: "Restore a historical version as the new current version",
		Long: `Re-create a past version of a content item as a new current version.

  vers restore healthcare-2026 speech 3

The restored version keeps the historical title and content, is flagged
major, and carries "restored" and "from_vN" tags. History is never
rewritten; the restore itself appears as a new version.`,
		Args: cobra.ExactArgs(3),
		RunE: runRestore,
	}
}

func runRestore(c *cobra.Command, args []string) error {
	ctx := c.Context()
	id, ctype := args[0], args[1]

	target, err := strconv.Atoi(args[2])
	if err != nil {
		return PrintJSONError(fmt.Errorf("invalid version %q", args[2]))
	}

	v, created, err := svc.Restore(ctx, id, ctype, target, Author())

	b := log.Event("cli:restore", "restore").
		Author(Author()).
		Item(id, ctype).
		Detail("target", target).
		Detail("created", created)
	if v != nil {
		b = b.ResultVersion(v.Version)
	}
	b.Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("restore %s/%s v%d: %w", id, ctype, target, err))
	}

	if !JSON() {
		if created {
			fmt.Fprintf(Out(), "Restored %s/%s v%d as v%d\n", id, ctype, target, v.Version)
		} else {
			fmt.Fprintf(Out(), "%s/%s is already at the content of v%d (current v%d)\n", id, ctype, target, v.Version)
		}
	}
	return PrintJSON(restoreResult{Created: created, Version: v.ToJSON(false)})
}

func init() {
	rootCmd.AddCommand(newRestoreCmd())
}
