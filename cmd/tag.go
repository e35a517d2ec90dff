// tag.go implements the "vers tag" command with subcommands add, rm, ls.
//
// Design: Tags form a set per version - adding a duplicate is a no-op and
// removing an absent tag succeeds silently. Tags are the only mutable part
// of a version, which keeps snapshots immutable while still allowing
// workflow labels ("approved", "final") to evolve.

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/caldera-cms/vers/internal/log"
	"github.com/caldera-cms/vers/internal/store"
	"github.com/spf13/cobra"
)

// tagResult contains the updated tag set after a tag mutation.
type tagResult struct {
	Key     string   `json:"key"`
	Version int      `json:"version"`
	Tags    []string `json:"tags"`
}

func newTagCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "tag",
		Short: "Manage version tags",
		Long:  `Add, remove, and list tags on versions.`,
	}
	c.AddCommand(newTagAddCmd())
	c.AddCommand(newTagRmCmd())
	c.AddCommand(newTagLsCmd())
	return c
}

func newTagAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <id> <type> <version> <tag>...",
		Short: "Add tags to a version",
		Args:  cobra.MinimumNArgs(4),
		RunE:  runTagAdd,
	}
}

func newTagRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id> <type> <version> <tag>",
		Short: "Remove a tag from a version",
		Args:  cobra.ExactArgs(4),
		RunE:  runTagRm,
	}
}

func newTagLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls <id> <type> <version>",
		Short: "List tags on a version",
		Args:  cobra.ExactArgs(3),
		RunE:  runTagLs,
	}
}

// tagArgs parses the shared id/type/version argument prefix.
func tagArgs(args []string) (id, ctype string, ver int, err error) {
	id, ctype = args[0], args[1]
	ver, err = strconv.Atoi(args[2])
	if err != nil {
		err = fmt.Errorf("invalid version %q", args[2])
	}
	return id, ctype, ver, err
}

func runTagAdd(c *cobra.Command, args []string) error {
	ctx := c.Context()
	id, ctype, ver, err := tagArgs(args)
	if err != nil {
		return PrintJSONError(err)
	}
	tags := args[3:]

	v, err := svc.Tag(ctx, id, ctype, ver, tags...)

	log.Event("cli:tag", "tag").
		Author(Author()).
		Item(id, ctype).
		Detail("tags", strings.Join(tags, ",")).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("tag add %s/%s v%d: %w", id, ctype, ver, err))
	}

	if !JSON() {
		fmt.Fprintf(Out(), "Tags on %s/%s v%d: %s\n", id, ctype, v.Version, joinTags(v.Tags))
	}
	return PrintJSON(tagResult{Key: v.Key, Version: v.Version, Tags: v.Tags})
}

func runTagRm(c *cobra.Command, args []string) error {
	ctx := c.Context()
	id, ctype, ver, err := tagArgs(args)
	if err != nil {
		return PrintJSONError(err)
	}
	tag := args[3]

	v, err := svc.Untag(ctx, id, ctype, ver, tag)

	log.Event("cli:tag", "untag").
		Author(Author()).
		Item(id, ctype).
		Detail("tag", tag).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("tag rm %s/%s v%d: %w", id, ctype, ver, err))
	}

	if !JSON() {
		fmt.Fprintf(Out(), "Tags on %s/%s v%d: %s\n", id, ctype, v.Version, joinTags(v.Tags))
	}
	return PrintJSON(tagResult{Key: v.Key, Version: v.Version, Tags: v.Tags})
}

func runTagLs(c *cobra.Command, args []string) error {
	ctx := c.Context()
	id, ctype, ver, err := tagArgs(args)
	if err != nil {
		return PrintJSONError(err)
	}

	var v *store.Version
	if ver > 0 {
		v, err = svc.Get(ctx, id, ctype, ver)
	} else {
		v, err = svc.Latest(ctx, id, ctype)
	}

	log.Event("cli:tag", "list_tags").
		Author(Author()).
		Item(id, ctype).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("tag ls %s/%s v%d: %w", id, ctype, ver, err))
	}

	if !JSON() {
		for _, t := range v.Tags {
			fmt.Fprintln(Out(), t)
		}
	}
	return PrintJSON(tagResult{Key: v.Key, Version: v.Version, Tags: v.Tags})
}

func joinTags(tags []string) string {
	if len(tags) == 0 {
		return "(none)"
	}
	return strings.Join(tags, ", ")
}

func init() {
	rootCmd.AddCommand(newTagCmd())
}
