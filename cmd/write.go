// write.go implements the "vers write" command for creating versions.
//
// Design: Write accepts content from multiple sources in priority order:
// 1. Direct argument (for short content)
// 2. File flag (for existing files)
// 3. Stdin (for piping)
// This flexibility supports both interactive and scripted workflows.
// Identical content is deduplicated: the write becomes a no-op and the
// current head is reported unchanged.

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/caldera-cms/vers/internal/engine"
	"github.com/caldera-cms/vers/internal/log"
	"github.com/caldera-cms/vers/internal/store"
	"github.com/spf13/cobra"
)

// writeResult contains the outcome of a write operation.
type writeResult struct {
	Created bool              `json:"created"`
	Version store.VersionJSON `json:"version"`
}

func newWriteCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "write <id> <type> [content]",
		Short: "Write a new version of a content item",
		Long: `Create a new version of a content item. Content from argument, stdin, or -f flag.

  vers write healthcare-2026 speech "Full text..."
  vers write healthcare-2026 speech -f draft.txt
  cat draft.txt | vers write healthcare-2026 speech

The first write of an id/type pair creates version 1; later writes append
version 2, 3, and so on. Writing content identical to the current version
is a no-op.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: runWrite,
	}
	c.Flags().StringP("title", "t", "", "Human-readable title for this version")
	c.Flags().StringP("file", "f", "", "Read content from file")
	c.Flags().StringArrayP("tag", "T", nil, "Tag to apply to the new version (repeatable)")
	return c
}

func runWrite(c *cobra.Command, args []string) error {
	ctx := c.Context()
	id, ctype := args[0], args[1]
	var content string

	file, _ := c.Flags().GetString("file")
	switch {
	case len(args) >= 3:
		content = args[2]
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return PrintJSONError(fmt.Errorf("read file %q: %w", file, err))
		}
		content = string(data)
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return PrintJSONError(fmt.Errorf("read stdin: %w", err))
		}
		content = string(data)
	}

	title, _ := c.Flags().GetString("title")
	tags, _ := c.Flags().GetStringArray("tag")

	v, created, err := svc.Create(ctx, id, ctype, engine.CreateInput{
		Title:   title,
		Content: content,
		Summary: Message(),
		Major:   Major(),
		Tags:    tags,
		Author:  Author(),
	})

	b := log.Event("cli:write", "write").
		Author(Author()).
		Item(id, ctype).
		Detail("created", created)
	if v != nil {
		b = b.ResultVersion(v.Version)
	}
	b.Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("write %s/%s: %w", id, ctype, err))
	}

	if !JSON() {
		if created {
			fmt.Fprintf(Out(), "Created %s/%s v%d (%s)\n", id, ctype, v.Version, v.Key)
		} else {
			fmt.Fprintf(Out(), "No changes, %s/%s remains at v%d (%s)\n", id, ctype, v.Version, v.Key)
		}
	}
	return PrintJSON(writeResult{Created: created, Version: v.ToJSON(false)})
}

func init() {
	rootCmd.AddCommand(newWriteCmd())
}
