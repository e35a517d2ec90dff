// ls.go implements the "vers ls" command for listing versioned items.
//
// Design: One row per distinct id/type pair, most recently updated first,
// without loading snapshot content. The --type flag narrows the listing to
// one content type.

package cmd

import (
	"fmt"

	"github.com/caldera-cms/vers/internal/format"
	"github.com/caldera-cms/vers/internal/log"
	"github.com/spf13/cobra"
)

func newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ls",
		Short: "List versioned content items",
		Long: `List all versioned content items with their version counts.

  vers ls                 # all items
  vers ls --type speech   # speeches only`,
		Args: cobra.NoArgs,
		RunE: runLs,
	}
	c.Flags().String("type", "", "Only list items of this content type")
	return c
}

func runLs(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	ctype, _ := c.Flags().GetString("type")

	items, err := svc.ListContent(ctx, ctype)

	log.Event("cli:ls", "list").
		Author(Author()).
		Detail("type", ctype).
		Detail("count", len(items)).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("ls: %w", err))
	}

	if JSON() {
		return PrintJSON(items)
	}
	format.ContentList(Out(), items)
	return nil
}

func init() {
	rootCmd.AddCommand(newLsCmd())
}
