// show.go implements the "vers show" command for reading version content.
//
// Design: Show behaves like Unix cat for versioned content. The default
// prints the raw snapshot so output can be piped or redirected; --meta
// prints metadata instead. The -v flag selects a historical version, with
// the current head as default.

package cmd

import (
	"fmt"

	"github.com/caldera-cms/vers/internal/format"
	"github.com/caldera-cms/vers/internal/log"
	"github.com/caldera-cms/vers/internal/store"
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "show <id> <type>",
		Short: "Show a version of a content item",
		Long: `Output the content of a version to stdout.

  vers show healthcare-2026 speech          # current version
  vers show healthcare-2026 speech -v 3     # version 3
  vers show healthcare-2026 speech --meta   # metadata only`,
		Args: cobra.ExactArgs(2),
		RunE: runShow,
	}
	c.Flags().IntP("version", "v", 0, "Show a specific version (default latest)")
	c.Flags().Bool("meta", false, "Show metadata instead of content")
	c.Flags().StringP("key", "k", "", "Look up by version key instead of id/type")
	return c
}

func runShow(c *cobra.Command, args []string) error {
	ctx := c.Context()
	id, ctype := args[0], args[1]
	ver, _ := c.Flags().GetInt("version")
	meta, _ := c.Flags().GetBool("meta")
	key, _ := c.Flags().GetString("key")

	var v *store.Version
	var err error
	switch {
	case key != "":
		v, err = svc.ByKey(ctx, key)
	case ver > 0:
		v, err = svc.Get(ctx, id, ctype, ver)
	default:
		v, err = svc.Latest(ctx, id, ctype)
	}

	b := log.Event("cli:show", "read").Author(Author()).Item(id, ctype)
	if v != nil {
		b = b.ResultVersion(v.Version)
	}
	b.Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("show %s/%s: %w", id, ctype, err))
	}

	if JSON() {
		return PrintJSON(v.ToJSON(!meta))
	}
	if meta {
		format.Version(Out(), v)
		return nil
	}
	fmt.Fprint(Out(), v.Content)
	return nil
}

func init() {
	rootCmd.AddCommand(newShowCmd())
}
