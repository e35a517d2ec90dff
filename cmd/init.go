// init.go implements the "vers init" command for repository initialisation.
//
// Init is special because it runs before a store exists and creates the
// initial database.
//
// Design: Init does NOT create config - that's managed separately via
// "vers config". This follows git's model where init creates repository
// structure and config is separate.

package cmd

import (
	"fmt"

	"github.com/caldera-cms/vers/internal/log"
	"github.com/caldera-cms/vers/internal/repo"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Initialise a new vers repository",
		Long: `Creates a .vers/vers.db database in the current directory.

Use --db to create additional databases:
  vers init --db drafts    # creates .vers/vers-drafts.db

Use --dir to create in a different directory:
  vers init --dir /path/to/project    # creates /path/to/project/.vers/vers.db

Note: init does not create config. Use "vers config" to set up configuration.`,
		RunE: runInit,
	}
	c.Flags().Bool("force", false, "Reinitialise an existing database")
	c.Flags().String("dir", "", "Target directory (default current directory)")
	return c
}

func runInit(c *cobra.Command, _ []string) error {
	force, _ := c.Flags().GetBool("force")
	dir, _ := c.Flags().GetString("dir")
	db := DB()

	err := repo.Init(force, db, dir)

	log.Event("cli:init", "init").
		Author(Author()).
		Detail("db", db).
		Detail("dir", dir).
		Detail("force", force).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("init: %w", err))
	}

	loc := repo.Dir + "/" + repo.DBFileName(db)
	if dir != "" {
		loc = dir + "/" + loc
	}
	fmt.Fprintf(Out(), "Initialised vers repository in %s\n", loc)
	return nil
}

func init() {
	rootCmd.AddCommand(newInitCmd())
}
