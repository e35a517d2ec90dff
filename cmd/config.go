// config.go implements the "vers config" command for configuration management.
//
// Design: Config follows a cascade model similar to git: local config
// (.vers/config.yaml) takes precedence over global (~/.vers/config.yaml).
// The --local flag forces use of local config even if it doesn't exist yet,
// enabling config setup during init workflows.

package cmd

import (
	"fmt"

	"github.com/caldera-cms/vers/internal/config"
	"github.com/caldera-cms/vers/internal/log"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config [key] [value]",
		Short: "View or set config values",
		Long: `View or set config values.

  vers config                          # show config
  vers config author.name              # show author.name value
  vers config author.name "A. Writer"  # set author.name

Configuration locations:
  Global: ~/.vers/config.yaml
  Local:  .vers/config.yaml

Uses local config if it exists, otherwise global.
Writes go to the same place reads come from.
Use --local to use local config instead.`,
		Args: cobra.MaximumNArgs(2),
		RunE: runConfig,
	}
	c.Flags().Bool("local", false, "Use local config (.vers/config.yaml)")
	return c
}

func runConfig(c *cobra.Command, args []string) error {
	forceLocal, _ := c.Flags().GetBool("local")

	var cfg *config.Config
	var err error
	if forceLocal {
		cfg, err = config.LoadScope(config.ScopeLocal)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return PrintJSONError(fmt.Errorf("config load: %w", err))
	}

	scopeName := "global"
	if cfg.Scope() == config.ScopeLocal {
		scopeName = "local"
	}

	switch len(args) {
	case 0:
		for _, k := range config.Keys() {
			v, err := cfg.Get(k)
			if err != nil {
				return PrintJSONError(err)
			}
			fmt.Fprintf(Out(), "%s: %s\n", k, v)
		}
		log.Event("cli:config", "list").Author(Author()).Write(nil)

	case 1:
		v, err := cfg.Get(args[0])
		log.Event("cli:config", "get").Author(Author()).Detail("key", args[0]).Write(err)
		if err != nil {
			return PrintJSONError(fmt.Errorf("config get %q: %w", args[0], err))
		}
		fmt.Fprintln(Out(), v)

	case 2:
		if err := cfg.Set(args[0], args[1]); err != nil {
			log.Event("cli:config", "set").Author(Author()).Detail("key", args[0]).Write(err)
			return PrintJSONError(fmt.Errorf("config set %q: %w", args[0], err))
		}

		saveErr := cfg.Save()
		// Value intentionally not logged to keep personal details out of the audit log
		log.Event("cli:config", "set").Author(Author()).Detail("key", args[0]).Detail("scope", scopeName).Write(saveErr)
		if saveErr != nil {
			return PrintJSONError(fmt.Errorf("config save: %w", saveErr))
		}
		fmt.Fprintf(Out(), "%s = %s (%s)\n", args[0], args[1], scopeName)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(newConfigCmd())
}
