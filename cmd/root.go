// root.go defines the root command and CLI execution entry point.
//
// Design: PersistentPreRunE opens the version service lazily - only
// commands that need the store trigger it. This enables bootstrap
// commands (init, guide, config, version) to work without a repository
// existing. The noStoreCommands map controls which commands skip opening.

package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/caldera-cms/vers/internal/engine"
	"github.com/caldera-cms/vers/internal/log"
	"github.com/spf13/cobra"
)

// svc is the shared version service, opened by PersistentPreRunE for
// commands that touch the store and closed by Execute.
var svc *engine.Service

// noStoreCommands do not require an initialised repository.
var noStoreCommands = map[string]bool{
	"init":       true,
	"guide":      true,
	"config":     true,
	"version":    true,
	"serve":      true,
	"help":       true,
	"completion": true,
}

// authorRequiredCommands must have an author configured before running.
var authorRequiredCommands = map[string]bool{
	"write":   true,
	"restore": true,
}

var rootCmd = &cobra.Command{
	Use:   "vers",
	Short: "Versioned content store with diff, tags and restore",
	Long:  `An append-only version store for campaign content with content-hash dedup, cached comparisons at line, word and character granularity, tagging, and point-in-time restore.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		// Detect author if not explicitly set
		if author == "" {
			author = detectAuthor()
		}

		cmdName := topLevelCmdName(cmd)
		if authorRequiredCommands[cmdName] && author == "" {
			return fmt.Errorf("author not configured (checked .vers/config.yaml and ~/.vers/config.yaml)\n\nRun: vers config author.name \"Your Name\"\n\nSee 'vers guide config' for local vs global options.")
		}

		if !noStoreCommands[cmdName] {
			s, err := engine.New(DB())
			if err != nil {
				if JSON() {
					_ = PrintJSON(map[string]string{"error": err.Error()})
					cmd.SilenceErrors = true
					cmd.SilenceUsage = true
				}
				return err
			}
			svc = s
		}

		return nil
	},
}

// topLevelCmdName returns the name of the top-level command (direct child of root).
// For "vers tag add id type tag", returns "tag".
func topLevelCmdName(cmd *cobra.Command) string {
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging, executes the command, and ensures the version
// service is closed before exit. Exit code 1 indicates error.
func Execute() {
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer log.Close()

	err := rootCmd.Execute()

	if svc != nil {
		if closeErr := svc.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: closing service: %v\n", closeErr)
		}
	}

	if err != nil {
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing.
func RootCmd() *cobra.Command {
	return rootCmd
}
