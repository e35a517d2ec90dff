// version.go implements the version command.

package cmd

import (
	"fmt"

	"github.com/caldera-cms/vers/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, git commit, Go version, and platform.`,
		Run: func(_ *cobra.Command, _ []string) {
			info := version.Get()
			if JSON() {
				_ = PrintJSON(info)
				return
			}
			fmt.Print(info.String())
		},
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
}
