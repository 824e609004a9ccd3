package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the filegrab version",
		Long:  "Prints the module version, the Go toolchain it was built with and the VCS revision when available.",
		Run: func(cmd *cobra.Command, _ []string) {
			info, ok := debug.ReadBuildInfo()
			if !ok {
				cmd.Println("filegrab (version unknown)")
				return
			}

			version := info.Main.Version
			if version == "" {
				version = "(devel)"
			}

			cmd.Printf("filegrab %s %s\n", version, info.GoVersion)

			for _, setting := range info.Settings {
				if setting.Key == "vcs.revision" {
					cmd.Printf("revision %s\n", setting.Value)
				}
			}
		},
	}
}

var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
