package cli

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

var versionVerbose bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("pagesplit version %s\n", version)
		if !versionVerbose {
			return
		}
		if info, ok := debug.ReadBuildInfo(); ok {
			cmd.Printf("go: %s\n", info.GoVersion)
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" || s.Key == "vcs.time" {
					cmd.Printf("%s: %s\n", s.Key, s.Value)
				}
			}
		}
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionVerbose, "build", false, "also print Go and VCS build details")
	rootCmd.AddCommand(versionCmd)
}
