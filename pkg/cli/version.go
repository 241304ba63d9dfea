package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/getmockd/fakehttp/pkg/cli/internal/output"
)

// VersionOutput represents JSON output format
type VersionOutput struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

func newVersionCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show fakehttp version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := VersionOutput{
				Version: Version,
				Commit:  Commit,
				Date:    BuildDate,
				Go:      runtime.Version(),
			}

			if info, ok := debug.ReadBuildInfo(); ok {
				if out.Version == "dev" && info.Main.Version != "" {
					out.Version = info.Main.Version
				}
				for _, setting := range info.Settings {
					if setting.Key == "vcs.revision" && out.Commit == "none" {
						out.Commit = setting.Value
					}
				}
			}

			if opts.jsonOutput {
				return output.JSON(cmd.OutOrStdout(), out)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "fakehttp %s (%s, %s) %s\n", out.Version, out.Commit, out.Date, out.Go)
			return nil
		},
	}
}
