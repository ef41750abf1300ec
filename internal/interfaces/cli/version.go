package cli

import (
	"github.com/spf13/cobra"
)

type versionResult struct {
	BuildInfo `yaml:",inline"`
	Engine    string `json:"engine_revision" yaml:"engine_revision"`
}

func (v versionResult) Tables() []Table {
	return []Table{{
		Headers: []string{"VERSION", "COMMIT", "BUILT", "ENGINE"},
		Rows:    [][]string{{v.Version, v.Commit, v.BuildDate, v.Engine}},
	}}
}

// NewVersionCmd prints build information and the engine configuration revision.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res := versionResult{BuildInfo: BuildInfo{Version: Version, Commit: GitCommit, BuildDate: BuildDate}}
			if cliCtx, err := GetCLIContext(cmd); err == nil {
				res.Engine = cliCtx.Service.Revision()
			}
			return PrintResult(cmd, res)
		},
	}
}

//Personal.AI order the ending
