package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "abc",
	Short: "abc compiles a statically-typed shell-scripting language to POSIX shell",
	Long: `abc is a source-to-source compiler: it translates abc programs
(typed variables, functions, and $...$ shell-command literals with an
explicit failure-handler grammar) into portable POSIX/Bash shell script.

The compiler core is a pure function from source text to shell text; this
command tree is the thin I/O front-end around it.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
