package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/ablang/abc/internal/compiler"
	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval <code>",
	Short: "Compile and immediately execute inline abc code",
	Long: `Eval compiles its argument as a complete abc program and executes the
result with sh, exiting 0 on success and 1 if the compile failed.

Example:
  abc eval 'main { $ echo "hi" $ trust }'`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

func runEval(_ *cobra.Command, args []string) error {
	result, err := compiler.Compile("<eval>", args[0], compiler.Options{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("compile failed")
	}

	sh := exec.Command("sh", "-c", result.Script)
	sh.Stdin = os.Stdin
	sh.Stdout = os.Stdout
	sh.Stderr = os.Stderr
	return sh.Run()
}
