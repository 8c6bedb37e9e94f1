package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ablang/abc/internal/compiler"
	"github.com/ablang/abc/internal/compiler/fragment"
	"github.com/ablang/abc/internal/postprocess"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var (
	buildOutput     string
	buildMinify     bool
	buildNoProc     bool
	buildHeaderFile string
	buildFooterFile string
	buildArithBc    bool
	buildWatch      bool
)

var buildCmd = &cobra.Command{
	Use:   "build [file]",
	Short: "Compile an abc program to a shell script",
	Long: `Compile translates an abc source file into a portable POSIX/Bash
shell script.

Examples:
  # Compile a script, printing the result to stdout
  abc build script.abc

  # Compile to a file
  abc build script.abc -o script.sh

  # Validate the emitted script with mvdan.cc/sh before writing it
  abc build script.abc -o script.sh

  # Skip that validation/normalization pass
  abc build script.abc --no-proc

  # Recompile whenever the source file changes
  abc build script.abc -o script.sh --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output file (default: stdout)")
	buildCmd.Flags().BoolVar(&buildMinify, "minify", false, "minify the emitted shell script")
	buildCmd.Flags().BoolVar(&buildNoProc, "no-proc", false, "skip the mvdan.cc/sh validation/normalization pass")
	buildCmd.Flags().StringVar(&buildHeaderFile, "header", "", "file whose contents are prepended to the emitted script")
	buildCmd.Flags().StringVar(&buildFooterFile, "footer", "", "file whose contents are appended to the emitted script")
	buildCmd.Flags().BoolVar(&buildArithBc, "arith-bc", false, "lower all arithmetic through bc instead of native $(( ))")
	buildCmd.Flags().BoolVar(&buildWatch, "watch", false, "recompile whenever the source file changes")
}

func runBuild(_ *cobra.Command, args []string) error {
	filename := args[0]

	if err := compileOnce(filename); err != nil {
		return err
	}
	if !buildWatch {
		return nil
	}
	return watchAndRebuild(filename)
}

func compileOnce(filename string) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	opts := compiler.Options{Minify: buildMinify}
	if buildArithBc {
		opts.Arith = fragment.ArithBcSed
	}
	if buildHeaderFile != "" {
		h, err := os.ReadFile(buildHeaderFile)
		if err != nil {
			return fmt.Errorf("failed to read header %s: %w", buildHeaderFile, err)
		}
		opts.Header = string(h)
	}
	if buildFooterFile != "" {
		f, err := os.ReadFile(buildFooterFile)
		if err != nil {
			return fmt.Errorf("failed to read footer %s: %w", buildFooterFile, err)
		}
		opts.Footer = string(f)
	}

	result, err := compiler.Compile(filename, string(content), opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("compilation failed")
	}

	script := result.Script
	if !buildNoProc {
		if err := postprocess.Validate(script); err != nil {
			return fmt.Errorf("emitted script failed validation: %w", err)
		}
		normalized, err := postprocess.Normalize(script, buildMinify)
		if err != nil {
			return fmt.Errorf("emitted script failed normalization: %w", err)
		}
		script = normalized
	}

	if buildOutput == "" {
		fmt.Print(script)
		return nil
	}

	if err := os.WriteFile(buildOutput, []byte(script), 0755); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", buildOutput, err)
	}
	fmt.Printf("Compiled %s -> %s\n", filename, buildOutput)
	return nil
}

// watchAndRebuild recompiles filename on every write event until the
// process is interrupted.
func watchAndRebuild(filename string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(filename)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	fmt.Fprintf(os.Stderr, "Watching %s for changes (Ctrl-C to stop)...\n", filename)
	for event := range watcher.Events {
		if filepath.Clean(event.Name) != filepath.Clean(filename) {
			continue
		}
		if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
			continue
		}
		if err := compileOnce(filename); err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Fprintf(os.Stderr, "Rebuilt %s\n", filename)
	}
	return nil
}
