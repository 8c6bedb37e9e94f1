package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ablang/abc/internal/compiler/ast"
	"github.com/ablang/abc/internal/compiler/lexer"
	"github.com/ablang/abc/internal/compiler/parser"
	"github.com/spf13/cobra"
)

var (
	docsOutputDir string
	docsUsageOnly bool
)

var docsCmd = &cobra.Command{
	Use:   "docs <input>",
	Short: "Generate documentation for an abc program's function declarations",
	Long: `Docs parses an abc source file and prints a Markdown listing of every
function's signature, each marked public or private. With -o, the listing
is written as a Markdown file into the given directory instead of stdout;
with --usage, only a one-line-per-function usage summary of the public
functions is printed (no Markdown).`,
	Args: cobra.ExactArgs(1),
	RunE: runDocs,
}

func init() {
	rootCmd.AddCommand(docsCmd)

	docsCmd.Flags().StringVarP(&docsOutputDir, "output", "o", "", "directory to write the generated docs into (default: stdout)")
	docsCmd.Flags().BoolVar(&docsUsageOnly, "usage", false, "print a one-line usage summary per function instead of full Markdown")
}

func runDocs(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	l := lexer.New(string(content), filename)
	cursor := parser.NewTokenCursor(l)
	ctx := parser.NewParseContext()
	result := parser.ParseProgram(cursor, ctx)
	if !result.IsOk() {
		return fmt.Errorf("failed to parse %s", filename)
	}

	var out string
	if docsUsageOnly {
		out = usageSummary(result.Value)
	} else {
		out = markdownDocs(filename, result.Value)
	}

	if docsOutputDir == "" {
		fmt.Print(out)
		return nil
	}

	if err := os.MkdirAll(docsOutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", docsOutputDir, err)
	}
	outPath := filepath.Join(docsOutputDir, strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))+".md")
	if err := os.WriteFile(outPath, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	fmt.Printf("Wrote %s\n", outPath)
	return nil
}

func usageSummary(prog *ast.Program) string {
	var sb strings.Builder
	for _, fn := range prog.Functions {
		if !fn.IsPublic {
			continue
		}
		sb.WriteString(fn.Name + "(" + paramList(fn.Params) + ")\n")
	}
	return sb.String()
}

func markdownDocs(filename string, prog *ast.Program) string {
	var sb strings.Builder
	sb.WriteString("# " + filename + "\n\n")
	for _, fn := range prog.Functions {
		visibility := "private"
		if fn.IsPublic {
			visibility = "public"
		}
		sb.WriteString("## " + fn.Name + "\n\n")
		sb.WriteString("`" + visibility + " fun " + fn.Name + "(" + paramList(fn.Params) + ")")
		if fn.ReturnType != nil {
			sb.WriteString(": " + fn.ReturnType.Name)
		}
		sb.WriteString("`\n\n")
	}
	return sb.String()
}

func paramList(params []ast.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		prefix := ""
		if p.IsReference {
			prefix = "ref "
		}
		typeName := ""
		if p.Annotation != nil {
			typeName = ": " + p.Annotation.Name
		}
		parts[i] = prefix + p.Name + typeName
	}
	return strings.Join(parts, ", ")
}
