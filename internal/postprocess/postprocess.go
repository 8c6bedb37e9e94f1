// Package postprocess is the optional validation/normalization step spec
// §1 calls out as separate from the (pure) compiler core: it parses the
// translator's emitted shell text with mvdan.cc/sh/v3/syntax to catch
// malformed output before it is ever written out, and can reprint it
// through the same library's printer as a `--minify`-adjacent
// normalization pass (SPEC_FULL.md §3's highest-value unbound domain
// dependency).
package postprocess

import (
	"bytes"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Validate parses script as POSIX shell and returns a descriptive error if
// it does not parse — a cheap correctness check on the translator's own
// output, not a check on the user's abc source.
func Validate(script string) error {
	parser := syntax.NewParser()
	_, err := parser.Parse(strings.NewReader(script), "")
	if err != nil {
		return fmt.Errorf("emitted shell script failed to parse: %w", err)
	}
	return nil
}

// Normalize reprints script through syntax.Printer, collapsing whitespace
// and quoting into the library's canonical form. minify additionally
// requests the printer's most compact layout.
func Normalize(script string, minify bool) (string, error) {
	parser := syntax.NewParser(syntax.KeepComments(!minify))
	file, err := parser.Parse(strings.NewReader(script), "")
	if err != nil {
		return "", fmt.Errorf("cannot normalize: %w", err)
	}

	var printerOpts []syntax.PrinterOption
	if minify {
		printerOpts = append(printerOpts, syntax.Minify(true))
	}
	printer := syntax.NewPrinter(printerOpts...)

	var buf bytes.Buffer
	if err := printer.Print(&buf, file); err != nil {
		return "", fmt.Errorf("cannot print normalized script: %w", err)
	}
	return buf.String(), nil
}
