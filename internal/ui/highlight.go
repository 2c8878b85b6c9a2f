package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2/quick"
)

const (
	scadLexer   = "openscad"
	chromaStyle = "monokai"
)

// Highlight writes source to w with terminal syntax highlighting. Plain
// output (CI or --progress=plain) is written without escape codes.
func Highlight(w io.Writer, source string) error {
	if IsVerbose() {
		_, err := io.WriteString(w, source)
		return err
	}
	if err := quick.Highlight(w, source, scadLexer, "terminal256", chromaStyle); err != nil {
		return fmt.Errorf("failed to highlight script: %w", err)
	}
	return nil
}

// PrintScript prints a generated script to stdout.
func PrintScript(source string) error {
	return Highlight(os.Stdout, source)
}
