// Package output renders command results for terminals, markdown
// consumers and JSON pipelines.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode selects how command output is rendered.
type Mode string

const (
	// ModeAuto picks text on a TTY and markdown otherwise.
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// OutputMode normalizes a mode string. Unknown values fall back to auto.
func OutputMode(s string) Mode {
	switch Mode(s) {
	case ModeText, ModeMarkdown, ModeJSON:
		return Mode(s)
	case "md":
		return ModeMarkdown
	default:
		return ModeAuto
	}
}

// Renderer writes command output in the resolved mode. It also satisfies
// the executor printer contract so dry-run SQL flows through the same
// writers as everything else.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styles Styles
}

// NewRenderer creates a renderer, resolving ModeAuto by detecting whether
// out is a terminal.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	isTTY := false
	if f, ok := out.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	return NewRendererWithTTY(out, errOut, mode, isTTY)
}

// NewRendererWithTTY creates a renderer with an explicit TTY decision.
// Tests use this to get deterministic output.
func NewRendererWithTTY(out, errOut io.Writer, mode Mode, isTTY bool) *Renderer {
	resolved := OutputMode(string(mode))
	if resolved == ModeAuto {
		if isTTY {
			resolved = ModeText
		} else {
			resolved = ModeMarkdown
		}
	}

	// NO_COLOR and friends are honored via termenv.
	color := isTTY && resolved == ModeText && termenv.EnvColorProfile() != termenv.Ascii

	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   resolved,
		styles: newStyles(color),
	}
}

// Mode returns the resolved output mode.
func (r *Renderer) Mode() Mode { return r.mode }

// Styles returns the style set matching the renderer's color decision.
func (r *Renderer) Styles() Styles { return r.styles }

// Out returns the underlying output writer, for table mirroring.
func (r *Renderer) Out() io.Writer { return r.out }

// ErrOut returns the underlying error writer.
func (r *Renderer) ErrOut() io.Writer { return r.errOut }

func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Header prints a section heading in the current mode.
func (r *Renderer) Header(text string) {
	if r.mode == ModeMarkdown {
		r.Println(FormatHeader(2, text))
		return
	}
	r.Println(r.styles.Header2.Render(text))
}

// Success prints a confirmation line to the output writer.
func (r *Renderer) Success(msg string) {
	r.Println(r.styles.Success.Render(msg))
}

// Warning prints a warning line to the error writer.
func (r *Renderer) Warning(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render(msg))
}

// Error prints an error line to the error writer.
func (r *Renderer) Error(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render(msg))
}

// JSON writes v as indented JSON to the output writer.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintSQL writes a SQL statement to the output writer.
func (r *Renderer) PrintSQL(sql string) {
	r.Println(sql)
}

// PrintError writes an execution error message to the error writer.
func (r *Renderer) PrintError(msg string) {
	_, _ = fmt.Fprintln(r.errOut, msg)
}
