// Package diagnostics renders tokenizer, parser and import failures with
// source excerpts.
package diagnostics

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/paratym/idk/internal/lexer"
	"github.com/paratym/idk/internal/modules"
	"github.com/paratym/idk/internal/position"
)

// Diagnostic is one reportable failure.
type Diagnostic struct {
	File string
	Pos  position.Position
	// Positioned is false for failures that have no source location.
	Positioned bool
	// Category is the error kind, empty when unknown.
	Category string
	Message    string
}

// Location renders "file:line:col" with whatever parts are known.
func (d Diagnostic) Location() string {
	switch {
	case d.Positioned && d.File != "":
		return d.File + ":" + d.Pos.String()
	case d.Positioned:
		return d.Pos.String()
	default:
		return d.File
	}
}

// Collect flattens err into diagnostics. Joined errors yield one
// diagnostic each, in order.
func Collect(err error) []Diagnostic {
	var out []Diagnostic
	collect(err, "", &out)
	return out
}

func collect(err error, file string, out *[]Diagnostic) {
	if err == nil {
		return
	}
	switch e := err.(type) {
	case interface{ Unwrap() []error }:
		for _, sub := range e.Unwrap() {
			collect(sub, file, out)
		}
	case *modules.FileError:
		collect(e.Err, e.Path, out)
	case *lexer.Error:
		msg := e.Msg
		if e.Err != nil {
			msg += ": " + e.Err.Error()
		}
		*out = append(*out, Diagnostic{File: file, Pos: e.Pos, Positioned: true, Category: e.Kind.String(), Message: msg})
	case *modules.PathError:
		*out = append(*out, Diagnostic{
			File: file, Pos: e.Pos, Positioned: true, Category: "resolve",
			Message: fmt.Sprintf("cannot resolve %s: %s", e.Path, e.Msg),
		})
	case *modules.CycleError:
		*out = append(*out, Diagnostic{File: file, Category: "cycle", Message: e.Error()})
	default:
		var lexErr *lexer.Error
		if errors.As(err, &lexErr) {
			*out = append(*out, Diagnostic{File: file, Pos: lexErr.Pos, Positioned: true, Category: lexErr.Kind.String(), Message: err.Error()})
			return
		}
		*out = append(*out, Diagnostic{File: file, Message: err.Error()})
	}
}

type paint func(string) string

func with(st lipgloss.Style) paint {
	return func(s string) string { return st.Render(s) }
}

type styles struct {
	location, category, message, excerpt, summary paint
}

func newStyles(w io.Writer, width int) styles {
	r := lipgloss.NewRenderer(w)
	red := lipgloss.Color("#EF4444")
	excerpt := r.NewStyle().Foreground(lipgloss.Color("#94A3B8")).TabWidth(lipgloss.NoTabConversion)
	if width > 0 {
		excerpt = excerpt.MaxWidth(width)
	}
	return styles{
		location: with(r.NewStyle().Bold(true)),
		category: with(r.NewStyle().Foreground(red).Bold(true)),
		message:  with(r.NewStyle().Bold(true)),
		excerpt:  with(excerpt),
		summary:  with(r.NewStyle().Foreground(red)),
	}
}

func plainStyles() styles {
	same := func(s string) string { return s }
	return styles{same, same, same, same, same}
}

// Renderer prints diagnostics. The zero value prints plain text with one
// line of context and reads sources from disk.
type Renderer struct {
	// Color enables terminal styling.
	Color bool
	// Width truncates excerpt lines when positive.
	Width int
	// Context is the number of source lines shown above the failing one.
	Context uint
	// ReadFile loads sources for excerpts; nil means os.ReadFile.
	ReadFile func(name string) ([]byte, error)

	sources map[string]*position.Source
}

// NewRenderer configures a Renderer for output to f, enabling color and
// width limits when f is a terminal.
func NewRenderer(f *os.File) *Renderer {
	width, tty := terminalWidth(f)
	return &Renderer{Color: tty, Width: width, Context: 1}
}

// AddSource registers in-memory content under name, for sources that do
// not live on disk.
func (r *Renderer) AddSource(name, content string) {
	if r.sources == nil {
		r.sources = make(map[string]*position.Source)
	}
	r.sources[name] = position.NewSource(name, content)
}

func (r *Renderer) source(name string) *position.Source {
	if name == "" {
		return nil
	}
	if src, ok := r.sources[name]; ok {
		return src
	}
	read := r.ReadFile
	if read == nil {
		read = os.ReadFile
	}
	data, err := read(name)
	if err != nil {
		return nil
	}
	r.AddSource(name, string(data))
	return r.sources[name]
}

// Render writes every diagnostic of err followed by a count, and returns
// the number of diagnostics. A nil err writes nothing.
func (r *Renderer) Render(w io.Writer, err error) (int, error) {
	diags := Collect(err)
	if len(diags) == 0 {
		return 0, nil
	}

	st := plainStyles()
	if r.Color {
		st = newStyles(w, r.Width)
	}

	var b strings.Builder
	for _, d := range diags {
		if loc := d.Location(); loc != "" {
			b.WriteString(st.location(loc + ":"))
			b.WriteString(" ")
		}
		b.WriteString(st.category(strings.TrimSpace(d.Category + " error:")))
		b.WriteString(" ")
		b.WriteString(st.message(d.Message))
		b.WriteString("\n")
		if d.Positioned {
			if ex := r.source(d.File).Excerpt(d.Pos, r.Context); ex != "" {
				for _, line := range strings.Split(strings.TrimSuffix(ex, "\n"), "\n") {
					b.WriteString(st.excerpt(line))
					b.WriteString("\n")
				}
			}
		}
	}
	noun := "error"
	if len(diags) != 1 {
		noun = "errors"
	}
	b.WriteString(st.summary(fmt.Sprintf("%d %s", len(diags), noun)))
	b.WriteString("\n")

	_, werr := io.WriteString(w, b.String())
	return len(diags), werr
}
