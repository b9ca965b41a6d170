package report

import (
	"fmt"
	"io"
	"strings"
)

// Output formats.
const (
	FormatText     = "text"
	FormatTable    = "table"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
	FormatJSON     = "json"
)

// Formats lists the supported output formats.
var Formats = []string{FormatText, FormatTable, FormatMarkdown, FormatCSV, FormatJSON}

// IsValidFormat reports whether format names a known renderer.
func IsValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// Target describes the database being reported on.
type Target struct {
	Database string
	Host     string
	Port     string
	User     string
	// Path is set for file based databases and replaces the network form.
	Path string
}

// Renderer prints report output. Connecting is called before the connection
// is opened, Report once per successful report and Finish after the
// connection has been closed. Abort replaces Finish when the run stops
// early; renderers that buffer write out the reports they already have.
type Renderer interface {
	Connecting(t Target) error
	Report(res *Result) error
	Finish() error
	Abort(cause error) error
}

// NewRenderer returns the renderer for format writing to w.
func NewRenderer(format string, w io.Writer) (Renderer, error) {
	switch format {
	case "", FormatText:
		return &textRenderer{w: w}, nil
	case FormatTable:
		return &prettyRenderer{w: w, mode: FormatTable}, nil
	case FormatMarkdown, "md":
		return &prettyRenderer{w: w, mode: FormatMarkdown}, nil
	case FormatCSV:
		return &prettyRenderer{w: w, mode: FormatCSV}, nil
	case FormatJSON:
		return &jsonRenderer{w: w}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (expected one of: %s)", format, strings.Join(Formats, ", "))
	}
}

var banner = strings.Repeat("=", 60)

// textRenderer writes the plain console layout.
type textRenderer struct {
	w        io.Writer
	sections int
}

func (r *textRenderer) Connecting(t Target) error {
	var line string
	if t.Path != "" {
		line = fmt.Sprintf("Connecting to %s ...\n\n", t.Path)
	} else {
		line = fmt.Sprintf("Connecting to %s at %s:%s as %s ...\n\n", t.Database, t.Host, t.Port, t.User)
	}
	_, err := io.WriteString(r.w, line)
	return err
}

func (r *textRenderer) Report(res *Result) error {
	var b strings.Builder
	if r.sections > 0 {
		b.WriteString("\n")
	}
	r.sections++

	b.WriteString(banner + "\n")
	b.WriteString(res.Report.Title + "\n")
	b.WriteString(banner + "\n")
	for i, row := range res.Rows {
		b.WriteString(row.Line(i + 1))
		b.WriteString("\n")
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *textRenderer) Abort(error) error {
	return nil
}

func (r *textRenderer) Finish() error {
	_, err := fmt.Fprintf(r.w, "\n%s\nAll queries completed successfully!\n%s\n", banner, banner)
	return err
}
