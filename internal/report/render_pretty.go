package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// prettyRenderer renders each report as a go-pretty table in box, Markdown
// or CSV form.
type prettyRenderer struct {
	w        io.Writer
	mode     string
	sections int
}

func (r *prettyRenderer) Connecting(t Target) error {
	if r.mode != FormatTable {
		return nil
	}
	if t.Path != "" {
		_, err := fmt.Fprintf(r.w, "Connecting to %s ...\n\n", t.Path)
		return err
	}
	_, err := fmt.Fprintf(r.w, "Connecting to %s at %s:%s as %s ...\n\n", t.Database, t.Host, t.Port, t.User)
	return err
}

func (r *prettyRenderer) Report(res *Result) error {
	if r.sections > 0 {
		if _, err := fmt.Fprintln(r.w); err != nil {
			return err
		}
	}
	r.sections++

	t := table.NewWriter()
	header := make(table.Row, len(res.Report.Headers))
	for i, h := range res.Report.Headers {
		header[i] = h
	}
	t.AppendHeader(header)

	for i, row := range res.Rows {
		cells := row.Cells(i + 1)
		tr := make(table.Row, len(cells))
		for j, c := range cells {
			tr[j] = c
		}
		t.AppendRow(tr)
	}

	var out string
	switch r.mode {
	case FormatMarkdown:
		out = fmt.Sprintf("## %s\n\n%s\n", res.Report.Title, t.RenderMarkdown())
	case FormatCSV:
		out = fmt.Sprintf("# %s\n%s\n", res.Report.Title, t.RenderCSV())
	default:
		t.SetStyle(table.StyleLight)
		t.SetTitle(res.Report.Title)
		out = fmt.Sprintf("%s\n(%d rows)\n", t.Render(), len(res.Rows))
	}

	_, err := io.WriteString(r.w, out)
	return err
}

func (r *prettyRenderer) Finish() error {
	return nil
}

func (r *prettyRenderer) Abort(error) error {
	return nil
}
