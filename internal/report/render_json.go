package report

import (
	"encoding/json"
	"io"
)

type jsonReport struct {
	ID    ID     `json:"id"`
	Title string `json:"title"`
	Rows  []Row  `json:"rows"`
}

type jsonDocument struct {
	Reports []jsonReport `json:"reports"`
	Error   string       `json:"error,omitempty"`
}

// jsonRenderer buffers every report and writes a single document on Finish,
// or on Abort with the reports that completed and the error.
type jsonRenderer struct {
	w       io.Writer
	reports []jsonReport
}

func (r *jsonRenderer) Connecting(Target) error {
	return nil
}

func (r *jsonRenderer) Report(res *Result) error {
	rows := res.Rows
	if rows == nil {
		rows = []Row{}
	}
	r.reports = append(r.reports, jsonReport{
		ID:    res.Report.ID,
		Title: res.Report.Title,
		Rows:  rows,
	})
	return nil
}

func (r *jsonRenderer) Finish() error {
	return r.write(jsonDocument{Reports: r.reports})
}

func (r *jsonRenderer) Abort(cause error) error {
	doc := jsonDocument{Reports: r.reports}
	if doc.Reports == nil {
		doc.Reports = []jsonReport{}
	}
	if cause != nil {
		doc.Error = cause.Error()
	}
	return r.write(doc)
}

func (r *jsonRenderer) write(doc jsonDocument) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
