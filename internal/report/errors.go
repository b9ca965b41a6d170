package report

import "fmt"

// QueryError reports a failure while executing or reading a report query.
// It aborts the remaining reports.
type QueryError struct {
	Report ID
	Err    error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("report %q failed: %v", e.Report, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
