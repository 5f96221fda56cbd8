package report

import "errors"

var (
	ErrUnsupportedFormat = errors.New("Unsupported report format")
	ErrNoReportData      = errors.New("No data for the requested report")
)
