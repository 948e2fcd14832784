package analytics

import "errors"

var (
	ErrInvalidScope      = errors.New("invalid scope request")
	ErrScopeForbidden    = errors.New("scope not permitted for role")
	ErrExportForbidden   = errors.New("export not permitted for role")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// DataSourceError wraps a fetch failure unchanged. The core never retries;
// callers decide whether the request is worth repeating.
type DataSourceError struct {
	Err error
}

func (e *DataSourceError) Error() string {
	return "data source failure: " + e.Err.Error()
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}
