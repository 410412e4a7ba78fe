package store

// criticalError wraps an error to signal repeater to stop retrying
type criticalError struct {
	err error
}

func (e *criticalError) Error() string {
	return e.err.Error()
}

func (e *criticalError) Unwrap() error {
	return e.err
}
