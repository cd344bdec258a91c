// Package apperror defines errors that know the HTTP status they map to.
// Domain packages declare sentinels with New and the response layer picks
// the status back out with errors.As.
package apperror

// AppError carries a status code, a user-facing message and an optional
// underlying cause. The cause is never exposed to clients.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New builds an AppError sentinel.
func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap builds an AppError around an existing cause.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
