package errs

import (
	cr "github.com/cockroachdb/errors"
)

// Thin wrapper around cockroachdb/errors so the rest of the codebase does not
// import it directly. Wrapped errors carry stack traces printable with %+v.

func New(msg string) error {
	return cr.New(msg)
}

func Newf(format string, args ...any) error {
	return cr.Newf(format, args...)
}

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return cr.Wrapf(err, format, args...)
}
