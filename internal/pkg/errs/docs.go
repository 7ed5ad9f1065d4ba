// Package errs holds the typed errors shared by the dispatch domain and its adapters.
//
// Every type pairs a sentinel (ErrObjectNotFound, ErrValueIsInvalid, ErrValueIsOutOfRange,
// ErrValueIsRequired) with a struct carrying the offending parameter, so callers can branch
// with errors.Is and still log the details. Repositories return *ObjectNotFoundError for
// missing rows; the command handlers translate it into a result kind instead of a failure.
package errs
