package loader

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"StockDashboard/internal/model"
)

// Status discriminates the outcome of a load.
type Status int

const (
	// StatusLoaded carries a table with at least one row.
	StatusLoaded Status = iota
	// StatusEmpty means the provider returned no rows for the query.
	StatusEmpty
	// StatusFailed carries a *FetchError.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoaded:
		return "LOADED"
	case StatusEmpty:
		return "EMPTY"
	case StatusFailed:
		return "FAILED"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is the outcome of Loader.Load.
type Result struct {
	Status Status
	Query  model.Query
	Table  model.Table
	Err    *FetchError
	Cached bool
}

// FetchError reports that the provider call itself failed. Limit is the
// fetch timeout when that is what expired, zero when the caller's context did.
type FetchError struct {
	Query   model.Query
	Cause   error
	Timeout bool
	Limit   time.Duration
}

func (e *FetchError) Error() string {
	switch {
	case e.Timeout && e.Limit > 0:
		return fmt.Sprintf("request timed out after %v: %v", e.Limit, e.Cause)
	case e.Timeout:
		return fmt.Sprintf("request timed out: %v", e.Cause)
	}
	return e.Cause.Error()
}

func (e *FetchError) Unwrap() error { return e.Cause }

func newFetchError(q model.Query, err error, limit time.Duration) *FetchError {
	return &FetchError{Query: q, Cause: err, Timeout: isTimeout(err), Limit: limit}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
