package telemetry

import (
	"fmt"
)

// API is an abstraction over logging/metrics so that components can be tested
// against a recording implementation instead of real log output.
type API interface {
	// ReportBroken reports a component that broke in a way that needs fixing,
	// most commonly a landmark that disappeared from a scraped page.
	//
	// The `id` names the **component** that broke (ex. `extract.book-page`), not the
	// exact line. Extra detail goes into params or a wrapped error.
	//
	// Formatting rules:
	// 1) all lowercase
	// 2) use underscores for large components
	// 3) use dashes for methods part of a larger component
	ReportBroken(id string, params ...any)

	// ReportWarning reports something that is not necessarily broken but is
	// worth a look, for example a journal entry that had no usable date.
	ReportWarning(id string, params ...any)

	// ReportDebug reports debug information that is dropped unless verbose logging is on.
	ReportDebug(msg string, params ...any)

	// ReportCount reports the count of an event at the current time. Counts are
	// data points, they should not be summed.
	ReportCount(id string, count int64)
}

// ScopedAPI prefixes every id/message with a namespace, like a sub-logger.
type ScopedAPI struct {
	namespace string
	inner     API
}

// NewScopedAPI creates a ScopedAPI out of a given namespace and another api.
func NewScopedAPI(namespace string, inner API) ScopedAPI {
	return ScopedAPI{namespace: namespace, inner: inner}
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(fmt.Sprintf("%s: %s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(fmt.Sprintf("%s: %s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(fmt.Sprintf("%s: %s", s.namespace, msg), params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(fmt.Sprintf("%s: %s", s.namespace, id), count)
}
