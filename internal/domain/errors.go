package domain

import (
	"fmt"
	"strings"
)

// InvalidTimeframeError rejects a request before any upstream call is made.
type InvalidTimeframeError struct {
	Timeframe string
	Supported []string
}

func (e *InvalidTimeframeError) Error() string {
	return fmt.Sprintf("unsupported timeframe %q: use one of %s",
		e.Timeframe, strings.Join(e.Supported, ", "))
}

// DataUnavailableError is the terminal failure of an analysis: every
// configured market data source was tried and none produced a result.
type DataUnavailableError struct {
	Token string
	Errs  []error
}

func (e *DataUnavailableError) Error() string {
	msgs := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("failed to fetch market data for %s: %s",
		e.Token, strings.Join(msgs, "; "))
}

func (e *DataUnavailableError) Unwrap() []error { return e.Errs }
