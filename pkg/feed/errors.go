package feed

import (
	"fmt"

	"github.com/leadscout/leadscout/pkg/domain"
)

// ErrorKind classifies a fetch failure
type ErrorKind int

const (
	// KindTransient covers timeouts, 5xx and other recoverable network errors
	KindTransient ErrorKind = iota
	// KindBlocked covers 403/429 and explicit block responses from the source
	KindBlocked
	// KindParse covers payloads that cannot be decoded
	KindParse
)

func (k ErrorKind) String() string {
	switch k {
	case KindBlocked:
		return "blocked"
	case KindParse:
		return "parse"
	default:
		return "transient"
	}
}

// FetchError is returned for any failed fetch. The kind drives the per-feed
// failure tracker: blocked errors count toward suspension, everything else
// is treated leniently.
type FetchError struct {
	Kind ErrorKind
	Feed string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s (%s): %v", e.Feed, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Class maps the error kind to a failure class for the feed state machine
func (e *FetchError) Class() domain.FailureClass {
	if e.Kind == KindBlocked {
		return domain.FailureBlocking
	}
	return domain.FailureTransient
}
