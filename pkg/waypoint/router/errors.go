package router

import (
	"errors"
	"fmt"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
)

// Kind classifies a navigation failure.
type Kind int

const (
	KindUnknown                     Kind = iota
	KindInvalidRouteSequence             // Empty or malformed request
	KindSegmentNotRegistered             // Requested identifier has no segment
	KindPresenterNotRegistered           // Segment names a missing presenter
	KindNoViewControllerProduced         // Segment loader produced nothing
	KindCannotPresent                    // Presenter refused or failed
	KindCouldNotReversePresentation      // Pop step failed or was impossible
	KindNoHistory                        // Nothing to go back to
	KindInvalidConfiguration             // Presenter capabilities don't fit the segment
)

func (k Kind) String() string {
	switch k {
	case KindInvalidRouteSequence:
		return "invalid_route_sequence"
	case KindSegmentNotRegistered:
		return "segment_not_registered"
	case KindPresenterNotRegistered:
		return "presenter_not_registered"
	case KindNoViewControllerProduced:
		return "no_view_controller_produced"
	case KindCannotPresent:
		return "cannot_present"
	case KindCouldNotReversePresentation:
		return "could_not_reverse_presentation"
	case KindNoHistory:
		return "no_history"
	case KindInvalidConfiguration:
		return "invalid_configuration"
	default:
		return "unknown"
	}
}

// Error is the single failure type reported by the router. ID names the
// segment involved (when there is one), PresenterID the presenter.
type Error struct {
	Kind        Kind
	ID          route.Identifier
	PresenterID route.Identifier
	Message     string
	Err         error
}

func (e *Error) Error() string {
	msg := "router: " + e.Kind.String()
	switch {
	case !e.PresenterID.IsZero() && !e.ID.IsZero():
		msg += fmt.Sprintf(" (presenter %q, segment %q)", e.PresenterID, e.ID)
	case !e.PresenterID.IsZero():
		msg += fmt.Sprintf(" (presenter %q)", e.PresenterID)
	case !e.ID.IsZero():
		msg += fmt.Sprintf(" (%q)", e.ID)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil && e.Err.Error() != e.Message {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind. When the target carries an ID it
// must match as well, so errors.Is(err, ErrSegmentNotRegistered) matches any
// unregistered segment while a specific target narrows it down.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.ID.IsZero() || t.ID == e.ID
}

// Sentinels for errors.Is.
var (
	ErrInvalidRouteSequence        = &Error{Kind: KindInvalidRouteSequence}
	ErrSegmentNotRegistered        = &Error{Kind: KindSegmentNotRegistered}
	ErrPresenterNotRegistered      = &Error{Kind: KindPresenterNotRegistered}
	ErrNoViewControllerProduced    = &Error{Kind: KindNoViewControllerProduced}
	ErrCannotPresent               = &Error{Kind: KindCannotPresent}
	ErrCouldNotReversePresentation = &Error{Kind: KindCouldNotReversePresentation}
	ErrNoHistory                   = &Error{Kind: KindNoHistory}
	ErrInvalidConfiguration        = &Error{Kind: KindInvalidConfiguration}
)

func invalidRouteSequence(msg string, err error) *Error {
	return &Error{Kind: KindInvalidRouteSequence, Message: msg, Err: err}
}

func segmentNotRegistered(id route.Identifier) *Error {
	return &Error{Kind: KindSegmentNotRegistered, ID: id}
}

func presenterNotRegistered(segment, presenter route.Identifier) *Error {
	return &Error{Kind: KindPresenterNotRegistered, ID: segment, PresenterID: presenter}
}

func noViewControllerProduced(id route.Identifier, err error) *Error {
	return &Error{Kind: KindNoViewControllerProduced, ID: id, Err: err}
}

func cannotPresent(presenter, segment route.Identifier, err error) *Error {
	e := &Error{Kind: KindCannotPresent, ID: segment, PresenterID: presenter, Err: err}
	if err != nil {
		e.Message = err.Error()
	}
	return e
}

func couldNotReverse(id route.Identifier, err error) *Error {
	return &Error{Kind: KindCouldNotReversePresentation, ID: id, Err: err}
}

func noHistory(msg string) *Error {
	return &Error{Kind: KindNoHistory, Message: msg}
}

func invalidConfiguration(segment, presenter route.Identifier, msg string) *Error {
	return &Error{Kind: KindInvalidConfiguration, ID: segment, PresenterID: presenter, Message: msg}
}

// KindOf returns the Kind of a router error, or KindUnknown.
func KindOf(err error) Kind {
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr.Kind
	}
	return KindUnknown
}

// IsNoHistory checks if an error means there was nowhere to navigate back to.
func IsNoHistory(err error) bool {
	return errors.Is(err, ErrNoHistory)
}
