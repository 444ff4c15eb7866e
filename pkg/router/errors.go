package router

import (
	"errors"
	"fmt"
)

// Route table errors.
var (
	ErrInvalidPattern = errors.New("invalid route pattern")
	ErrDuplicateName  = errors.New("duplicate route name")
	ErrDuplicatePath  = errors.New("duplicate route path")
	ErrMissingLoader  = errors.New("route has no component loader")
	ErrMissingHistory = errors.New("router has no history")
)

// Resolution errors.
var (
	ErrNoMatch         = errors.New("no route matches location")
	ErrUnknownRoute    = errors.New("no route with that name")
	ErrMissingParam    = errors.New("missing route parameter")
	ErrInvalidLocation = errors.New("invalid location")
)

// Navigation failures. The current route is left unchanged.
var (
	ErrNavigationAborted    = errors.New("navigation aborted")
	ErrNavigationDuplicated = errors.New("navigation to current location")
	ErrTooManyRedirects     = errors.New("too many navigation redirects")
)

// RedirectError is returned by a guard to send the navigation elsewhere.
type RedirectError struct {
	To Location
}

func (e *RedirectError) Error() string {
	if e.To.Name != "" {
		return fmt.Sprintf("redirect to route %q", e.To.Name)
	}
	return fmt.Sprintf("redirect to %q", e.To.Path)
}

// Redirect returns the error a guard uses to redirect a navigation.
func Redirect(to Location) error {
	return &RedirectError{To: to}
}

// IsNavigationFailure reports whether err ended a navigation without
// changing the current route.
func IsNavigationFailure(err error) bool {
	return errors.Is(err, ErrNavigationAborted) ||
		errors.Is(err, ErrNavigationDuplicated) ||
		errors.Is(err, ErrTooManyRedirects)
}
