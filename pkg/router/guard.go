package router

// Guard runs before a navigation is committed.
type Guard interface {
	// Handle inspects the navigation and calls next to continue.
	// Returning an error stops the chain: ErrNavigationAborted cancels,
	// a Redirect error sends the navigation to another location.
	// Returning nil without calling next also cancels the navigation.
	Handle(nav *Navigation, next func() error) error
}

// GuardFunc is a function adapter for Guard.
type GuardFunc func(nav *Navigation, next func() error) error

// Handle implements Guard.
func (f GuardFunc) Handle(nav *Navigation, next func() error) error {
	return f(nav, next)
}

// AfterHook observes a finished navigation. err is nil on success and the
// navigation failure otherwise.
type AfterHook func(to, from *Route, err error)

// ComposeGuards runs guards in order with final at the end of the chain.
func ComposeGuards(nav *Navigation, guards []Guard, final func() error) error {
	chain := final
	for i := len(guards) - 1; i >= 0; i-- {
		g := guards[i]
		next := chain
		chain = func() error {
			return g.Handle(nav, next)
		}
	}
	return chain()
}

// Chain combines guards into one.
func Chain(guards ...Guard) Guard {
	return GuardFunc(func(nav *Navigation, next func() error) error {
		return ComposeGuards(nav, guards, next)
	})
}

// Skip bypasses g when condition holds.
func Skip(condition func(nav *Navigation) bool, g Guard) Guard {
	return GuardFunc(func(nav *Navigation, next func() error) error {
		if condition(nav) {
			return next()
		}
		return g.Handle(nav, next)
	})
}

// Only runs g only when condition holds.
func Only(condition func(nav *Navigation) bool, g Guard) Guard {
	return GuardFunc(func(nav *Navigation, next func() error) error {
		if !condition(nav) {
			return next()
		}
		return g.Handle(nav, next)
	})
}

// ToRoute is a condition matching navigations to any of the named routes.
func ToRoute(names ...string) func(nav *Navigation) bool {
	return func(nav *Navigation) bool {
		for _, name := range names {
			if nav.To != nil && nav.To.Name == name {
				return true
			}
		}
		return false
	}
}
