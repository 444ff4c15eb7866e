// Package router maps URL paths to named, lazily-loaded views.
//
// A Router is built once from a History strategy and an ordered table of
// Descriptors. Each descriptor pairs a path pattern with a unique name and a
// deferred Loader for its view:
//
//	r, err := router.New(router.NewWebHistory("/app/"), []router.Descriptor{
//	    {Path: "/", Name: "home", Component: views.Home},
//	    {Path: "/card", Name: "card", Component: views.Card},
//	})
//
// # Patterns
//
// Patterns use chi syntax, which also performs the matching:
//
//	/card            static
//	/card/{id}       named parameter
//	/card/{id:\d+}   parameter constrained by a regexp
//	/files/*         catch-all, available as Params["*"]
//
// # Resolving and navigating
//
//	route, err := r.Resolve("/card?size=lg")          // path -> named route
//	route, err = r.ResolveLocation(router.Location{Name: "card"}) // name -> path
//	route, err = r.Push(ctx, router.Location{Name: "card"})
//
// Push and Replace run the BeforeEach guard chain, commit the location to the
// history and then call every AfterEach hook. Back, Forward and Go move within
// the history without running guards.
//
// # Views
//
// Loaders run only when a view is needed, through Router.Load. A successful
// load is cached for the lifetime of the router; a failed load is retried on
// the next call.
package router
