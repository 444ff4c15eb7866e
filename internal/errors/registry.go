package errors

import (
	"context"
	"sort"

	"github.com/vango-dev/showcase/pkg/router"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Routing and navigation (E100-E119)
	"E100": {
		Category:   CategoryRouting,
		Message:    "No route with that name",
		Suggestion: "Run 'showcase routes' to list the registered names",
	},
	"E101": {
		Category:   CategoryRouting,
		Message:    "No route matches location",
		Suggestion: "Run 'showcase routes' to list the registered paths",
	},
	"E102": {
		Category:   CategoryRouting,
		Message:    "Missing route parameter",
		Suggestion: "Pass every pattern parameter as key=value",
	},
	"E103": {
		Category:   CategoryRouting,
		Message:    "Invalid location",
		Suggestion: "Locations are app-relative paths starting with '/'",
	},
	"E104": {
		Category: CategoryNavigation,
		Message:  "Navigation aborted",
	},
	"E105": {
		Category: CategoryNavigation,
		Message:  "Already at that location",
	},
	"E106": {
		Category:   CategoryNavigation,
		Message:    "Too many navigation redirects",
		Suggestion: "Check navigation guards for a redirect loop",
	},
	"E107": {
		Category: CategoryView,
		Message:  "View failed to load",
	},
	"E108": {
		Category:   CategoryRouting,
		Message:    "Invalid route table",
		Suggestion: "Route names and paths must be unique and paths must start with '/'",
	},
	"E109": {
		Category: CategoryNavigation,
		Message:  "Navigation cancelled",
	},

	// Configuration (E120-E149)
	"E120": {
		Category:   CategoryConfig,
		Message:    "Invalid configuration file",
		Suggestion: "Check that the file is valid JSON or TOML",
	},
	"E121": {
		Category:   CategoryConfig,
		Message:    "Invalid configuration value",
		Suggestion: "history must be one of web, hash or memory",
	},
	"E141": {
		Category:   CategoryConfig,
		Message:    "Configuration file not found",
		Suggestion: "Create showcase.json or showcase.toml, or rely on BASE_URL",
	},

	// Command line (E150-E169)
	"E150": {
		Category:   CategoryCLI,
		Message:    "Unknown command",
		Suggestion: "Type 'help' to list commands",
	},
	"E151": {
		Category:   CategoryCLI,
		Message:    "Invalid argument",
		Suggestion: "Parameters are passed as key=value",
	},
}

// mappings resolve library errors to codes, most specific first.
var mappings = []struct {
	target error
	code   string
}{
	{router.ErrUnknownRoute, "E100"},
	{router.ErrNoMatch, "E101"},
	{router.ErrMissingParam, "E102"},
	{router.ErrInvalidLocation, "E103"},
	{router.ErrNavigationDuplicated, "E105"},
	{router.ErrTooManyRedirects, "E106"},
	{router.ErrNavigationAborted, "E104"},
	{context.Canceled, "E109"},
	{context.DeadlineExceeded, "E109"},
	{router.ErrInvalidPattern, "E108"},
	{router.ErrDuplicateName, "E108"},
	{router.ErrDuplicatePath, "E108"},
	{router.ErrMissingLoader, "E108"},
}

// GetAllCodes returns all registered error codes in order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
