// Package errors provides coded, actionable error messages for the
// showcase CLI.
//
// Library packages return plain wrapped errors. The CLI converts them at the
// edge with FromError, which maps router and config failures to a registered
// code with a message, a detail and a hint:
//
//	err := errors.New("E101").WithDetail(`No route matches "/cards"`)
//	fmt.Fprint(os.Stderr, err.Format())
//	// ERROR E101: No route matches location
//	//
//	//   No route matches "/cards"
//	//
//	//   Hint: Run 'showcase routes' to list the registered paths
//
// # Error Codes
//
//   - E100-E119: routing and navigation
//   - E120-E149: configuration
//   - E150-E169: command line usage
package errors
