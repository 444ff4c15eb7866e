// Package config loads the showcase configuration.
//
// Configuration comes from, in increasing precedence:
//   - built-in defaults
//   - showcase.json or showcase.toml in the project directory
//   - environment variables (BASE_URL, SHOWCASE_HISTORY, SHOWCASE_LOG_LEVEL)
//   - command line flags, applied by the caller
//
// # Configuration File Structure
//
//	{
//	  "name": "showcase",
//	  "base": "/ui/",
//	  "history": "web",
//	  "logLevel": "info",
//	  "metrics": {"enabled": true, "namespace": "showcase"},
//	  "tracing": {"enabled": false, "tracerName": "showcase"}
//	}
//
// The same keys are accepted in TOML:
//
//	base = "/ui/"
//	history = "hash"
//
//	[metrics]
//	enabled = true
package config
