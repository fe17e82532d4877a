// Package logger provides structured logging for the storefront library.
//
// It implements the core.Logger contract: leveled methods that take a
// message plus a map of structured fields. Two output formats are
// supported, a human-oriented text format and JSON lines.
//
// Usage:
//
//	log := logger.New()
//	log.SetLevel("debug")
//	log.Info("Cart updated", map[string]interface{}{
//	    "operation": "add_to_cart",
//	    "product":   "nike-dry-fit",
//	})
//
// A logger with pre-bound fields can be derived with WithFields, which
// is handy for tagging every line with the store instance name.
package logger
