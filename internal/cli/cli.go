// Package cli implements the lvfusion command-line interface.
//
// # Commands
//
//   - solve: run alpha-expansion on a generated model
//   - binary: minimize a two-label model in a single binary solve
//   - version: print build information
//
// Models come from the [model] section of a TOML or YAML file (--config)
// or from flags; flags override file values.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which
// includes one record per expansion step. Loggers are passed through
// context.Context.
package cli
