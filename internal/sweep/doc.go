// Package sweep drives the terminal across a grid of symbols, periods and
// parameter sets.
//
// EXECUTION MODEL:
//
// A Runner is strictly sequential. One terminal process runs at a time and
// the runner waits for it to exit before moving on, because the terminal
// locks its own working directory and report files.
//
// Iteration order is symbol-major, period-minor: for each symbol, for each
// period, every parameter set of the source is visited once in source
// order. The runner owns a single Builder; each iteration upserts the
// current coordinate and set, materializes the merged configuration as a
// scoped artifact, invokes the terminal and removes the artifact.
//
// FAILURE POLICY:
//
// A failed terminal run (terminal.InvocationError) is logged, reported to
// the Observer and skipped. Everything else aborts the sweep: a missing
// terminal, a missing or malformed base configuration, a base configuration
// without the required sections, a malformed input value, an artifact that
// cannot be written, and context cancellation.
package sweep
