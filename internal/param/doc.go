// Package param defines the optimization inputs consumed by a sweep.
//
// A Range is one swept input rendered in the terminal's TesterInputs
// encoding. A Set is a named, ordered group of inputs, and a Source is the
// finite, repeatable sequence of sets a sweep walks for every grid
// coordinate.
//
// Values may be authored either as a Range or as a three-element Tuple of
// scalars. Tuples are normalized at consumption time, so a malformed tuple
// only fails when a sweep actually tries to use it.
package param
