// Package mtconfig models MetaTrader 5 terminal configuration files.
//
// A Config is an ordered set of sections, each holding ordered,
// case-sensitive key/value pairs. Order is preserved on write because the
// terminal reads some sections positionally.
//
// Files on disk are UTF-16 (little endian with BOM on write; a BOM, when
// present, selects the byte order on read).
//
// The Builder layers sweep-specific overrides onto a base configuration and
// SaveTemp materializes the result as a short-lived artifact that is
// removed once the caller is done with it.
package mtconfig
