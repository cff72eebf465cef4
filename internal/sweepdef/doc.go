// Package sweepdef loads sweep definition files.
//
// A definition names the base terminal configuration, optional default
// symbols and periods, and the ordered parameter sets to optimize. It can
// be written in YAML or CUE; both produce the same Definition, which
// implements param.Source.
//
// Example (YAML):
//
//	name: MACross
//	base_config: base.ini
//	symbols: [EURUSD, GBPUSD]
//	periods: [H1, H4]
//	parameter_sets:
//	  - name: coarse
//	    inputs:
//	      FastPeriod: [10, 5, 50]
//	      SlowPeriod: {start: 100, step: 10, end: 200}
//	    split: {input: SlowPeriod, parts: 2}
//
// Input order in the file is kept. A split partitions one numeric input's
// range into contiguous, step-aligned sub-ranges and expands the set into
// one set per part.
package sweepdef
