// Package step writes ISO 10303-21 ("STEP Part 21") exchange files.
//
// The package knows nothing about shapes: callers add entity instances with
// Writer.Add and receive references (#N) that can be used as parameters of
// later instances. Parameters are typed so that the writer can emit the
// Part 21 encodings (references, reals with a mandatory decimal point,
// enumerations, lists, omitted and derived values, encoded strings).
//
// Strings are encoded per the Part 21 rules: apostrophes and backslashes are
// doubled, Latin-1 characters use the \X\hh directive and other characters
// use \X2\…\X0\ (UCS-2) or \X4\…\X0\ (UCS-4).
package step
