/*
Package quantity implements the canonical fixed-point quantity format
used for compute and memory resource amounts in infrastructure
configuration, such as "500m", "2Gi", "1.5k", and "4e9".
It leverages the [inf] package's arbitrary-precision decimals for the
numeric engine and keeps the literal/suffix pair of every value, so
quantities survive a round trip through a configuration document in
the form they were written.

# Representation

A [Quantity] is a numeric literal paired with a unit suffix. The
suffix is one of the binary power tokens Ki, Mi, Gi, Ti, Pi, and Ei
(powers of 1024), the decimal SI tokens n, u, m, k, M, G, T, P, and E
(powers of 1000), a decimal exponent token such as e9 or E-6, or
empty. A quantity string is the literal immediately followed by the
suffix, with no separator.

# Operations

Arithmetic (Add, Sub, Mul) and comparison (Cmp, Equal) operate on the
exact numeric value, so "1024Ki" and "1048576" are equal however they
are displayed. All arithmetic is exact: multipliers are exact decimal
powers of 2 and 10, and no operation loses precision beyond stripping
trailing zeros from the output literal. Humanize re-expresses a value
in the largest fitting SI unit.

# Document embedding

Quantities marshal to and from JSON (and, through JSON, YAML) as their
canonical strings. The object form carries the literal and the suffix
as separate fields, and unrecognized fields are preserved verbatim and
in order for round-trip fidelity. The package also implements the text
marshaling and database/sql interfaces.

# Errors

The package reports a single error kind, [ErrInvalidFormat], for empty
input, unrecognized unit suffixes, malformed exponent suffixes, and
literals that are not decimal numbers. Failures are immediate; there
are no partial results.

[inf]: https://pkg.go.dev/gopkg.in/inf.v0
*/
package quantity
