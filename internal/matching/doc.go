// Package matching provides the predicate primitives used by setups.
//
// Every function here is pure: it inspects a captured call (or a piece of
// one) and reports whether it satisfies a condition. Legality checks such as
// duplicate or contradictory matchers live in pkg/mock; this package never
// rejects a condition at match time, it only answers true or false.
//
// Supported conditions:
//
//   - Glob: "*" matches any substring, every other character is literal
//   - PathGlob: segment-aware globbing via doublestar ("*" within a segment, "**" across)
//   - Header and query parameter presence, with optional value globs
//   - Body serialization for comparison values
//   - JSONPath, XPath and JSON Schema conditions on structured bodies
//   - Basic and bearer authorization, including unverified JWT claims
//   - expr-lang boolean expressions over a call
package matching
