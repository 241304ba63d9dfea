// Package mock defines setups: ordered AND-groups of call predicates paired
// with a planned response.
//
// Each predicate is registered under a Category. Before a predicate is added
// the setup's Registry checks the new registration against what is already
// there, so a setup that could never match (two URL matchers, a header that
// must be both present and absent) fails at declaration time with a
// *ConfigError instead of silently never matching.
//
// Category cardinality:
//
//   - Singleton (URL, Body, ContentType, Method, Auth): at most one per setup
//   - Keyed (header and query parameter presence/absence): one per key, and a
//     key may not appear in both a category and its opposite
//   - Unconstrained (query parameter values, Custom): never checked
//
// Setups are mutated while a test arranges them and read concurrently while
// calls are dispatched; the two phases must not overlap.
package mock
