// Package ast defines the abstract syntax tree for the ChocoPy subset.
//
// This package contains type definitions only. Every other internal
// package imports ast; ast imports only internal/types. This keeps the
// tree the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Nodes are immutable after type checking: the frontend builds them,
//     the checker fills in the resolved static types, and every later
//     pass (lowering, re-emission, dumping) reads them without mutation.
//   - Every expression carries the static type resolved by the checker.
//     Downstream passes dispatch on that type and never re-infer it.
//   - Positions are 1-indexed line/column pairs from the source text.
package ast
