// Package lower translates a type-checked AST into an LLVM IR module.
//
// This is the compiler's core: a single-pass recursive tree lowering.
// The input Program is authoritative and read-only — every expression
// arrives with a resolved static type, and the lowering dispatches on
// those types without re-validation. The only mutable state is the
// in-progress module and the current insertion point, both owned
// exclusively by one Lower call.
//
// Layering inside the package, leaves first:
//
//   - types.go maps static types to storage representations
//   - env.go resolves names to storage slots (global/local/parameter)
//   - builder.go owns basic blocks and the one-terminator discipline
//   - expr.go lowers expressions to typed values, including the
//     short-circuit and conditional-expression control flow
//   - stmt.go lowers statements, threading the current block
//   - module.go assembles globals, functions, and the synthetic main
//
// Lowering is deterministic: the same typed AST always serializes to a
// byte-identical module. Violations of internal contracts (an
// unresolvable name, a double-terminated block, an unknown node shape)
// are programming defects and abort the pass with an InternalError;
// they are never user diagnostics.
package lower
