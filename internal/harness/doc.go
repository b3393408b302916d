// Package harness provides a conformance testing framework for the
// compiler pipeline.
//
// Scenarios are YAML files pairing a source program with expectations
// about the artifact it compiles to: substrings that must appear,
// diagnostics that must be reported, and optionally a golden file the
// artifact must match byte for byte. The harness runs each scenario
// through the same pipeline the CLI uses, including an in-memory build
// cache when the scenario asks for one, so cache idempotency is
// exercised under test as well.
//
// Golden comparison is reserved for artifacts whose serialization this
// repository owns (the Python and AST emit modes). IR scenarios assert
// on contains clauses instead, so a formatting change in the IR
// library does not break conformance runs.
package harness
