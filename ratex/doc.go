// Package ratex implements a tree-walking interpreter for a small
// dynamically typed scripting language with C-like syntax:
//   - Variables via `var name = expr;` with block scoping and shadowing.
//   - Literals for numbers, strings, bools and nil.
//   - Arithmetic and comparison expressions (+, -, *, /, >, >=, <, <=, ==, !=).
//   - Logical operators (and/or/!) and parentheses for grouping.
//   - Functions via `fun name(args) { ... }`, anonymous `fun (args) { ... }`
//     lambdas and closures over the defining scope.
//   - Classes via `class Name { method(args) { ... } }` with `this`, fields
//     set by assignment and methods bound on access.
//   - Control flow with if/else, while, for, break and return.
//
// Comments are `// line` or `/* block */`. A static resolver computes the
// scope distance of every local reference before execution; the interpreter
// uses those distances to read and write variables without searching.
package ratex
