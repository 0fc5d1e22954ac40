// Package generation defines the interfaces for the three remote-first
// content steps of a thought challenge — question generation, balanced-thought
// synthesis, and work-quality evaluation — together with their deterministic
// fallback content and the sentinel errors the remote adapters report.
//
// The Fallback* wrappers in this package mirror classify.CompositeClassifier:
// they try the remote implementation first and substitute fixed local content
// on any failure, tagging provenance instead of raising an error. Degradation
// is intentional here, not exceptional: the user must always be able to keep
// moving forward.
package generation
