// Package classify detects cognitive distortions in freeform thought text.
//
// Two implementations exist behind the Classifier interface: a deterministic
// keyword heuristic that works offline, and a remote model adapter (in
// platform/gemini). Their confidence scales are not comparable, so every
// Result carries explicit provenance instead of pretending the numbers mean
// the same thing. CompositeClassifier tries the remote model first and falls
// back to the heuristic on any failure; the fallback never surfaces as an
// error to the caller.
package classify
