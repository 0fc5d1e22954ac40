// Package gemini implements the remote halves of the thought-challenge
// pipeline against Google's Gemini API: the classify.Classifier and the
// generation.QuestionGenerator, Synthesizer, and Evaluator interfaces.
//
// Every call follows the same shape: build a prompt that demands a JSON-only
// reply, call the model with a bounded timeout and retry-with-backoff for
// transient errors, strip code-fence wrappers defensively, then validate the
// decoded payload against the expected shape. Any deviation from the expected
// shape is a uniform malformed-response error; the composite/fallback
// wrappers one layer up turn it into local content.
package gemini
