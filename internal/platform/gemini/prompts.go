package gemini

import (
	"fmt"
	"sort"
	"strings"

	"github.com/curiouscoder-cmd/mindmend-api/internal/classify"
	"github.com/curiouscoder-cmd/mindmend-api/internal/domain"
)

// System instructions shared by the four call types. Each demands a
// JSON-only reply matching the schema embedded in the prompt.
const (
	classifierSystemInstruction = "You are a CBT (cognitive behavioral therapy) assistant that identifies " +
		"cognitive distortions in a person's automatic thoughts. You respond with a single JSON object " +
		"and nothing else: no prose, no Markdown."

	questionsSystemInstruction = "You are a CBT assistant that writes open-ended Socratic questions helping " +
		"a person challenge a negative automatic thought. You respond with a single JSON object and " +
		"nothing else: no prose, no Markdown."

	synthesisSystemInstruction = "You are a CBT assistant that helps a person turn their answers to challenge " +
		"questions into a balanced, believable thought. You respond with a single JSON object and nothing " +
		"else: no prose, no Markdown."

	evaluationSystemInstruction = "You are a warm, encouraging CBT assistant reviewing a completed " +
		"thought-challenge exercise. You respond with a single JSON object and nothing else: no prose, " +
		"no Markdown."
)

// classifierPrompt asks for at most MaxDetected distortions above the
// remote confidence threshold, typed against the taxonomy slugs.
func classifierPrompt(thought string) string {
	var sb strings.Builder
	sb.WriteString("Identify the cognitive distortions present in this thought:\n\n")
	fmt.Fprintf(&sb, "%q\n\n", thought)
	sb.WriteString("Valid distortion types:\n")
	for _, d := range domain.AllDistortions() {
		fmt.Fprintf(&sb, "- %s (%s): %s\n", d.ID, d.Name, d.Description)
	}
	fmt.Fprintf(&sb, `
Respond with JSON of exactly this shape:
{"distortions": [{"type": "<slug from the list>", "name": "<display name>", "confidence": <0..1>, "explanation": "<why this applies>"}], "suggestions": "<one short reframing suggestion>"}

Include only distortions with confidence above %.1f, at most %d, ordered by descending confidence.
If none apply, return an empty distortions array.`, classify.RemoteConfidenceMin, classify.MaxDetected)
	return sb.String()
}

// questionsPrompt asks for exactly count questions across the category enum.
func questionsPrompt(thought string, distortions []domain.DetectedDistortion, count int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write exactly %d open-ended questions to help challenge this thought:\n\n", count)
	fmt.Fprintf(&sb, "%q\n", thought)
	if len(distortions) > 0 {
		sb.WriteString("\nDetected distortions:\n")
		for _, d := range distortions {
			fmt.Fprintf(&sb, "- %s: %s\n", d.Name, d.Explanation)
		}
	}
	fmt.Fprintf(&sb, `
Respond with JSON of exactly this shape:
{"questions": [{"id": 1, "question": "<open-ended question>", "category": "<one of: %s>", "purpose": "<what answering it surfaces>"}], "keyInsight": "<one aggregate takeaway for the whole set>"}

Rules: exactly %d questions, ids 1 through %d, categories drawn from the list, every question open-ended (no yes/no questions).`,
		strings.Join(questionCategoryNames(), ", "), count, count)
	return sb.String()
}

// synthesisPrompt feeds the original thought and the user's answers back in.
func synthesisPrompt(thought string, answers map[string]string, distortions []domain.DetectedDistortion) string {
	var sb strings.Builder
	sb.WriteString("Original thought:\n")
	fmt.Fprintf(&sb, "%q\n\n", thought)
	if len(distortions) > 0 {
		sb.WriteString("Distortions it showed:\n")
		for _, d := range distortions {
			fmt.Fprintf(&sb, "- %s\n", d.Name)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("The person's answers to the challenge questions:\n")
	for _, key := range sortedAnswerKeys(answers) {
		fmt.Fprintf(&sb, "%s: %s\n", key, answers[key])
	}
	sb.WriteString(`
Synthesize a balanced thought grounded in their own answers. Respond with JSON of exactly this shape:
{"balancedThought": "<first-person balanced thought>", "explanation": "<why this reframe is fairer than the original>", "affirmation": "<one sentence of genuine encouragement>"}

All three fields must be non-empty.`)
	return sb.String()
}

// evaluationPrompt asks for one of the three quality tiers plus feedback.
func evaluationPrompt(thought, balancedThought string, answers map[string]string) string {
	var sb strings.Builder
	sb.WriteString("Original thought:\n")
	fmt.Fprintf(&sb, "%q\n\n", thought)
	sb.WriteString("Balanced thought the person arrived at:\n")
	fmt.Fprintf(&sb, "%q\n\n", balancedThought)
	sb.WriteString("Their answers along the way:\n")
	for _, key := range sortedAnswerKeys(answers) {
		fmt.Fprintf(&sb, "%s: %s\n", key, answers[key])
	}
	fmt.Fprintf(&sb, `
Review the work. Respond with JSON of exactly this shape:
{"quality": "<one of: %s, %s, %s>", "feedback": "<2-3 warm sentences>", "strengths": ["<specific strength>"], "suggestions": ["<specific next step>"]}

Be encouraging: the quality tier is a review signal, not a grade that blocks anything.`,
		domain.QualityExcellent, domain.QualityGood, domain.QualityNeedsWork)
	return sb.String()
}

// questionCategoryNames lists the valid category values for prompts.
func questionCategoryNames() []string {
	return []string{
		string(domain.QuestionEvidence),
		string(domain.QuestionAlternatives),
		string(domain.QuestionConsequences),
		string(domain.QuestionSelfCompassion),
		string(domain.QuestionPerspective),
	}
}

// sortedAnswerKeys returns answer keys in a stable order so prompts are
// reproducible.
func sortedAnswerKeys(answers map[string]string) []string {
	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		// Numeric order for the usual "qN" keys, lexicographic otherwise.
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) < len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}
