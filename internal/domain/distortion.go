package domain

// DistortionCategory describes one entry in the fixed cognitive-distortion
// taxonomy. Categories are defined at process start and never mutated.
type DistortionCategory struct {
	// ID is the stable slug used to reference the category.
	ID string `json:"id"`

	// Name is the human-readable category name.
	Name string `json:"name"`

	// Description explains the thinking pattern the category captures.
	Description string `json:"description"`

	// Examples are short phrases typical of the category.
	Examples []string `json:"examples"`

	// Keywords are the lowercase phrases the heuristic classifier matches
	// against thought text.
	Keywords []string `json:"keywords"`
}

// DetectedDistortion is a single classifier finding for a thought.
// Confidence is advisory: the local classifier derives it from keyword hits
// while the remote classifier reports the model's own estimate, so values are
// not calibrated across the two implementations.
type DetectedDistortion struct {
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation"`
}

// distortions holds the taxonomy in declaration order. The order is load
// bearing: the local classifier breaks confidence ties by it.
var distortions = []DistortionCategory{
	{
		ID:          "all-or-nothing",
		Name:        "All-or-Nothing Thinking",
		Description: "Seeing things in absolute, black-and-white categories with no middle ground.",
		Examples: []string{
			"If I'm not perfect, I'm a complete failure",
			"I ruined the whole presentation",
		},
		Keywords: []string{
			"always", "never", "every time", "everything", "nothing",
			"complete", "totally", "perfect", "failure", "ruined", "all or nothing",
		},
	},
	{
		ID:          "overgeneralization",
		Name:        "Overgeneralization",
		Description: "Treating a single negative event as a never-ending pattern of defeat.",
		Examples: []string{
			"Nothing ever works out for me",
			"Everyone always lets me down",
		},
		Keywords: []string{
			"always happens", "never works", "everyone", "no one", "nobody",
			"all the time", "nothing ever", "every single",
		},
	},
	{
		ID:          "mental-filter",
		Name:        "Mental Filter",
		Description: "Dwelling on a single negative detail so it colors the entire experience.",
		Examples: []string{
			"All I can think about is the one question I got wrong",
		},
		Keywords: []string{
			"only bad", "nothing good", "worst part", "can't stop thinking",
			"all i can think", "keeps replaying",
		},
	},
	{
		ID:          "discounting-positive",
		Name:        "Discounting the Positive",
		Description: "Insisting that positive experiences or qualities don't count.",
		Examples: []string{
			"They only said that to be nice",
			"Passing was just luck",
		},
		Keywords: []string{
			"doesn't count", "doesn't matter", "just luck", "just lucky",
			"anyone could", "being nice", "just a fluke",
		},
	},
	{
		ID:          "jumping-to-conclusions",
		Name:        "Jumping to Conclusions",
		Description: "Assuming the worst interpretation without evidence, by mind reading or fortune telling.",
		Examples: []string{
			"She didn't reply, she must hate me",
			"I know this interview will go badly",
		},
		Keywords: []string{
			"they think", "they must", "probably thinks", "i know they",
			"going to fail", "will go wrong", "won't work", "must hate",
		},
	},
	{
		ID:          "catastrophizing",
		Name:        "Catastrophizing",
		Description: "Magnifying the importance of a setback until it feels unbearable.",
		Examples: []string{
			"This is a complete disaster",
			"I can't handle this",
		},
		Keywords: []string{
			"disaster", "terrible", "awful", "horrible", "worst",
			"catastrophe", "end of the world", "can't handle", "unbearable",
		},
	},
	{
		ID:          "emotional-reasoning",
		Name:        "Emotional Reasoning",
		Description: "Taking a feeling as proof of fact: I feel it, therefore it must be true.",
		Examples: []string{
			"I feel like an impostor, so I must be one",
		},
		Keywords: []string{
			"i feel like", "feels like", "i feel so", "must be true", "because i feel",
		},
	},
	{
		ID:          "should-statements",
		Name:        "Should Statements",
		Description: "Criticizing yourself or others with rigid shoulds, musts, and oughts.",
		Examples: []string{
			"I should have known better",
			"I must never make mistakes",
		},
		Keywords: []string{
			"should", "shouldn't", "must", "have to", "ought to", "supposed to",
		},
	},
	{
		ID:          "labeling",
		Name:        "Labeling",
		Description: "Attaching a global negative label to yourself or others instead of describing the event.",
		Examples: []string{
			"I'm a loser",
			"He's a jerk",
		},
		Keywords: []string{
			"i'm a", "i am a", "i'm such a", "he's a", "she's a",
			"loser", "idiot", "failure", "stupid", "worthless", "useless",
		},
	},
	{
		ID:          "personalization",
		Name:        "Personalization",
		Description: "Blaming yourself for events outside your control.",
		Examples: []string{
			"The team lost because of me",
			"It's my fault the party was boring",
		},
		Keywords: []string{
			"my fault", "because of me", "i caused", "blame myself",
			"i'm responsible", "i let everyone down",
		},
	},
}

// AllDistortions returns the full taxonomy in declaration order.
// The returned slice is a copy; callers may not mutate the taxonomy.
func AllDistortions() []DistortionCategory {
	out := make([]DistortionCategory, len(distortions))
	copy(out, distortions)
	return out
}

// DistortionByID looks up a category by its slug.
// Returns false if no category with the given ID exists.
func DistortionByID(id string) (DistortionCategory, bool) {
	for _, d := range distortions {
		if d.ID == id {
			return d, true
		}
	}
	return DistortionCategory{}, false
}
