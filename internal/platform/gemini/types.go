package gemini

// Expected JSON shapes of model replies. Field mismatches are caught by the
// validate* functions, not by decoding.

// classificationSchema is the reply shape for distortion classification.
type classificationSchema struct {
	Distortions []distortionSchema `json:"distortions"`
	Suggestions string             `json:"suggestions"`
}

// distortionSchema is one detected distortion in a classification reply.
type distortionSchema struct {
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation"`
}

// questionsSchema is the reply shape for question generation.
type questionsSchema struct {
	Questions  []questionSchema `json:"questions"`
	KeyInsight string           `json:"keyInsight"`
}

// questionSchema is one generated question.
type questionSchema struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Category string `json:"category"`
	Purpose  string `json:"purpose"`
}

// synthesisSchema is the reply shape for balanced-thought synthesis.
type synthesisSchema struct {
	BalancedThought string `json:"balancedThought"`
	Explanation     string `json:"explanation"`
	Affirmation     string `json:"affirmation"`
}

// evaluationSchema is the reply shape for work-quality evaluation.
type evaluationSchema struct {
	Quality     string   `json:"quality"`
	Feedback    string   `json:"feedback"`
	Strengths   []string `json:"strengths"`
	Suggestions []string `json:"suggestions"`
}
