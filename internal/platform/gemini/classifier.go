package gemini

import (
	"context"
	"strings"

	"github.com/curiouscoder-cmd/mindmend-api/internal/classify"
	"github.com/curiouscoder-cmd/mindmend-api/internal/domain"
)

// Generation parameters per call type. Classification and evaluation want
// consistency; question and synthesis generation benefit from some variety.
const (
	classifierTemperature = 0.2
	questionsTemperature  = 0.7
	synthesisTemperature  = 0.6
	evaluationTemperature = 0.3

	classifierMaxTokens = 1024
	questionsMaxTokens  = 1536
	synthesisMaxTokens  = 1024
	evaluationMaxTokens = 1024
)

// Classifier implements classify.Classifier against the Gemini API.
type Classifier struct {
	client *Client
}

// NewClassifier creates the remote classifier over a shared Client.
func NewClassifier(client *Client) *Classifier {
	return &Classifier{client: client}
}

// Classify asks the model for at most classify.MaxDetected distortions with
// confidence above classify.RemoteConfidenceMin. Errors are reported to the
// caller; the composite classifier owns the fallback decision.
func (c *Classifier) Classify(ctx context.Context, thought string) (*classify.Result, error) {
	if strings.TrimSpace(thought) == "" {
		return nil, ErrEmptyThought
	}

	var schema classificationSchema
	err := c.client.generateJSON(ctx, request{
		SystemInstruction: classifierSystemInstruction,
		Prompt:            classifierPrompt(thought),
		Temperature:       classifierTemperature,
		MaxTokens:         classifierMaxTokens,
	}, &schema)
	if err != nil {
		return nil, err
	}

	detected, err := validateClassification(schema)
	if err != nil {
		return nil, err
	}

	return &classify.Result{
		Distortions: detected,
		Suggestion:  strings.TrimSpace(schema.Suggestions),
		Source:      domain.SourceRemote,
	}, nil
}
