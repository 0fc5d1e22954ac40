package domain

import (
	"errors"
	"strconv"
)

// QuestionCategory classifies the Socratic angle a challenge question takes.
type QuestionCategory string

// Valid question categories.
const (
	QuestionEvidence       QuestionCategory = "evidence"
	QuestionAlternatives   QuestionCategory = "alternatives"
	QuestionConsequences   QuestionCategory = "consequences"
	QuestionSelfCompassion QuestionCategory = "self-compassion"
	QuestionPerspective    QuestionCategory = "perspective"
)

// Common validation errors for ChallengeQuestion.
var (
	ErrInvalidQuestionID       = errors.New("question ID must be a positive integer")
	ErrEmptyQuestionText       = errors.New("question text cannot be empty")
	ErrInvalidQuestionCategory = errors.New("invalid question category")
)

// ChallengeQuestion is one open-ended question generated for a session.
// Questions are generated fresh per session and persisted only as part of
// the session record.
type ChallengeQuestion struct {
	// ID is 1-based and contiguous within a single generation.
	ID       int              `json:"id"`
	Question string           `json:"question"`
	Category QuestionCategory `json:"category"`

	// Purpose explains what answering the question is meant to surface.
	Purpose string `json:"purpose"`
}

// AnswerKey returns the key under which a session stores the answer to this
// question ("q1", "q2", ...).
func (q ChallengeQuestion) AnswerKey() string {
	return "q" + strconv.Itoa(q.ID)
}

// Validate checks the question's fields.
func (q ChallengeQuestion) Validate() error {
	if q.ID < 1 {
		return ErrInvalidQuestionID
	}
	if q.Question == "" {
		return ErrEmptyQuestionText
	}
	if !isValidQuestionCategory(q.Category) {
		return ErrInvalidQuestionCategory
	}
	return nil
}

// isValidQuestionCategory checks if the given category is a valid QuestionCategory.
func isValidQuestionCategory(c QuestionCategory) bool {
	switch c {
	case QuestionEvidence, QuestionAlternatives, QuestionConsequences,
		QuestionSelfCompassion, QuestionPerspective:
		return true
	default:
		return false
	}
}
