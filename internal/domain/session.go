package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionStep tracks wizard progress. Steps only move forward; editing an
// earlier input clears everything derived from it.
type SessionStep int

const (
	StepNarrative   SessionStep = 1
	StepGames       SessionStep = 2
	StepMechanics   SessionStep = 3
	StepSchema      SessionStep = 4
	StepRatings     SessionStep = 5
	StepSuggestions SessionStep = 6
	StepExport      SessionStep = 7
)

// IdeaSession is the in-memory state of one ideation run. Nothing here is
// persisted; a restart discards all sessions by design.
type IdeaSession struct {
	ID              uuid.UUID           `json:"id"`
	Step            SessionStep         `json:"step"`
	NarrativePrompt string              `json:"narrative_prompt"`
	Profile         NarrativeProfile    `json:"profile"`
	SelectedGames   []Game              `json:"selected_games"`
	Mechanics       []ExtractedMechanic `json:"mechanics"`
	Schema          Schema              `json:"schema"`
	Ratings         *RatingProfile      `json:"ratings,omitempty"`
	Fit             *FitAssessment      `json:"fit,omitempty"`
	Suggestions     []Suggestion        `json:"suggestions"`
	Locked          *LockedIdea         `json:"locked,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// LockedIdea is the frozen snapshot taken when the user locks in a result; it
// is what the export formatter renders.
type LockedIdea struct {
	NarrativePrompt string              `json:"narrative_prompt"`
	SelectedGames   []Game              `json:"selected_games"`
	Mechanics       []ExtractedMechanic `json:"mechanics"`
	Schema          Schema              `json:"schema"`
	Ratings         RatingProfile       `json:"ratings"`
	Suggestions     []Suggestion        `json:"suggestions"`
	LockedAt        time.Time           `json:"locked_at"`
}
