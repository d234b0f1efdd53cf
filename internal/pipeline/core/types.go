package core

import (
	"context"

	"github.com/kwshi/stripcode-bot/internal/score"
	"github.com/kwshi/stripcode-bot/pkg/models"
)

// Stage is a position in the round state machine:
// idle -> extracting -> reducing -> resolving -> querying -> scoring -> decided | failed.
// A decided round whose guess could not be sent fails at submitting.
type Stage string

const (
	StageIdle       Stage = "idle"
	StageExtracting Stage = "extracting"
	StageReducing   Stage = "reducing"
	StageResolving  Stage = "resolving"
	StageQuerying   Stage = "querying"
	StageScoring    Stage = "scoring"
	StageSubmitting Stage = "submitting"
	StageDecided    Stage = "decided"
	StageFailed     Stage = "failed"
)

// Outcome is the tagged result of one round: either Decided with a Decision
// or Failed with the stage and cause.
type Outcome struct {
	State      Stage               `json:"state"`
	FailedAt   Stage               `json:"failed_at,omitempty"`
	Token      string              `json:"token,omitempty"`
	Candidates []models.Repository `json:"candidates,omitempty"`
	Query      string              `json:"query,omitempty"`
	HitCount   int                 `json:"hit_count"`
	Scores     map[string]float64  `json:"scores,omitempty"`
	Decision   *models.Decision    `json:"decision,omitempty"`
	Failure    string              `json:"failure,omitempty"`
	Kind       FailureKind         `json:"kind,omitempty"`

	// Ranking keeps candidate order for display; Scores alone loses it
	Ranking []string `json:"-"`
	Err     error    `json:"-"`
}

// Decided reports whether the round produced a decision
func (o *Outcome) Decided() bool {
	return o.State == StageDecided && o.Decision != nil
}

// Context carries state through the pipeline steps.
// Steps read what earlier steps wrote and fill in their own fields.
type Context struct {
	// Base Inputs
	Ctx      context.Context
	Evidence *models.RoundEvidence
	Marker   string

	// Mutable State
	Token      string
	Candidates []models.Repository
	Query      string
	Hits       []models.SearchHit
	Scores     *score.Table
	Decision   *models.Decision
}

// Step defines a single unit of work in the round pipeline.
type Step interface {
	// Name returns the identifier used in logs
	Name() string
	// Stage is the state machine position this step belongs to
	Stage() Stage
	// Run executes the step logic. Any error fails the round.
	Run(ctx *Context) error
}
