package engine

// Event names observable on a Handle.
const (
	EventShotStart     = "shotStart"
	EventShotEnd       = "shotEnd"
	EventEffectApplied = "effectApplied"
	EventPaused        = "paused"
	EventResumed       = "resumed"
	EventCompleted     = "completed"
	EventCancelled     = "cancelled"
	EventInterrupted   = "interrupted"
)

// ShotEvent is the payload of shotStart and shotEnd.
type ShotEvent struct {
	ShotIndex         int
	TotalShots        int
	ShotID            string
	Kind              string // "wait" or "motion"
	PlannedDurationMs float64
}

// EffectAppliedEvent is emitted when an effect's setup hook runs.
type EffectAppliedEvent struct {
	EffectID  string
	ShotIndex int
	ShotID    string
}

// Status is the terminal state of a run.
type Status string

const (
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusInterrupted Status = "interrupted"
)

// Result describes how a run ended. Err is set only when the run was
// torn down by a runtime invariant violation (e.g. a live edit
// introducing an unresolvable anchor).
type Result struct {
	Status       Status
	DefinitionID string
	Err          error
}
