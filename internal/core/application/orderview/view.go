package orderview

import (
	"errors"
	"sync"

	"backoffice/internal/core/domain/model/order"
)

var (
	// ErrViewIsNotConstructed is returned when a View was not created through
	// the NewView factory method.
	ErrViewIsNotConstructed = errors.New("View must be created via NewView constructor")

	// ErrTransitionInFlight is returned when an operation needs the view to
	// be settled but a status update is already being submitted.
	ErrTransitionInFlight = errors.New("a status update is already in flight for this order")

	// ErrAnotherTransitionStaged is returned when a different target is
	// already staged for confirmation on the same order.
	ErrAnotherTransitionStaged = errors.New("another status change is already awaiting confirmation")

	// ErrNoStagedTransition is returned when there is nothing to confirm
	// or cancel.
	ErrNoStagedTransition = errors.New("no status change is awaiting confirmation")
)

// Phase is the submission state of a view's status update.
//
// Phase transitions:
//
//	Idle ──> Confirming ──> Submitting ──> Idle
//	            │                            ▲
//	            └────────── (cancel) ────────┘
//
// A failed submit also lands back in Idle, with the rolled-back status
// and LastError set.
type Phase int

const (
	// PhaseIdle means no status update is staged or running.
	PhaseIdle Phase = iota

	// PhaseConfirming means a target status is staged and waiting for the
	// staff member to confirm it, possibly with extra input.
	PhaseConfirming

	// PhaseSubmitting means the update has been applied optimistically and
	// the upstream call is in flight.
	PhaseSubmitting
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseConfirming:
		return "confirming"
	case PhaseSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// View is the locally tracked state of one order: the latest upstream
// snapshot, any optimistic status overlay, and the submission phase
// machine that keeps status updates non-reentrant per order.
//
// All methods are safe for concurrent use. The mutex is held only for
// state flips, never across network calls; mutual exclusion of the
// network phase comes from the phase machine itself, so a second caller
// fails fast with ErrTransitionInFlight instead of queueing.
type View struct {
	mu sync.Mutex

	ord *order.Order

	phase  Phase
	target order.Status

	// prior remembers the status before the optimistic apply so a failed
	// submit can roll back.
	prior order.Status

	// lastError is the message of the most recent failed submit. It is
	// cleared when the next update is staged.
	lastError string

	isConstructed bool
}

// NewView creates a view owning a private copy of the given order.
func NewView(ord *order.Order) (*View, error) {
	if err := ord.Validate(); err != nil {
		return nil, err
	}

	return &View{
		ord:           ord.Clone(),
		phase:         PhaseIdle,
		isConstructed: true,
	}, nil
}

// Validate ensures the View was created via NewView.
func (v *View) Validate() error {
	if v == nil || !v.isConstructed {
		return ErrViewIsNotConstructed
	}
	return nil
}

// ID returns the identifier of the tracked order.
func (v *View) ID() order.ID {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ord.ID()
}

// Order returns a snapshot of the tracked order, including any optimistic
// status overlay. The snapshot is a deep copy and never changes after it
// is handed out.
func (v *View) Order() *order.Order {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ord.Clone()
}

// Phase returns the current submission phase.
func (v *View) Phase() Phase {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.phase
}

// Busy reports whether a status update is staged or in flight.
func (v *View) Busy() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.phase != PhaseIdle
}

// LastError returns the message of the most recent failed submit, or the
// empty string after a success or before any submit.
func (v *View) LastError() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastError
}

// StagedTarget returns the target staged for confirmation, or Unknown
// when the view is idle.
func (v *View) StagedTarget() order.Status {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.phase == PhaseIdle {
		return order.Unknown
	}
	return v.target
}

// Stage moves an idle view to Confirming with the given target. Exactly
// one caller wins when several race; the losers get ErrTransitionInFlight
// or ErrAnotherTransitionStaged depending on how far the winner got.
func (v *View) Stage(target order.Status) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch v.phase {
	case PhaseConfirming:
		return ErrAnotherTransitionStaged
	case PhaseSubmitting:
		return ErrTransitionInFlight
	}

	v.phase = PhaseConfirming
	v.target = order.ParseStatus(string(target))
	v.lastError = ""
	return nil
}

// EnsureStaged makes sure the given target is staged, staging it on an
// idle view. A confirm request may arrive without a preceding stage when
// the transition needed no extra input.
//
// Returns ErrAnotherTransitionStaged when a different target is staged and
// ErrTransitionInFlight when a submit is already running.
func (v *View) EnsureStaged(target order.Status) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	want := order.ParseStatus(string(target))

	switch v.phase {
	case PhaseIdle:
		v.phase = PhaseConfirming
		v.target = want
		v.lastError = ""
		return nil
	case PhaseConfirming:
		if v.target != want {
			return ErrAnotherTransitionStaged
		}
		return nil
	default:
		return ErrTransitionInFlight
	}
}

// CancelStaged abandons a staged update before submit. Cancelling is free:
// nothing was applied yet, so there is nothing to roll back and no
// upstream call to make.
func (v *View) CancelStaged() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch v.phase {
	case PhaseIdle:
		return ErrNoStagedTransition
	case PhaseSubmitting:
		return ErrTransitionInFlight
	}

	v.phase = PhaseIdle
	v.target = order.Unknown
	return nil
}

// BeginSubmit applies the staged target optimistically and moves to
// Submitting. It returns the status the order had before the apply, which
// a failed submit rolls back to and a confirmed one publishes as the
// event's origin.
//
// The transition table is enforced here: an illegal staged target leaves
// the view in Confirming and returns the table's error.
func (v *View) BeginSubmit() (order.Status, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch v.phase {
	case PhaseIdle:
		return order.Unknown, ErrNoStagedTransition
	case PhaseSubmitting:
		return order.Unknown, ErrTransitionInFlight
	}

	prior := v.ord.Status()
	if err := v.ord.ChangeStatus(v.target); err != nil {
		return order.Unknown, err
	}

	v.prior = prior
	v.phase = PhaseSubmitting
	return prior, nil
}

// CompleteSubmit settles a successful submit: the optimistic status is
// kept and the view returns to Idle.
func (v *View) CompleteSubmit() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.phase != PhaseSubmitting {
		return ErrNoStagedTransition
	}

	v.phase = PhaseIdle
	v.target = order.Unknown
	v.lastError = ""
	return nil
}

// FailSubmit rolls back a failed submit: the status reverts to what it
// was before the optimistic apply, the message is recorded in LastError,
// and the view returns to Idle so the staff member can retry.
func (v *View) FailSubmit(message string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.phase != PhaseSubmitting {
		return ErrNoStagedTransition
	}

	v.ord.SyncStatus(v.prior)
	v.phase = PhaseIdle
	v.target = order.Unknown
	v.lastError = message
	return nil
}

// RefreshFromServer replaces the snapshot with a fresh upstream read.
// Busy views are left untouched so a refresh can never clobber an
// optimistic overlay; the refresh is simply skipped and reported false.
func (v *View) RefreshFromServer(fresh *order.Order) bool {
	if err := fresh.Validate(); err != nil {
		return false
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.phase != PhaseIdle {
		return false
	}
	if !v.ord.ID().IsEqual(fresh.ID()) {
		return false
	}

	v.ord = fresh.Clone()
	return true
}

// ApplyServerStatus overwrites the snapshot's status with upstream truth,
// bypassing the transition table. Used after bulk updates, where the
// upstream confirmed the status without this view's involvement. Busy
// views are skipped and reported false.
func (v *View) ApplyServerStatus(status order.Status) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.phase != PhaseIdle {
		return false
	}

	v.ord.SyncStatus(status)
	return true
}

// ApplyPatch applies confirmed field edits to the snapshot. Patches touch
// no status, so they are allowed in any phase.
func (v *View) ApplyPatch(patch order.Patch) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ord.ApplyPatch(patch)
}
