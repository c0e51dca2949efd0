// Package engine implements the generic event-sourced command handler
// shared by every aggregate. A Handler validates a command against the
// current aggregate snapshot, turns it into domain events, and folds the
// events back into a new snapshot. It performs no I/O and keeps no state;
// optimistic-concurrency enforcement belongs to the storage layer that
// wraps it.
package engine

import (
	"fmt"

	"github.com/commercestore/commercestore/internal/model"
)

// Aggregate is the constraint every versioned snapshot satisfies.
// Aggregates are plain values; every transition produces a new value.
type Aggregate interface {
	AggregateID() model.ID
	AggregateMeta() model.MetaData
}

// Rules is the capability bundle a domain supplies to parameterize the
// handler. All functions are pure.
type Rules[A Aggregate, C model.Command] struct {
	// CreateNew builds the zero-state (Version 0) aggregate for a creation
	// command. ok is false when cmd is not a creation variant.
	CreateNew func(cmd C) (zero A, ok bool)

	// TargetID extracts the aggregate id the command refers to. A nil
	// result skips the identity check: callers pass no target id either
	// because the command cannot name one or to request create-or-append
	// semantics.
	TargetID func(cmd C) *model.ID

	// Decide validates cmd against the current state and produces the
	// resulting events, each stamped with the strictly next version.
	Decide func(agg A, cmd C) ([]model.Event, *Error)

	// Apply folds one event into the aggregate, returning the new value.
	// It must be total over the aggregate's event variants and must panic
	// on an unknown variant: that is a missing dispatch-table entry, not a
	// recoverable outcome.
	Apply func(agg A, event model.Event) A
}

// Result is the outcome of a successfully handled command.
type Result[A Aggregate] struct {
	Aggregate A
	Events    []model.Event
}

// Handler orchestrates validation, event generation and folding for one
// aggregate type. It is safe for concurrent use.
type Handler[A Aggregate, C model.Command] struct {
	rules Rules[A, C]
}

// New returns a Handler driven by the given rule bundle.
func New[A Aggregate, C model.Command](rules Rules[A, C]) *Handler[A, C] {
	if rules.CreateNew == nil || rules.TargetID == nil || rules.Decide == nil || rules.Apply == nil {
		panic("engine: incomplete rule bundle")
	}
	return &Handler[A, C]{rules: rules}
}

// HandleNew handles a command that creates a new aggregate. The command
// must be one of the aggregate's creation variants; anything else is
// protocol misuse. There is no version guard and no identity check here:
// a fresh aggregate has no identity to compare against.
func (h *Handler[A, C]) HandleNew(cmd C) (Result[A], ErrorList) {
	var none Result[A]

	zero, ok := h.rules.CreateNew(cmd)
	if !ok {
		return none, ErrorList{InvalidCommandForNew(cmd)}
	}

	events, derr := h.rules.Decide(zero, cmd)
	if derr != nil {
		return none, ErrorList{*derr}
	}

	return h.fold(zero, events), nil
}

// HandleExisting handles a command against the current persisted snapshot.
// Guards run in a fixed order: version guard, identity check, then the
// domain decision.
func (h *Handler[A, C]) HandleExisting(cmd C, agg A) (Result[A], ErrorList) {
	var none Result[A]

	if agg.AggregateMeta().Version == 0 {
		return none, ErrorList{ErrInconsistentVersion}
	}

	if target := h.rules.TargetID(cmd); target != nil && *target != agg.AggregateID() {
		return none, ErrorList{ErrInvalidAggregateForID}
	}

	events, derr := h.rules.Decide(agg, cmd)
	if derr != nil {
		return none, ErrorList{*derr}
	}

	return h.fold(agg, events), nil
}

// fold applies the events in order. Replaying the same events over the
// same starting snapshot is deterministic, so the aggregate can always be
// rebuilt from its history.
func (h *Handler[A, C]) fold(agg A, events []model.Event) Result[A] {
	next := agg
	for _, event := range events {
		if want := next.AggregateMeta().Version + 1; event.EventVersion() != want {
			panic(fmt.Sprintf("engine: event %T stamped with version %d, want %d",
				event, event.EventVersion(), want))
		}
		next = h.rules.Apply(next, event)
	}

	return Result[A]{Aggregate: next, Events: events}
}
