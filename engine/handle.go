package engine

import (
	"github.com/milk9111/cinecam/definition"
)

// Handler receives an event payload.
type Handler func(payload any)

// Handle is the live control and observation surface for one run. All
// methods must be called from the engine's tick context: the engine is
// single-threaded cooperative, so handlers and mutators run between
// ticks, never concurrently with one.
type Handle struct {
	run *run

	nextHandlerID int
	handlers      map[string][]handlerEntry

	done chan Result
}

type handlerEntry struct {
	id int
	fn Handler
}

func newHandle(r *run) *Handle {
	return &Handle{
		run:      r,
		handlers: map[string][]handlerEntry{},
		done:     make(chan Result, 1),
	}
}

// Done settles with the run's result once it reaches a terminal state.
func (h *Handle) Done() <-chan Result { return h.done }

// Pause suspends shot progress. Elapsed time stops accumulating until
// Resume; camera writes stop until then.
func (h *Handle) Pause() { h.run.pause() }

// Resume continues a paused run.
func (h *Handle) Resume() { h.run.resume() }

// Cancel flags the run cancelled; it finalizes on its next tick.
func (h *Handle) Cancel() { h.run.cancel() }

// Skip is an alias of Cancel.
func (h *Handle) Skip() { h.run.cancel() }

// Edit applies an in-place patch to the live definition.
func (h *Handle) Edit(mutator func(*definition.Cinematic)) {
	if mutator == nil {
		return
	}
	mutator(h.run.def)
}

// InsertShot inserts a shot at the given index, clamped to the list.
// Shots already played are unaffected.
func (h *Handle) InsertShot(index int, shot *definition.Shot) {
	if shot == nil {
		return
	}
	shots := h.run.def.Shots
	if index < 0 {
		index = 0
	}
	if index > len(shots) {
		index = len(shots)
	}
	shots = append(shots[:index], append([]*definition.Shot{shot}, shots[index:]...)...)
	h.run.def.Shots = shots
}

// ReplaceShot swaps the shot with the given id. No-op when absent.
func (h *Handle) ReplaceShot(id string, shot *definition.Shot) {
	if shot == nil {
		return
	}
	if i := h.run.def.ShotByID(id); i >= 0 {
		h.run.def.Shots[i] = shot
	}
}

// SetEffects replaces the definition's global effect list. Takes effect
// from the next shot onward.
func (h *Handle) SetEffects(refs []definition.EffectReference) {
	h.run.def.Effects = refs
}

// AddEffect appends a global effect reference.
func (h *Handle) AddEffect(ref definition.EffectReference) {
	h.run.def.Effects = append(h.run.def.Effects, ref)
}

// RemoveEffect drops every global reference to the given effect id.
func (h *Handle) RemoveEffect(id string) {
	refs := h.run.def.Effects[:0]
	for _, ref := range h.run.def.Effects {
		if ref.Effect != id {
			refs = append(refs, ref)
		}
	}
	h.run.def.Effects = refs
}

// On subscribes a handler to an event and returns its unsubscribe.
func (h *Handle) On(event string, fn Handler) func() {
	if fn == nil {
		return func() {}
	}
	h.nextHandlerID++
	id := h.nextHandlerID
	h.handlers[event] = append(h.handlers[event], handlerEntry{id: id, fn: fn})

	return func() {
		entries := h.handlers[event]
		for i, e := range entries {
			if e.id == id {
				h.handlers[event] = append(entries[:i], entries[i+1:]...)
				return
			}
		}
	}
}

// Emit dispatches an event to its subscribers. The handler list is
// snapshotted first, so a handler unsubscribing (or subscribing) during
// dispatch does not disturb the current pass.
func (h *Handle) Emit(event string, payload any) {
	entries := h.handlers[event]
	if len(entries) == 0 {
		return
	}
	snapshot := make([]handlerEntry, len(entries))
	copy(snapshot, entries)
	for _, e := range snapshot {
		e.fn(payload)
	}
}

func (h *Handle) finish(result Result) {
	switch result.Status {
	case StatusCompleted:
		h.Emit(EventCompleted, result)
	case StatusCancelled:
		h.Emit(EventCancelled, result)
	case StatusInterrupted:
		h.Emit(EventInterrupted, result)
	}
	h.done <- result
}
