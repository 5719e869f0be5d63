package merge

import (
	"sort"

	"github.com/wfraser/pianoroll/model"
)

// Options tunes the conflict detector.
type Options struct {
	// FudgeTicks is the window under which a re-press of a held key is
	// considered inaudible and not worth flagging.
	FudgeTicks uint64
}

// DefaultFudge is a third of a beat at the file's own resolution.
// Overlaps shorter than that turned out not to matter in practice.
func DefaultFudge(ticksPerBeat uint16) uint64 {
	return uint64(ticksPerBeat) / 3
}

// Result of a merge: the accepted timeline, where every pitch has at
// most one holder at any tick, and every conflict met along the way in
// tick order.
type Result struct {
	Timeline  []model.NoteEvent
	Conflicts []model.Conflict
}

// Interleave flattens per-selection streams, each already tick-ordered,
// into one tick-ordered sequence. The sort is stable so ties across
// streams keep selection order and ties within a stream keep file order.
func Interleave(streams [][]model.NoteEvent) []model.NoteEvent {
	var total int
	for _, s := range streams {
		total += len(s)
	}
	merged := make([]model.NoteEvent, 0, total)
	for _, s := range streams {
		merged = append(merged, s...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Tick < merged[j].Tick
	})
	return merged
}

// Timeline folds a tick-ordered sequence down to a schedule a single
// physical key can follow. The first press of a pitch owns it until the
// first release. A press landing on a held key is dropped: it gets
// flagged when another part holds the key and the overlap exceeds the
// fudge window, and either way it licenses one later release to pass
// silently, so the tail of a doubled note doesn't show up as a second
// error.
func Timeline(events []model.NoteEvent, opts Options) Result {
	owners := make(map[int]model.Owner)
	suppressed := make(map[int]int)

	res := Result{Timeline: make([]model.NoteEvent, 0, len(events))}

	for _, ev := range events {
		switch ev.Kind {
		case model.Press:
			owner, held := owners[ev.Pitch]
			if !held {
				owners[ev.Pitch] = model.Owner{Part: ev.Part, Tick: ev.Tick}
				res.Timeline = append(res.Timeline, ev)
				continue
			}
			if owner.Part != ev.Part && ev.Tick-owner.Tick > opts.FudgeTicks {
				res.Conflicts = append(res.Conflicts, model.Conflict{
					Kind:  model.AlreadyPressed,
					Pitch: ev.Pitch,
					Tick:  ev.Tick,
					Part:  ev.Part,
					Owner: owner,
				})
			}
			suppressed[ev.Pitch]++

		case model.Release:
			if _, held := owners[ev.Pitch]; held {
				// Accepted on pitch alone; whichever part releases
				// first lifts the key.
				delete(owners, ev.Pitch)
				res.Timeline = append(res.Timeline, ev)
				continue
			}
			if suppressed[ev.Pitch] > 0 {
				suppressed[ev.Pitch]--
				continue
			}
			res.Conflicts = append(res.Conflicts, model.Conflict{
				Kind:  model.NotPressed,
				Pitch: ev.Pitch,
				Tick:  ev.Tick,
				Part:  ev.Part,
			})
		}
	}

	return res
}

// Mix is Interleave followed by Timeline.
func Mix(streams [][]model.NoteEvent, opts Options) Result {
	return Timeline(Interleave(streams), opts)
}

// Durations pairs each accepted press with its release and returns the
// notes sorted by start tick. A press still hanging at the end of the
// timeline yields nothing.
func Durations(timeline []model.NoteEvent) []model.Note {
	open := make(map[int]model.NoteEvent)
	var notes []model.Note
	for _, ev := range timeline {
		switch ev.Kind {
		case model.Press:
			open[ev.Pitch] = ev
		case model.Release:
			press, ok := open[ev.Pitch]
			if !ok {
				continue
			}
			delete(open, ev.Pitch)
			notes = append(notes, model.Note{
				Pitch:    ev.Pitch,
				Tick:     press.Tick,
				Duration: ev.Tick - press.Tick,
				Velocity: press.Velocity,
			})
		}
	}
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Tick < notes[j].Tick
	})
	return notes
}
