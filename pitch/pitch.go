package pitch

import (
	"fmt"

	"github.com/wfraser/pianoroll/model"
)

// Playable window of the roll, inclusive. 24 is C1 and 103 is G7; the
// punch head has one column per semitone in between.
const (
	Min = 24
	Max = 103
)

// Columns is the number of key columns on a page.
const Columns = Max - Min + 1

var names = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Name renders a pitch in scientific notation with sharps, C4 = 60. It
// tolerates values outside MIDI range, which selection shifts can
// produce.
func Name(p int) string {
	pc := p % 12
	oct := p / 12
	if pc < 0 {
		pc += 12
		oct--
	}
	return fmt.Sprintf("%s%d", names[pc], oct-1)
}

func InRange(p int) bool {
	return p >= Min && p <= Max
}

// Column is the page column for a pitch, 0 at the low end.
func Column(p int) int {
	return p - Min
}

// Validate splits an accepted timeline into playable events and range
// errors. It runs after the merge on purpose: an out-of-range event
// still takes part in conflict bookkeeping first, it just never reaches
// the page.
func Validate(timeline []model.NoteEvent) ([]model.NoteEvent, []model.RangeError) {
	kept := make([]model.NoteEvent, 0, len(timeline))
	var errs []model.RangeError
	for _, ev := range timeline {
		if !InRange(ev.Pitch) {
			errs = append(errs, model.RangeError{Pitch: ev.Pitch, Tick: ev.Tick, Part: ev.Part})
			continue
		}
		kept = append(kept, ev)
	}
	return kept, errs
}
