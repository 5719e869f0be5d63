package midi

import (
	"bytes"
	"io"
	"sort"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/wfraser/pianoroll/model"
	"github.com/wfraser/pianoroll/util"
)

// writeVelocity is used for every emitted note. The merged file is a
// proofing aid, not a performance, so dynamics are flattened.
const writeVelocity = 90

// Encode serializes a merged timeline as a fresh two-track SMF: track 0
// carries the tempo, track 1 the notes on channel 0 behind a bank select
// and a program change.
func Encode(w io.Writer, notes []model.Note, ticksPerBeat uint16, tempoUS uint32) error {
	mf := smf.New()
	mf.TimeFormat = smf.MetricTicks(ticksPerBeat)

	var meta smf.Track
	meta.Add(0, smf.MetaTempo(60000000.0/float64(tempoUS)))
	meta.Close(0)
	mf.Add(meta)

	events := make([]model.NoteEvent, 0, 2*len(notes))
	for _, n := range notes {
		events = append(events,
			model.NoteEvent{Pitch: n.Pitch, Kind: model.Press, Tick: n.Tick},
			model.NoteEvent{Pitch: n.Pitch, Kind: model.Release, Tick: n.EndTick()},
		)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Tick < events[j].Tick
	})

	var tr smf.Track
	tr.Add(0, midi.ControlChange(0, 0, 0))
	tr.Add(0, midi.ProgramChange(0, 1))
	var last uint64
	for _, ev := range events {
		delta := uint32(ev.Tick - last)
		last = ev.Tick
		switch ev.Kind {
		case model.Press:
			tr.Add(delta, midi.NoteOn(0, uint8(ev.Pitch), writeVelocity))
		case model.Release:
			tr.Add(delta, midi.NoteOff(0, uint8(ev.Pitch)))
		}
	}
	tr.Close(0)
	mf.Add(tr)

	if _, err := mf.WriteTo(w); err != nil {
		return errors.Wrap(err, "encoding midi")
	}
	return nil
}

// Write is Encode straight to a file, atomically.
func Write(path string, notes []model.Note, ticksPerBeat uint16, tempoUS uint32) error {
	var buf bytes.Buffer
	if err := Encode(&buf, notes, ticksPerBeat, tempoUS); err != nil {
		return err
	}
	return util.WriteFileAtomic(path, buf.Bytes())
}
