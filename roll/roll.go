package roll

import (
	"github.com/wfraser/pianoroll/model"
	"github.com/wfraser/pianoroll/pitch"
	"github.com/wfraser/pianoroll/util"
)

// MaxPageLength is the longest roll a single page can hold, in length
// units. One unit is one second of performance at divisor 1, so at the
// default divisor a page is a bit over three minutes.
const MaxPageLength = 200.0

// Params fix the tick-to-length mapping for one build.
type Params struct {
	TempoUS      uint32
	TicksPerBeat uint16
	Divisor      float64
}

// LengthPerTick is the undivided length of a single tick: the seconds
// of performance it spans at the declared tempo.
func (p Params) LengthPerTick() float64 {
	return float64(p.TempoUS) / 1e6 / float64(p.TicksPerBeat)
}

// Segment is one punched slot: a pitch column with a vertical extent in
// length units.
type Segment struct {
	Pitch     int
	Column    int
	StartTick uint64
	EndTick   uint64
	Start     float64
	End       float64
}

// Roll is the full page geometry for a merged, validated timeline.
type Roll struct {
	Segments []Segment
	Length   float64
	Params   Params
}

// Build lays the paired notes out on the page. The same notes and
// params always produce the same geometry; nothing here may depend on
// anything but the inputs.
func Build(notes []model.Note, p Params) Roll {
	lpt := p.LengthPerTick() / p.Divisor
	r := Roll{Params: p, Segments: make([]Segment, 0, len(notes))}
	for _, n := range notes {
		seg := Segment{
			Pitch:     n.Pitch,
			Column:    pitch.Column(n.Pitch),
			StartTick: n.Tick,
			EndTick:   n.EndTick(),
			Start:     float64(n.Tick) * lpt,
			End:       float64(n.EndTick()) * lpt,
		}
		r.Segments = append(r.Segments, seg)
		r.Length = util.Max(r.Length, seg.End)
	}
	return r
}

// OverLength reports whether the roll spills past a single page. The
// limit is soft: the artifacts are still produced, the report just
// warns.
func (r Roll) OverLength() bool {
	return r.Length > MaxPageLength
}
