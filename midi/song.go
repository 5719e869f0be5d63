package midi

import (
	"fmt"

	"github.com/wfraser/pianoroll/model"
)

// DefaultTempoUS is the MIDI default of 120 beats per minute, used when
// a file never declares a tempo.
const DefaultTempoUS uint32 = 500000

type TrackInfo struct {
	Track      int
	Name       string
	Instrument string
}

// ChannelInfo is what a (track, channel) pair declared about itself.
// Bank and Program default to 0 when the file never set them, which the
// report calls out since most files are expected to.
type ChannelInfo struct {
	Part       model.Part
	Bank       uint8
	Program    uint8
	HasBank    bool
	HasProgram bool
}

// Song is everything the conversion needs from a source file, fully
// materialized. Events hold absolute ticks in file order, one run per
// track, so any single part's events are already tick-ordered.
type Song struct {
	Path         string
	Format       uint16
	TicksPerBeat uint16
	TempoUS      uint32
	HasTempo     bool
	Tracks       []TrackInfo
	Channels     []ChannelInfo
	Events       []model.NoteEvent
	Counts       map[model.Part]int
	Texts        []string
	Warnings     []string
}

// TempoBPM is the tempo in whole beats per minute, the way the header
// prints it.
func (s *Song) TempoBPM() int {
	return int(60000000 / s.TempoUS)
}

// HasPart reports whether the file has any note events for the part.
func (s *Song) HasPart(p model.Part) bool {
	return s.Counts[p] > 0
}

func (s *Song) Channel(p model.Part) (ChannelInfo, bool) {
	for _, c := range s.Channels {
		if c.Part == p {
			return c, true
		}
	}
	return ChannelInfo{}, false
}

// PartLabel is the friendliest name available for a part: the track's
// instrument name, else the track name, else the channel's program
// number, else nothing.
func (s *Song) PartLabel(p model.Part) string {
	if p.Track >= 0 && p.Track < len(s.Tracks) {
		t := s.Tracks[p.Track]
		if t.Instrument != "" {
			return t.Instrument
		}
		if t.Name != "" {
			return t.Name
		}
	}
	if c, ok := s.Channel(p); ok && c.HasProgram {
		return fmt.Sprintf("program %d", c.Program)
	}
	return ""
}
