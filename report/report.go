package report

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/wfraser/pianoroll/midi"
	"github.com/wfraser/pianoroll/model"
	"github.com/wfraser/pianoroll/pitch"
	"github.com/wfraser/pianoroll/roll"
)

// FormatName names the SMF format the way the header prints it.
func FormatName(s *midi.Song) string {
	switch s.Format {
	case 0:
		return "single track"
	case 1:
		return fmt.Sprintf("multiple track (%d)", len(s.Tracks))
	case 2:
		return fmt.Sprintf("multiple song (%d)", len(s.Tracks))
	default:
		return "unknown!"
	}
}

// PrintSong writes the header block: file facts, meta text, decode
// warnings, track names, and one line per part.
func PrintSong(w io.Writer, s *midi.Song) {
	fmt.Fprintf(w, "MIDI file format: %s\n", FormatName(s))
	fmt.Fprintf(w, "%d MIDI ticks per metronome beat\n", s.TicksPerBeat)
	if s.HasTempo {
		fmt.Fprintf(w, "Tempo: %d beats per minute\n", s.TempoBPM())
	}

	for _, t := range s.Texts {
		fmt.Fprintln(w, t)
	}
	for _, warn := range s.Warnings {
		fmt.Fprintf(w, "WARNING: %s\n", warn)
	}

	for _, t := range s.Tracks {
		if t.Name != "" {
			fmt.Fprintf(w, "Track %d Name: %s\n", t.Track, t.Name)
		}
		if t.Instrument != "" {
			fmt.Fprintf(w, "Track %d Instrument: %s\n", t.Track, t.Instrument)
		}
	}

	for _, c := range s.Channels {
		if !c.HasBank {
			fmt.Fprintf(w, "ERROR: track %d channel %d has no MIDI bank set\n", c.Part.Track, c.Part.Channel)
		}
		if !c.HasProgram {
			fmt.Fprintf(w, "ERROR: track %d channel %d has no MIDI program set\n", c.Part.Track, c.Part.Channel)
		}
		if label := s.PartLabel(c.Part); label != "" {
			fmt.Fprintf(w, "track %d, channel %d (%s): %d note events\n", c.Part.Track, c.Part.Channel, label, s.Counts[c.Part])
		} else {
			fmt.Fprintf(w, "track %d, channel %d: %d note events\n", c.Part.Track, c.Part.Channel, s.Counts[c.Part])
		}
	}
}

// ConflictLine renders one merge conflict the way the console shows it.
func ConflictLine(c model.Conflict) string {
	switch c.Kind {
	case model.AlreadyPressed:
		return fmt.Sprintf("ERROR: at %d, note %s on track %d channel %d already pressed at %d by %d,%d",
			c.Tick, pitch.Name(c.Pitch), c.Part.Track, c.Part.Channel,
			c.Owner.Tick, c.Owner.Part.Track, c.Owner.Part.Channel)
	default:
		return fmt.Sprintf("ERROR: at %d on track %d channel %d, note %s is not pressed yet",
			c.Tick, c.Part.Track, c.Part.Channel, pitch.Name(c.Pitch))
	}
}

// RangeLine renders one range error.
func RangeLine(e model.RangeError) string {
	return fmt.Sprintf("ERROR: at %d, note %s on track %d channel %d is outside the piano roll range",
		e.Tick, pitch.Name(e.Pitch), e.Part.Track, e.Part.Channel)
}

func PrintConflicts(w io.Writer, conflicts []model.Conflict) {
	for _, c := range conflicts {
		fmt.Fprintln(w, ConflictLine(c))
	}
}

func PrintRangeErrors(w io.Writer, errs []model.RangeError) {
	for _, e := range errs {
		fmt.Fprintln(w, RangeLine(e))
	}
}

// PrintRoll writes the roll length summary and the over-length warning.
func PrintRoll(w io.Writer, r roll.Roll) {
	fmt.Fprintf(w, "Total roll length: %.1f units\n", r.Length)
	if r.OverLength() {
		fmt.Fprintf(w, "WARNING: roll length %.1f exceeds the single-page limit of %.0f units\n", r.Length, roll.MaxPageLength)
	}
}

// JSON assembles the full report as the serve endpoint returns it.
func JSON(s *midi.Song, divisor float64, conflicts []model.Conflict, rangeErrs []model.RangeError, r roll.Roll) model.ReportResponse {
	resp := model.ReportResponse{
		File:         filepath.Base(s.Path),
		Format:       s.Format,
		TicksPerBeat: s.TicksPerBeat,
		TempoBPM:     s.TempoBPM(),
		Divisor:      divisor,
		Parts:        make([]model.PartSummary, 0, len(s.Channels)),
		Conflicts:    make([]model.ConflictSummary, 0, len(conflicts)),
		RangeErrors:  make([]model.RangeErrorSummary, 0, len(rangeErrs)),
		Notes:        len(r.Segments),
		TotalLength:  r.Length,
		OverLimit:    r.OverLength(),
	}

	for _, c := range s.Channels {
		resp.Parts = append(resp.Parts, model.PartSummary{
			Track:      c.Part.Track,
			Channel:    c.Part.Channel,
			Label:      s.PartLabel(c.Part),
			NoteEvents: s.Counts[c.Part],
		})
	}
	for _, c := range conflicts {
		sum := model.ConflictSummary{
			Kind:    c.Kind.String(),
			Tick:    c.Tick,
			Note:    pitch.Name(c.Pitch),
			Track:   c.Part.Track,
			Channel: c.Part.Channel,
		}
		if c.Kind == model.AlreadyPressed {
			sum.OwnerTrack = c.Owner.Part.Track
			sum.OwnerChannel = c.Owner.Part.Channel
			sum.OwnerTick = c.Owner.Tick
		}
		resp.Conflicts = append(resp.Conflicts, sum)
	}
	for _, e := range rangeErrs {
		resp.RangeErrors = append(resp.RangeErrors, model.RangeErrorSummary{
			Tick:    e.Tick,
			Note:    pitch.Name(e.Pitch),
			Track:   e.Part.Track,
			Channel: e.Part.Channel,
		})
	}

	return resp
}
