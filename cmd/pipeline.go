package cmd

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/wfraser/pianoroll/merge"
	"github.com/wfraser/pianoroll/midi"
	"github.com/wfraser/pianoroll/mix"
	"github.com/wfraser/pianoroll/model"
	"github.com/wfraser/pianoroll/page"
	"github.com/wfraser/pianoroll/pitch"
	"github.com/wfraser/pianoroll/report"
	"github.com/wfraser/pianoroll/roll"
)

// Config is one conversion run as specified on the command line. Zero
// values mean "not given": the mix file fills them in if it has them,
// built-in defaults after that.
type Config struct {
	Input      string
	Args       []string
	MixFile    string
	Output     string
	MidiOut    string
	FudgeTicks uint64
}

// Output is a fully computed conversion: everything the report printers
// and the artifact writers need.
type Output struct {
	Song        *midi.Song
	Selectors   []mix.Selector
	Divisor     float64
	FudgeTicks  uint64
	Merged      merge.Result
	RangeErrors []model.RangeError
	Notes       []model.Note
	Roll        roll.Roll
	PagePath    string
	MidiPath    string
}

// Convert runs the pipeline up to, not including, artifact emission.
// Fatal problems (unreadable file, malformed selector, selector matching
// nothing) come back as errors. Conflicts and range errors are findings,
// not failures; they ride along in the Output.
func Convert(cfg Config) (*Output, error) {
	song, err := midi.ReadFile(cfg.Input)
	if err != nil {
		return nil, err
	}

	parsed, err := mix.ParseArgs(cfg.Args)
	if err != nil {
		return nil, err
	}

	out := &Output{
		Song:       song,
		Selectors:  parsed.Selectors,
		Divisor:    parsed.Divisor,
		FudgeTicks: cfg.FudgeTicks,
		PagePath:   cfg.Output,
		MidiPath:   cfg.MidiOut,
	}

	if cfg.MixFile != "" {
		f, err := mix.LoadFile(cfg.MixFile)
		if err != nil {
			return nil, err
		}
		if len(out.Selectors) == 0 {
			out.Selectors = f.Selectors()
		}
		if !parsed.HasDivisor {
			out.Divisor = f.Divisor
		}
		if out.PagePath == "" {
			out.PagePath = f.Output
		}
		if out.MidiPath == "" {
			out.MidiPath = f.MidiOut
		}
		if out.FudgeTicks == 0 && f.FudgeTicks != nil {
			out.FudgeTicks = *f.FudgeTicks
		}
	}

	if out.FudgeTicks == 0 {
		out.FudgeTicks = merge.DefaultFudge(song.TicksPerBeat)
	}
	if out.PagePath == "" {
		out.PagePath = stem(cfg.Input) + ".png"
	}
	if out.MidiPath == "" {
		out.MidiPath = stem(cfg.Input) + ".roll.mid"
	}

	streams, err := mix.Select(song, out.Selectors)
	if err != nil {
		return nil, err
	}

	out.Merged = merge.Mix(streams, merge.Options{FudgeTicks: out.FudgeTicks})

	kept, rangeErrs := pitch.Validate(out.Merged.Timeline)
	out.RangeErrors = rangeErrs
	out.Notes = merge.Durations(kept)
	out.Roll = roll.Build(out.Notes, roll.Params{
		TempoUS:      song.TempoUS,
		TicksPerBeat: song.TicksPerBeat,
		Divisor:      out.Divisor,
	})

	return out, nil
}

func stem(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// WriteArtifacts emits the page image and the merged MIDI to the paths
// the conversion settled on.
func WriteArtifacts(out *Output) error {
	title := filepath.Base(out.Song.Path)
	if err := page.WriteFile(out.PagePath, out.Roll, page.Options{Title: title}); err != nil {
		return err
	}
	return midi.Write(out.MidiPath, out.Notes, out.Song.TicksPerBeat, out.Song.TempoUS)
}

// PrintReport writes the whole console report for a conversion.
func PrintReport(w io.Writer, out *Output) {
	report.PrintSong(w, out.Song)
	report.PrintConflicts(w, out.Merged.Conflicts)
	report.PrintRangeErrors(w, out.RangeErrors)
	report.PrintRoll(w, out.Roll)
}
