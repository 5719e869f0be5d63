package mix

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wfraser/pianoroll/midi"
	"github.com/wfraser/pianoroll/model"
)

// Selector picks one (track, channel) part and transposes it by Shift
// semitones.
type Selector struct {
	Part  model.Part
	Shift int
}

func (s Selector) String() string {
	if s.Shift == 0 {
		return s.Part.String()
	}
	return fmt.Sprintf("%s%+d", s.Part, s.Shift)
}

// ParseError means an argument didn't follow the selector grammar.
type ParseError struct {
	Arg    string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed argument %q: %s", e.Arg, e.Reason)
}

// SelectionError means a selector named a part the file doesn't have.
type SelectionError struct {
	Part model.Part
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("track %d channel %d is not a part of this file", e.Part.Track, e.Part.Channel)
}

// Args is what the positional arguments can carry: selectors in the
// order given, plus at most one time divisor.
type Args struct {
	Selectors  []Selector
	Divisor    float64
	HasDivisor bool
}

// ParseArgs reads the selection grammar: "track,channel" with an
// optional trailing +n or -n semitone shift, and "/x" for the time
// divisor. Repeating a selector is allowed, an octave doubling is two
// selections of the same part.
func ParseArgs(args []string) (Args, error) {
	out := Args{Divisor: 1}
	for _, arg := range args {
		if strings.HasPrefix(arg, "/") {
			div, err := strconv.ParseFloat(arg[1:], 64)
			if err != nil {
				return Args{}, &ParseError{Arg: arg, Reason: "time divisor must be a number"}
			}
			// NaN fails this comparison too, so "/NaN" can't slip through
			// and poison the geometry.
			if !(div > 0) {
				return Args{}, &ParseError{Arg: arg, Reason: "time divisor must be positive"}
			}
			out.Divisor = div
			out.HasDivisor = true
			continue
		}
		sel, err := parseSelector(arg)
		if err != nil {
			return Args{}, err
		}
		out.Selectors = append(out.Selectors, sel)
	}
	return out, nil
}

func parseSelector(arg string) (Selector, error) {
	trackStr, rest, found := strings.Cut(arg, ",")
	if !found {
		return Selector{}, &ParseError{Arg: arg, Reason: "expected \"track,channel\""}
	}

	track, err := strconv.Atoi(trackStr)
	if err != nil || track < 0 {
		return Selector{}, &ParseError{Arg: arg, Reason: "bad track number"}
	}

	shift := 0
	chanStr := rest
	if i := strings.IndexAny(rest, "+-"); i >= 0 {
		chanStr = rest[:i]
		shift, err = strconv.Atoi(rest[i:])
		if err != nil {
			return Selector{}, &ParseError{Arg: arg, Reason: "bad semitone shift"}
		}
	}

	channel, err := strconv.ParseUint(chanStr, 10, 8)
	if err != nil {
		return Selector{}, &ParseError{Arg: arg, Reason: "bad channel number"}
	}

	return Selector{
		Part:  model.Part{Track: track, Channel: uint8(channel)},
		Shift: shift,
	}, nil
}

// Select pulls one event stream per selector out of the song, in
// selector order, with the semitone shift applied to copies of the
// events. A selector that matches no note events is an error: the
// operator almost certainly mistyped a track or channel.
func Select(song *midi.Song, sels []Selector) ([][]model.NoteEvent, error) {
	streams := make([][]model.NoteEvent, 0, len(sels))
	for _, sel := range sels {
		if !song.HasPart(sel.Part) {
			return nil, &SelectionError{Part: sel.Part}
		}
		stream := make([]model.NoteEvent, 0, song.Counts[sel.Part])
		for _, ev := range song.Events {
			if ev.Part != sel.Part {
				continue
			}
			ev.Pitch += sel.Shift
			stream = append(stream, ev)
		}
		streams = append(streams, stream)
	}
	return streams, nil
}
