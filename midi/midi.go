package midi

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"unicode/utf8"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
	"golang.org/x/text/encoding/charmap"

	"github.com/wfraser/pianoroll/model"
)

// ReadFile loads and digests a standard MIDI file.
func ReadFile(path string) (*Song, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading midi file")
	}
	mf, err := parse(bytes.NewReader(dat))
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return extract(path, mf)
}

// ReadFrom is ReadFile for an in-memory stream.
func ReadFrom(r io.Reader, name string) (*Song, error) {
	mf, err := parse(r)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", name)
	}
	return extract(name, mf)
}

// parse wraps smf.ReadFrom. The decoder panics on some malformed files
// (https://github.com/gomidi/midi/issues/20), so catch that and hand it
// back as a parse error.
func parse(r io.Reader) (mf *smf.SMF, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = errors.Errorf("malformed midi data: %v", p)
		}
	}()
	return smf.ReadFrom(r)
}

// extract walks every track once and pulls out the note events, the
// per-track and per-channel metadata, and the header facts the report
// prints.
func extract(path string, mf *smf.SMF) (*Song, error) {
	ticks, ok := mf.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, errors.Errorf("unsupported time format %v: only metric ticks per beat can be mapped onto a roll", mf.TimeFormat)
	}

	song := &Song{
		Path:         path,
		Format:       mf.Format(),
		TicksPerBeat: uint16(ticks),
		TempoUS:      DefaultTempoUS,
		Counts:       make(map[model.Part]int),
	}

	channels := make(map[model.Part]*ChannelInfo)

	for trackNo, track := range mf.Tracks {
		info := TrackInfo{Track: trackNo}
		var abs uint64
		for _, ev := range track {
			abs += uint64(ev.Delta)
			msg := ev.Message

			var ch, key, vel, val uint8
			var text string
			var bpm float64

			switch {
			case msg.GetNoteStart(&ch, &key, &vel):
				part := model.Part{Track: trackNo, Channel: ch}
				song.Events = append(song.Events, model.NoteEvent{
					Part:     part,
					Pitch:    int(key),
					Kind:     model.Press,
					Tick:     abs,
					Velocity: vel,
				})
				song.Counts[part]++
				touch(channels, part)

			case msg.GetNoteEnd(&ch, &key):
				part := model.Part{Track: trackNo, Channel: ch}
				song.Events = append(song.Events, model.NoteEvent{
					Part:  part,
					Pitch: int(key),
					Kind:  model.Release,
					Tick:  abs,
				})
				song.Counts[part]++
				touch(channels, part)

			case msg.GetControlChange(&ch, &key, &val):
				// Only bank select MSB matters for the report.
				if key != 0 {
					break
				}
				c := touch(channels, model.Part{Track: trackNo, Channel: ch})
				if !c.HasBank {
					c.Bank = val
					c.HasBank = true
				} else if c.Bank != val {
					song.warnf("track %d channel %d set to another bank (%d) mid-song", trackNo, ch, val)
				}

			case msg.GetProgramChange(&ch, &val):
				c := touch(channels, model.Part{Track: trackNo, Channel: ch})
				if !c.HasProgram {
					c.Program = val
					c.HasProgram = true
				} else if c.Program != val {
					song.warnf("track %d channel %d set to another program (%d) mid-song", trackNo, ch, val)
				}

			case msg.GetMetaTrackName(&text):
				if info.Name == "" {
					info.Name = decodeText(text)
				} else {
					song.warnf("track %d given multiple names: %q", trackNo, decodeText(text))
				}

			case msg.GetMetaInstrument(&text):
				if info.Instrument == "" {
					info.Instrument = decodeText(text)
				} else {
					song.warnf("track %d given multiple instrument names: %q", trackNo, decodeText(text))
				}

			case msg.GetMetaTempo(&bpm):
				// A SetTempo of 0 µs/beat decodes as +Inf BPM and rounds
				// back to 0; floor it so TempoBPM and the tick-to-length
				// mapping never divide by zero.
				us := microsPerBeat(bpm)
				if us == 0 {
					us = 1
				}
				if song.HasTempo && us != song.TempoUS {
					song.warnf("tempo changes are not supported; using new tempo")
				}
				song.TempoUS = us
				song.HasTempo = true

			case msg.GetMetaCopyright(&text):
				song.Texts = append(song.Texts, "Copyright: "+decodeText(text))

			case msg.GetMetaMarker(&text):
				song.Texts = append(song.Texts, "Marker: "+decodeText(text))

			case msg.GetMetaText(&text):
				song.Texts = append(song.Texts, "Text: "+decodeText(text))
			}
		}
		song.Tracks = append(song.Tracks, info)
	}

	for _, c := range channels {
		song.Channels = append(song.Channels, *c)
	}
	sort.Slice(song.Channels, func(i, j int) bool {
		a, b := song.Channels[i].Part, song.Channels[j].Part
		if a.Track != b.Track {
			return a.Track < b.Track
		}
		return a.Channel < b.Channel
	})

	return song, nil
}

func touch(m map[model.Part]*ChannelInfo, p model.Part) *ChannelInfo {
	c, ok := m[p]
	if !ok {
		c = &ChannelInfo{Part: p}
		m[p] = c
	}
	return c
}

func (s *Song) warnf(format string, args ...any) {
	s.Warnings = append(s.Warnings, fmt.Sprintf(format, args...))
}

// microsPerBeat undoes the BPM conversion the decoder applies to tempo
// meta events.
func microsPerBeat(bpm float64) uint32 {
	return uint32(60000000/bpm + 0.5)
}

// decodeText fixes up meta text from files that predate UTF-8: anything
// that doesn't validate is reinterpreted as Latin-1, which never fails.
func decodeText(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	if out, err := charmap.ISO8859_1.NewDecoder().String(s); err == nil {
		return out
	}
	return s
}
