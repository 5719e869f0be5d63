package mix

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wfraser/pianoroll/midi"
	"github.com/wfraser/pianoroll/model"
)

func TestParseArgsSelectors(t *testing.T) {
	args, err := ParseArgs([]string{"1,0", "2,1+12", "3,0-12"})

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(args.Divisor, 1.0)
	assert.False(args.HasDivisor)
	assert.Equal(args.Selectors, []Selector{
		{Part: model.Part{Track: 1, Channel: 0}},
		{Part: model.Part{Track: 2, Channel: 1}, Shift: 12},
		{Part: model.Part{Track: 3, Channel: 0}, Shift: -12},
	})
}

func TestParseArgsDivisor(t *testing.T) {
	args, err := ParseArgs([]string{"1,0", "/4"})

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(args.Divisor, 4.0)
	assert.True(args.HasDivisor)

	args, err = ParseArgs([]string{"/2.5"})
	assert.NoError(err)
	assert.Equal(args.Divisor, 2.5)
}

func TestParseArgsRejectsBadInput(t *testing.T) {
	bad := []string{
		"1",
		"x,0",
		"-1,0",
		"1,x",
		"1,300",
		"1,0+x",
		"/x",
		"/0",
		"/-2",
		"/NaN",
	}

	for _, arg := range bad {
		t.Run(arg, func(t *testing.T) {
			_, err := ParseArgs([]string{arg})
			assert := assert.New(t)
			assert.Error(err)
			var perr *ParseError
			assert.ErrorAs(err, &perr)
		})
	}
}

func TestParseArgsAllowsDuplicateSelectors(t *testing.T) {
	args, err := ParseArgs([]string{"1,0", "1,0+12"})

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(len(args.Selectors), 2)
	assert.Equal(args.Selectors[0].Part, args.Selectors[1].Part)
}

func TestSelectorString(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(Selector{Part: model.Part{Track: 1, Channel: 2}}.String(), "1,2")
	assert.Equal(Selector{Part: model.Part{Track: 1, Channel: 2}, Shift: 12}.String(), "1,2+12")
	assert.Equal(Selector{Part: model.Part{Track: 1, Channel: 2}, Shift: -3}.String(), "1,2-3")
}

func testSong() *midi.Song {
	melody := model.Part{Track: 1, Channel: 0}
	bass := model.Part{Track: 2, Channel: 1}
	return &midi.Song{
		TicksPerBeat: 96,
		TempoUS:      500000,
		Events: []model.NoteEvent{
			{Part: melody, Pitch: 60, Kind: model.Press, Tick: 0, Velocity: 80},
			{Part: melody, Pitch: 60, Kind: model.Release, Tick: 90},
			{Part: bass, Pitch: 36, Kind: model.Press, Tick: 0, Velocity: 70},
			{Part: bass, Pitch: 36, Kind: model.Release, Tick: 180},
		},
		Counts: map[model.Part]int{melody: 2, bass: 2},
	}
}

func TestSelectPullsStreamsInSelectorOrder(t *testing.T) {
	song := testSong()
	sels := []Selector{
		{Part: model.Part{Track: 2, Channel: 1}},
		{Part: model.Part{Track: 1, Channel: 0}},
	}

	streams, err := Select(song, sels)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(len(streams), 2)
	assert.Equal(streams[0][0].Pitch, 36)
	assert.Equal(streams[1][0].Pitch, 60)
}

func TestSelectAppliesShiftToCopies(t *testing.T) {
	song := testSong()
	sels := []Selector{{Part: model.Part{Track: 1, Channel: 0}, Shift: 12}}

	streams, err := Select(song, sels)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(streams[0][0].Pitch, 72)
	assert.Equal(streams[0][1].Pitch, 72)

	// the song's own events are untouched
	assert.Equal(song.Events[0].Pitch, 60)
}

func TestSelectShiftCanLeaveMidiRange(t *testing.T) {
	song := testSong()
	sels := []Selector{{Part: model.Part{Track: 1, Channel: 0}, Shift: 100}}

	streams, err := Select(song, sels)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(streams[0][0].Pitch, 160)
}

func TestSelectUnknownPartFails(t *testing.T) {
	song := testSong()
	sels := []Selector{{Part: model.Part{Track: 9, Channel: 0}}}

	_, err := Select(song, sels)

	assert := assert.New(t)
	assert.Error(err)
	var serr *SelectionError
	assert.ErrorAs(err, &serr)
	assert.Equal(serr.Part, model.Part{Track: 9, Channel: 0})
	assert.Contains(err.Error(), "track 9 channel 0 is not a part of this file")
}

func TestSelectNothingIsEmpty(t *testing.T) {
	streams, err := Select(testSong(), nil)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Empty(streams)
}
