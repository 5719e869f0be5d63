package page

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wfraser/pianoroll/model"
	"github.com/wfraser/pianoroll/pitch"
	"github.com/wfraser/pianoroll/roll"
)

func testRoll() roll.Roll {
	notes := []model.Note{
		{Pitch: 60, Tick: 0, Duration: 96, Velocity: 80},
		{Pitch: 64, Tick: 96, Duration: 192, Velocity: 80},
		{Pitch: pitch.Min, Tick: 300, Duration: 48, Velocity: 80},
		{Pitch: pitch.Max, Tick: 300, Duration: 48, Velocity: 80},
	}
	return roll.Build(notes, roll.Params{TempoUS: 500000, TicksPerBeat: 96, Divisor: 1})
}

func TestEncodePNGProducesDecodableImage(t *testing.T) {
	data, err := EncodePNG(testRoll(), Options{Title: "song.mid"})

	assert := assert.New(t)
	assert.NoError(err)

	img, err := png.Decode(bytes.NewReader(data))
	assert.NoError(err)

	bounds := img.Bounds()
	assert.Equal(bounds.Dx(), 872)
	assert.True(bounds.Dy() > 0)
}

func TestRenderSizesPageToRollLength(t *testing.T) {
	short := Render(roll.Roll{Length: 0}, Options{})
	long := Render(roll.Roll{Length: 100}, Options{})

	assert := assert.New(t)
	assert.Equal(short.Width(), 872)
	assert.Equal(short.Height(), 184)
	assert.Equal(long.Height(), 1084)
}

func TestEncodePNGIsDeterministic(t *testing.T) {
	r := testRoll()

	a, err := EncodePNG(r, Options{Title: "song.mid"})
	assert.NoError(t, err)
	b, err := EncodePNG(r, Options{Title: "song.mid"})
	assert.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.png")

	err := WriteFile(path, testRoll(), Options{Title: "song.mid"})

	assert := assert.New(t)
	assert.NoError(err)

	f, err := os.Open(path)
	assert.NoError(err)
	defer f.Close()

	_, err = png.Decode(f)
	assert.NoError(err)

	entries, err := os.ReadDir(dir)
	assert.NoError(err)
	assert.Equal(len(entries), 1)
}
