package mix

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/wfraser/pianoroll/model"
)

// File is an on-disk mix description, an alternative to spelling the
// whole selection out on the command line. Command-line arguments win
// over anything set here.
type File struct {
	Selections []FileSelection `yaml:"selections"`
	Divisor    float64         `yaml:"divisor"`
	Output     string          `yaml:"output"`
	MidiOut    string          `yaml:"midi_out"`
	FudgeTicks *uint64         `yaml:"fudge_ticks"`
}

type FileSelection struct {
	Track   int   `yaml:"track"`
	Channel uint8 `yaml:"channel"`
	Shift   int   `yaml:"shift"`
}

// LoadFile reads and checks a YAML mix file. A missing divisor means 1.
func LoadFile(path string) (*File, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading mix file")
	}
	var f File
	if err := yaml.Unmarshal(dat, &f); err != nil {
		return nil, errors.Wrapf(err, "parsing mix file %s", path)
	}
	if f.Divisor == 0 {
		f.Divisor = 1
	} else if !(f.Divisor > 0) {
		// rejects negatives and NaN alike
		return nil, &ParseError{Arg: path, Reason: "time divisor must be positive"}
	}
	return &f, nil
}

func (f *File) Selectors() []Selector {
	sels := make([]Selector, 0, len(f.Selections))
	for _, s := range f.Selections {
		sels = append(sels, Selector{
			Part:  model.Part{Track: s.Track, Channel: s.Channel},
			Shift: s.Shift,
		})
	}
	return sels
}
