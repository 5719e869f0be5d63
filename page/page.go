package page

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/wfraser/pianoroll/pitch"
	"github.com/wfraser/pianoroll/roll"
	"github.com/wfraser/pianoroll/util"
)

const (
	columnWidth  = 10.0
	unitHeight   = 10.0
	marginX      = 36.0
	marginTop    = 48.0
	marginBottom = 36.0

	segmentRadius = 2.5
	// Shorter segments than this are drawn at this height anyway so the
	// punch operator can see them.
	minSegmentHeight = 2.0
)

type Options struct {
	Title string
}

var (
	labelFace  = mustFace(12)
	headerFace = mustFace(14)
)

func mustFace(size float64) font.Face {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		panic("parsing bundled font: " + err.Error())
	}
	return truetype.NewFace(f, &truetype.Options{Size: size})
}

// Render draws the page: one column per playable semitone, time running
// bottom to top, one segment per punched note.
func Render(r roll.Roll, opts Options) *gg.Context {
	w := marginX*2 + columnWidth*float64(pitch.Columns)
	h := marginTop + marginBottom + unitHeight*util.Max(r.Length, 10)
	dc := gg.NewContext(int(math.Ceil(w)), int(math.Ceil(h)))

	dc.SetRGB(1, 1, 1)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	drawGrid(dc, r, w, h)
	drawSegments(dc, r, h)
	drawLabels(dc, h)
	drawHeader(dc, r, opts, w)

	return dc
}

// EncodePNG renders the page and encodes it.
func EncodePNG(r roll.Roll, opts Options) ([]byte, error) {
	dc := Render(r, opts)
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(err, "encoding page")
	}
	return buf.Bytes(), nil
}

// WriteFile renders the page straight to a file, atomically.
func WriteFile(path string, r roll.Roll, opts Options) error {
	png, err := EncodePNG(r, opts)
	if err != nil {
		return err
	}
	return util.WriteFileAtomic(path, png)
}

func baseline(h float64) float64 {
	return h - marginBottom
}

func drawGrid(dc *gg.Context, r roll.Roll, w, h float64) {
	top := marginTop
	bottom := baseline(h)

	for c := 0; c <= pitch.Columns; c++ {
		x := marginX + float64(c)*columnWidth
		if (pitch.Min+c)%12 == 0 {
			dc.SetRGBA(0, 0, 0, 0.35)
		} else {
			dc.SetRGBA(0, 0, 0, 0.12)
		}
		dc.SetLineWidth(0.5)
		dc.DrawLine(x, top, x, bottom)
		dc.Stroke()
	}

	// A faint rule every ten length units to count positions by.
	for u := 0.0; u*unitHeight <= bottom-top; u += 10 {
		y := bottom - u*unitHeight
		dc.SetRGBA(0, 0, 0, 0.12)
		dc.SetLineWidth(0.5)
		dc.DrawLine(marginX, y, w-marginX, y)
		dc.Stroke()
	}

	if r.OverLength() {
		y := bottom - roll.MaxPageLength*unitHeight
		dc.SetRGBA(0.8, 0.1, 0.1, 0.8)
		dc.SetLineWidth(1)
		dc.DrawLine(marginX, y, w-marginX, y)
		dc.Stroke()
	}
}

func drawSegments(dc *gg.Context, r roll.Roll, h float64) {
	bottom := baseline(h)
	for _, seg := range r.Segments {
		segH := util.Max((seg.End-seg.Start)*unitHeight, minSegmentHeight)
		x := marginX + float64(seg.Column)*columnWidth + 1
		y := bottom - seg.Start*unitHeight - segH

		dc.DrawRoundedRectangle(x, y, columnWidth-2, segH, util.Min(segmentRadius, segH/2))
		dc.SetRGB(0.1, 0.1, 0.1)
		dc.FillPreserve()
		dc.SetRGBA(0, 0, 0, 1)
		dc.SetLineWidth(1)
		dc.Stroke()
	}
}

func drawLabels(dc *gg.Context, h float64) {
	dc.SetFontFace(labelFace)
	dc.SetRGBA(0, 0, 0, 0.7)
	for p := pitch.Min; p <= pitch.Max; p++ {
		if p%12 != 0 {
			continue
		}
		x := marginX + float64(pitch.Column(p))*columnWidth
		dc.DrawString(pitch.Name(p), x+1.5, h-marginBottom+16)
	}
}

func drawHeader(dc *gg.Context, r roll.Roll, opts Options, w float64) {
	dc.SetFontFace(headerFace)
	dc.SetRGB(0, 0, 0)
	if opts.Title != "" {
		dc.DrawString(opts.Title, marginX, 24)
	}
	dc.DrawStringAnchored(fmt.Sprintf("%.1f units", r.Length), w-marginX, 24, 1, 0)
}
