package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"sync"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Bar is one horizontal segment. Bars sharing a Label stack on the same row.
type Bar struct {
	Label string
	Value float64
}

// Figure describes a horizontal bar chart.
type Figure struct {
	Title  string
	XLabel string
	YLabel string
	Bars   []Bar
}

// Style fixes the canvas size, fonts and colours. Sizes are in points; the
// canvas is rasterised at 72 dpi so one point is one pixel.
type Style struct {
	Width  int
	Height int

	TitleSize float64
	LabelSize float64
	TickSize  float64

	TitleColor color.Color
	TextColor  color.Color
	Background color.Color

	// Scale is the continuous colour scale, low to high.
	Scale []color.RGBA
}

var darkSlateBlue = color.RGBA{R: 72, G: 61, B: 139, A: 255}

// DefaultStyle is a 500x500 canvas without grid lines, Go Regular in dark
// slate blue, 18pt title.
var DefaultStyle = Style{
	Width:      500,
	Height:     500,
	TitleSize:  18,
	LabelSize:  14,
	TickSize:   12,
	TitleColor: darkSlateBlue,
	TextColor:  darkSlateBlue,
	Background: color.White,
	Scale:      plasma,
}

const (
	// typeface is registered in the plot font cache under this name.
	typeface font.Typeface = "Go"

	dpi       = 72
	minCanvas = 200
	legendW   = 70
	barFill   = 0.8
	plotShare = 0.6
	maxBar    = 80
)

var registerFont = sync.OnceValue(func() error {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("parse font: %w", err)
	}
	font.DefaultCache.Add(font.Collection{{Font: font.Font{Typeface: typeface}, Face: f}})
	return nil
})

// Renderer draws bar charts. It holds no per-render state.
type Renderer struct {
	style Style
}

func NewRenderer(style Style) (*Renderer, error) {
	if err := registerFont(); err != nil {
		return nil, err
	}
	if style.Width < minCanvas || style.Height < minCanvas {
		return nil, fmt.Errorf("canvas %dx%d smaller than %dx%d", style.Width, style.Height, minCanvas, minCanvas)
	}
	if len(style.Scale) < 2 {
		return nil, fmt.Errorf("colour scale needs at least two stops")
	}
	return &Renderer{style: style}, nil
}

// row is one category on the y axis with its stacked segments.
type row struct {
	label    string
	segments []float64
	total    float64
}

func stackRows(bars []Bar) []row {
	var rows []row
	idx := map[string]int{}
	for _, b := range bars {
		v := math.Max(b.Value, 0)
		i, ok := idx[b.Label]
		if !ok {
			idx[b.Label] = len(rows)
			rows = append(rows, row{label: b.Label})
			i = len(rows) - 1
		}
		rows[i].segments = append(rows[i].segments, v)
		rows[i].total += v
	}
	return rows
}

func valueRange(rows []row) (lo, hi float64) {
	if len(rows) == 0 {
		return 0, 0
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, rw := range rows {
		for _, v := range rw.segments {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi
}

// Render draws the bar plot with a colour bar legend on its right. The first
// category sits at the bottom of the axis.
func (r *Renderer) Render(fig Figure) (image.Image, error) {
	c, err := r.draw(fig)
	if err != nil {
		return nil, err
	}
	return c.Image(), nil
}

// RenderPNG renders fig and encodes it as PNG.
func (r *Renderer) RenderPNG(fig Figure) ([]byte, error) {
	c, err := r.draw(fig)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) draw(fig Figure) (*vgimg.Canvas, error) {
	st := r.style
	rows := stackRows(fig.Bars)
	lo, hi := valueRange(rows)
	cm := newScale(st.Scale, lo, hi)

	bars, err := r.barPlot(fig, rows, cm)
	if err != nil {
		return nil, err
	}
	legend := r.legendPlot(cm)

	w, h := vg.Points(float64(st.Width)), vg.Points(float64(st.Height))
	c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))
	dc := draw.New(c)

	bars.Draw(draw.Crop(dc, 0, -legendW, 0, 0))
	// line the legend up with the plot area below the title and above the x axis
	top := vg.Points(st.TitleSize * 2)
	bottom := vg.Points((st.LabelSize + st.TickSize) * 1.6)
	legend.Draw(draw.Crop(dc, w-legendW, 0, bottom, -top))

	return c, nil
}

func (r *Renderer) barPlot(fig Figure, rows []row, cm *scale) (*plot.Plot, error) {
	st := r.style
	p := plot.New()
	p.BackgroundColor = st.Background

	p.Title.Text = fig.Title
	r.setText(&p.Title.TextStyle, st.TitleSize, st.TitleColor)
	p.X.Label.Text = fig.XLabel
	r.setText(&p.X.Label.TextStyle, st.LabelSize, st.TextColor)
	p.Y.Label.Text = fig.YLabel
	r.setText(&p.Y.Label.TextStyle, st.LabelSize, st.TextColor)
	r.setText(&p.X.Tick.Label, st.TickSize, st.TextColor)
	r.setText(&p.Y.Tick.Label, st.TickSize, st.TextColor)

	p.X.Min = 0
	if len(rows) == 0 {
		p.X.Max = 1
		p.Y.Min, p.Y.Max = 0, 1
		return p, nil
	}

	// thickness is an absolute length, so share the plot area between rows
	thick := vg.Points(math.Min(plotShare*barFill*float64(st.Height)/float64(len(rows)), maxBar))

	labels := make([]string, len(rows))
	for i, rw := range rows {
		labels[i] = rw.label

		var below *plotter.BarChart
		for _, v := range rw.segments {
			bc, err := plotter.NewBarChart(plotter.Values{v}, thick)
			if err != nil {
				return nil, fmt.Errorf("bar %q: %w", rw.label, err)
			}
			bc.Horizontal = true
			bc.LineStyle.Width = 0
			bc.Color, _ = cm.At(v)
			if below == nil {
				bc.XMin = float64(i)
			} else {
				bc.StackOn(below)
			}
			p.Add(bc)
			below = bc
		}
	}
	p.NominalY(labels...)

	return p, nil
}

func (r *Renderer) legendPlot(cm *scale) *plot.Plot {
	st := r.style
	p := plot.New()
	p.BackgroundColor = st.Background
	p.HideX()
	r.setText(&p.Y.Tick.Label, st.TickSize, st.TextColor)
	p.Y.Tick.Marker = plot.ConstantTicks{
		{Value: cm.Min(), Label: formatTick(cm.Min())},
		{Value: cm.Max(), Label: formatTick(cm.Max())},
	}
	p.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true})
	return p
}

func (r *Renderer) setText(s *text.Style, size float64, c color.Color) {
	s.Font = font.Font{Typeface: typeface, Size: vg.Points(size)}
	s.Color = c
}

func formatTick(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return ""
	}
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
