package chart

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citystats/citystats-service/internal/domain"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(DefaultStyle)
	require.NoError(t, err)
	return r
}

func TestNewRenderer_Validation(t *testing.T) {
	tests := []struct {
		name  string
		style func(Style) Style
	}{
		{"zero_width", func(s Style) Style { s.Width = 0; return s }},
		{"negative_height", func(s Style) Style { s.Height = -1; return s }},
		{"single_stop_scale", func(s Style) Style { s.Scale = s.Scale[:1]; return s }},
		{"too_small", func(s Style) Style { s.Width, s.Height = 40, 40; return s }},
		{"narrow", func(s Style) Style { s.Width = minCanvas - 1; return s }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRenderer(tt.style(DefaultStyle))
			assert.Error(t, err)
		})
	}
}

func TestRenderPNG_Dimensions(t *testing.T) {
	r := newTestRenderer(t)

	out, err := r.RenderPNG(Figure{
		Title:  "Rental Price Estimates for Atlanta, GA",
		XLabel: "Rental Price Estimate",
		YLabel: "Number of Bedrooms",
		Bars: []Bar{
			{Label: "Studio", Value: 1180},
			{Label: "1br", Value: 1320},
			{Label: "2br", Value: 1510},
		},
	})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 500, img.Bounds().Dx())
	assert.Equal(t, 500, img.Bounds().Dy())
}

func TestRender_EmptyBars(t *testing.T) {
	r := newTestRenderer(t)

	img, err := r.Render(Figure{Title: "empty"})
	require.NoError(t, err)
	assert.Equal(t, DefaultStyle.Width, img.Bounds().Dx())
}

func TestNewRenderer_MinimumCanvas(t *testing.T) {
	s := DefaultStyle
	s.Width, s.Height = minCanvas, minCanvas
	r, err := NewRenderer(s)
	require.NoError(t, err)

	img, err := r.Render(Figure{Title: "x", Bars: []Bar{{Label: "Studio", Value: 1}}})
	require.NoError(t, err)
	assert.Equal(t, minCanvas, img.Bounds().Dx())
	assert.Equal(t, minCanvas, img.Bounds().Dy())
}

func TestRender_FlatValues(t *testing.T) {
	r := newTestRenderer(t)

	_, err := r.RenderPNG(Figure{Bars: []Bar{
		{Label: "1br", Value: 950},
		{Label: "2br", Value: 950},
	}})
	assert.NoError(t, err)
}

func TestRender_StackedRow(t *testing.T) {
	r := newTestRenderer(t)

	_, err := r.RenderPNG(Figure{Bars: []Bar{
		{Label: "1br", Value: 900},
		{Label: "1br", Value: 1100},
		{Label: "Studio", Value: 700},
	}})
	assert.NoError(t, err)
}

func TestRender_BarsUseScaleEnds(t *testing.T) {
	r := newTestRenderer(t)

	img, err := r.Render(Figure{Bars: []Bar{
		{Label: "a", Value: 100},
		{Label: "b", Value: 200},
	}})
	require.NoError(t, err)

	var sawLow, sawHigh bool
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			sawLow = sawLow || c == plasma[0]
			sawHigh = sawHigh || c == plasma[len(plasma)-1]
		}
	}
	assert.True(t, sawLow)
	assert.True(t, sawHigh)
}

func TestStackRows(t *testing.T) {
	rows := stackRows([]Bar{
		{Label: "1br", Value: 900},
		{Label: "Studio", Value: 700},
		{Label: "1br", Value: 1100},
		{Label: "2br", Value: -5},
	})

	require.Len(t, rows, 3)
	assert.Equal(t, "1br", rows[0].label)
	assert.Equal(t, []float64{900, 1100}, rows[0].segments)
	assert.Equal(t, 2000.0, rows[0].total)
	assert.Equal(t, "Studio", rows[1].label)
	assert.Zero(t, rows[2].total)
}

func TestFormatTick(t *testing.T) {
	assert.Equal(t, "1500", formatTick(1500))
	assert.Equal(t, "0", formatTick(0))
	assert.Equal(t, "1320.5", formatTick(1320.5))
}

func TestValueRange(t *testing.T) {
	lo, hi := valueRange(stackRows([]Bar{
		{Label: "1br", Value: 900},
		{Label: "1br", Value: 1100},
		{Label: "Studio", Value: 700},
	}))
	assert.Equal(t, 700.0, lo)
	assert.Equal(t, 1100.0, hi)

	lo, hi = valueRange(nil)
	assert.Zero(t, lo)
	assert.Zero(t, hi)
}

func TestRentalChart_RenderRentalChart(t *testing.T) {
	c := NewRentalChart(newTestRenderer(t))

	t.Run("png", func(t *testing.T) {
		out, err := c.RenderRentalChart(context.Background(),
			domain.Place{City: "Atlanta", StateCode: "GA"},
			[]domain.RentalEstimate{
				{City: "Atlanta", State: "GA", BedroomSize: "Studio", Price: 1180},
				{City: "Atlanta", State: "GA", BedroomSize: "1br", Price: 1320},
			})
		require.NoError(t, err)

		cfg, err := png.DecodeConfig(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, 500, cfg.Width)
		assert.Equal(t, 500, cfg.Height)
	})

	t.Run("cancelled_context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := c.RenderRentalChart(ctx, domain.Place{City: "Atlanta", StateCode: "GA"}, nil)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("concurrent_renders", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := c.RenderRentalChart(context.Background(),
					domain.Place{City: "Reno", StateCode: "NV"},
					[]domain.RentalEstimate{{BedroomSize: "1br", Price: 950}})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
	})
}
