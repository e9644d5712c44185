package chart

import (
	"context"
	"fmt"

	"github.com/citystats/citystats-service/internal/domain"
)

// RentalChart draws the per-bedroom price chart for a city.
type RentalChart struct {
	r *Renderer
}

func NewRentalChart(r *Renderer) *RentalChart {
	return &RentalChart{r: r}
}

// RenderRentalChart plots price against bedroom size, one bar per row.
// Rows sharing a bedroom size stack.
func (c *RentalChart) RenderRentalChart(ctx context.Context, place domain.Place, rows []domain.RentalEstimate) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bars := make([]Bar, 0, len(rows))
	for _, row := range rows {
		bars = append(bars, Bar{Label: row.BedroomSize, Value: row.Price})
	}

	return c.r.RenderPNG(Figure{
		Title:  fmt.Sprintf("Rental Price Estimates for %s, %s", place.City, place.StateCode),
		XLabel: "Rental Price Estimate",
		YLabel: "Number of Bedrooms",
		Bars:   bars,
	})
}
