package report

import (
	"time"

	"go-dairy-admin/internal/model"

	"github.com/shopspring/decimal"
)

// MovementPoint is one day of stock flow in base units.
type MovementPoint struct {
	Date     string          `json:"date"`
	Inbound  decimal.Decimal `json:"inbound"`
	Outbound decimal.Decimal `json:"outbound"`
}

// ComputeStockMovement returns one point per calendar day from 'from' to 'to'
// (in from's location), including days without movements.
func ComputeStockMovement(movements []model.StockMovement, from, to time.Time) []MovementPoint {
	loc := from.Location()
	points := []MovementPoint{}
	index := map[string]int{}

	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc)
	for day := start; !day.After(to); day = day.AddDate(0, 0, 1) {
		label := day.Format(dayLayout)
		index[label] = len(points)
		points = append(points, MovementPoint{Date: label, Inbound: decimal.Zero, Outbound: decimal.Zero})
	}

	for _, m := range movements {
		i, ok := index[m.CreatedAt.In(loc).Format(dayLayout)]
		if !ok {
			continue
		}
		switch m.Type {
		case model.MovementIn:
			points[i].Inbound = points[i].Inbound.Add(m.Quantity)
		case model.MovementOut:
			points[i].Outbound = points[i].Outbound.Add(m.Quantity)
		}
	}
	return points
}
