package report

import (
	"fmt"
	"time"

	"go-dairy-admin/internal/model"

	"github.com/shopspring/decimal"
)

type Timeframe string

const (
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeMonthly Timeframe = "monthly"
	TimeframeYearly  Timeframe = "yearly"
)

const (
	dayLayout     = "2006-01-02"
	monthlyBucket = 30
)

// ParseTimeframe accepts weekly, monthly or yearly.
func ParseTimeframe(s string) (Timeframe, bool) {
	switch tf := Timeframe(s); tf {
	case TimeframeWeekly, TimeframeMonthly, TimeframeYearly:
		return tf, true
	}
	return "", false
}

// Series is a chart-ready label/value pair list.
type Series struct {
	Timeframe  Timeframe         `json:"timeframe"`
	Labels     []string          `json:"labels"`
	DataPoints []decimal.Decimal `json:"data_points"`
}

// ComputeTimeSeries sums sold quantities into calendar buckets relative to now.
// Dates are read in now's location.
//
//	weekly:  the 7 days ending today, oldest first, matched on the calendar day
//	monthly: 30 day-of-month buckets across all months; day 31 has no bucket
//	yearly:  12 month buckets across all years
func ComputeTimeSeries(sales []model.Sale, tf Timeframe, now time.Time) Series {
	loc := now.Location()
	series := Series{Timeframe: tf, Labels: []string{}, DataPoints: []decimal.Decimal{}}

	var bucketOf func(t time.Time) int
	switch tf {
	case TimeframeWeekly:
		index := make(map[string]int, 7)
		for i := 6; i >= 0; i-- {
			label := now.AddDate(0, 0, -i).Format(dayLayout)
			index[label] = len(series.Labels)
			series.Labels = append(series.Labels, label)
		}
		bucketOf = func(t time.Time) int {
			if i, ok := index[t.Format(dayLayout)]; ok {
				return i
			}
			return -1
		}
	case TimeframeMonthly:
		for i := 1; i <= monthlyBucket; i++ {
			series.Labels = append(series.Labels, fmt.Sprintf("Day %d", i))
		}
		bucketOf = func(t time.Time) int {
			if day := t.Day(); day <= monthlyBucket {
				return day - 1
			}
			return -1
		}
	case TimeframeYearly:
		for m := time.January; m <= time.December; m++ {
			series.Labels = append(series.Labels, m.String()[:3])
		}
		bucketOf = func(t time.Time) int {
			return int(t.Month()) - 1
		}
	default:
		return series
	}

	series.DataPoints = make([]decimal.Decimal, len(series.Labels))
	for i := range series.DataPoints {
		series.DataPoints[i] = decimal.Zero
	}

	for _, sale := range sales {
		b := bucketOf(sale.Date.In(loc))
		if b < 0 {
			continue
		}
		for _, item := range sale.Items {
			series.DataPoints[b] = series.DataPoints[b].Add(item.Qty)
		}
	}
	return series
}
