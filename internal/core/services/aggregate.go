package services

import (
	"sort"
	"time"

	"garderie-api/internal/adapters/persistence/models"
	"garderie-api/internal/core/domain"
	"garderie-api/internal/pkg/dates"
)

// Report groupings
const (
	GroupByDay   = "day"
	GroupByWeek  = "week"
	GroupByMonth = "month"
)

// FinancialBucket is one period of the financial report
type FinancialBucket struct {
	Period         string           `json:"period"`
	TotalRevenue   int64            `json:"totalRevenue"`
	TotalPayments  int              `json:"totalPayments"`
	PaymentMethods map[string]int64 `json:"paymentMethods"`
}

// TrendPoint is one day of the revenue trend
type TrendPoint struct {
	Date     string `json:"date"`
	Revenue  int64  `json:"revenue"`
	Payments int    `json:"payments"`
}

// MethodTotal is the revenue collected through one payment method
type MethodTotal struct {
	Method string `json:"method"`
	Total  int64  `json:"total"`
	Count  int    `json:"count"`
}

// ClassCount counts children of one class
type ClassCount struct {
	Class string `json:"class"`
	Count int64  `json:"count"`
}

// DayCount counts attendances of one day
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

func summarizeDay(day time.Time, payments []*models.Payment) DailySummary {
	summary := DailySummary{
		Date:             day.Format(dates.DayLayout),
		TotalPayments:    len(payments),
		PaymentsByMethod: map[string]int64{},
		PaymentsByType:   map[string]int64{},
	}
	for _, p := range payments {
		summary.TotalAmount += p.Amount
		summary.PaymentsByMethod[p.PaymentMethod] += p.Amount
		summary.PaymentsByType[p.Type] += p.Amount
	}
	return summary
}

// bucketKey labels the period t falls in. Each bucket is half-open, so an
// instant on a boundary belongs to the bucket it starts.
func bucketKey(t time.Time, groupBy string) string {
	switch groupBy {
	case GroupByWeek:
		return dates.ISOWeekLabel(t)
	case GroupByMonth:
		return t.Format("2006-01")
	default:
		return t.Format(dates.DayLayout)
	}
}

// bucketStart returns the first instant of the period t falls in
func bucketStart(t time.Time, groupBy string) time.Time {
	switch groupBy {
	case GroupByWeek:
		return dates.StartOfISOWeek(t)
	case GroupByMonth:
		return dates.StartOfMonth(t)
	default:
		return dates.StartOfDay(t)
	}
}

// groupPayments buckets payments in chronological order. Empty buckets are
// not emitted.
func groupPayments(payments []*models.Payment, groupBy string, loc *time.Location) []FinancialBucket {
	byKey := make(map[string]*FinancialBucket)
	starts := make(map[string]time.Time)

	for _, p := range payments {
		local := p.PaymentDate.In(loc)
		key := bucketKey(local, groupBy)
		b, ok := byKey[key]
		if !ok {
			b = &FinancialBucket{Period: key, PaymentMethods: map[string]int64{}}
			byKey[key] = b
			starts[key] = bucketStart(local, groupBy)
		}
		b.TotalRevenue += p.Amount
		b.TotalPayments++
		b.PaymentMethods[p.PaymentMethod] += p.Amount
	}

	out := make([]FinancialBucket, 0, len(byKey))
	for _, b := range byKey {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		return starts[out[i].Period].Before(starts[out[j].Period])
	})
	return out
}

// revenueTrend returns one point per day for the days ending at last,
// zero-filled where nothing was collected
func revenueTrend(payments []*models.Payment, last time.Time, days int, loc *time.Location) []TrendPoint {
	points := make([]TrendPoint, days)
	index := make(map[string]int, days)
	first := dates.StartOfDay(last).AddDate(0, 0, -(days - 1))
	for i := 0; i < days; i++ {
		key := first.AddDate(0, 0, i).Format(dates.DayLayout)
		points[i] = TrendPoint{Date: key}
		index[key] = i
	}

	for _, p := range payments {
		i, ok := index[p.PaymentDate.In(loc).Format(dates.DayLayout)]
		if !ok {
			continue
		}
		points[i].Revenue += p.Amount
		points[i].Payments++
	}
	return points
}

// revenueByMethod totals payments per method, in the fixed method order
func revenueByMethod(payments []*models.Payment) []MethodTotal {
	totals := make(map[string]*MethodTotal)
	for _, p := range payments {
		t, ok := totals[p.PaymentMethod]
		if !ok {
			t = &MethodTotal{Method: p.PaymentMethod}
			totals[p.PaymentMethod] = t
		}
		t.Total += p.Amount
		t.Count++
	}

	out := make([]MethodTotal, 0, len(totals))
	for _, m := range domain.PaymentMethods {
		if t, ok := totals[string(m)]; ok {
			out = append(out, *t)
			delete(totals, string(m))
		}
	}
	for _, t := range totals {
		out = append(out, *t)
	}
	return out
}

// classCounts orders class counts by the fixed class order
func classCounts(counts map[string]int64) []ClassCount {
	out := make([]ClassCount, 0, len(counts))
	for _, c := range domain.Classes {
		if n, ok := counts[string(c)]; ok {
			out = append(out, ClassCount{Class: string(c), Count: n})
		}
	}
	return out
}

func sumAmounts(payments []*models.Payment) int64 {
	var total int64
	for _, p := range payments {
		total += p.Amount
	}
	return total
}
