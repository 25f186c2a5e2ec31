package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/yeremiapane/restaurant-orders/models"
)

type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

const topItemsLimit = 5

// ParsePeriod accepts today, week and month; an empty value means today.
// Unknown values report ok=false so callers can reject them.
func ParsePeriod(raw string) (Period, bool) {
	switch p := Period(strings.ToLower(strings.TrimSpace(raw))); p {
	case PeriodToday, PeriodWeek, PeriodMonth:
		return p, true
	case "":
		return PeriodToday, true
	default:
		return PeriodToday, false
	}
}

// DateRange returns the calendar range [start, end) of period around now,
// in now's location.
func DateRange(period Period, now time.Time, weekStart time.Weekday) (time.Time, time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch period {
	case PeriodWeek:
		offset := (int(today.Weekday()) - int(weekStart) + 7) % 7
		start := today.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7)
	case PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0)
	default:
		return today, today.AddDate(0, 0, 1)
	}
}

// FilterCompleted keeps completed orders created within [start, end).
func FilterCompleted(orders []models.Order, start, end time.Time) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status != models.OrderCompleted {
			continue
		}
		if o.CreatedAt.Before(start) || !o.CreatedAt.Before(end) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func CalculateRevenue(orders []models.Order) float64 {
	var total float64
	for _, o := range orders {
		total += o.Total()
	}
	return total
}

type ItemSales struct {
	MenuItemID string  `json:"menuItemId"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Revenue    float64 `json:"revenue"`
}

// TopSellingItems groups line items by menu item id and returns the best
// sellers by quantity. Ties keep the order the items were first seen in.
func TopSellingItems(orders []models.Order, limit int) []ItemSales {
	index := map[string]int{}
	sales := []ItemSales{}
	for _, o := range orders {
		for _, item := range o.Items {
			i, ok := index[item.MenuItemID]
			if !ok {
				i = len(sales)
				index[item.MenuItemID] = i
				sales = append(sales, ItemSales{MenuItemID: item.MenuItemID, Name: item.Name})
			}
			sales[i].Quantity += item.Quantity
			sales[i].Revenue += item.Subtotal()
		}
	}
	sort.SliceStable(sales, func(i, j int) bool {
		return sales[i].Quantity > sales[j].Quantity
	})
	if limit > 0 && len(sales) > limit {
		sales = sales[:limit]
	}
	return sales
}

type HourlySales struct {
	Hour    int     `json:"hour"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// HourlyBreakdown buckets orders by creation hour in loc. Only hours with
// orders are returned, ascending.
func HourlyBreakdown(orders []models.Order, loc *time.Location) []HourlySales {
	var buckets [24]HourlySales
	for _, o := range orders {
		h := o.CreatedAt.In(loc).Hour()
		buckets[h].Orders++
		buckets[h].Revenue += o.Total()
	}
	out := []HourlySales{}
	for h, b := range buckets {
		if b.Orders > 0 {
			b.Hour = h
			out = append(out, b)
		}
	}
	return out
}

func AverageOrderValue(revenue float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return revenue / float64(count)
}

// SalesReport is recomputed on every request and never stored.
type SalesReport struct {
	Period            Period        `json:"period"`
	Start             time.Time     `json:"start"`
	End               time.Time     `json:"end"`
	TotalOrders       int           `json:"totalOrders"`
	TotalRevenue      float64       `json:"totalRevenue"`
	AverageOrderValue float64       `json:"averageOrderValue"`
	ItemsSold         int           `json:"itemsSold"`
	TopItems          []ItemSales   `json:"topItems"`
	Hourly            []HourlySales `json:"hourly"`
	PeakOrderHour     *int          `json:"peakOrderHour"`
	PeakRevenueHour   *int          `json:"peakRevenueHour"`
	OccupiedTables    int           `json:"occupiedTables"`
}

// BuildSalesReport aggregates completed orders for period. Peak hours are
// nil when there is nothing to report; ties go to the earlier hour.
func BuildSalesReport(orders []models.Order, period Period, now time.Time, weekStart time.Weekday) SalesReport {
	start, end := DateRange(period, now, weekStart)
	filtered := FilterCompleted(orders, start, end)
	revenue := CalculateRevenue(filtered)

	report := SalesReport{
		Period:            period,
		Start:             start,
		End:               end,
		TotalOrders:       len(filtered),
		TotalRevenue:      revenue,
		AverageOrderValue: AverageOrderValue(revenue, len(filtered)),
		TopItems:          TopSellingItems(filtered, topItemsLimit),
		Hourly:            HourlyBreakdown(filtered, now.Location()),
	}
	for _, o := range filtered {
		report.ItemsSold += o.ItemCount()
	}

	var byOrders, byRevenue *HourlySales
	for i := range report.Hourly {
		h := &report.Hourly[i]
		if byOrders == nil || h.Orders > byOrders.Orders {
			byOrders = h
		}
		if byRevenue == nil || h.Revenue > byRevenue.Revenue {
			byRevenue = h
		}
	}
	if byOrders != nil {
		report.PeakOrderHour = &byOrders.Hour
		report.PeakRevenueHour = &byRevenue.Hour
	}
	return report
}

// SalesReport builds the report for period from the stored orders and
// counts the tables that are occupied right now.
func (s *Store) SalesReport(ctx context.Context, period Period) (SalesReport, error) {
	orders, err := s.ListOrders(ctx)
	if err != nil {
		return SalesReport{Period: period, TopItems: []ItemSales{}, Hourly: []HourlySales{}}, err
	}
	report := BuildSalesReport(orders, period, s.Now(), s.WeekStart)

	counts, err := s.TableStatusCounts(ctx)
	if err != nil {
		return report, err
	}
	report.OccupiedTables = counts[models.TableOccupied]
	return report, nil
}
