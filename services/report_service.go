package services

import (
	"sort"
	"time"

	"github.com/cb023725/pos-project/entity"
	"github.com/cb023725/pos-project/repository"
)

// Shift boundaries for the day/night revenue split.
const (
	dayStartHour = 11
	dayEndHour   = 16
	nightEndHour = 21
)

// ReportService aggregates archived orders for the reporting screens.
// Active orders never appear here: the archive partition is its input.
type ReportService struct {
	Repo *repository.OrderRepository
}

func NewReportService(repo *repository.OrderRepository) *ReportService {
	return &ReportService{Repo: repo}
}

type DailySummary struct {
	Date          string `json:"date"`
	TotalRevenue  int64  `json:"totalRevenue"`
	DayRevenue    int64  `json:"dayRevenue"`
	NightRevenue  int64  `json:"nightRevenue"`
	CustomerCount int    `json:"customerCount"`
	AveragePrice  int64  `json:"averagePrice"`
	OrderCount    int    `json:"orderCount"`
}

type SalesRank struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Quantity int    `json:"quantity"`
	Revenue  int64  `json:"revenue"`
}

// Summary computes one report partition: total revenue, lunch/dinner split and
// per-head average over that day's archived orders.
func (s *ReportService) Summary(date string) (*DailySummary, error) {
	orders, err := s.Repo.ListArchivedByDate(date)
	if err != nil {
		return nil, err
	}

	out := &DailySummary{Date: date, OrderCount: len(orders)}
	for _, o := range orders {
		out.TotalRevenue += o.Total
		count := o.CustomerCount
		if count < 1 {
			count = 1
		}
		out.CustomerCount += count

		switch timeSlot(o.CreatedAt) {
		case "day":
			out.DayRevenue += o.Total
		case "night":
			out.NightRevenue += o.Total
		}
	}
	if out.CustomerCount > 0 {
		out.AveragePrice = out.TotalRevenue / int64(out.CustomerCount)
	}
	return out, nil
}

// Rankings aggregates item and category sales for one day, revenue-descending.
func (s *ReportService) Rankings(date string) (items []SalesRank, categories []SalesRank, err error) {
	orders, err := s.Repo.ListArchivedByDate(date)
	if err != nil {
		return nil, nil, err
	}

	itemMap := map[string]*SalesRank{}
	categoryMap := map[string]*SalesRank{}
	for _, o := range orders {
		for _, it := range o.Items {
			lineTotal := it.LineTotal()

			row := itemMap[it.Name]
			if row == nil {
				row = &SalesRank{Name: it.Name, Category: it.Category}
				itemMap[it.Name] = row
			}
			row.Quantity += it.Quantity
			row.Revenue += lineTotal

			category := it.Category
			if category == "" {
				category = "未分類"
			}
			crow := categoryMap[category]
			if crow == nil {
				crow = &SalesRank{Name: category}
				categoryMap[category] = crow
			}
			crow.Quantity += it.Quantity
			crow.Revenue += lineTotal
		}
	}

	items = rankSlice(itemMap)
	categories = rankSlice(categoryMap)
	return items, categories, nil
}

// MonthlyTotal sums archived revenue for the month containing date.
func (s *ReportService) MonthlyTotal(date string) (int64, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, err
	}
	start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location()).Format("2006-01-02")
	end := time.Date(day.Year(), day.Month()+1, 0, 0, 0, 0, 0, day.Location()).Format("2006-01-02")

	orders, err := s.Repo.ListByStatus(entity.StatusArchived)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, o := range orders {
		if o.Date >= start && o.Date <= end {
			total += o.Total
		}
	}
	return total, nil
}

// timeSlot places a timestamp in the lunch (11:00-16:00) or dinner
// (16:30-21:59) service, or neither.
func timeSlot(t time.Time) string {
	h, m := t.Hour(), t.Minute()
	switch {
	case h >= dayStartHour && (h < dayEndHour || (h == dayEndHour && m == 0)):
		return "day"
	case (h > dayEndHour || (h == dayEndHour && m >= 30)) && h <= nightEndHour:
		return "night"
	default:
		return "other"
	}
}

func rankSlice(m map[string]*SalesRank) []SalesRank {
	out := make([]SalesRank, 0, len(m))
	for _, r := range m {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	return out
}
