package services

import (
	"testing"
	"time"

	"github.com/cb023725/pos-project/entity"
)

func seedArchivedOrder(t *testing.T, s *OrderService, date string, at time.Time, customers int, items []entity.OrderItem) {
	t.Helper()
	var total int64
	for _, it := range items {
		total += it.LineTotal()
	}
	o := entity.Order{
		TableNumber:   "A1",
		CustomerCount: customers,
		SubTotal:      total,
		Total:         total,
		Date:          date,
		Status:        entity.StatusArchived,
		Items:         items,
	}
	o.CreatedAt = at
	if err := s.DB.Create(&o).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
}

func at(t *testing.T, clock string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", clock, time.Local)
	if err != nil {
		t.Fatalf("parse %q: %v", clock, err)
	}
	return ts
}

func TestSummaryDayNightSplit(t *testing.T) {
	s := newTestService(t)
	rs := NewReportService(s.Repo)
	date := "2026-08-30"

	lunch := []entity.OrderItem{{Name: "白飯", Category: "小點", Price: 30, Quantity: 10, InternalID: "l1"}}
	dinner := []entity.OrderItem{{Name: "可樂", Category: "飲品", Price: 40, Quantity: 5, InternalID: "d1"}}
	early := []entity.OrderItem{{Name: "可樂", Category: "飲品", Price: 40, Quantity: 1, InternalID: "e1"}}

	seedArchivedOrder(t, s, date, at(t, "2026-08-30 12:00"), 2, lunch)  // 300
	seedArchivedOrder(t, s, date, at(t, "2026-08-30 18:00"), 3, dinner) // 200
	seedArchivedOrder(t, s, date, at(t, "2026-08-30 09:00"), 1, early)  // 40, outside both shifts

	sum, err := rs.Summary(date)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.TotalRevenue != 540 {
		t.Fatalf("total = %d, want 540", sum.TotalRevenue)
	}
	if sum.DayRevenue != 300 || sum.NightRevenue != 200 {
		t.Fatalf("split = %d/%d, want 300/200", sum.DayRevenue, sum.NightRevenue)
	}
	if sum.CustomerCount != 6 {
		t.Fatalf("customers = %d, want 6", sum.CustomerCount)
	}
	if sum.AveragePrice != 90 {
		t.Fatalf("average = %d, want 90", sum.AveragePrice)
	}
	if sum.OrderCount != 3 {
		t.Fatalf("orders = %d, want 3", sum.OrderCount)
	}
}

func TestSummaryIgnoresActiveOrders(t *testing.T) {
	s := newTestService(t)
	rs := NewReportService(s.Repo)

	sendRiceBowl(t, s) // served, not archived

	sum, err := rs.Summary(time.Now().Format("2006-01-02"))
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.OrderCount != 0 || sum.TotalRevenue != 0 {
		t.Fatalf("active order leaked into report: %+v", sum)
	}
}

func TestTimeSlotBoundaries(t *testing.T) {
	cases := []struct {
		clock string
		want  string
	}{
		{"2026-08-30 11:00", "day"},
		{"2026-08-30 16:00", "day"},
		{"2026-08-30 16:15", "other"},
		{"2026-08-30 16:30", "night"},
		{"2026-08-30 21:59", "night"},
		{"2026-08-30 22:00", "other"},
		{"2026-08-30 10:59", "other"},
	}
	for _, c := range cases {
		if got := timeSlot(at(t, c.clock)); got != c.want {
			t.Errorf("timeSlot(%s) = %q, want %q", c.clock, got, c.want)
		}
	}
}

func TestRankingsRevenueDescending(t *testing.T) {
	s := newTestService(t)
	rs := NewReportService(s.Repo)
	date := "2026-08-30"

	seedArchivedOrder(t, s, date, at(t, "2026-08-30 12:00"), 2, []entity.OrderItem{
		{Name: "白飯", Category: "小點", Price: 30, Quantity: 3, InternalID: "a"},
		{Name: "可樂", Category: "飲品", Price: 40, Quantity: 1, InternalID: "b"},
	})
	seedArchivedOrder(t, s, date, at(t, "2026-08-30 18:00"), 2, []entity.OrderItem{
		{Name: "可樂", Category: "飲品", Price: 40, Quantity: 4, InternalID: "c"},
	})

	items, categories, err := rs.Rankings(date)
	if err != nil {
		t.Fatalf("Rankings: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if items[0].Name != "可樂" || items[0].Quantity != 5 || items[0].Revenue != 200 {
		t.Fatalf("top item = %+v, want 可樂 ×5 / 200", items[0])
	}
	if items[1].Name != "白飯" || items[1].Revenue != 90 {
		t.Fatalf("second item = %+v, want 白飯 / 90", items[1])
	}

	if len(categories) != 2 {
		t.Fatalf("categories = %d, want 2", len(categories))
	}
	if categories[0].Name != "飲品" || categories[0].Revenue != 200 {
		t.Fatalf("top category = %+v, want 飲品 / 200", categories[0])
	}
}

func TestMonthlyTotal(t *testing.T) {
	s := newTestService(t)
	rs := NewReportService(s.Repo)

	line := func(id string) []entity.OrderItem {
		return []entity.OrderItem{{Name: "白飯", Price: 100, Quantity: 1, InternalID: id}}
	}
	seedArchivedOrder(t, s, "2026-08-01", at(t, "2026-08-01 12:00"), 1, line("m1"))
	seedArchivedOrder(t, s, "2026-08-31", at(t, "2026-08-31 12:00"), 1, line("m2"))
	seedArchivedOrder(t, s, "2026-07-31", at(t, "2026-07-31 12:00"), 1, line("m3"))
	seedArchivedOrder(t, s, "2026-09-01", at(t, "2026-09-01 12:00"), 1, line("m4"))

	total, err := rs.MonthlyTotal("2026-08-15")
	if err != nil {
		t.Fatalf("MonthlyTotal: %v", err)
	}
	if total != 200 {
		t.Fatalf("monthly total = %d, want 200", total)
	}
}
