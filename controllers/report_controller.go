package controllers

import (
	"time"

	"github.com/cb023725/pos-project/pkg/resp"
	"github.com/cb023725/pos-project/services"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	Service *services.ReportService
}

func NewReportController(svc *services.ReportService) *ReportController {
	return &ReportController{Service: svc}
}

func reportDate(c *gin.Context) string {
	if d := c.Query("date"); d != "" {
		return d
	}
	return time.Now().Format("2006-01-02")
}

// GET /reports/summary?date=YYYY-MM-DD
func (rc *ReportController) Summary(c *gin.Context) {
	date := reportDate(c)

	summary, err := rc.Service.Summary(date)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	monthly, err := rc.Service.MonthlyTotal(date)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"summary": summary, "monthlyTotal": monthly})
}

// GET /reports/rankings?date=YYYY-MM-DD
func (rc *ReportController) Rankings(c *gin.Context) {
	items, categories, err := rc.Service.Rankings(reportDate(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items, "categories": categories})
}
