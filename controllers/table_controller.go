package controllers

import (
	"errors"

	"github.com/cb023725/pos-project/pkg/resp"
	"github.com/cb023725/pos-project/repository"
	"github.com/cb023725/pos-project/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TableController struct {
	Service   *services.OrderService
	TableRepo *repository.TableRepository
	Tables    []string
}

func NewTableController(svc *services.OrderService, tableRepo *repository.TableRepository, tables []string) *TableController {
	return &TableController{Service: svc, TableRepo: tableRepo, Tables: tables}
}

// GET /tables — the full floor plan; tables without a record render as idle
func (tc *TableController) List(c *gin.Context) {
	records, err := tc.TableRepo.List()
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	byNumber := make(map[string]any, len(records))
	for _, r := range records {
		byNumber[r.TableNumber] = r
	}
	out := make([]any, 0, len(tc.Tables))
	for _, id := range tc.Tables {
		if rec, ok := byNumber[id]; ok {
			out = append(out, rec)
		} else {
			out = append(out, gin.H{"tableNumber": id, "status": "idle", "orderId": nil})
		}
	}
	resp.OK(c, gin.H{"items": out})
}

// GET /tables/:id/order — the order occupying a table, for reopening its screen
func (tc *TableController) Order(c *gin.Context) {
	o, err := tc.Service.OrderForTable(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "table has no active order")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, o)
}

// POST /tables/:id/reserve — seat a party before the first item is chosen
func (tc *TableController) Reserve(c *gin.Context) {
	if err := tc.Service.ReserveTable(c.Param("id")); err != nil {
		tableFail(c, err)
		return
	}
	resp.OK(c, gin.H{"reserved": true})
}

// POST /tables/:id/reset — clear a settled (or never-ordered) table
func (tc *TableController) Reset(c *gin.Context) {
	if err := tc.Service.ResetTable(c.Param("id")); err != nil {
		tableFail(c, err)
		return
	}
	resp.OK(c, gin.H{"reset": true})
}

// POST /tables/:id/force-clear — operator override, discards pending charges
func (tc *TableController) ForceClear(c *gin.Context) {
	if err := tc.Service.ForceClearTable(c.Param("id")); err != nil {
		tableFail(c, err)
		return
	}
	resp.OK(c, gin.H{"cleared": true})
}

func tableFail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTakeoutTable):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTableBusy),
		errors.Is(err, services.ErrTableOccupied),
		errors.Is(err, services.ErrTransitionConflict):
		resp.Conflict(c, err.Error())
	default:
		resp.ServerError(c, err)
	}
}
