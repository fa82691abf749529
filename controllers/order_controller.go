package controllers

import (
	"errors"
	"strconv"

	"github.com/cb023725/pos-project/pkg/resp"
	"github.com/cb023725/pos-project/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderController struct {
	Service *services.OrderService
}

func NewOrderController(svc *services.OrderService) *OrderController {
	return &OrderController{Service: svc}
}

// validationErr maps the engine's typed refusals onto 4xx so the UI can block
// a resubmission; anything else is a storage failure.
func validationErr(err error) bool {
	switch {
	case errors.Is(err, services.ErrEmptyOrder),
		errors.Is(err, services.ErrNothingUnpaid),
		errors.Is(err, services.ErrEmptySelection),
		errors.Is(err, services.ErrLineNotFound),
		errors.Is(err, services.ErrLinePaid),
		errors.Is(err, services.ErrNotSellable),
		errors.Is(err, services.ErrTakeoutTable):
		return true
	}
	return false
}

func (oc *OrderController) fail(c *gin.Context, err error) {
	switch {
	case validationErr(err):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTableBusy),
		errors.Is(err, services.ErrTableOccupied),
		errors.Is(err, services.ErrOrderArchived),
		errors.Is(err, services.ErrCheckoutInFlight),
		errors.Is(err, services.ErrTransitionConflict):
		resp.Conflict(c, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, "order not found")
	default:
		resp.ServerError(c, err)
	}
}

// POST /orders/save — persist the draft without a kitchen dispatch
func (oc *OrderController) Save(c *gin.Context) {
	var draft services.OrderDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	id, err := oc.Service.Save(&draft)
	if err != nil {
		oc.fail(c, err)
		return
	}
	resp.OK(c, gin.H{"orderId": id})
}

// POST /orders/send — persist and dispatch to the kitchen
func (oc *OrderController) Send(c *gin.Context) {
	var draft services.OrderDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	id, err := oc.Service.Send(&draft)
	if err != nil {
		oc.fail(c, err)
		return
	}
	resp.OK(c, gin.H{"orderId": id})
}

type CheckoutRequest struct {
	InternalIDs []string `json:"internalIds"`
	FullyPaid   *bool    `json:"fullyPaid" binding:"required"`
}

// POST /orders/:id/checkout/preview — amount due for operator confirmation
func (oc *OrderController) CheckoutPreview(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	due, err := oc.Service.CheckoutPreview(uint(id), req.InternalIDs, *req.FullyPaid)
	if err != nil {
		oc.fail(c, err)
		return
	}
	resp.OK(c, gin.H{"amountDue": due})
}

// POST /orders/:id/checkout
func (oc *OrderController) Checkout(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	res, err := oc.Service.Checkout(uint(id), req.InternalIDs, *req.FullyPaid)
	if err != nil {
		oc.fail(c, err)
		return
	}
	resp.OK(c, res)
}

// GET /orders/:id
func (oc *OrderController) Detail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	o, err := oc.Service.Get(uint(id))
	if err != nil {
		oc.fail(c, err)
		return
	}
	resp.OK(c, o)
}

// GET /orders/active — orders still on the floor
func (oc *OrderController) Active(c *gin.Context) {
	orders, err := oc.Service.ActiveOrders()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": orders})
}

// GET /orders/report — archived orders for the reporting screens
func (oc *OrderController) Report(c *gin.Context) {
	orders, err := oc.Service.ReportOrders()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": orders})
}
