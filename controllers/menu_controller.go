package controllers

import (
	"errors"

	"github.com/cb023725/pos-project/entity"
	"github.com/cb023725/pos-project/pkg/resp"
	"github.com/cb023725/pos-project/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MenuController is the menu/inventory collaborator surface. The lifecycle
// engine only ever reads these records and deducts stock.
type MenuController struct {
	Repo *repository.MenuRepository
}

func NewMenuController(repo *repository.MenuRepository) *MenuController {
	return &MenuController{Repo: repo}
}

// GET /menu — sellable items for the ordering screen
func (mc *MenuController) List(c *gin.Context) {
	items, err := mc.Repo.ListSellable()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /inventory — stock-tracked records
func (mc *MenuController) Inventory(c *gin.Context) {
	items, err := mc.Repo.ListInventory()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

type MenuItemIn struct {
	ID        string   `json:"id" binding:"required"`
	Name      string   `json:"name" binding:"required"`
	Price     *int64   `json:"price"`
	Category  string   `json:"category"`
	Stock     *int     `json:"stock"`
	Consumes  []string `json:"consumes"`
	SortOrder int      `json:"sortOrder"`
	ImageURL  string   `json:"imageUrl"`
}

// POST /menu
func (mc *MenuController) Create(c *gin.Context) {
	var req MenuItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	item := entity.MenuItem{
		ID:        req.ID,
		Name:      req.Name,
		Price:     req.Price,
		Category:  req.Category,
		Stock:     req.Stock,
		Consumes:  entity.StringList(req.Consumes),
		SortOrder: req.SortOrder,
		ImageURL:  req.ImageURL,
	}
	if err := mc.Repo.Create(&item); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, item)
}

// PATCH /menu/:id
func (mc *MenuController) Update(c *gin.Context) {
	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	// id is the key, never an updatable column
	delete(updates, "id")

	if _, err := mc.Repo.Get(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "menu item not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	if err := mc.Repo.Update(c.Param("id"), updates); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"updated": true})
}

// DELETE /menu/:id
func (mc *MenuController) Delete(c *gin.Context) {
	if err := mc.Repo.Delete(c.Param("id")); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}
