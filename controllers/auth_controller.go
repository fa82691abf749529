package controllers

import (
	"github.com/cb023725/pos-project/pkg/resp"
	"github.com/cb023725/pos-project/repository"
	"github.com/cb023725/pos-project/services"
	"github.com/cb023725/pos-project/utils"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	Service  *services.AuthService
	UserRepo *repository.UserRepository
}

func NewAuthController(svc *services.AuthService, userRepo *repository.UserRepository) *AuthController {
	return &AuthController{Service: svc, UserRepo: userRepo}
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, user, err := a.Service.Login(req.Email, req.Password)
	if err != nil {
		resp.Unauthorized(c, err.Error())
		return
	}

	resp.OK(c, gin.H{
		"token": token,
		"user": gin.H{
			"id": user.ID, "email": user.Email,
			"firstName": user.FirstName, "lastName": user.LastName,
			"role": user.Role,
		},
	})
}

// GET /auth/me
func (a *AuthController) Me(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	user, err := a.UserRepo.FindByID(uid)
	if err != nil {
		resp.NotFound(c, "user not found")
		return
	}
	resp.OK(c, user)
}

type CreateStaffRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
}

// POST /auth/staff (admin only)
func (a *AuthController) CreateStaff(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := a.Service.CreateStaff(req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.Created(c, gin.H{"id": user.ID, "email": user.Email})
}
