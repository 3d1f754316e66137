package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"image-hosting-api/internal/application/ports"
	"image-hosting-api/internal/infrastructure/jwt"
	"image-hosting-api/internal/interface/api/rest/dto/user"
	"image-hosting-api/internal/interface/api/rest/middleware"
	"image-hosting-api/internal/interface/api/rest/validator"
)

type UserController struct {
	userService ports.UserService
	logger      *zap.Logger
}

func NewUserController(
	r *gin.Engine,
	userService ports.UserService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *UserController {
	uc := &UserController{
		userService: userService,
		logger:      logger,
	}

	r.GET(RouteAccountTypes, uc.GetAccountTypesHandler)
	r.POST(RouteUsers, uc.CreateUserHandler)
	r.GET(RouteMe, middleware.AuthMiddleware(jwtService), uc.GetMeHandler)
	r.PATCH(RouteMyPassword, middleware.AuthMiddleware(jwtService), uc.ChangePasswordHandler)

	return uc
}

func (uc *UserController) GetAccountTypesHandler(c *gin.Context) {
	ats, err := uc.userService.ListAccountTypes(c.Request.Context())
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get account types"},
		)
		uc.logger.Error("ListAccountTypes() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, user.AccountTypesResponse{
		Data: user.ToResponseAccountTypes(ats),
	})
}

func (uc *UserController) CreateUserHandler(c *gin.Context) {
	var req user.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}

	if errs := validator.ValidateRegistration(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	u, err := uc.userService.RegisterUser(c.Request.Context(), user.ToRegistration(req))
	if err != nil {
		respondError(c, uc.logger, "RegisterUser", err)
		return
	}

	c.JSON(http.StatusCreated, user.ToResponseUser(*u))
}

func (uc *UserController) GetMeHandler(c *gin.Context) {
	id, ok := callerOrAbort(c)
	if !ok {
		return
	}

	u, err := uc.userService.FindUserByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a user"},
		)
		uc.logger.Error("FindUserByID() error", zap.Error(err))
		return
	}
	if u == nil {
		c.JSON(
			http.StatusNotFound,
			gin.H{"error": "user not found"},
		)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}

func (uc *UserController) ChangePasswordHandler(c *gin.Context) {
	id, ok := callerOrAbort(c)
	if !ok {
		return
	}

	var req user.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}

	if errs := validator.ValidateChangePassword(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	if err := uc.userService.ChangePassword(c.Request.Context(), id, req.OldPassword, req.NewPassword); err != nil {
		respondError(c, uc.logger, "ChangePassword", err)
		return
	}

	c.Status(http.StatusNoContent)
}
