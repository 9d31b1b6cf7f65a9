package profile

import (
	"horseadmin/api/collection"
	"horseadmin/api/ctxutil"
	"horseadmin/api/response"
	profileapp "horseadmin/application/profile"

	"github.com/gin-gonic/gin"
)

// Controller serves the acting principal's own profile.
type Controller struct {
	service *profileapp.ApplicationService
}

func NewController(service *profileapp.ApplicationService) *Controller {
	return &Controller{service: service}
}

// RegisterRoutes 注册个人资料路由
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/profile", c.Get)
	router.PUT("/profile", c.Update)
}

// Get GET /api/v1/profile
func (c *Controller) Get(ctx *gin.Context) {
	p, err := c.service.Get(ctxutil.Context(ctx), ctxutil.Session(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, p, "profile retrieved successfully")
}

// Update PUT /api/v1/profile
func (c *Controller) Update(ctx *gin.Context) {
	values, ok := collection.BindValues(ctx, c.service.Form().Field)
	if !ok {
		return
	}

	p, err := c.service.Save(ctxutil.Context(ctx), ctxutil.Session(ctx), values)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, p, "Profile updated successfully")
}
