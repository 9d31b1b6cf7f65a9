package settings

import (
	"horseadmin/api/collection"
	"horseadmin/api/ctxutil"
	"horseadmin/api/response"
	settingsapp "horseadmin/application/settings"

	"github.com/gin-gonic/gin"
)

// Controller serves the site-wide settings record.
type Controller struct {
	service *settingsapp.ApplicationService
}

func NewController(service *settingsapp.ApplicationService) *Controller {
	return &Controller{service: service}
}

// RegisterRoutes 注册设置路由
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/settings", c.Get)
	router.PUT("/settings", c.Update)
}

// Get GET /api/v1/settings
func (c *Controller) Get(ctx *gin.Context) {
	s, err := c.service.Get(ctxutil.Context(ctx), ctxutil.Session(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, s, "settings retrieved successfully")
}

// Update PUT /api/v1/settings
func (c *Controller) Update(ctx *gin.Context) {
	values, ok := collection.BindValues(ctx, c.service.Form().Field)
	if !ok {
		return
	}

	s, err := c.service.Save(ctxutil.Context(ctx), ctxutil.Session(ctx), values)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, s, "Settings saved successfully")
}
