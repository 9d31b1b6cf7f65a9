// Package collection serves every managed collection over one generic
// JSON controller.
package collection

import (
	"horseadmin/api/ctxutil"
	"horseadmin/api/response"
	"horseadmin/application/crud"
	"horseadmin/domain/resource"

	"github.com/gin-gonic/gin"
)

// ListResponse is a filtered list plus the summary cards over it.
type ListResponse[R any] struct {
	Items []R             `json:"items"`
	Total int             `json:"total"`
	Stats []resource.Stat `json:"stats"`
}

// Controller exposes one collection under /<collection>.
type Controller[R resource.Entity] struct {
	service *crud.ApplicationService[R]
}

// NewController binds service to its routes.
func NewController[R resource.Entity](service *crud.ApplicationService[R]) *Controller[R] {
	return &Controller[R]{service: service}
}

// RegisterRoutes 注册集合路由
func (c *Controller[R]) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/" + c.service.Schema().Collection)
	{
		group.GET("", c.List)
		group.GET("/:id", c.Get)
		group.POST("", c.Create)
		group.PUT("/:id", c.Update)
		group.DELETE("/:id", c.Delete)
	}
}

// List GET /api/v1/<collection>?q=
func (c *Controller[R]) List(ctx *gin.Context) {
	rows, err := c.service.List(ctxutil.Context(ctx), ctxutil.Session(ctx), ctx.Query("q"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, ListResponse[R]{
		Items: rows,
		Total: len(rows),
		Stats: c.service.Schema().Stats(rows),
	}, c.service.Schema().Title+" retrieved successfully")
}

// Get GET /api/v1/<collection>/:id
func (c *Controller[R]) Get(ctx *gin.Context) {
	rec, err := c.service.Find(ctxutil.Context(ctx), ctxutil.Session(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, rec, c.service.Schema().Entity+" retrieved successfully")
}

// Create POST /api/v1/<collection>
func (c *Controller[R]) Create(ctx *gin.Context) {
	rec, ok := c.bind(ctx)
	if !ok {
		return
	}

	rec, err := c.service.Create(ctxutil.Context(ctx), ctxutil.Session(ctx), rec)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, rec, c.message("created"))
}

// Update PUT /api/v1/<collection>/:id replaces every form attribute.
func (c *Controller[R]) Update(ctx *gin.Context) {
	rec, ok := c.bind(ctx)
	if !ok {
		return
	}

	rec, err := c.service.Update(ctxutil.Context(ctx), ctxutil.Session(ctx), ctx.Param("id"), rec)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, rec, c.message("updated"))
}

// Delete DELETE /api/v1/<collection>/:id
func (c *Controller[R]) Delete(ctx *gin.Context) {
	if err := c.service.Delete(ctxutil.Context(ctx), ctxutil.Session(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, gin.H{"id": ctx.Param("id")}, c.message("deleted"))
}

// bind decodes the body and runs it through the form coercion.
func (c *Controller[R]) bind(ctx *gin.Context) (R, bool) {
	var zero R
	values, ok := BindValues(ctx, c.service.Schema().Field)
	if !ok {
		return zero, false
	}
	rec, err := c.service.Schema().Payload(values)
	if err != nil {
		response.HandleAppError(ctx, err)
		return zero, false
	}
	return rec, true
}

func (c *Controller[R]) message(verb string) string {
	return c.service.Schema().EntityTitle() + " " + verb + " successfully"
}

// BindValues reads a JSON object body as form values.
func BindValues(ctx *gin.Context, field func(string) (resource.Field, bool)) (resource.Values, bool) {
	var body map[string]any
	if err := ctx.ShouldBindJSON(&body); err != nil {
		response.HandleError(ctx, err, "invalid request body")
		return nil, false
	}
	return toValues(body, field), true
}
