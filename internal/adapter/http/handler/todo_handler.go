package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"todos/internal/adapter/http/helper"
	"todos/internal/adapter/http/middleware"
	"todos/internal/core/model/request"
	"todos/internal/core/model/response"
	"todos/internal/core/port"
	"todos/internal/core/util"
	"todos/pkg/tracing"
)

type TodoHandler struct {
	svc port.TodoService
}

func NewTodoHandler(svc port.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// begin opens the handler span and resolves the caller. ok is false when the
// response has already been written.
func (t *TodoHandler) begin(c *gin.Context, operation string) (context.Context, trace.Span, uuid.UUID, bool) {
	ctx, span := tracing.CreateChildSpan(c.Request.Context(), "handler.todo."+operation,
		attribute.String("handler.operation", operation),
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	)

	user, found := middleware.CurrentUser(c)
	if !found {
		helper.SendUnauthorizedError(c, "Unauthorized")
		return ctx, span, uuid.Nil, false
	}

	span.SetAttributes(attribute.String("user.id", user.ID.String()))

	return ctx, span, user.ID, true
}

func (t *TodoHandler) List(c *gin.Context) {
	ctx, span, userID, ok := t.begin(c, "List")
	defer span.End()
	if !ok {
		return
	}

	todos, err := t.svc.List(ctx, userID)
	if err != nil {
		helper.SendServiceError(c, err)
		return
	}

	span.SetAttributes(attribute.Int("todo.count", len(todos)))

	c.JSON(http.StatusOK, response.NewTodoListResponse(todos))
}

func (t *TodoHandler) Get(c *gin.Context) {
	ctx, span, userID, ok := t.begin(c, "Get")
	defer span.End()
	if !ok {
		return
	}

	todo, err := t.svc.Get(ctx, userID, c.Param("id"))
	if err != nil {
		helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewTodoResponse(todo))
}

func (t *TodoHandler) Upsert(c *gin.Context) {
	ctx, span, userID, ok := t.begin(c, "Upsert")
	defer span.End()
	if !ok {
		return
	}

	params, err := util.ParamsToMap[request.UpsertTodoRequest](c)
	if err != nil {
		tracing.AddSpanError(span, err)
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	todo, err := t.svc.Upsert(ctx, userID, &params)
	if err != nil {
		helper.SendServiceError(c, err)
		return
	}

	tracing.AddSpanEvent(span, "todo.upserted", attribute.String("todo.id", todo.ID.String()))

	c.JSON(http.StatusCreated, response.NewTodoResponse(todo))
}

func (t *TodoHandler) SwitchCompleted(c *gin.Context) {
	ctx, span, userID, ok := t.begin(c, "SwitchCompleted")
	defer span.End()
	if !ok {
		return
	}

	todo, err := t.svc.SwitchCompleted(ctx, userID, c.Param("id"))
	if err != nil {
		helper.SendServiceError(c, err)
		return
	}

	tracing.AddSpanEvent(span, "todo.switched",
		attribute.String("todo.id", todo.ID.String()),
		attribute.Bool("todo.completed", todo.Completed))

	c.JSON(http.StatusOK, response.NewTodoResponse(todo))
}

func (t *TodoHandler) Delete(c *gin.Context) {
	ctx, span, userID, ok := t.begin(c, "Delete")
	defer span.End()
	if !ok {
		return
	}

	todo, err := t.svc.Delete(ctx, userID, c.Param("id"))
	if err != nil {
		helper.SendServiceError(c, err)
		return
	}

	tracing.AddSpanEvent(span, "todo.deleted", attribute.String("todo.id", todo.ID.String()))

	c.JSON(http.StatusOK, response.NewTodoResponse(todo))
}
