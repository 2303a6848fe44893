package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"todos/internal/adapter/http/helper"
	"todos/internal/adapter/http/middleware"
	"todos/internal/core/model/request"
	"todos/internal/core/model/response"
	"todos/internal/core/port"
	"todos/internal/core/util"
	"todos/pkg/tracing"
)

type AuthHandler struct {
	svc port.AuthService
}

func NewAuthHandler(svc port.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register and Login answer with the bare token as text/plain.
func (h *AuthHandler) Register(c *gin.Context) {
	ctx, span := tracing.CreateChildSpan(c.Request.Context(), "handler.auth.Register",
		attribute.String("handler.path", c.FullPath()),
	)
	defer span.End()

	params, err := util.ParamsToMap[request.RegisterRequest](c)
	if err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	token, err := h.svc.Register(ctx, &params)
	if err != nil {
		helper.SendServiceError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(token))
}

func (h *AuthHandler) Login(c *gin.Context) {
	ctx, span := tracing.CreateChildSpan(c.Request.Context(), "handler.auth.Login",
		attribute.String("handler.path", c.FullPath()),
	)
	defer span.End()

	params, err := util.ParamsToMap[request.LoginRequest](c)
	if err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	token, err := h.svc.Login(ctx, &params)
	if err != nil {
		helper.SendServiceError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(token))
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		helper.SendUnauthorizedError(c, "Unauthorized")
		return
	}

	c.JSON(http.StatusOK, response.NewUserResponse(user))
}
