package handler

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"go.uber.org/zap"

	v1 "github.com/cloudscheduler/console/api/v1"
	"github.com/cloudscheduler/console/internal/user/adapter/middleware"
	"github.com/cloudscheduler/console/internal/user/domain/aggregate"
	"github.com/cloudscheduler/console/internal/user/domain/service"
	"github.com/cloudscheduler/console/pkg/adapter"
)

type UserHandler struct {
	*adapter.Service
	users *service.UserDomainService
}

func NewUserHandler(srv *adapter.Service, users *service.UserDomainService) *UserHandler {
	return &UserHandler{
		Service: srv,
		users:   users,
	}
}

// Login godoc
//
//	@Summary	Log in and obtain an access token
//	@Tags		user
//	@Accept		json
//	@Produce	json
//	@Param		request	body		v1.LoginRequest	true	"credentials"
//	@Success	200		{object}	v1.LoginResponse
//	@Router		/user/login/ [post]
func (h *UserHandler) Login(ctx context.Context, c *app.RequestContext) {
	var req v1.LoginRequest
	if err := c.BindAndValidate(&req); err != nil {
		v1.HandlerError(c, consts.StatusBadRequest, v1.ErrBadRequest)
		return
	}

	token, err := h.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			v1.HandlerError(c, consts.StatusUnauthorized, v1.ErrUnauthorized)
			return
		}
		h.Logger.WithContext(ctx).Error("[UserHandler.Login] login failed", zap.Error(err))
		v1.HandlerError(c, consts.StatusInternalServerError, v1.ErrInternalServerError)
		return
	}

	v1.HandlerSuccess(c, &v1.LoginPayload{Token: token})
}

// Signup godoc
//
//	@Summary	Create an account
//	@Tags		user
//	@Accept		json
//	@Produce	json
//	@Param		request	body		v1.SignupRequest	true	"new account"
//	@Success	200		{object}	v1.UserResponse
//	@Router		/user/ [post]
func (h *UserHandler) Signup(ctx context.Context, c *app.RequestContext) {
	var req v1.SignupRequest
	if err := c.BindAndValidate(&req); err != nil {
		v1.HandlerError(c, consts.StatusBadRequest, v1.ErrBadRequest)
		return
	}

	user, err := h.users.Signup(ctx, req.Username, req.Password, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			v1.HandlerError(c, consts.StatusBadRequest, v1.ErrBadRequest)
		case errors.Is(err, service.ErrUserExists):
			v1.HandlerError(c, consts.StatusConflict, v1.ErrOperationFailed)
		default:
			h.Logger.WithContext(ctx).Error("[UserHandler.Signup] signup failed", zap.Error(err))
			v1.HandlerError(c, consts.StatusInternalServerError, v1.ErrInternalServerError)
		}
		return
	}

	v1.HandlerSuccess(c, userPayload(user))
}

// Profile godoc
//
//	@Summary	Get the caller's profile
//	@Tags		user
//	@Produce	json
//	@Success	200	{object}	v1.UserResponse
//	@Router		/user/ [get]
func (h *UserHandler) Profile(ctx context.Context, c *app.RequestContext) {
	user, err := h.users.Profile(ctx, middleware.Username(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			v1.HandlerError(c, consts.StatusNotFound, v1.ErrNotFound)
			return
		}
		h.Logger.WithContext(ctx).Error("[UserHandler.Profile] lookup failed", zap.Error(err))
		v1.HandlerError(c, consts.StatusInternalServerError, v1.ErrInternalServerError)
		return
	}

	v1.HandlerSuccess(c, userPayload(user))
}

// Update godoc
//
//	@Summary	Update the caller's password and/or email
//	@Tags		user
//	@Accept		json
//	@Produce	json
//	@Param		request	body		v1.UserUpdateRequest	true	"fields to change"
//	@Success	200		{object}	v1.UserResponse
//	@Router		/user/ [put]
func (h *UserHandler) Update(ctx context.Context, c *app.RequestContext) {
	var req v1.UserUpdateRequest
	if err := c.BindAndValidate(&req); err != nil {
		v1.HandlerError(c, consts.StatusBadRequest, v1.ErrBadRequest)
		return
	}

	user, err := h.users.UpdateProfile(ctx, middleware.Username(c), req.Password, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			v1.HandlerError(c, consts.StatusBadRequest, v1.ErrBadRequest)
		case errors.Is(err, service.ErrUserNotFound):
			v1.HandlerError(c, consts.StatusNotFound, v1.ErrNotFound)
		default:
			h.Logger.WithContext(ctx).Error("[UserHandler.Update] update failed", zap.Error(err))
			v1.HandlerError(c, consts.StatusInternalServerError, v1.ErrInternalServerError)
		}
		return
	}

	v1.HandlerSuccess(c, userPayload(user))
}

// Logout godoc
//
//	@Summary	Revoke the presented token
//	@Tags		user
//	@Produce	json
//	@Param		token	query		string	true	"access token"
//	@Success	200		{object}	v1.Response
//	@Router		/user/logout/ [get]
func (h *UserHandler) Logout(ctx context.Context, c *app.RequestContext) {
	token := c.Query("token")
	if token == "" {
		token = string(c.GetHeader(middleware.TokenHeader))
	}
	if token == "" {
		v1.HandlerError(c, consts.StatusBadRequest, v1.ErrBadRequest)
		return
	}

	if err := h.users.Logout(ctx, token); err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			v1.HandlerError(c, consts.StatusUnauthorized, v1.ErrUnauthorized)
			return
		}
		h.Logger.WithContext(ctx).Error("[UserHandler.Logout] revoke failed", zap.Error(err))
		v1.HandlerError(c, consts.StatusInternalServerError, v1.ErrInternalServerError)
		return
	}

	v1.HandlerSuccess(c, nil)
}

func userPayload(user *aggregate.User) *v1.UserPayload {
	return &v1.UserPayload{
		Username:   user.Username,
		Email:      user.Email,
		Role:       string(user.Role),
		CreateTime: user.CreateTime.Format(time.RFC3339),
	}
}
