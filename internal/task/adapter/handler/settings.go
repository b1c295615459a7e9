package handler

import (
	"context"
	"errors"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"go.uber.org/zap"

	v1 "github.com/cloudscheduler/console/api/v1"
	"github.com/cloudscheduler/console/internal/task/adapter/convert"
	"github.com/cloudscheduler/console/internal/task/domain/service"
	"github.com/cloudscheduler/console/internal/user/adapter/middleware"
	"github.com/cloudscheduler/console/pkg/adapter"
	"github.com/cloudscheduler/console/pkg/page"
)

type SettingsHandler struct {
	*adapter.Service
	settings *service.SettingsDomainService
}

func NewSettingsHandler(srv *adapter.Service, settings *service.SettingsDomainService) *SettingsHandler {
	return &SettingsHandler{
		Service:  srv,
		settings: settings,
	}
}

// List godoc
//
//	@Summary	List task settings templates
//	@Tags		settings
//	@Produce	json
//	@Param		page		query		int		false	"page number"	default(1)
//	@Param		order_by	query		string	false	"comma separated columns, prefix - for descending"
//	@Success	200			{object}	v1.SettingsListResponse
//	@Router		/task_settings/ [get]
func (h *SettingsHandler) List(ctx context.Context, c *app.RequestContext) {
	var p page.Page
	if err := c.BindAndValidate(&p); err != nil {
		v1.HandlerError(c, consts.StatusBadRequest, v1.ErrBadRequest)
		return
	}

	var orderBy []string
	if raw := c.Query("order_by"); raw != "" {
		orderBy = strings.Split(raw, ",")
	}

	settings, err := h.settings.List(ctx, orderBy, &p)
	if err != nil {
		h.Logger.WithContext(ctx).Error("[SettingsHandler.List] list failed", zap.Error(err))
		v1.HandlerError(c, consts.StatusInternalServerError, v1.ErrInternalServerError)
		return
	}

	v1.HandlerSuccess(c, convert.SettingsListConvert(settings, middleware.IsAdmin(c)))
}

// Get godoc
//
//	@Summary	Get one settings template
//	@Tags		settings
//	@Produce	json
//	@Param		settings_id	path		string	true	"settings uuid"
//	@Success	200			{object}	v1.Response
//	@Router		/task_settings/{settings_id}/ [get]
func (h *SettingsHandler) Get(ctx context.Context, c *app.RequestContext) {
	settings, err := h.settings.Get(ctx, c.Param("settings_id"))
	if err != nil {
		if errors.Is(err, service.ErrSettingsNotFound) {
			v1.HandlerError(c, consts.StatusNotFound, v1.ErrNotFound)
			return
		}
		h.Logger.WithContext(ctx).Error("[SettingsHandler.Get] lookup failed", zap.Error(err))
		v1.HandlerError(c, consts.StatusInternalServerError, v1.ErrInternalServerError)
		return
	}

	entry := convert.SettingsEntryConvert(settings, middleware.IsAdmin(c))
	v1.HandlerSuccess(c, &entry)
}

// Create godoc
//
//	@Summary	Create a settings template (admin)
//	@Tags		settings
//	@Accept		json
//	@Produce	json
//	@Param		request	body		v1.SettingsCreateRequest	true	"new template"
//	@Success	200		{object}	v1.Response
//	@Router		/task_settings/ [post]
func (h *SettingsHandler) Create(ctx context.Context, c *app.RequestContext) {
	var req v1.SettingsCreateRequest
	if err := c.BindAndValidate(&req); err != nil {
		v1.HandlerError(c, consts.StatusBadRequest, v1.ErrBadRequest)
		return
	}

	settings, err := h.settings.Create(ctx, convert.SettingsCreateConvert(&req))
	if err != nil {
		if errors.Is(err, service.ErrDuplicateSettings) {
			v1.HandlerError(c, consts.StatusConflict, v1.ErrOperationFailed)
			return
		}
		h.Logger.WithContext(ctx).Error("[SettingsHandler.Create] create failed", zap.Error(err))
		v1.HandlerError(c, consts.StatusInternalServerError, v1.ErrInternalServerError)
		return
	}

	entry := convert.SettingsEntryConvert(settings, true)
	v1.HandlerSuccess(c, &entry)
}

// Update godoc
//
//	@Summary	Update a settings template (admin)
//	@Tags		settings
//	@Accept		json
//	@Produce	json
//	@Param		settings_id	path		string					true	"settings uuid"
//	@Param		request		body		v1.SettingsUpdateRequest	true	"fields to change"
//	@Success	200			{object}	v1.Response
//	@Router		/task_settings/{settings_id}/ [put]
func (h *SettingsHandler) Update(ctx context.Context, c *app.RequestContext) {
	var req v1.SettingsUpdateRequest
	if err := c.BindAndValidate(&req); err != nil {
		v1.HandlerError(c, consts.StatusBadRequest, v1.ErrBadRequest)
		return
	}

	settings, err := h.settings.Update(ctx, c.Param("settings_id"), convert.SettingsPatchConvert(&req))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSettingsNotFound):
			v1.HandlerError(c, consts.StatusNotFound, v1.ErrNotFound)
		case errors.Is(err, service.ErrDuplicateSettings):
			v1.HandlerError(c, consts.StatusConflict, v1.ErrOperationFailed)
		default:
			h.Logger.WithContext(ctx).Error("[SettingsHandler.Update] update failed", zap.Error(err))
			v1.HandlerError(c, consts.StatusInternalServerError, v1.ErrInternalServerError)
		}
		return
	}

	entry := convert.SettingsEntryConvert(settings, true)
	v1.HandlerSuccess(c, &entry)
}

// Delete godoc
//
//	@Summary	Delete a settings template (admin)
//	@Tags		settings
//	@Produce	json
//	@Param		settings_id	path		string	true	"settings uuid"
//	@Success	200			{object}	v1.Response
//	@Router		/task_settings/{settings_id}/ [delete]
func (h *SettingsHandler) Delete(ctx context.Context, c *app.RequestContext) {
	if err := h.settings.Delete(ctx, c.Param("settings_id")); err != nil {
		switch {
		case errors.Is(err, service.ErrSettingsNotFound):
			v1.HandlerError(c, consts.StatusNotFound, v1.ErrNotFound)
		case errors.Is(err, service.ErrSettingsInUse):
			v1.HandlerError(c, consts.StatusConflict, v1.ErrOperationFailed)
		default:
			h.Logger.WithContext(ctx).Error("[SettingsHandler.Delete] delete failed", zap.Error(err))
			v1.HandlerError(c, consts.StatusInternalServerError, v1.ErrInternalServerError)
		}
		return
	}

	v1.HandlerSuccess(c, nil)
}
