package handler

import (
	"context"
	"errors"

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

type TaskHandler struct {
	*adapter.Service
	tasks *service.TaskDomainService
}

func NewTaskHandler(srv *adapter.Service, tasks *service.TaskDomainService) *TaskHandler {
	return &TaskHandler{
		Service: srv,
		tasks:   tasks,
	}
}

// List godoc
//
//	@Summary	List tasks, newest first
//	@Tags		task
//	@Produce	json
//	@Param		page	query		int	false	"page number"	default(1)
//	@Success	200		{object}	v1.TaskListResponse
//	@Router		/task/ [get]
func (h *TaskHandler) List(ctx context.Context, c *app.RequestContext) {
	var p page.Page
	if err := c.BindAndValidate(&p); err != nil {
		v1.HandlerError(c, consts.StatusBadRequest, v1.ErrBadRequest)
		return
	}

	tasks, err := h.tasks.List(ctx, middleware.Username(c), middleware.IsAdmin(c), &p)
	if err != nil {
		h.Logger.WithContext(ctx).Error("[TaskHandler.List] list failed", zap.Error(err))
		v1.HandlerError(c, consts.StatusInternalServerError, v1.ErrInternalServerError)
		return
	}

	v1.HandlerSuccess(c, convert.TaskListConvert(tasks))
}

// Create godoc
//
//	@Summary	Schedule a new task from a settings template
//	@Tags		task
//	@Accept		json
//	@Produce	json
//	@Param		request	body		v1.TaskCreateRequest	true	"settings to run"
//	@Success	200		{object}	v1.TaskDetailResponse
//	@Router		/task/ [post]
func (h *TaskHandler) Create(ctx context.Context, c *app.RequestContext) {
	var req v1.TaskCreateRequest
	if err := c.BindAndValidate(&req); err != nil {
		v1.HandlerError(c, consts.StatusBadRequest, v1.ErrBadRequest)
		return
	}

	task, err := h.tasks.Create(ctx, middleware.Username(c), req.SettingsUUID)
	if err != nil {
		if errors.Is(err, service.ErrSettingsNotFound) {
			v1.HandlerError(c, consts.StatusNotFound, v1.ErrNotFound)
			return
		}
		h.Logger.WithContext(ctx).Error("[TaskHandler.Create] create failed", zap.Error(err))
		v1.HandlerError(c, consts.StatusInternalServerError, v1.ErrInternalServerError)
		return
	}

	v1.HandlerSuccess(c, convert.TaskDetailConvert(task))
}

// Get godoc
//
//	@Summary	Get task detail, including the log
//	@Tags		task
//	@Produce	json
//	@Param		task_id	path		string	true	"task uuid"
//	@Success	200		{object}	v1.TaskDetailResponse
//	@Router		/task/{task_id}/ [get]
func (h *TaskHandler) Get(ctx context.Context, c *app.RequestContext) {
	task, err := h.tasks.Get(ctx, middleware.Username(c), middleware.IsAdmin(c), c.Param("task_id"))
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			v1.HandlerError(c, consts.StatusNotFound, v1.ErrNotFound)
			return
		}
		h.Logger.WithContext(ctx).Error("[TaskHandler.Get] lookup failed", zap.Error(err))
		v1.HandlerError(c, consts.StatusInternalServerError, v1.ErrInternalServerError)
		return
	}

	v1.HandlerSuccess(c, convert.TaskDetailConvert(task))
}

// Delete godoc
//
//	@Summary	Mark a task for deletion
//	@Tags		task
//	@Produce	json
//	@Param		task_id	path		string	true	"task uuid"
//	@Success	200		{object}	v1.Response
//	@Router		/task/{task_id}/ [delete]
func (h *TaskHandler) Delete(ctx context.Context, c *app.RequestContext) {
	if err := h.tasks.Delete(ctx, middleware.Username(c), middleware.IsAdmin(c), c.Param("task_id")); err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			v1.HandlerError(c, consts.StatusNotFound, v1.ErrNotFound)
			return
		}
		h.Logger.WithContext(ctx).Error("[TaskHandler.Delete] delete failed", zap.Error(err))
		v1.HandlerError(c, consts.StatusInternalServerError, v1.ErrInternalServerError)
		return
	}

	v1.HandlerSuccess(c, nil)
}
