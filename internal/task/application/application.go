package application

import (
	"github.com/spf13/viper"

	taskhandler "github.com/cloudscheduler/console/internal/task/adapter/handler"
	userhandler "github.com/cloudscheduler/console/internal/user/adapter/handler"
	"github.com/cloudscheduler/console/internal/user/adapter/middleware"
	userservice "github.com/cloudscheduler/console/internal/user/domain/service"
	"github.com/cloudscheduler/console/pkg/adapter"
	"github.com/cloudscheduler/console/pkg/application/server/http"
	"github.com/cloudscheduler/console/pkg/log"
	"github.com/cloudscheduler/console/pkg/sid"
)

func NewConsoleApplication(
	conf *viper.Viper,
	logger *log.Logger,
	s *sid.Sid,
	users *userservice.UserDomainService,
	task *taskhandler.TaskHandler,
	settings *taskhandler.SettingsHandler,
	user *userhandler.UserHandler,
) *http.Server {
	h := http.NewServer(conf, logger)
	h.Use(adapter.AccessLog(logger, s))

	auth := middleware.Auth(users)

	u := h.Group("/user")
	u.POST("/login/", user.Login)
	u.POST("/", user.Signup)
	u.GET("/logout/", user.Logout)
	u.GET("/", auth, user.Profile)
	u.PUT("/", auth, user.Update)

	t := h.Group("/task", auth)
	t.GET("/", task.List)
	t.POST("/", task.Create)
	t.GET("/:task_id/", task.Get)
	t.DELETE("/:task_id/", task.Delete)

	st := h.Group("/task_settings", auth)
	st.GET("/", settings.List)
	st.GET("/:settings_id/", settings.Get)

	admin := middleware.AdminOnly()
	st.POST("/", admin, settings.Create)
	st.PUT("/:settings_id/", admin, settings.Update)
	st.DELETE("/:settings_id/", admin, settings.Delete)

	return h
}
