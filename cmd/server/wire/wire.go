//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"
	"github.com/spf13/viper"

	"github.com/cloudscheduler/console/internal/executor"
	taskhandler "github.com/cloudscheduler/console/internal/task/adapter/handler"
	"github.com/cloudscheduler/console/internal/task/application"
	taskservice "github.com/cloudscheduler/console/internal/task/domain/service"
	taskrepository "github.com/cloudscheduler/console/internal/task/infrastructure/repository"
	"github.com/cloudscheduler/console/internal/task/infrastructure/runner"
	userhandler "github.com/cloudscheduler/console/internal/user/adapter/handler"
	userservice "github.com/cloudscheduler/console/internal/user/domain/service"
	userrepository "github.com/cloudscheduler/console/internal/user/infrastructure/repository"
	"github.com/cloudscheduler/console/pkg/adapter"
	"github.com/cloudscheduler/console/pkg/application/app"
	"github.com/cloudscheduler/console/pkg/application/server/http"
	"github.com/cloudscheduler/console/pkg/cache/client"
	"github.com/cloudscheduler/console/pkg/domain"
	"github.com/cloudscheduler/console/pkg/log"
	"github.com/cloudscheduler/console/pkg/sid"
)

var infrastructureSet = wire.NewSet(
	runner.NewClient,
	runner.NewContainerPool,
	runner.NewTaskRunner,
	taskrepository.NewDB,
	taskrepository.NewRepository,
	taskrepository.NewTransaction,
	taskrepository.NewTaskRepository,
	taskrepository.NewSettingsRepository,
	taskrepository.NewSettingsCache,
	userrepository.NewUserRepository,
	userrepository.NewTokenStore,
	client.NewCacheClients,
)

var domainSet = wire.NewSet(
	domain.NewService,
	taskservice.NewTaskService,
	taskservice.NewSettingsService,
	userservice.NewUserService,
	wire.Bind(new(executor.SettingsGetter), new(*taskservice.SettingsDomainService)),
)

var adapterSet = wire.NewSet(
	adapter.NewService,
	taskhandler.NewTaskHandler,
	taskhandler.NewSettingsHandler,
	userhandler.NewUserHandler,
)

var applicationSet = wire.NewSet(
	application.NewConsoleApplication,
	executor.NewExecutor,
)

// build App
func newApp(
	httpServer *http.Server,
	exec *executor.Executor,
	conf *viper.Viper,
) *app.App {
	return app.NewApp(
		app.WithServer(httpServer, exec),
		app.WithName(conf.GetString("app.name")),
	)
}

func NewWire(*viper.Viper, *log.Logger) (*app.App, func(), error) {
	panic(wire.Build(
		infrastructureSet,
		domainSet,
		adapterSet,
		applicationSet,
		sid.NewSid,
		newApp,
	))
}
