package main

import (
	"context"
	"flag"
	"fmt"

	"go.uber.org/zap"

	"github.com/cloudscheduler/console/cmd/server/wire"
	"github.com/cloudscheduler/console/pkg/application/config"
	"github.com/cloudscheduler/console/pkg/log"
)

// @title						Cloud Scheduler Console API
// @version					1.0.0
// @description				Admin console for scheduled container tasks.
// @host						localhost:8888
// @BasePath					/
// @securityDefinitions.apiKey	Token
// @in							header
// @name						X-Token
func main() {
	var envConf = flag.String("conf", "config/config.yml", "config path, eg: -conf ./config/local.yml")
	flag.Parse()
	conf := config.NewConfig(*envConf)

	logger := log.NewLog(conf)

	app, cleanup, err := wire.NewWire(conf, logger)
	if err != nil {
		panic(err)
	}
	defer cleanup()
	logger.Info("server start", zap.String("host", fmt.Sprintf("http://localhost%s%s", conf.GetString("app.addr"), conf.GetString("app.base_url"))))
	logger.Info("docs addr", zap.String("addr", fmt.Sprintf("http://localhost%s/swagger/index.html", conf.GetString("app.addr"))))
	if err = app.Run(context.Background()); err != nil {
		panic(err)
	}
}
