package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cloudscheduler/console/pkg/application/server"
)

type App struct {
	name    string
	servers []server.Server
}

type Option func(a *App)

func NewApp(opts ...Option) *App {
	a := &App{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func WithServer(servers ...server.Server) Option {
	return func(a *App) {
		a.servers = servers
	}
}

func WithName(name string) Option {
	return func(a *App) {
		a.name = name
	}
}

// Run starts every registered server and blocks until a termination
// signal arrives or ctx is cancelled, then stops them in reverse order.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	for _, srv := range a.servers {
		go func(srv server.Server) {
			srv.Start()
		}(srv)
	}

	select {
	case <-signals:
		log.Println("received termination signal")
	case <-ctx.Done():
		log.Println("context canceled")
	}

	for i := len(a.servers) - 1; i >= 0; i-- {
		a.servers[i].Stop()
	}

	return nil
}
