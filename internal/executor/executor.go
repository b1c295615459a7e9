package executor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cloudscheduler/console/internal/task/domain/aggregate"
	"github.com/cloudscheduler/console/internal/task/domain/aggregate/vo"
	"github.com/cloudscheduler/console/internal/task/domain/repository"
	"github.com/cloudscheduler/console/internal/task/infrastructure/runner"
	"github.com/cloudscheduler/console/pkg/log"
	"github.com/cloudscheduler/console/pkg/quene"
)

// SettingsGetter resolves the settings template a task runs under.
type SettingsGetter interface {
	Get(ctx context.Context, settingsUUID string) (*aggregate.Settings, error)
}

// Executor is the background dispatcher: it claims Scheduled tasks, runs
// them on a worker pool and reaps tasks marked Deleting. It plugs into
// the application as one of its servers.
type Executor struct {
	logger   *log.Logger
	tasks    repository.TaskRepository
	settings SettingsGetter
	runner   runner.TaskRunner

	pool       *ants.Pool
	queue      *quene.RingQueue[*aggregate.Task]
	interval   time.Duration
	claimLimit int

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewExecutor(
	conf *viper.Viper,
	logger *log.Logger,
	tasks repository.TaskRepository,
	settings SettingsGetter,
	r runner.TaskRunner,
) *Executor {
	poolNum := conf.GetInt("app.executor.pool_num")
	if poolNum <= 0 {
		poolNum = 8
	}
	claimLimit := conf.GetInt("app.executor.claim_limit")
	if claimLimit <= 0 {
		claimLimit = poolNum * 2
	}
	interval := conf.GetDuration("app.executor.dispatch_interval")
	if interval <= 0 {
		interval = 2 * time.Second
	}

	// Nonblocking so a saturated pool never stalls the dispatch loop;
	// overflow stays on the queue until the next tick.
	p, err := ants.NewPool(poolNum, ants.WithNonblocking(true))
	if err != nil {
		panic(err)
	}

	return &Executor{
		logger:     logger,
		tasks:      tasks,
		settings:   settings,
		runner:     r,
		pool:       p,
		queue:      quene.NewRingQueue[*aggregate.Task](claimLimit * 2),
		interval:   interval,
		claimLimit: claimLimit,
	}
}

func (e *Executor) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel

	e.wg.Add(1)
	go e.run(ctx)

	e.logger.Info("executor started",
		zap.Duration("interval", e.interval),
		zap.Int("claimLimit", e.claimLimit))
}

func (e *Executor) Stop() {
	if e.cancel != nil {
		e.cancel()
	}
	e.wg.Wait()
	e.pool.Release()
	e.logger.Info("executor stopped")
}

func (e *Executor) run(ctx context.Context) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.dispatch(ctx)
			e.reap(ctx)
		}
	}
}

// dispatch pulls newly scheduled tasks onto the queue and feeds the
// worker pool as far as capacity allows.
func (e *Executor) dispatch(ctx context.Context) {
	if !e.queue.IsFull() {
		claimed, err := e.tasks.ClaimScheduled(ctx, e.claimLimit)
		if err != nil {
			e.logger.Error("[Executor.dispatch] claim failed", zap.Error(err))
		}
		for _, task := range claimed {
			if err := e.queue.Enqueue(task); err != nil {
				// Queue filled up mid-claim; put the task back.
				if uerr := e.tasks.UpdateStatus(ctx, task.UUID, vo.Scheduled); uerr != nil {
					e.logger.Error("[Executor.dispatch] unclaim failed",
						zap.String("task", task.UUID), zap.Error(uerr))
				}
			}
		}
	}

	for !e.queue.IsEmpty() {
		task, err := e.queue.Dequeue()
		if err != nil {
			break
		}

		if err := e.tasks.UpdateStatus(ctx, task.UUID, vo.Pending); err != nil {
			e.logger.Error("[Executor.dispatch] mark pending failed",
				zap.String("task", task.UUID), zap.Error(err))
			continue
		}

		t := task
		if err := e.pool.Submit(func() { e.execute(ctx, t) }); err != nil {
			if errors.Is(err, ants.ErrPoolOverload) {
				// All workers busy; requeue and try next tick.
				_ = e.tasks.UpdateStatus(ctx, t.UUID, vo.Waiting)
				_ = e.queue.Enqueue(t)
				return
			}
			e.logger.Error("[Executor.dispatch] submit failed",
				zap.String("task", t.UUID), zap.Error(err))
		}
	}
}

func (e *Executor) execute(ctx context.Context, task *aggregate.Task) {
	settings, err := e.settings.Get(ctx, task.Settings.UUID)
	if err != nil {
		e.logger.Error("[Executor.execute] settings lookup failed",
			zap.String("task", task.UUID), zap.Error(err))
		e.finish(ctx, task, vo.Failed, "task settings unavailable: "+err.Error(), -1)
		return
	}

	if err := e.tasks.UpdateStatus(ctx, task.UUID, vo.Running); err != nil {
		e.logger.Error("[Executor.execute] mark running failed",
			zap.String("task", task.UUID), zap.Error(err))
		return
	}

	runCtx := ctx
	var cancel context.CancelFunc
	if settings.TimeLimit > 0 {
		runCtx, cancel = context.WithTimeout(ctx, time.Duration(settings.TimeLimit)*time.Second)
		defer cancel()
	}

	taskLog, exitCode, err := e.runner.Run(runCtx, task, settings)
	switch {
	case err != nil && errors.Is(err, context.DeadlineExceeded):
		e.finish(ctx, task, vo.TimeLimitExceeded, taskLog, exitCode)
	case err != nil && errors.Is(err, runner.ErrMemoryExceeded):
		e.finish(ctx, task, vo.MemoryLimitExceeded, taskLog, exitCode)
	case err != nil:
		if taskLog == "" {
			taskLog = err.Error()
		}
		e.finish(ctx, task, vo.Failed, taskLog, exitCode)
	case exitCode != 0:
		e.finish(ctx, task, vo.Failed, taskLog, exitCode)
	default:
		e.finish(ctx, task, vo.Succeeded, taskLog, exitCode)
	}
}

func (e *Executor) finish(ctx context.Context, task *aggregate.Task, status *vo.Status, taskLog string, exitCode int) {
	if err := e.tasks.Finish(ctx, task.UUID, status, taskLog, exitCode); err != nil {
		e.logger.Error("[Executor.finish] persist failed",
			zap.String("task", task.UUID),
			zap.String("status", status.Label()),
			zap.Error(err))
		return
	}
	e.logger.Info("task finished",
		zap.String("task", task.UUID),
		zap.String("status", status.Label()),
		zap.Int("exitCode", exitCode))
}

// reap kills and removes tasks the API marked Deleting.
func (e *Executor) reap(ctx context.Context) {
	deleting, err := e.tasks.ListByStatus(ctx, vo.Deleting, e.claimLimit)
	if err != nil {
		e.logger.Error("[Executor.reap] list failed", zap.Error(err))
		return
	}

	for _, task := range deleting {
		if err := e.runner.Kill(ctx, task.UUID); err != nil {
			e.logger.Warn("[Executor.reap] kill failed",
				zap.String("task", task.UUID), zap.Error(err))
		}
		if err := e.tasks.Remove(ctx, task.UUID); err != nil {
			e.logger.Error("[Executor.reap] remove failed",
				zap.String("task", task.UUID), zap.Error(err))
		}
	}
}
