package runner

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cloudscheduler/console/internal/task/domain/aggregate"
	"github.com/cloudscheduler/console/pkg/log"
)

// ErrMemoryExceeded reports that the container hit its memory limit and
// was OOM-killed.
var ErrMemoryExceeded = errors.New("[runner] task exceeded memory limit")

// TaskRunner executes one task to completion inside a container.
type TaskRunner interface {
	// Run blocks until the task finishes, the context expires, or the
	// container fails. It returns the captured log and the exit code.
	Run(ctx context.Context, task *aggregate.Task, settings *aggregate.Settings) (taskLog string, exitCode int, err error)
	// Logs reads the live output of a running task.
	Logs(ctx context.Context, taskUUID string) (string, error)
	// Kill terminates a running task's container, if any.
	Kill(ctx context.Context, taskUUID string) error
}

type dockerRunner struct {
	cli                *client.Client
	pool               *ContainerPool
	logger             *log.Logger
	defaultMemoryLimit int64
}

func NewTaskRunner(conf *viper.Viper, logger *log.Logger, cli *client.Client, pool *ContainerPool) TaskRunner {
	limit, err := parseMemoryLimit(conf.GetString("app.container.default_memory_limit"))
	if err != nil {
		limit = 128 << 20
	}
	return &dockerRunner{
		cli:                cli,
		pool:               pool,
		logger:             logger,
		defaultMemoryLimit: limit,
	}
}

func (r *dockerRunner) Run(ctx context.Context, task *aggregate.Task, settings *aggregate.Settings) (string, int, error) {
	img := settings.Container.Image
	if img == "" {
		return "", -1, fmt.Errorf("[runner.Run] settings %s has no image", settings.UUID)
	}

	if err := r.pool.ReserveWait(ctx, img); err != nil {
		return "", -1, err
	}
	defer r.pool.Release(task.UUID, img)

	if err := r.pool.EnsureImage(ctx, img); err != nil {
		return "", -1, err
	}

	memLimit := r.defaultMemoryLimit
	if settings.Container.MemoryLimit != "" {
		parsed, err := parseMemoryLimit(settings.Container.MemoryLimit)
		if err != nil {
			return "", -1, fmt.Errorf("[runner.Run] bad memory limit %q: %w", settings.Container.MemoryLimit, err)
		}
		memLimit = parsed
	}

	shell := settings.Container.Shell
	if shell == "" {
		shell = "/bin/sh"
	}

	config := &container.Config{
		Image:      img,
		Cmd:        []string{shell, "-c", strings.Join(settings.Container.Commands, " && ")},
		WorkingDir: settings.Container.WorkingPath,
		Labels:     map[string]string{"task": task.UUID},
		Env:        []string{"CLOUD_SCHEDULER_USER=" + task.User},
	}
	hostConfig := &container.HostConfig{
		Resources: container.Resources{Memory: memLimit},
	}

	created, err := r.cli.ContainerCreate(ctx, config, hostConfig, nil, nil, "task-"+task.UUID)
	if err != nil {
		return "", -1, fmt.Errorf("[runner.Run] create container: %w", err)
	}
	r.pool.Register(task.UUID, img, created.ID)
	defer func() {
		if err := removeContainer(context.Background(), r.cli, created.ID); err != nil {
			r.logger.Error("[runner.Run] remove container failed",
				zap.String("containerId", created.ID), zap.Error(err))
		}
	}()

	if err := r.cli.ContainerStart(ctx, created.ID, container.StartOptions{}); err != nil {
		return "", -1, fmt.Errorf("[runner.Run] start container: %w", err)
	}

	waitCh, errCh := r.cli.ContainerWait(ctx, created.ID, container.WaitConditionNotRunning)

	var exitCode int
	select {
	case <-ctx.Done():
		// Time limit hit; the deferred remove cleans the container up.
		killCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = r.cli.ContainerKill(killCtx, created.ID, "KILL")
		taskLog, _ := r.containerLogs(killCtx, created.ID)
		return taskLog, -1, ctx.Err()
	case err := <-errCh:
		return "", -1, fmt.Errorf("[runner.Run] wait container: %w", err)
	case status := <-waitCh:
		exitCode = int(status.StatusCode)
	}

	taskLog, err := r.containerLogs(ctx, created.ID)
	if err != nil {
		r.logger.Warn("[runner.Run] log capture failed",
			zap.String("task", task.UUID), zap.Error(err))
	}

	inspected, err := r.cli.ContainerInspect(ctx, created.ID)
	if err == nil && inspected.State != nil && inspected.State.OOMKilled {
		return taskLog, exitCode, ErrMemoryExceeded
	}

	return taskLog, exitCode, nil
}

func (r *dockerRunner) Logs(ctx context.Context, taskUUID string) (string, error) {
	id, ok := r.pool.Lookup(taskUUID)
	if !ok {
		return "", fmt.Errorf("[runner.Logs] no running container for task %s", taskUUID)
	}
	return r.containerLogs(ctx, id)
}

func (r *dockerRunner) Kill(ctx context.Context, taskUUID string) error {
	id, ok := r.pool.Lookup(taskUUID)
	if !ok {
		return nil
	}
	if err := r.cli.ContainerKill(ctx, id, "KILL"); err != nil {
		return fmt.Errorf("[runner.Kill] kill container %s: %w", id, err)
	}
	return nil
}

func (r *dockerRunner) containerLogs(ctx context.Context, containerID string) (string, error) {
	reader, err := r.cli.ContainerLogs(ctx, containerID, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
	})
	if err != nil {
		return "", err
	}
	defer reader.Close()

	var outBuf, errBuf strings.Builder
	if _, err := stdcopy.StdCopy(&outBuf, &errBuf, reader); err != nil {
		return "", err
	}

	if errBuf.Len() > 0 {
		return outBuf.String() + "\n" + errBuf.String(), nil
	}
	return outBuf.String(), nil
}

func removeContainer(ctx context.Context, cli *client.Client, containerID string) error {
	return cli.ContainerRemove(ctx, containerID, container.RemoveOptions{Force: true})
}

// parseMemoryLimit converts values like "128M", "1G" or "524288" to bytes.
func parseMemoryLimit(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty memory limit")
	}

	mult := int64(1)
	switch s[len(s)-1] {
	case 'k', 'K':
		mult = 1 << 10
		s = s[:len(s)-1]
	case 'm', 'M':
		mult = 1 << 20
		s = s[:len(s)-1]
	case 'g', 'G':
		mult = 1 << 30
		s = s[:len(s)-1]
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return n * mult, nil
}
