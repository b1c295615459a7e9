package runner

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cloudscheduler/console/pkg/log"
	"github.com/cloudscheduler/console/pkg/quene"
)

func NewClient() *client.Client {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		panic(err)
	}
	return cli
}

// ContainerPool bounds how many task containers may run per image and
// tracks the live container of every running task so logs can be read
// and deletions can kill the right container.
type ContainerPool struct {
	logger      *log.Logger
	cli         *client.Client
	mutex       sync.Mutex
	slots       map[string]*quene.RingQueue[struct{}] // free run slots per image
	byTask      map[string]string                     // task uuid -> container id
	pulled      map[string]bool
	maxPerImage int
}

func NewContainerPool(conf *viper.Viper, logger *log.Logger, cli *client.Client) (*ContainerPool, func(), error) {
	maxPerImage := conf.GetInt("app.container.max_per_image")
	if maxPerImage <= 0 {
		maxPerImage = 4
	}

	pool := &ContainerPool{
		logger:      logger,
		cli:         cli,
		slots:       make(map[string]*quene.RingQueue[struct{}]),
		byTask:      make(map[string]string),
		pulled:      make(map[string]bool),
		maxPerImage: maxPerImage,
	}

	pool.logger.Info("creating container pool", zap.Int("maxPerImage", maxPerImage))

	return pool, func() {
		pool.Close()
	}, nil
}

// Reserve takes a run slot for image, returning ErrQueueEmpty when the
// image is at capacity.
func (p *ContainerPool) Reserve(img string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	q, exists := p.slots[img]
	if !exists {
		q = quene.NewRingQueue[struct{}](p.maxPerImage)
		for i := 0; i < p.maxPerImage; i++ {
			_ = q.Enqueue(struct{}{})
		}
		p.slots[img] = q
	}

	_, err := q.Dequeue()
	return err
}

// ReserveWait retries Reserve until a slot frees up or ctx expires.
func (p *ContainerPool) ReserveWait(ctx context.Context, img string) error {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		if err := p.Reserve(img); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Register binds a started container to its task.
func (p *ContainerPool) Register(taskUUID, img, containerID string) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.byTask[taskUUID] = containerID

	p.logger.Debug("registered task container",
		zap.String("task", taskUUID),
		zap.String("containerId", containerID),
		zap.String("image", img))
}

// Release frees the task's slot and forgets its container.
func (p *ContainerPool) Release(taskUUID, img string) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	delete(p.byTask, taskUUID)
	if q, exists := p.slots[img]; exists {
		_ = q.Enqueue(struct{}{})
	}
}

// Lookup returns the container currently running the task.
func (p *ContainerPool) Lookup(taskUUID string) (string, bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	id, ok := p.byTask[taskUUID]
	return id, ok
}

// EnsureImage pulls the image unless a matching tag is already present.
func (p *ContainerPool) EnsureImage(ctx context.Context, img string) error {
	p.mutex.Lock()
	if p.pulled[img] {
		p.mutex.Unlock()
		return nil
	}
	p.mutex.Unlock()

	exists := false
	images, err := p.cli.ImageList(ctx, image.ListOptions{All: true})
	if err == nil {
		for _, summary := range images {
			for _, tag := range summary.RepoTags {
				if tag == img || tag == img+":latest" {
					exists = true
					break
				}
			}
			if exists {
				break
			}
		}
	}

	if !exists {
		p.logger.Info("pulling image", zap.String("image", img))
		reader, err := p.cli.ImagePull(ctx, img, image.PullOptions{})
		if err != nil {
			return fmt.Errorf("[ContainerPool.EnsureImage] pull %s: %w", img, err)
		}
		defer reader.Close()
		if _, err := io.Copy(io.Discard, reader); err != nil {
			return fmt.Errorf("[ContainerPool.EnsureImage] pull %s: %w", img, err)
		}
	}

	p.mutex.Lock()
	p.pulled[img] = true
	p.mutex.Unlock()
	return nil
}

// Close force-removes any container still registered.
func (p *ContainerPool) Close() {
	p.mutex.Lock()
	remaining := make(map[string]string, len(p.byTask))
	for task, id := range p.byTask {
		remaining[task] = id
	}
	p.mutex.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for task, id := range remaining {
		p.logger.Warn("removing leftover task container",
			zap.String("task", task), zap.String("containerId", id))
		if err := removeContainer(ctx, p.cli, id); err != nil {
			p.logger.Error("failed to remove container",
				zap.String("containerId", id), zap.Error(err))
		}
	}
}
