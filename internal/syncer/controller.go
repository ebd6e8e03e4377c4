package syncer

import (
	"context"
	"errors"
	"sync"

	"taskpad/internal/apiclient"
	"taskpad/internal/model"
	"taskpad/internal/task"
)

type Mode string

const (
	ModeRemote Mode = "remote"
	ModeLocal  Mode = "local"
)

// Remote is the slice of the task API the controller needs. Implemented
// by *apiclient.Client; tests swap in fakes.
type Remote interface {
	List(ctx context.Context) ([]model.Task, error)
	Create(ctx context.Context, description string) (model.Task, error)
	Update(ctx context.Context, id model.TaskID, p task.Patch) (model.Task, error)
	Delete(ctx context.Context, id model.TaskID) error
}

// Controller presents one logical task collection to the UI. Every
// mutation is routed by mode: local mode hits the mirror directly,
// remote mode calls the server and merges the result back in. A remote
// transport failure re-runs the operation against the mirror so the
// user's action is never silently dropped; the mode itself is left
// alone.
//
// The generation counter guards against stale responses: it is bumped
// on every mode switch, and a remote response whose dispatch generation
// no longer matches is not merged.
type Controller struct {
	mu      sync.Mutex
	mode    Mode
	gen     uint64
	mirror  *Mirror
	remote  Remote
	lastErr string
}

func NewController(remote Remote) *Controller {
	return &Controller{
		mode:   ModeRemote,
		mirror: NewMirror(),
		remote: remote,
	}
}

// Tasks returns a copy of the displayed collection.
func (c *Controller) Tasks() []model.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mirror.List()
}

func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Controller) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = ""
}

// SetMode switches routing. Entering remote mode refreshes the
// collection wholesale from the server; leaving it freezes the current
// contents, which subsequent local mutations build on.
func (c *Controller) SetMode(ctx context.Context, mode Mode) {
	c.mu.Lock()
	if mode == c.mode {
		c.mu.Unlock()
		return
	}
	c.gen++
	c.mode = mode
	c.mu.Unlock()

	if mode == ModeRemote {
		c.Refresh(ctx)
	}
}

// Refresh replaces the displayed collection with the full remote one.
// No-op in local mode. On transport failure the current collection is
// kept and lastErr explains why.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	if c.mode != ModeRemote {
		c.mu.Unlock()
		return
	}
	gen := c.gen
	c.mu.Unlock()

	ts, err := c.remote.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return
	}
	if err != nil {
		c.lastErr = "could not fetch tasks from server, showing local copy: " + err.Error()
		return
	}
	c.mirror.ReplaceAll(ts)
	c.lastErr = ""
}

func (c *Controller) Create(ctx context.Context, description string) (model.Task, error) {
	c.mu.Lock()
	if c.mode == ModeLocal {
		defer c.mu.Unlock()
		return c.mirror.Create(description)
	}
	gen := c.gen
	c.mu.Unlock()

	t, err := c.remote.Create(ctx, description)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		// Mode changed while the call was in flight. The response no
		// longer speaks for the displayed collection; apply the
		// operation locally instead.
		return c.mirror.Create(description)
	}
	if isTransport(err) {
		c.lastErr = "server unreachable, task created locally: " + err.Error()
		return c.mirror.Create(description)
	}
	if err != nil {
		return model.Task{}, err
	}
	c.mirror.Put(t)
	c.lastErr = ""
	return t, nil
}

func (c *Controller) Update(ctx context.Context, id model.TaskID, p task.Patch) (model.Task, error) {
	c.mu.Lock()
	if c.mode == ModeLocal {
		defer c.mu.Unlock()
		return c.mirror.Update(id, p)
	}
	gen := c.gen
	c.mu.Unlock()

	t, err := c.remote.Update(ctx, id, p)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return c.mirror.Update(id, p)
	}
	if isTransport(err) {
		c.lastErr = "server unreachable, task updated locally: " + err.Error()
		return c.mirror.Update(id, p)
	}
	if err != nil {
		return model.Task{}, err
	}
	c.mirror.Put(t)
	c.lastErr = ""
	return t, nil
}

func (c *Controller) Delete(ctx context.Context, id model.TaskID) error {
	c.mu.Lock()
	if c.mode == ModeLocal {
		defer c.mu.Unlock()
		return c.mirror.Delete(id)
	}
	gen := c.gen
	c.mu.Unlock()

	err := c.remote.Delete(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return c.mirror.Delete(id)
	}
	if isTransport(err) {
		c.lastErr = "server unreachable, task deleted locally: " + err.Error()
		return c.mirror.Delete(id)
	}
	if err != nil {
		return err
	}
	c.mirror.Remove(id)
	c.lastErr = ""
	return nil
}

func isTransport(err error) bool {
	var terr *apiclient.TransportError
	return errors.As(err, &terr)
}
