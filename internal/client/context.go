package client

import (
	"fmt"
	"sync"

	"github.com/bnema/vrkit/internal/geom"
	"github.com/bnema/vrkit/internal/logger"
)

// ClientContext is what the display configuration needs from a client
// session: string parameters and the latest pose per path.
type ClientContext interface {
	GetStringParameter(path string) (string, error)
	Pose(path string) (geom.Pose, bool)
}

// Context is an in-process client session. Pose updates and reads are
// serialized by its lock.
type Context struct {
	appID string

	mu      sync.RWMutex
	params  map[string]string
	poses   map[string]geom.Pose
	objects []any
}

// NewContext creates an empty client context.
func NewContext(appID string) *Context {
	return &Context{
		appID:  appID,
		params: make(map[string]string),
		poses:  make(map[string]geom.Pose),
	}
}

// AppID returns the application identifier the context was created with.
func (c *Context) AppID() string {
	return c.appID
}

// SetStringParameter stores value under path, replacing any previous value.
func (c *Context) SetStringParameter(path, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.params[path] = value
}

// GetStringParameter returns the value stored under path.
func (c *Context) GetStringParameter(path string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.params[path]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrParameterMissing, path)
	}
	return v, nil
}

// SetPose records the latest pose reported for path.
func (c *Context) SetPose(path string, p geom.Pose) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.poses[path] = p
}

// ClearPose forgets the pose for path.
func (c *Context) ClearPose(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.poses, path)
}

// Pose returns the latest pose for path, if any has been reported.
func (c *Context) Pose(path string) (geom.Pose, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.poses[path]
	return p, ok
}

// AcquireObject hands ownership of obj to the context until ReleaseObject.
// obj must be comparable, typically a pointer.
func (c *Context) AcquireObject(obj any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.objects = append(c.objects, obj)
}

// ReleaseObject drops obj. It reports false if the context did not own it.
func (c *Context) ReleaseObject(obj any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, o := range c.objects {
		if o == obj {
			c.objects = append(c.objects[:i], c.objects[i+1:]...)
			return true
		}
	}
	logger.Debugf("ReleaseObject: %T not owned by context %s", obj, c.appID)
	return false
}

// Objects returns how many objects the context currently owns.
func (c *Context) Objects() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.objects)
}
