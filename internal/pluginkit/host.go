package pluginkit

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bnema/vrkit/internal/logger"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Host owns the plugins and devices and routes their messages.
type Host struct {
	mu sync.Mutex
	// dispatch serializes handler calls between Update and Stop.
	dispatch sync.Mutex

	handler Handler
	plugins map[string]*RegistrationContext
	types   map[string]*MessageType
	devices []*DeviceToken
	pending []Message
	stopped bool

	loops      errgroup.Group
	loopCtx    context.Context
	stopLoops  context.CancelFunc
	log        *log.Logger
	deliveries uint64
}

// NewHost creates a host that hands every message to handler. A nil handler
// drops messages.
func NewHost(handler Handler) *Host {
	if handler == nil {
		handler = func(Message) {}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Host{
		handler:   handler,
		plugins:   make(map[string]*RegistrationContext),
		types:     make(map[string]*MessageType),
		loopCtx:   ctx,
		stopLoops: cancel,
		log:       logger.With("pluginkit"),
	}
}

// RegistrationContext is what a plugin's entry point receives.
type RegistrationContext struct {
	host    *Host
	name    string
	devices map[string]*DeviceToken
}

// NewRegistrationContext opens the registration context of a plugin.
func (h *Host) NewRegistrationContext(plugin string) (*RegistrationContext, error) {
	if err := validateDeviceName(plugin); err != nil {
		return nil, fmt.Errorf("plugin: %w", err)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.plugins[plugin]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicatePlugin, plugin)
	}
	reg := &RegistrationContext{host: h, name: plugin, devices: make(map[string]*DeviceToken)}
	h.plugins[plugin] = reg
	h.log.Debug("Registered plugin", "plugin", plugin)
	return reg, nil
}

// Name returns the plugin name.
func (r *RegistrationContext) Name() string {
	return r.name
}

// RegisterMessageType registers a message type by name, or returns the one
// already registered under that name.
func (r *RegistrationContext) RegisterMessageType(name string) (*MessageType, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	h := r.host
	h.mu.Lock()
	defer h.mu.Unlock()
	if t, ok := h.types[name]; ok {
		return t, nil
	}
	t := &MessageType{id: len(h.types), name: name, host: h}
	h.types[name] = t
	h.log.Debug("Registered message type", "type", t, "plugin", r.name)
	return t, nil
}

func (r *RegistrationContext) addDevice(name string, kind DeviceKind) (*DeviceToken, error) {
	if err := validateDeviceName(name); err != nil {
		return nil, err
	}
	h := r.host
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := r.devices[name]; ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrDuplicateDevice, r.name, name)
	}
	d := &DeviceToken{host: h, plugin: r.name, name: name, kind: kind}
	r.devices[name] = d
	h.devices = append(h.devices, d)
	h.log.Info("Registered device", "device", d.Name(), "kind", kind)
	return d, nil
}

// Devices returns the full names of all registered devices, sorted.
func (h *Host) Devices() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	names := make([]string, len(h.devices))
	for i, d := range h.devices {
		names[i] = d.Name()
	}
	sort.Strings(names)
	return names
}

// Delivered returns how many messages reached the handler.
func (h *Host) Delivered() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.deliveries
}

func (h *Host) deliver(msg Message) {
	h.handler(msg)
	h.mu.Lock()
	h.deliveries++
	h.mu.Unlock()
}

// Update runs one pass of the device system: every synchronous device's
// update callback, then the messages queued by asynchronous devices. Callback
// errors are collected; one failing device does not skip the others.
// The handler must not call Update.
func (h *Host) Update() error {
	h.dispatch.Lock()
	defer h.dispatch.Unlock()

	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return ErrHostStopped
	}
	var updates []*DeviceToken
	for _, d := range h.devices {
		if d.kind == Sync && d.update != nil {
			updates = append(updates, d)
		}
	}
	h.mu.Unlock()

	var errs []error
	for _, d := range updates {
		d.inUpdate.Store(true)
		err := d.update()
		d.inUpdate.Store(false)
		if err != nil {
			errs = append(errs, fmt.Errorf("device %s: %w", d.Name(), err))
		}
	}

	h.mu.Lock()
	queued := h.pending
	h.pending = nil
	h.mu.Unlock()
	for _, msg := range queued {
		h.deliver(msg)
	}

	return errors.Join(errs...)
}

// Run calls Update rate times per second until ctx is done, then stops the
// host. Update errors are logged, not fatal.
func (h *Host) Run(ctx context.Context, rate int) error {
	if rate <= 0 {
		return fmt.Errorf("update rate must be positive, got %d", rate)
	}
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	h.log.Info("Host running", "rate_hz", rate, "devices", len(h.Devices()))
	for {
		select {
		case <-ctx.Done():
			return h.Stop()
		case <-ticker.C:
			if err := h.Update(); err != nil {
				if errors.Is(err, ErrHostStopped) {
					return nil
				}
				h.log.Warn("Update failed", "err", err)
			}
		}
	}
}

// Stop cancels every wait loop, waits for them, and delivers whatever they
// queued. It returns the first wait-loop error, if any.
func (h *Host) Stop() error {
	// Cancel first so loops that race with the stop see a done context.
	h.stopLoops()

	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return nil
	}
	h.stopped = true
	h.mu.Unlock()

	err := h.loops.Wait()

	// Wait out an Update still delivering on another goroutine.
	h.dispatch.Lock()
	h.mu.Lock()
	queued := h.pending
	h.pending = nil
	h.mu.Unlock()
	for _, msg := range queued {
		h.deliver(msg)
	}
	h.dispatch.Unlock()

	h.log.Info("Host stopped", "delivered", h.Delivered())
	return err
}
