package pluginkit

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"
)

// DeviceKind tells how a device is driven.
type DeviceKind int

const (
	Sync DeviceKind = iota
	Async
)

func (k DeviceKind) String() string {
	if k == Async {
		return "async"
	}
	return "sync"
}

// UpdateCallback is a synchronous device's update method. It must return
// quickly since it adds to the latency of every update.
type UpdateCallback func() error

// WaitCallback is an asynchronous device's sampling method. It may block;
// ctx is cancelled when the host stops.
type WaitCallback func(ctx context.Context) error

// DeviceToken is the handle a plugin holds for each of its devices.
type DeviceToken struct {
	host   *Host
	plugin string
	name   string
	kind   DeviceKind

	update   UpdateCallback
	started  bool
	inUpdate atomic.Bool
}

// NewSyncDevice allocates a synchronous device. It does not start reporting.
func NewSyncDevice(reg *RegistrationContext, name string) (*DeviceToken, error) {
	return reg.addDevice(name, Sync)
}

// NewAsyncDevice allocates an asynchronous device. It does not start
// reporting.
func NewAsyncDevice(reg *RegistrationContext, name string) (*DeviceToken, error) {
	return reg.addDevice(name, Async)
}

func validateDeviceName(name string) error {
	switch {
	case name == "":
		return ErrEmptyName
	case name == "." || name == "..", url.PathEscape(name) != name:
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Name returns the full device path, plugin/device.
func (d *DeviceToken) Name() string {
	return d.plugin + "/" + d.name
}

// Kind returns whether the device is synchronous or asynchronous.
func (d *DeviceToken) Kind() DeviceKind {
	return d.kind
}

// RegisterUpdateCallback sets the update method of a synchronous device. It
// may run as soon as the next Update.
func (d *DeviceToken) RegisterUpdateCallback(fn UpdateCallback) error {
	if d.kind != Sync {
		return fmt.Errorf("%w: %s is %s", ErrWrongDeviceKind, d.Name(), d.kind)
	}
	d.host.mu.Lock()
	defer d.host.mu.Unlock()
	if d.update != nil {
		return fmt.Errorf("%w: %s", ErrCallbackSet, d.Name())
	}
	d.update = fn
	return nil
}

// StartWaitLoop calls fn repeatedly on its own goroutine until the host stops
// or fn returns an error.
func (d *DeviceToken) StartWaitLoop(fn WaitCallback) error {
	if d.kind != Async {
		return fmt.Errorf("%w: %s is %s", ErrWrongDeviceKind, d.Name(), d.kind)
	}
	h := d.host
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return ErrHostStopped
	}
	if d.started {
		return fmt.Errorf("%w: %s", ErrCallbackSet, d.Name())
	}
	d.started = true

	ctx := h.loopCtx
	h.loops.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			if err := fn(ctx); err != nil {
				if ctx.Err() != nil || errors.Is(err, ErrHostStopped) {
					return nil
				}
				h.log.Error("Wait loop stopped", "device", d.Name(), "err", err)
				return fmt.Errorf("device %s: %w", d.Name(), err)
			}
		}
	})
	h.log.Debug("Started wait loop", "device", d.Name())
	return nil
}

// SendData reports a message. The payload is copied.
func (d *DeviceToken) SendData(t *MessageType, payload []byte) error {
	if t == nil || t.host != d.host {
		return ErrUnknownType
	}
	msg := Message{
		Device:  d.Name(),
		Type:    t,
		Payload: append([]byte(nil), payload...),
		Time:    time.Now(),
	}

	if d.kind == Sync {
		if !d.inUpdate.Load() {
			return fmt.Errorf("%w: %s", ErrSendOutsideUpdate, d.Name())
		}
		// Inside Update, which holds the dispatch lock.
		d.host.deliver(msg)
		return nil
	}

	h := d.host
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return ErrHostStopped
	}
	h.pending = append(h.pending, msg)
	return nil
}
