// Package sim provides simulated devices for exercising a plugin host without
// hardware.
package sim

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bnema/vrkit/internal/pluginkit"
)

const (
	PluginName    = "sim"
	HeartbeatType = "heartbeat"
	ButtonType    = "button"
	heartbeatName = "heartbeat"
	buttonName    = "button"
)

// Heartbeat is a synchronous device that reports an increasing counter on
// every update.
type Heartbeat struct {
	Token *pluginkit.DeviceToken
	msg   *pluginkit.MessageType
	count uint64
}

// NewHeartbeat registers the heartbeat device and its update callback.
func NewHeartbeat(reg *pluginkit.RegistrationContext) (*Heartbeat, error) {
	msg, err := reg.RegisterMessageType(HeartbeatType)
	if err != nil {
		return nil, err
	}
	tok, err := pluginkit.NewSyncDevice(reg, heartbeatName)
	if err != nil {
		return nil, err
	}
	hb := &Heartbeat{Token: tok, msg: msg}
	if err := tok.RegisterUpdateCallback(hb.update); err != nil {
		return nil, err
	}
	return hb, nil
}

func (hb *Heartbeat) update() error {
	hb.count++
	return hb.Token.SendData(hb.msg, []byte(strconv.FormatUint(hb.count, 10)))
}

// Button is an asynchronous device that toggles between pressed and released
// every period.
type Button struct {
	Token  *pluginkit.DeviceToken
	msg    *pluginkit.MessageType
	period time.Duration
	down   bool
}

// NewButton registers the button device and starts its wait loop.
func NewButton(reg *pluginkit.RegistrationContext, period time.Duration) (*Button, error) {
	if period <= 0 {
		return nil, fmt.Errorf("button period must be positive, got %s", period)
	}
	msg, err := reg.RegisterMessageType(ButtonType)
	if err != nil {
		return nil, err
	}
	tok, err := pluginkit.NewAsyncDevice(reg, buttonName)
	if err != nil {
		return nil, err
	}
	b := &Button{Token: tok, msg: msg, period: period}
	if err := tok.StartWaitLoop(b.wait); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Button) wait(ctx context.Context) error {
	timer := time.NewTimer(b.period)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}
	b.down = !b.down
	state := "released"
	if b.down {
		state = "pressed"
	}
	return b.Token.SendData(b.msg, []byte(state))
}

// Register adds the simulated plugin to host: always the heartbeat, and the
// button when async is set.
func Register(host *pluginkit.Host, async bool, buttonPeriod time.Duration) error {
	reg, err := host.NewRegistrationContext(PluginName)
	if err != nil {
		return err
	}
	if _, err := NewHeartbeat(reg); err != nil {
		return fmt.Errorf("heartbeat: %w", err)
	}
	if async {
		if _, err := NewButton(reg, buttonPeriod); err != nil {
			return fmt.Errorf("button: %w", err)
		}
	}
	return nil
}
