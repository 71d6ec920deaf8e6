package pluginkit

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrEmptyName         = errors.New("name must not be empty")
	ErrInvalidName       = errors.New("name must be a single URL path element")
	ErrDuplicateDevice   = errors.New("device already registered")
	ErrDuplicatePlugin   = errors.New("plugin already registered")
	ErrWrongDeviceKind   = errors.New("operation not supported by this device kind")
	ErrCallbackSet       = errors.New("callback already registered")
	ErrSendOutsideUpdate = errors.New("synchronous device sent data outside its update callback")
	ErrUnknownType       = errors.New("message type not registered with this host")
	ErrHostStopped       = errors.New("host stopped")
)

// MessageType identifies a kind of message. Types are unique per host by
// name.
type MessageType struct {
	id   int
	name string
	host *Host
}

// Name returns the name the type was registered under.
func (t *MessageType) Name() string {
	return t.name
}

// ID returns the host-local numeric identifier of the type.
func (t *MessageType) ID() int {
	return t.id
}

func (t *MessageType) String() string {
	return fmt.Sprintf("%s#%d", t.name, t.id)
}

// Message is one report delivered to the host's handler.
type Message struct {
	Device  string // plugin/device
	Type    *MessageType
	Payload []byte
	Time    time.Time
}

// Handler receives every delivered message.
type Handler func(Message)
