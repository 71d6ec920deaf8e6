package client

import (
	"errors"

	"github.com/bnema/vrkit/internal/descriptor"
)

// Sentinel errors. Wrapped errors keep their kind through errors.Is.
var (
	ErrParameterMissing        = errors.New("parameter missing")
	ErrUnrecognizedDisplayMode = errors.New("unrecognized display mode")
	ErrIndexOutOfRange         = errors.New("index out of range")
	ErrNoPoseYet               = errors.New("no pose yet")
	ErrInvalidDescriptor       = descriptor.ErrInvalidDescriptor
)

// ErrorKind classifies errors returned by this package.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindParameterMissing
	KindUnrecognizedDisplayMode
	KindIndexOutOfRange
	KindNoPoseYet
	KindInvalidDescriptor
	KindOther
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindParameterMissing:
		return "parameter missing"
	case KindUnrecognizedDisplayMode:
		return "unrecognized display mode"
	case KindIndexOutOfRange:
		return "index out of range"
	case KindNoPoseYet:
		return "no pose yet"
	case KindInvalidDescriptor:
		return "invalid descriptor"
	default:
		return "other"
	}
}

var kinds = []struct {
	err  error
	kind ErrorKind
}{
	{ErrParameterMissing, KindParameterMissing},
	{ErrUnrecognizedDisplayMode, KindUnrecognizedDisplayMode},
	{ErrIndexOutOfRange, KindIndexOutOfRange},
	{ErrNoPoseYet, KindNoPoseYet},
	{ErrInvalidDescriptor, KindInvalidDescriptor},
}

// KindOf classifies err. nil is KindNone; anything unrecognized is KindOther.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindOther
}
