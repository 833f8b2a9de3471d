package catalog

import (
	"errors"
	"fmt"
)

type ErrKind int

const (
	KindNetwork ErrKind = iota + 1
	KindDecode
	KindNotFound
)

func (k ErrKind) String() string {
	switch k {
	case KindNetwork:
		return "network failure"
	case KindDecode:
		return "decode failure"
	case KindNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// FetchError is the only error type catalog operations return.
type FetchError struct {
	Kind ErrKind
	Op   string
	Err  error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("catalog: %s: %s", e.Op, e.Kind)
}

func (e *FetchError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool  { return kindOf(err) == KindNotFound }
func IsDecodeErr(err error) bool { return kindOf(err) == KindDecode }

func kindOf(err error) ErrKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}
