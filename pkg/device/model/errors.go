package model

import "errors"

var ErrMalformedDescription = errors.New("malformed description")
var ErrGroupNotFound = errors.New("register group not found")
var ErrUnsupportedArchitecture = errors.New("unsupported architecture")
var ErrDuplicateVecfield = errors.New("duplicate vecfield")
var ErrNoRootRegisterGroup = errors.New("no root register group")
var ErrInvalidLayout = errors.New("invalid layout")

// Closed set of failure kinds raised while building a device model
type ErrorKind uint

const (
	ErrorKind_None ErrorKind = iota
	ErrorKind_MalformedDescription
	ErrorKind_GroupNotFound
	ErrorKind_UnsupportedArchitecture
	ErrorKind_DuplicateVecfield
	ErrorKind_NoRootRegisterGroup
	ErrorKind_InvalidLayout
	// Any error not raised by the layout engine (I/O, yaml, ...)
	ErrorKind_Other
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKind_None:
		return "none"
	case ErrorKind_MalformedDescription:
		return "malformed description"
	case ErrorKind_GroupNotFound:
		return "group not found"
	case ErrorKind_UnsupportedArchitecture:
		return "unsupported architecture"
	case ErrorKind_DuplicateVecfield:
		return "duplicate vecfield"
	case ErrorKind_NoRootRegisterGroup:
		return "no root register group"
	case ErrorKind_InvalidLayout:
		return "invalid layout"
	}

	return "other"
}

// Maps an error to its kind
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrorKind_None
	case errors.Is(err, ErrNoRootRegisterGroup):
		return ErrorKind_NoRootRegisterGroup
	case errors.Is(err, ErrGroupNotFound):
		return ErrorKind_GroupNotFound
	case errors.Is(err, ErrUnsupportedArchitecture):
		return ErrorKind_UnsupportedArchitecture
	case errors.Is(err, ErrDuplicateVecfield):
		return ErrorKind_DuplicateVecfield
	case errors.Is(err, ErrInvalidLayout):
		return ErrorKind_InvalidLayout
	case errors.Is(err, ErrMalformedDescription):
		return ErrorKind_MalformedDescription
	}

	return ErrorKind_Other
}
