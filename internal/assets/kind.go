package assets

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Kind is the container format of a model file.
type Kind uint8

const (
	KindBinary Kind = iota + 1 // .glb
	KindText                   // .gltf
)

// String returns the label used in user-facing messages.
func (k Kind) String() string {
	switch k {
	case KindBinary:
		return "GLB"
	case KindText:
		return "GLTF"
	}
	return "unknown"
}

var (
	// ErrUnsupportedExtension is returned for files that are neither .glb nor .gltf.
	ErrUnsupportedExtension = errors.New("unsupported file extension")
	// ErrParseFailure is returned when the glTF decoder rejects the file.
	ErrParseFailure = errors.New("parse failure")
)

// UnsupportedMessage is shown when a dropped file is rejected.
const UnsupportedMessage = "Please drop a .glb or .gltf file"

// ParseError carries the decoder message for a failed load.
type ParseError struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Failed to load %s: %s", e.Kind, e.Msg)
}

// Is makes errors.Is(err, ErrParseFailure) hold for every ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParseFailure
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseError(kind Kind, err error) error {
	return &ParseError{Kind: kind, Msg: err.Error(), Err: err}
}

// DetectKind classifies a file by the lower-cased text after its last dot.
func DetectKind(filename string) (Kind, error) {
	base := filepath.Base(filename)
	ext := strings.ToLower(base[strings.LastIndex(base, ".")+1:])
	switch ext {
	case "glb":
		return KindBinary, nil
	case "gltf":
		return KindText, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedExtension, base)
}

// UserMessage returns the alert text for a load error.
func UserMessage(err error) string {
	var pe *ParseError
	switch {
	case errors.Is(err, ErrUnsupportedExtension):
		return UnsupportedMessage
	case errors.As(err, &pe):
		return pe.Error()
	}
	return err.Error()
}
