package assets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/qmuntal/gltf"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadFile reads a model file completely. Text files are decoded to UTF-8
// with any byte-order mark removed; binary files are returned verbatim.
func ReadFile(ctx context.Context, path string, kind Kind) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if kind == KindText {
		return DecodeText(data)
	}
	return data, nil
}

// DecodeText converts UTF-8 or BOM-marked UTF-16 text to UTF-8 without a BOM.
func DecodeText(data []byte) ([]byte, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return nil, fmt.Errorf("decoding text: %w", err)
	}
	return out, nil
}

// Parse decodes model bytes. baseDir resolves relative buffer URIs; it may be
// empty for self-contained files. Failures are returned as *ParseError.
func Parse(ctx context.Context, data []byte, kind Kind, baseDir string) (*gltf.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var doc gltf.Document
	dec := gltf.NewDecoder(bytes.NewReader(data))
	if baseDir != "" {
		// Relative buffer URIs are read from the model's directory.
		dec = gltf.NewDecoderFS(bytes.NewReader(data), os.DirFS(baseDir))
	}
	if err := dec.Decode(&doc); err != nil {
		return nil, parseError(kind, err)
	}
	return &doc, nil
}
