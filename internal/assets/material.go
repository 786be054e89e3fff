package assets

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"go.uber.org/zap"

	"github.com/Faultbox/gltf-viewer/internal/engine/scene"
)

const extTextureWebP = "EXT_texture_webp"

// material returns the shared scene material for a glTF material index.
// Primitives without a material share one default material per asset.
func (im *importer) material(idx *int) (*scene.Material, error) {
	if idx == nil {
		if im.fallback == nil {
			im.fallback = scene.DefaultMaterial()
		}
		return im.fallback, nil
	}
	if m, ok := im.materials[*idx]; ok {
		return m, nil
	}
	if *idx < 0 || *idx >= len(im.doc.Materials) {
		return nil, fmt.Errorf("material %d out of range", *idx)
	}
	gm := im.doc.Materials[*idx]

	m := scene.DefaultMaterial()
	m.Name = gm.Name
	m.DoubleSided = gm.DoubleSided
	switch gm.AlphaMode {
	case gltf.AlphaMask:
		m.AlphaMode = scene.AlphaMask
	case gltf.AlphaBlend:
		m.AlphaMode = scene.AlphaBlend
	}
	if gm.AlphaCutoff != nil {
		m.AlphaCutoff = float32(*gm.AlphaCutoff)
	}

	if pbr := gm.PBRMetallicRoughness; pbr != nil {
		if pbr.BaseColorFactor != nil {
			f := *pbr.BaseColorFactor
			m.BaseColor = [4]float32{float32(f[0]), float32(f[1]), float32(f[2]), float32(f[3])}
		}
		if pbr.BaseColorTexture != nil {
			tex, err := im.texture(pbr.BaseColorTexture.Index)
			if err != nil {
				// A missing image should not fail the whole model.
				im.log.Warn("base color texture unavailable", zap.String("material", gm.Name), zap.Error(err))
			}
			m.BaseTexture = tex
		}
	}

	im.materials[*idx] = m
	return m, nil
}

// texture resolves a glTF texture to its shared image-backed scene texture.
func (im *importer) texture(idx int) (*scene.Texture, error) {
	if idx < 0 || idx >= len(im.doc.Textures) {
		return nil, fmt.Errorf("texture %d out of range", idx)
	}
	gt := im.doc.Textures[idx]

	source := -1
	if gt.Source != nil {
		source = *gt.Source
	}
	if s, ok := webpSource(gt.Extensions[extTextureWebP]); ok {
		source = s
	}
	if source < 0 || source >= len(im.doc.Images) {
		return nil, fmt.Errorf("texture %d has no usable image", idx)
	}

	if t, ok := im.textures[source]; ok {
		return t, nil
	}
	data, mimeType, err := im.imageData(source)
	if err != nil {
		return nil, fmt.Errorf("image %d: %w", source, err)
	}
	t := &scene.Texture{
		Key:      fmt.Sprintf("%s#image%d", im.asset.ID, source),
		MimeType: mimeType,
		Data:     data,
	}
	im.textures[source] = t
	return t, nil
}

// webpSource reads {"source": N} from an EXT_texture_webp payload.
func webpSource(ext any) (int, bool) {
	var payload struct {
		Source *int `json:"source"`
	}
	switch v := ext.(type) {
	case nil:
		return 0, false
	case json.RawMessage:
		if json.Unmarshal(v, &payload) != nil {
			return 0, false
		}
	case map[string]any:
		f, ok := v["source"].(float64)
		if !ok {
			return 0, false
		}
		return int(f), true
	default:
		return 0, false
	}
	if payload.Source == nil {
		return 0, false
	}
	return *payload.Source, true
}

// imageData returns the encoded bytes of an image from a buffer view, a data
// URI or a file next to the model.
func (im *importer) imageData(idx int) ([]byte, string, error) {
	img := im.doc.Images[idx]

	if img.BufferView != nil {
		bvIdx := *img.BufferView
		if bvIdx < 0 || bvIdx >= len(im.doc.BufferViews) {
			return nil, "", fmt.Errorf("buffer view %d out of range", bvIdx)
		}
		bv := im.doc.BufferViews[bvIdx]
		if bv.Buffer < 0 || bv.Buffer >= len(im.doc.Buffers) {
			return nil, "", fmt.Errorf("buffer %d out of range", bv.Buffer)
		}
		buf := im.doc.Buffers[bv.Buffer].Data
		end := bv.ByteOffset + bv.ByteLength
		if bv.ByteOffset < 0 || end > len(buf) {
			return nil, "", fmt.Errorf("buffer view %d exceeds buffer of %d bytes", bvIdx, len(buf))
		}
		return buf[bv.ByteOffset:end], img.MimeType, nil
	}

	if img.IsEmbeddedResource() {
		data, err := img.MarshalData()
		if err != nil {
			return nil, "", err
		}
		mimeType := img.MimeType
		if mimeType == "" {
			if semi := strings.IndexByte(img.URI, ';'); semi > len("data:") {
				mimeType = img.URI[len("data:"):semi]
			}
		}
		return data, mimeType, nil
	}

	if img.URI == "" {
		return nil, "", fmt.Errorf("image has no source")
	}
	if im.opts.BaseDir == "" {
		return nil, "", fmt.Errorf("external image %q needs a base directory", img.URI)
	}
	rel, err := url.PathUnescape(img.URI)
	if err != nil {
		rel = img.URI
	}
	path := filepath.Join(im.opts.BaseDir, filepath.FromSlash(rel))

	info, err := os.Stat(path)
	if err != nil {
		return nil, "", err
	}
	version := FileVersion(info)
	if im.opts.Cache != nil {
		if data, ok := im.opts.Cache.Get(path, version); ok {
			return data, mimeFromPath(path), nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	if im.opts.Cache != nil {
		im.opts.Cache.Set(path, version, data)
	}
	return data, mimeFromPath(path), nil
}

func mimeFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".bmp":
		return "image/bmp"
	}
	return ""
}
