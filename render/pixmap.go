package render

import (
	"container/list"
	"errors"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// ErrResourceExhausted is returned when an image exceeds the pixmap size
// limit.
var ErrResourceExhausted = errors.New("render: resource exhausted")

// maxPixmapDim bounds each pixmap dimension.
const maxPixmapDim = 16384

// FitMode is the policy for scaling a pixmap into a target rectangle.
type FitMode int

const (
	// FitNoScale draws at natural size anchored at the target origin.
	FitNoScale FitMode = iota
	// FitFill stretches to the target, ignoring aspect ratio.
	FitFill
	// FitContain scales to fit entirely inside the target, preserving
	// aspect ratio.
	FitContain
	// FitCover scales to cover the target, preserving aspect ratio and
	// cropping overflow.
	FitCover
	// FitScaleDown behaves like FitContain but never upscales.
	FitScaleDown
)

// Pixmap is a premultiplied ARGB surface. Pixmaps may be shared across
// elements; the prepared-surface cache is per pixmap and keyed by render
// geometry.
type Pixmap struct {
	img      *image.RGBA
	prepared *preparedCache
}

// NewPixmap creates an empty pixmap. Dimensions outside (0, maxPixmapDim]
// return ErrResourceExhausted and a nil pixmap.
func NewPixmap(width, height int) (*Pixmap, error) {
	if width <= 0 || height <= 0 || width > maxPixmapDim || height > maxPixmapDim {
		logger().Warn("pixmap size rejected", "width", width, "height", height)
		return nil, ErrResourceExhausted
	}
	return &Pixmap{
		img:      image.NewRGBA(image.Rect(0, 0, width, height)),
		prepared: newPreparedCache(8),
	}, nil
}

// PixmapFromImage copies an image into a new pixmap.
func PixmapFromImage(src image.Image) (*Pixmap, error) {
	b := src.Bounds()
	p, err := NewPixmap(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	xdraw.Draw(p.img, p.img.Bounds(), src, b.Min, xdraw.Src)
	return p, nil
}

// Width returns the pixel width.
func (p *Pixmap) Width() int { return p.img.Bounds().Dx() }

// Height returns the pixel height.
func (p *Pixmap) Height() int { return p.img.Bounds().Dy() }

// Image exposes the backing image.
func (p *Pixmap) Image() *image.RGBA { return p.img }

// Set writes one pixel.
func (p *Pixmap) Set(x, y int, c Color) {
	p.img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
}

// At reads one pixel.
func (p *Pixmap) At(x, y int) Color {
	c := p.img.RGBAAt(x, y)
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FitRect computes source and destination rectangles for drawing the pixmap
// into dst under the given fit mode.
func (p *Pixmap) FitRect(dst Rect, mode FitMode) (src RectI, out Rect) {
	w := float32(p.Width())
	h := float32(p.Height())
	src = RectI{Width: p.Width(), Height: p.Height()}

	switch mode {
	case FitNoScale:
		return src, Rect{X: dst.X, Y: dst.Y, Width: w, Height: h}
	case FitFill:
		return src, dst
	case FitContain, FitScaleDown:
		scale := min(dst.Width/w, dst.Height/h)
		if mode == FitScaleDown && scale > 1 {
			scale = 1
		}
		ow := w * scale
		oh := h * scale
		return src, Rect{
			X:      dst.X + (dst.Width-ow)/2,
			Y:      dst.Y + (dst.Height-oh)/2,
			Width:  ow,
			Height: oh,
		}
	case FitCover:
		scale := max(dst.Width/w, dst.Height/h)
		// Crop the source so the scaled result exactly covers dst.
		cw := dst.Width / scale
		ch := dst.Height / scale
		src = RectI{
			X:      int((w - cw) / 2),
			Y:      int((h - ch) / 2),
			Width:  int(cw),
			Height: int(ch),
		}
		return src, dst
	}
	return src, dst
}

// Prepared returns a surface of the pixmap scaled for the given target
// geometry, caching the result keyed by (targetW, targetH, fitMode).
func (p *Pixmap) Prepared(targetW, targetH int, mode FitMode) *image.RGBA {
	if targetW <= 0 || targetH <= 0 {
		return nil
	}
	key := preparedKey{W: targetW, H: targetH, Fit: mode}
	if img := p.prepared.get(key); img != nil {
		return img
	}
	src, out := p.FitRect(Rect{Width: float32(targetW), Height: float32(targetH)}, mode)
	scaled := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	srcRect := image.Rect(src.X, src.Y, src.X+src.Width, src.Y+src.Height)
	dstRect := RectToRectI(out)
	xdraw.ApproxBiLinear.Scale(
		scaled,
		image.Rect(dstRect.X, dstRect.Y, dstRect.X+dstRect.Width, dstRect.Y+dstRect.Height),
		p.img,
		srcRect,
		xdraw.Over,
		nil,
	)
	p.prepared.put(key, scaled)
	return scaled
}

// InvalidatePrepared drops the prepared-surface cache, for pixmaps whose
// pixels were mutated in place.
func (p *Pixmap) InvalidatePrepared() {
	p.prepared.clear()
}

// preparedKey identifies one prepared surface.
type preparedKey struct {
	W, H int
	Fit  FitMode
}

// preparedCache is a small LRU over prepared surfaces.
type preparedCache struct {
	limit   int
	order   *list.List // front = most recent, values are preparedKey
	entries map[preparedKey]*preparedEntry
}

type preparedEntry struct {
	img  *image.RGBA
	elem *list.Element
}

func newPreparedCache(limit int) *preparedCache {
	return &preparedCache{
		limit:   limit,
		order:   list.New(),
		entries: make(map[preparedKey]*preparedEntry),
	}
}

func (c *preparedCache) get(key preparedKey) *image.RGBA {
	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	c.order.MoveToFront(e.elem)
	return e.img
}

func (c *preparedCache) put(key preparedKey, img *image.RGBA) {
	if e, ok := c.entries[key]; ok {
		e.img = img
		c.order.MoveToFront(e.elem)
		return
	}
	c.entries[key] = &preparedEntry{img: img, elem: c.order.PushFront(key)}
	for c.order.Len() > c.limit {
		back := c.order.Back()
		evicted := back.Value.(preparedKey)
		c.order.Remove(back)
		delete(c.entries, evicted)
	}
}

func (c *preparedCache) clear() {
	c.order.Init()
	c.entries = make(map[preparedKey]*preparedEntry)
}
