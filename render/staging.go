package render

import (
	"image"
	"sync"

	xdraw "golang.org/x/image/draw"
)

// Surface is a double-buffered software drawing target. Drawing goes to
// the back buffer through Context; SwapBuffers promotes it to the front
// buffer, which presentation reads. Resize is safe against a concurrent
// presenter; drawing itself stays on the owner goroutine.
type Surface struct {
	mu     sync.Mutex
	back   *SoftwareRasterizer
	front  *SoftwareRasterizer
	canvas *Canvas
}

// NewSurface creates a surface with both buffers at w by h. The face
// source is handed to the context for text operations.
func NewSurface(w, h int, faces FaceSource) (*Surface, error) {
	back, err := NewSoftwareRasterizer(w, h)
	if err != nil {
		return nil, err
	}
	front, err := NewSoftwareRasterizer(w, h)
	if err != nil {
		return nil, err
	}
	canvas, err := NewCanvas(back, faces)
	if err != nil {
		return nil, err
	}
	return &Surface{back: back, front: front, canvas: canvas}, nil
}

// Context returns the drawing context bound to the back buffer. The
// context remains valid across swaps and resizes.
func (s *Surface) Context() Context { return s.canvas }

// Size returns the current buffer dimensions.
func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.back.Size()
}

// SwapBuffers promotes the back buffer to the front and rebinds the
// context to the previous front buffer, whose stale content is replaced
// by a copy of the new frame so incremental redraws keep working.
func (s *Surface) SwapBuffers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.back, s.front = s.front, s.back
	xdraw.Draw(s.back.img, s.back.img.Bounds(), s.front.img, image.Point{}, xdraw.Src)
	s.canvas.ras = s.back
}

// Resize reallocates both buffers, preserving existing content in the
// top-left corner. Shrinking crops; growing leaves new area transparent.
func (s *Surface) Resize(w, h int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	oldBack, oldFront := s.back, s.front
	back, err := NewSoftwareRasterizer(w, h)
	if err != nil {
		return err
	}
	front, err := NewSoftwareRasterizer(w, h)
	if err != nil {
		return err
	}
	xdraw.Draw(back.img, back.img.Bounds(), oldBack.img, image.Point{}, xdraw.Src)
	xdraw.Draw(front.img, front.img.Bounds(), oldFront.img, image.Point{}, xdraw.Src)
	s.back, s.front = back, front
	s.canvas.ras = back
	return nil
}

// Front returns the presented buffer. The caller must treat it as
// read-only and must not hold it across the next SwapBuffers.
func (s *Surface) Front() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.front.img
}
