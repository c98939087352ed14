// Package gputest provides an in-memory gpu.Device that counts handles and draws, for tests.
package gputest

import (
	"errors"
	"fmt"
	"sync"

	"spatial-preview/internal/gpu"
)

// ErrInjected is returned by allocations once FailAfter is exhausted.
var ErrInjected = errors.New("gputest: injected allocation failure")

// Device is a fake gpu.Device. The zero value is ready to use.
type Device struct {
	// FailAfter, when > 0, makes the allocation with that 1-based index fail with ErrInjected.
	FailAfter int
	// NoContext makes NewSurface return gpu.ErrUnavailable.
	NoContext bool

	mu        sync.Mutex
	allocs    int
	live      map[int]string
	nextID    int
	surfaces  []*Surface
	released  int
	doubleRel int
}

func (d *Device) alloc(kind string) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.allocs++
	if d.FailAfter > 0 && d.allocs == d.FailAfter {
		return 0, fmt.Errorf("%s #%d: %w", kind, d.allocs, ErrInjected)
	}
	if d.live == nil {
		d.live = make(map[int]string)
	}
	d.nextID++
	d.live[d.nextID] = kind
	return d.nextID, nil
}

func (d *Device) release(id int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.live[id]; !ok {
		d.doubleRel++
		return gpu.ErrReleased
	}
	delete(d.live, id)
	d.released++
	return nil
}

// Live reports the number of handles allocated and not yet released.
func (d *Device) Live() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.live)
}

// LiveByKind reports live handles grouped by kind ("mesh", "material", "surface").
func (d *Device) LiveByKind() map[string]int {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string]int)
	for _, k := range d.live {
		out[k]++
	}
	return out
}

// Allocations reports how many allocations were attempted, including failed ones.
func (d *Device) Allocations() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.allocs
}

// DoubleReleases reports how many Release calls targeted an already released handle.
func (d *Device) DoubleReleases() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doubleRel
}

// Surfaces returns every surface created so far, released or not.
func (d *Device) Surfaces() []*Surface {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*Surface, len(d.surfaces))
	copy(out, d.surfaces)
	return out
}

func (d *Device) NewMesh(g gpu.Geometry) (gpu.Mesh, error) {
	id, err := d.alloc("mesh")
	if err != nil {
		return nil, err
	}
	return &Mesh{dev: d, id: id, geo: g}, nil
}

func (d *Device) NewMaterial(spec gpu.MaterialSpec) (gpu.Material, error) {
	id, err := d.alloc("material")
	if err != nil {
		return nil, err
	}
	return &Material{dev: d, id: id, spec: spec}, nil
}

func (d *Device) NewSurface(w, h int) (gpu.Surface, error) {
	if d.NoContext {
		return nil, gpu.ErrUnavailable
	}
	id, err := d.alloc("surface")
	if err != nil {
		return nil, err
	}
	s := &Surface{dev: d, id: id, w: w, h: h}
	d.mu.Lock()
	d.surfaces = append(d.surfaces, s)
	d.mu.Unlock()
	return s, nil
}

// Mesh is a fake gpu.Mesh.
type Mesh struct {
	dev *Device
	id  int
	geo gpu.Geometry
}

func (m *Mesh) Geometry() gpu.Geometry { return m.geo }
func (m *Mesh) Release() error         { return m.dev.release(m.id) }

// Material is a fake gpu.Material.
type Material struct {
	dev  *Device
	id   int
	spec gpu.MaterialSpec
}

func (m *Material) Spec() gpu.MaterialSpec { return m.spec }
func (m *Material) Release() error         { return m.dev.release(m.id) }

// Surface is a fake gpu.Surface recording every draw.
type Surface struct {
	dev      *Device
	id       int
	w, h     int
	released bool

	Draws   int
	Resizes int
	Last    gpu.Frame
	// DrawErr, when set, is returned from Draw (the draw is still counted).
	DrawErr error
}

func (s *Surface) Size() (int, int) { return s.w, s.h }

func (s *Surface) Resize(w, h int) error {
	if s.released {
		return gpu.ErrReleased
	}
	s.w, s.h = w, h
	s.Resizes++
	return nil
}

func (s *Surface) Draw(f gpu.Frame) error {
	if s.released {
		return gpu.ErrReleased
	}
	s.Draws++
	s.Last = f
	return s.DrawErr
}

func (s *Surface) Release() error {
	if err := s.dev.release(s.id); err != nil {
		return err
	}
	s.released = true
	return nil
}

// Released reports whether Release succeeded on this surface.
func (s *Surface) Released() bool { return s.released }
