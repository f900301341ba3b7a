package memory

import (
	"context"
)

// Gate is the in-process launch gate. It lives as long as its Store.
type Gate struct {
	s *Store
}

// Gate returns the launch gate view of the store.
func (s *Store) Gate() *Gate {
	return &Gate{s: s}
}

// IsDone reports whether the seed has been imported.
func (g *Gate) IsDone(ctx context.Context, seedName string) (bool, error) {
	var done bool
	err := g.s.read(ctx, func(d *state) error {
		done = d.gate[seedName]
		return nil
	})
	return done, err
}

// MarkDone records that the seed has been imported.
func (g *Gate) MarkDone(ctx context.Context, seedName string) error {
	return g.s.write(ctx, func(d *state) error {
		d.gate[seedName] = true
		return nil
	})
}

// ClearAll unsets every gate and returns how many were set.
func (g *Gate) ClearAll(ctx context.Context) (int, error) {
	var n int
	err := g.s.write(ctx, func(d *state) error {
		n = len(d.gate)
		clear(d.gate)
		return nil
	})
	return n, err
}
