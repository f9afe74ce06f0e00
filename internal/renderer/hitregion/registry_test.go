package hitregion

import (
	"sync"
	"testing"
)

func TestRegistryStageAndCommit(t *testing.T) {
	r := NewRegistry()
	if r.Len() != 0 {
		t.Fatalf("new registry Len() = %d, want 0", r.Len())
	}

	r.Begin()
	r.Stage(Region{Key: "ok", X: 0, Y: 0, Width: 5, Height: 1})
	r.Stage(Region{Key: "empty", Width: 0, Height: 3})
	if r.Len() != 0 {
		t.Error("staged regions should not be visible before Commit")
	}

	r.Commit()
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
	if _, ok := r.Find("ok"); !ok {
		t.Error("Find(ok) should succeed")
	}

	r.Begin()
	r.Commit()
	if r.Len() != 0 {
		t.Errorf("empty commit should clear regions, Len() = %d", r.Len())
	}
}

func TestRegistryHitTest(t *testing.T) {
	r := NewRegistry()
	r.Begin()
	r.Stage(Region{Key: "panel", X: 0, Y: 0, Width: 20, Height: 10, ZIndex: 0})
	r.Stage(Region{Key: "modal", X: 5, Y: 2, Width: 6, Height: 3, ZIndex: 10})
	r.Stage(Region{Key: "sibling", X: 0, Y: 0, Width: 20, Height: 10, ZIndex: 0})
	r.Commit()

	tests := []struct {
		x, y int
		want string
		ok   bool
	}{
		{6, 3, "modal", true},
		{1, 1, "sibling", true},
		{30, 30, "", false},
	}
	for _, tt := range tests {
		got, ok := r.HitTest(tt.x, tt.y)
		if ok != tt.ok || got.Key != tt.want {
			t.Errorf("HitTest(%d,%d) = %q, %v; want %q, %v", tt.x, tt.y, got.Key, ok, tt.want, tt.ok)
		}
	}
}

func TestRegistryReadersNeverSeePartialFrames(t *testing.T) {
	r := NewRegistry()
	const perFrame = 4

	var wg sync.WaitGroup
	stop := make(chan struct{})
	errs := make(chan int, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			if n := r.Len(); n != 0 && n != perFrame {
				select {
				case errs <- n:
				default:
				}
				return
			}
		}
	}()

	for frame := 0; frame < 500; frame++ {
		r.Begin()
		for i := 0; i < perFrame; i++ {
			r.Stage(Region{X: i, Y: frame % 10, Width: 1, Height: 1})
		}
		r.Commit()
	}
	close(stop)
	wg.Wait()

	select {
	case n := <-errs:
		t.Errorf("reader observed %d regions, want 0 or %d", n, perFrame)
	default:
	}
}
