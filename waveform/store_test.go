// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"errors"
	"sync"
	"testing"
)

func newFilledStore(t *testing.T, capacity uint32, windowSize uint64, windows ...Window) *Store {
	t.Helper()

	s, err := NewStore(capacity, windowSize)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	for i, w := range windows {
		if err := s.Append(w); err != nil {
			t.Fatalf("Append(#%d) error = %v", i, err)
		}
	}
	return s
}

func exampleWindows() []Window {
	return []Window{
		NewWindow(-0.5, 0.3),
		NewWindow(-0.9, 0.9),
		NewWindow(0.05, 0.05),
	}
}

func TestNewStore(t *testing.T) {
	t.Parallel()

	s, err := NewStore(10, 4)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	if s.Capacity() != 10 || s.WindowSize() != 4 || s.Size() != 0 {
		t.Errorf("got capacity %d, window size %d, size %d", s.Capacity(), s.WindowSize(), s.Size())
	}

	if _, err := NewStore(10, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NewStore(10, 0) error = %v, want ErrInvalidArgument", err)
	}
}

func TestStore_AppendBeyondCapacity(t *testing.T) {
	t.Parallel()

	s := newFilledStore(t, 2, 4, NewWindow(0, 0.1), NewWindow(0, 0.2))

	err := s.Append(NewWindow(-1, 1))
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("Append() on full store error = %v, want ErrCapacityExceeded", err)
	}
	if s.Size() != 2 {
		t.Errorf("Size() = %d, want 2", s.Size())
	}

	got, _ := s.Query(0, 4, 2)
	if got[0] != NewWindow(0, 0.1) || got[1] != NewWindow(0, 0.2) {
		t.Errorf("stored windows changed after failed append: %v", got)
	}

	empty := newFilledStore(t, 0, 4)
	if err := empty.Append(NewWindow(0, 0)); !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("Append() on zero capacity store error = %v", err)
	}
}

func TestStore_QueryExample(t *testing.T) {
	t.Parallel()

	s := newFilledStore(t, 3, 4, exampleWindows()...)

	tests := []struct {
		name        string
		sampleIndex uint64
		target      uint64
		count       int
		want        []Window
	}{
		{"identity", 0, 4, 3, exampleWindows()},
		{"two base windows", 0, 8, 1, []Window{NewWindow(-0.9, 0.9)}},
		{"truncated to complete windows", 0, 8, 2, []Window{NewWindow(-0.9, 0.9)}},
		{"all three", 0, 12, 1, []Window{NewWindow(-0.9, 0.9)}},
		{"offset", 4, 4, 5, exampleWindows()[1:]},
		{"unaligned offset rounds down", 6, 4, 1, exampleWindows()[1:2]},
		{"offset coarse", 4, 8, 1, []Window{NewWindow(-0.9, 0.9)}},
		{"past the end", 12, 4, 3, []Window{}},
		{"far past the end", 1 << 40, 4, 3, []Window{}},
		{"zero count", 0, 4, 0, []Window{}},
		{"too coarse", 0, 16, 1, []Window{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := s.Query(tt.sampleIndex, tt.target, tt.count)
			if err != nil {
				t.Fatalf("Query() error = %v", err)
			}
			if got == nil {
				t.Fatal("Query() returned nil slice")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Query() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("window %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestStore_QueryInvalid(t *testing.T) {
	t.Parallel()

	s := newFilledStore(t, 3, 4, exampleWindows()...)

	tests := []struct {
		name   string
		target uint64
		count  int
	}{
		{"negative count", 4, -1},
		{"below base", 2, 1},
		{"zero target", 0, 1},
		{"not a multiple", 6, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := s.Query(0, tt.target, tt.count); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Query() error = %v, want ErrInvalidArgument", err)
			}
		})
	}

	if s.Size() != 3 {
		t.Errorf("Size() = %d after invalid queries, want 3", s.Size())
	}
}

func TestStore_QueryTruncatesBeyondSize(t *testing.T) {
	t.Parallel()

	s := newFilledStore(t, 100, 2)
	for i := range 40 {
		v := float32(i) / 100
		s.Append(NewWindow(-v, v))
	}

	got, err := s.Query(0, 2, int(s.Size())+100)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(got) != int(s.Size()) {
		t.Errorf("Query() returned %d windows, want %d", len(got), s.Size())
	}
}

func TestStore_QueryAggregates(t *testing.T) {
	t.Parallel()

	const n = 60
	windows := make([]Window, n)
	for i := range windows {
		v := float32((i*37)%19) / 20
		windows[i] = NewWindow(-v, v/2)
	}
	s := newFilledStore(t, n, 8, windows...)

	for _, k := range []int{1, 2, 3, 4, 5, 6, 10, 60} {
		got, err := s.Query(0, uint64(k)*8, n)
		if err != nil {
			t.Fatalf("k=%d: Query() error = %v", k, err)
		}
		if len(got) != n/k {
			t.Fatalf("k=%d: %d windows, want %d", k, len(got), n/k)
		}
		for i, w := range got {
			want := windows[i*k]
			for _, x := range windows[i*k+1 : (i+1)*k] {
				want = want.Merge(x)
			}
			if w != want {
				t.Errorf("k=%d, window %d = %v, want %v", k, i, w, want)
			}
		}
	}
}

func TestStore_ConcurrentAppendAndQuery(t *testing.T) {
	t.Parallel()

	const capacity = 5000
	s := newFilledStore(t, capacity, 2)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range capacity {
			v := float32(i%100) / 100
			if err := s.Append(NewWindow(-v, v)); err != nil {
				t.Errorf("Append(#%d) error = %v", i, err)
				return
			}
		}
	}()

	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s.Size() < capacity {
				size := s.Size()
				got, err := s.Query(0, 2, capacity)
				if err != nil {
					t.Errorf("Query() error = %v", err)
					return
				}
				if uint32(len(got)) < size {
					t.Errorf("Query() returned %d windows after Size() = %d", len(got), size)
					return
				}
				for i, w := range got {
					v := float32(i%100) / 100
					if w != NewWindow(-v, v) {
						t.Errorf("window %d = %v, want (%v, %v)", i, w, -v, v)
						return
					}
				}
			}
		}()
	}

	wg.Wait()
}
