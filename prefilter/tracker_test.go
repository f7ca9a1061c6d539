package prefilter

import (
	"bytes"
	"testing"
)

// everyByte returns a haystack where the memchr needle 'x' occurs n times in a row.
func everyByte(n int) []byte {
	return bytes.Repeat([]byte("x"), n)
}

func TestTracker_Basic(t *testing.T) {
	tracker := NewTracker(newMemchrPrefilter('x', false))
	if !tracker.IsActive() {
		t.Fatal("Tracker should be active initially")
	}

	if pos := tracker.Find([]byte("abcx"), 0); pos != 3 {
		t.Errorf("Find() = %d, want 3", pos)
	}
	if pos := tracker.Find([]byte("abc"), 0); pos != -1 {
		t.Errorf("Find() = %d, want -1", pos)
	}
	tracker.ConfirmMatch()

	candidates, confirms, eff, active := tracker.Stats()
	if candidates != 1 || confirms != 1 || eff != 1.0 || !active {
		t.Errorf("Stats() = (%d, %d, %f, %v), want (1, 1, 1.0, true)", candidates, confirms, eff, active)
	}
}

func TestTracker_Efficiency(t *testing.T) {
	config := TrackerConfig{CheckInterval: 10, MinEfficiency: 0.1, WarmupPeriod: 50}
	haystack := everyByte(200)

	tests := []struct {
		name        string
		confirmEach int // confirm every n-th candidate, 0 for never
		wantActive  bool
	}{
		{"no confirms retires", 0, false},
		{"half confirmed stays", 2, true},
		{"one in twenty retires", 20, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := NewTrackerWithConfig(newMemchrPrefilter('x', false), config)
			for i := 0; i < len(haystack); i++ {
				if tracker.Find(haystack, i) == -1 {
					break
				}
				if tt.confirmEach > 0 && i%tt.confirmEach == 0 {
					tracker.ConfirmMatch()
				}
			}
			if tracker.IsActive() != tt.wantActive {
				t.Errorf("IsActive() = %v, want %v", tracker.IsActive(), tt.wantActive)
			}
			if !tt.wantActive {
				if pos := tracker.Find(haystack, 0); pos != -1 {
					t.Errorf("Find() = %d when retired, want -1", pos)
				}
			}
		})
	}
}

func TestTracker_WarmupPeriod(t *testing.T) {
	config := TrackerConfig{CheckInterval: 1, MinEfficiency: 0.5, WarmupPeriod: 50}
	tracker := NewTrackerWithConfig(newMemchrPrefilter('x', false), config)
	haystack := everyByte(100)

	for i := 0; i < 40; i++ {
		tracker.Find(haystack, i)
	}
	if !tracker.IsActive() {
		t.Error("Tracker should still be active during warmup")
	}
	for i := 40; i < 100; i++ {
		tracker.Find(haystack, i)
	}
	if tracker.IsActive() {
		t.Error("Tracker should be retired after warmup with 0% efficiency")
	}

	tracker.Reset()
	if !tracker.IsActive() {
		t.Error("Tracker should be active after reset")
	}
	if candidates, confirms, _, _ := tracker.Stats(); candidates != 0 || confirms != 0 {
		t.Errorf("Stats should be zero after reset: candidates=%d, confirms=%d", candidates, confirms)
	}
}

func TestTracker_Nil(t *testing.T) {
	if tracker := NewTracker(nil); tracker != nil {
		t.Error("NewTracker(nil) should return nil")
	}
}

func TestTracker_Inner(t *testing.T) {
	pf := newMemmemPrefilter([]byte("ab"), true)
	if NewTracker(pf).Inner() != pf {
		t.Error("Inner() should return the wrapped prefilter")
	}
	config := DefaultTrackerConfig()
	if config.CheckInterval == 0 || config.WarmupPeriod == 0 {
		t.Errorf("DefaultTrackerConfig() = %+v", config)
	}
}
