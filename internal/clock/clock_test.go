package clock

import (
	"math"
	"sync"
	"testing"
)

const j2000 = 2451545.0

func newTestClock() *Clock {
	return New(j2000, DefaultConfig())
}

func TestNew(t *testing.T) {
	c := newTestClock()

	if got := c.CurrentJD(); got != j2000 {
		t.Errorf("CurrentJD = %v, want %v", got, j2000)
	}
	if got := c.Speed(); got != 1.0 {
		t.Errorf("Speed = %v, want 1.0", got)
	}
}

func TestNew_ClampsStartIntoRange(t *testing.T) {
	cfg := DefaultConfig()

	c := New(cfg.MinJD-1000, cfg)
	if got := c.CurrentJD(); got != cfg.MinJD {
		t.Errorf("CurrentJD = %v, want clamped to %v", got, cfg.MinJD)
	}

	c = New(cfg.MaxJD+1000, cfg)
	if got := c.CurrentJD(); got != cfg.MaxJD {
		t.Errorf("CurrentJD = %v, want clamped to %v", got, cfg.MaxJD)
	}
}

func TestSetTime_Accepts(t *testing.T) {
	c := newTestClock()

	res := c.SetTime(j2000 + 1)
	if !res.OK {
		t.Fatalf("SetTime failed with code %q", res.Code)
	}
	if res.JD != j2000+1 {
		t.Errorf("Result.JD = %v, want %v", res.JD, j2000+1)
	}
	// Exact float equality is part of the contract
	if got := c.CurrentJD(); got != j2000+1 {
		t.Errorf("CurrentJD = %v, want exactly %v", got, j2000+1)
	}
}

func TestSetTime_RangeViolation(t *testing.T) {
	cfg := DefaultConfig()
	c := New(cfg.MinJD, cfg)

	tests := []struct {
		name string
		jd   float64
	}{
		{"below min", cfg.MinJD - 0.5},
		{"above max", cfg.MaxJD + 0.5},
		{"NaN", math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.SetTime(tt.jd)
			if res.OK {
				t.Fatal("SetTime should have been rejected")
			}
			if res.Code != CodeInvalidTimeRange {
				t.Errorf("code = %q, want %q", res.Code, CodeInvalidTimeRange)
			}
			if got := c.CurrentJD(); got != cfg.MinJD {
				t.Errorf("CurrentJD = %v, want unchanged %v", got, cfg.MinJD)
			}
		})
	}
}

func TestSetTime_Discontinuity(t *testing.T) {
	c := newTestClock()
	maxJump := c.Config().MaxJumpDays

	res := c.SetTime(j2000 + maxJump + 1)
	if res.OK {
		t.Fatal("over-large jump should have been rejected")
	}
	if res.Code != CodeTimeDiscontinuity {
		t.Errorf("code = %q, want %q", res.Code, CodeTimeDiscontinuity)
	}
	if got := c.CurrentJD(); got != j2000 {
		t.Errorf("CurrentJD = %v, want unchanged %v", got, j2000)
	}

	// Exactly at the budget is fine
	if res := c.SetTime(j2000 + maxJump); !res.OK {
		t.Errorf("jump of exactly MaxJumpDays rejected with %q", res.Code)
	}
}

func TestSetTime_RangeTakesPrecedence(t *testing.T) {
	// A target that is both out of range and a huge jump must report the
	// range code, never the discontinuity code and never both.
	cfg := DefaultConfig()
	c := New(j2000, cfg)

	res := c.SetTime(cfg.MaxJD + 1e6)
	if res.OK {
		t.Fatal("should have been rejected")
	}
	if res.Code != CodeInvalidTimeRange {
		t.Errorf("code = %q, want %q", res.Code, CodeInvalidTimeRange)
	}
}

func TestSetTime_ContinuityComposition(t *testing.T) {
	c := newTestClock()
	maxJump := c.Config().MaxJumpDays

	deltas := []float64{0.25, 1, 30, maxJump, 0.125, 100}
	var sum float64
	for _, d := range deltas {
		res := c.SetTime(c.CurrentJD() + d)
		if !res.OK {
			t.Fatalf("delta %v rejected with %q", d, res.Code)
		}
		sum += d
	}

	if got := c.CurrentJD(); got != j2000+sum {
		t.Errorf("CurrentJD = %v, want %v (no drift)", got, j2000+sum)
	}
}

func TestSetSpeed(t *testing.T) {
	c := newTestClock()
	maxSpeed := c.Config().MaxSpeed

	tests := []struct {
		name  string
		mult  float64
		valid bool
	}{
		{"zero pauses", 0, true},
		{"one", 1, true},
		{"fast", 86400, true},
		{"at max", maxSpeed, true},
		{"negative", -1, false},
		{"above max", maxSpeed * 2, false},
		{"NaN", math.NaN(), false},
		{"+Inf", math.Inf(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.SetSpeed(1)
			res := c.SetSpeed(tt.mult)
			if res.OK != tt.valid {
				t.Fatalf("SetSpeed(%v).OK = %v, want %v", tt.mult, res.OK, tt.valid)
			}
			if !tt.valid {
				if res.Code != CodeInvalidSpeedMultiplier {
					t.Errorf("code = %q, want %q", res.Code, CodeInvalidSpeedMultiplier)
				}
				if got := c.Speed(); got != 1 {
					t.Errorf("Speed = %v, want unchanged 1", got)
				}
				return
			}
			if got := c.Speed(); got != tt.mult {
				t.Errorf("Speed = %v, want %v", got, tt.mult)
			}
		})
	}
}

func TestSubscribe_ReplayOnSubscribe(t *testing.T) {
	c := newTestClock()

	var got []float64
	c.Subscribe(func(jd float64) { got = append(got, jd) })

	if len(got) != 1 {
		t.Fatalf("callback invoked %d times on subscribe, want 1", len(got))
	}
	if got[0] != j2000 {
		t.Errorf("replayed JD = %v, want %v", got[0], j2000)
	}
}

func TestSubscribe_MultiSubscriberConsistency(t *testing.T) {
	c := newTestClock()

	const n = 7
	counts := make([]int, n)
	last := make([]float64, n)
	for i := 0; i < n; i++ {
		i := i
		c.Subscribe(func(jd float64) {
			counts[i]++
			last[i] = jd
		})
	}

	target := j2000 + 2.5
	if res := c.SetTime(target); !res.OK {
		t.Fatalf("SetTime rejected with %q", res.Code)
	}

	for i := 0; i < n; i++ {
		// one replay + one update
		if counts[i] != 2 {
			t.Errorf("subscriber %d invoked %d times, want 2", i, counts[i])
		}
		if last[i] != target {
			t.Errorf("subscriber %d saw %v, want %v", i, last[i], target)
		}
	}
}

func TestSubscribe_NotificationOrder(t *testing.T) {
	c := newTestClock()

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		c.Subscribe(func(float64) { order = append(order, i) })
	}

	order = order[:0]
	c.SetTime(j2000 + 1)

	if len(order) != 5 {
		t.Fatalf("delivered %d notifications, want 5", len(order))
	}
	for i, id := range order {
		if id != i {
			t.Fatalf("delivery order = %v, want registration order", order)
		}
	}
}

func TestSubscribe_FaultIsolation(t *testing.T) {
	c := New(j2000, DefaultConfig()) // nil logger: panics are discarded

	var before, after int
	c.Subscribe(func(float64) { before++ })
	c.Subscribe(func(float64) { panic("bad observer") })
	c.Subscribe(func(float64) { after++ })

	res := c.SetTime(j2000 + 1)
	if !res.OK {
		t.Fatalf("SetTime failed: %q", res.Code)
	}

	// one replay + one update each
	if before != 2 {
		t.Errorf("subscriber before the faulty one invoked %d times, want 2", before)
	}
	if after != 2 {
		t.Errorf("subscriber after the faulty one invoked %d times, want 2", after)
	}
}

func TestUnsubscribe(t *testing.T) {
	c := newTestClock()

	var a, b int
	unsubA := c.Subscribe(func(float64) { a++ })
	c.Subscribe(func(float64) { b++ })

	unsubA()
	unsubA() // second call is a no-op
	c.SetTime(j2000 + 1)

	if a != 1 {
		t.Errorf("unsubscribed callback invoked %d times, want 1 (replay only)", a)
	}
	if b != 2 {
		t.Errorf("remaining callback invoked %d times, want 2", b)
	}
}

func TestUnsubscribe_DuringNotification(t *testing.T) {
	// An unsubscribe issued from inside another subscriber's callback must
	// suppress the pending delivery in the same dispatch: once the
	// unsubscribe returns, no in-flight notification may still fire.
	c := newTestClock()

	var unsubB func()
	c.Subscribe(func(float64) {
		if unsubB != nil {
			unsubB()
		}
	})

	var bCalls int
	unsubB = c.Subscribe(func(float64) { bCalls++ })
	if bCalls != 1 {
		t.Fatalf("replay invoked B %d times, want 1", bCalls)
	}

	// A runs first in registration order and removes B mid-dispatch.
	if res := c.SetTime(j2000 + 1); !res.OK {
		t.Fatalf("SetTime rejected with %q", res.Code)
	}
	if bCalls != 1 {
		t.Errorf("B invoked %d times, want 1 (no delivery after its unsubscribe returned)", bCalls)
	}

	// Later dispatches must not resurrect B either.
	c.SetTime(j2000 + 2)
	if bCalls != 1 {
		t.Errorf("B invoked %d times after a later update, want 1", bCalls)
	}
}

func TestValidateProgression(t *testing.T) {
	c := newTestClock()
	cfg := c.Config()

	tests := []struct {
		name     string
		from, to float64
		speed    float64
		wantOK   bool
		wantCode Code
	}{
		{"valid step", j2000, j2000 + 1, 1, true, ""},
		{"from out of range", cfg.MinJD - 1, j2000, 1, false, CodeInvalidTimeRange},
		{"to out of range", j2000, cfg.MaxJD + 1, 1, false, CodeInvalidTimeRange},
		{"jump too large", j2000, j2000 + cfg.MaxJumpDays + 1, 1, false, CodeTimeDiscontinuity},
		{"bad speed", j2000, j2000 + 1, -1, false, CodeInvalidSpeedMultiplier},
		{"paused is valid", j2000, j2000, 0, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.ValidateProgression(tt.from, tt.to, tt.speed)
			if res.OK != tt.wantOK {
				t.Fatalf("OK = %v, want %v (code %q)", res.OK, tt.wantOK, res.Code)
			}
			if !tt.wantOK && res.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", res.Code, tt.wantCode)
			}
		})
	}

	// Pure: no commit happened
	if got := c.CurrentJD(); got != j2000 {
		t.Errorf("ValidateProgression mutated time: %v", got)
	}
}

func TestDispose(t *testing.T) {
	c := newTestClock()

	var n int
	c.Subscribe(func(float64) { n++ })

	c.Dispose()

	if res := c.SetTime(j2000 + 1); res.OK || res.Code != CodeDisposed {
		t.Errorf("SetTime after dispose = %+v, want CodeDisposed failure", res)
	}
	if res := c.SetSpeed(2); res.OK || res.Code != CodeDisposed {
		t.Errorf("SetSpeed after dispose = %+v, want CodeDisposed failure", res)
	}
	if n != 1 {
		t.Errorf("subscriber invoked %d times, want 1 (replay only, nothing after dispose)", n)
	}

	// Subscribe after dispose returns an inert handle and never calls back
	var late int
	unsub := c.Subscribe(func(float64) { late++ })
	unsub()
	if late != 0 {
		t.Errorf("post-dispose subscriber invoked %d times, want 0", late)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := newTestClock()

	var wg sync.WaitGroup
	iterations := 200

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			c.SetTime(c.CurrentJD() + 0.01)
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				_ = c.CurrentJD()
				_ = c.Speed()
				unsub := c.Subscribe(func(float64) {})
				unsub()
			}
		}()
	}

	wg.Wait()
}
