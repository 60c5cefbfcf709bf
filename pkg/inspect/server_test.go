package inspect

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/go-motive/motive/pkg/animation"
	"github.com/go-motive/motive/pkg/driver"
)

// waitForServer polls the health endpoint until ready or timeout.
func waitForServer(port int, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	url := fmt.Sprintf("http://localhost:%d/health", port)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(5 * time.Millisecond)
	}
	return fmt.Errorf("server not ready after %v", timeout)
}

func newTestServer(t *testing.T) (*Server, *driver.Driver, int) {
	t.Helper()
	sched := animation.NewScheduler()
	drv := driver.New(sched, time.Millisecond)
	srv := New(drv)

	port, err := srv.Start(0)
	if err != nil {
		t.Fatalf("failed to start inspector: %v", err)
	}
	t.Cleanup(srv.Shutdown)

	if err := waitForServer(port, 2*time.Second); err != nil {
		t.Fatalf("server not ready: %v", err)
	}
	return srv, drv, port
}

func TestServerStartStop(t *testing.T) {
	srv, _, port := newTestServer(t)

	// Starting again returns the same port.
	again, err := srv.Start(0)
	if err != nil {
		t.Fatalf("second Start: %v", err)
	}
	if again != port {
		t.Errorf("second Start returned port %d, want %d", again, port)
	}

	srv.Shutdown()
	srv.Shutdown() // idempotent
}

func TestAnimationsEndpoint(t *testing.T) {
	_, drv, port := newTestServer(t)

	type bar struct{ value int32 }
	target := &bar{}
	drv.Do(func(s *animation.Scheduler) {
		a := animation.New()
		a.Target = target
		a.Apply = func(target any, value int32) {
			target.(*bar).value = value
		}
		a.Duration = 60000 // long enough to still be live when queried
		a.Path = animation.EaseInOut
		a.RepeatCount = animation.RepeatInfinite
		if err := s.Start(a); err != nil {
			t.Error(err)
		}
	})

	resp, err := http.Get(fmt.Sprintf("http://localhost:%d/animations", port))
	if err != nil {
		t.Fatalf("failed to reach animations endpoint: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Animations []AnimationInfo `json:"animations"`
		Count      int             `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Count != 1 {
		t.Fatalf("count = %d, want 1", body.Count)
	}
	info := body.Animations[0]
	if info.Target != "*inspect.bar" {
		t.Errorf("target = %q, want *inspect.bar", info.Target)
	}
	if info.Path != "ease-in-out" {
		t.Errorf("path = %q, want ease-in-out", info.Path)
	}
	if !info.Infinite {
		t.Error("infinite flag not set for the sentinel repeat count")
	}
}

func TestFramesEndpoint(t *testing.T) {
	_, drv, port := newTestServer(t)

	drv.Do(func(s *animation.Scheduler) {
		a := animation.New()
		a.Target = new(int)
		a.Apply = func(any, int32) {}
		a.Duration = 10000
		s.Start(a)
	})
	drv.Start()
	defer drv.Stop()

	// Let a few frames accumulate.
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get(fmt.Sprintf("http://localhost:%d/frames?limit=5", port))
		if err != nil {
			t.Fatalf("failed to reach frames endpoint: %v", err)
		}
		var timeline FrameTimeline
		err = json.NewDecoder(resp.Body).Decode(&timeline)
		resp.Body.Close()
		if err != nil {
			t.Fatalf("failed to decode timeline: %v", err)
		}
		if len(timeline.Samples) > 0 {
			if len(timeline.Samples) > 5 {
				t.Errorf("limit ignored: %d samples", len(timeline.Samples))
			}
			if timeline.Samples[0].Live == 0 {
				t.Error("sample should report a live record")
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("no frame samples accumulated")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRuntimeEndpoint(t *testing.T) {
	_, _, port := newTestServer(t)

	resp, err := http.Get(fmt.Sprintf("http://localhost:%d/runtime", port))
	if err != nil {
		t.Fatalf("failed to reach runtime endpoint: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Samples []RuntimeSample `json:"samples"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	// One sample is taken eagerly at Start.
	if len(body.Samples) == 0 {
		t.Fatal("no runtime samples")
	}
	if body.Samples[0].HeapAlloc == 0 {
		t.Error("sample has zero heap usage")
	}
}

func TestDebugEndpoint(t *testing.T) {
	_, _, port := newTestServer(t)

	resp, err := http.Get(fmt.Sprintf("http://localhost:%d/debug", port))
	if err != nil {
		t.Fatalf("failed to reach debug endpoint: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Live int `json:"live"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Live != 0 {
		t.Errorf("live = %d, want 0", body.Live)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	_, _, port := newTestServer(t)

	resp, err := http.Post(fmt.Sprintf("http://localhost:%d/animations", port), "", nil)
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}
