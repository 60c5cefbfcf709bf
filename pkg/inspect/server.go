// Package inspect exposes a running scheduler over HTTP for debugging.
//
// Wire a [Server] to a driver and hit its endpoints with curl while the
// application runs:
//
//	GET /animations   live registry snapshot
//	GET /frames       recent frame timings (limit, min_ms filters)
//	GET /runtime      heap/GC samples (limit, window filters)
//	GET /debug        one-line scheduler summary
//	GET /health       liveness probe
//
// The server reads the scheduler only through the driver's Do boundary, so
// it can run next to a live frame loop without extra locking.
package inspect

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"reflect"
	"strconv"
	"sync"
	"time"

	"github.com/go-motive/motive/pkg/animation"
	"github.com/go-motive/motive/pkg/driver"
	"github.com/go-motive/motive/pkg/errors"
)

// AnimationInfo is the /animations entry for one live record.
type AnimationInfo struct {
	Target     string  `json:"target"`
	Path       string  `json:"path"`
	StartValue int32   `json:"startValue"`
	EndValue   int32   `json:"endValue"`
	Current    int32   `json:"current"`
	ElapsedMs  int32   `json:"elapsedMs"`
	DurationMs int32   `json:"durationMs"`
	Progress   float64 `json:"progress"`
	Repeat     uint16  `json:"repeat"`
	Infinite   bool    `json:"infinite,omitempty"`
	Reversing  bool    `json:"reversing,omitempty"`
	Delayed    bool    `json:"delayed,omitempty"`
}

// Server serves scheduler snapshots over HTTP. Create one with [New],
// start it with [Server.Start], and shut it down with [Server.Shutdown].
type Server struct {
	drv     *driver.Driver
	frames  *FrameTraceBuffer
	runtime *RuntimeSampleBuffer

	mu          sync.Mutex
	server      *http.Server
	listener    net.Listener
	samplerStop chan struct{}
}

// New wires an inspector to the driver. It installs itself as the driver's
// frame observer to feed the frame trace; a host that needs its own
// observer should chain to [Server.Observe] from it instead.
func New(d *driver.Driver) *Server {
	s := &Server{
		drv:     d,
		frames:  NewFrameTraceBuffer(0, 0),
		runtime: NewRuntimeSampleBuffer(0, 0),
	}
	d.SetFrameFunc(s.Observe)
	return s
}

// Observe records one driver frame into the trace buffer.
func (s *Server) Observe(f driver.Frame) {
	s.frames.Add(FrameSample{
		Timestamp:  time.Now().UnixMilli(),
		FrameMs:    float64(f.Duration) / float64(time.Millisecond),
		AdvancedMs: f.Report.Advanced,
		Visited:    f.Report.Visited,
		Applied:    f.Report.Applied,
		Completed:  f.Report.Completed,
		Restarted:  f.Report.Restarted,
		Live:       f.Live,
	}, f.Duration)
}

// Start binds the listener and launches the server. Returns the actual
// port, useful with port 0 for ephemeral allocation. Starting a running
// server returns its current port.
func (s *Server) Start(port int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return s.listener.Addr().(*net.TCPAddr).Port, nil
	}

	// Bind first to fail fast on port conflicts.
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return 0, &errors.MotiveError{
			Op:   "inspect.Server.Start",
			Kind: errors.KindInspect,
			Err:  err,
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/animations", s.handleAnimations)
	mux.HandleFunc("/frames", s.handleFrames)
	mux.HandleFunc("/runtime", s.handleRuntime)
	mux.HandleFunc("/health", handleHealth)
	mux.HandleFunc("/debug", s.handleDebug)

	server := &http.Server{Handler: mux}
	s.server = server
	s.listener = listener

	stop := make(chan struct{})
	s.samplerStop = stop
	s.runtime.Add(readRuntimeSample())
	go s.sampleLoop(stop)

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.mu.Lock()
			s.server = nil
			s.listener = nil
			s.mu.Unlock()
			errors.Report(&errors.MotiveError{
				Op:   "inspect.Server.Serve",
				Kind: errors.KindInspect,
				Err:  err,
			})
		}
	}()

	return listener.Addr().(*net.TCPAddr).Port, nil
}

// Shutdown gracefully stops the server. Safe to call on a stopped server.
func (s *Server) Shutdown() {
	s.mu.Lock()
	server := s.server
	stop := s.samplerStop
	s.server = nil
	s.listener = nil
	s.samplerStop = nil
	s.mu.Unlock()

	if stop != nil {
		close(stop)
	}
	if server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	server.Shutdown(ctx)
}

func (s *Server) sampleLoop(stop chan struct{}) {
	ticker := time.NewTicker(s.runtime.Interval())
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.runtime.Add(readRuntimeSample())
		case <-stop:
			return
		}
	}
}

// snapshotAnimations collects the registry state under the driver's lock.
func (s *Server) snapshotAnimations() []AnimationInfo {
	var infos []AnimationInfo
	s.drv.Do(func(sched *animation.Scheduler) {
		sched.Each(func(a *animation.Animation) bool {
			info := AnimationInfo{
				Target:     targetType(a.Target),
				Path:       a.Path.String(),
				StartValue: a.StartValue,
				EndValue:   a.EndValue,
				Current:    a.CurrentValue(),
				ElapsedMs:  a.Elapsed(),
				DurationMs: a.Duration,
				Repeat:     a.RepeatCount,
				Infinite:   a.RepeatCount == animation.RepeatInfinite,
				Reversing:  a.Reversing(),
				Delayed:    a.Elapsed() < 0,
			}
			if a.Duration > 0 && a.Elapsed() > 0 {
				info.Progress = float64(a.Elapsed()) / float64(a.Duration)
			}
			infos = append(infos, info)
			return true
		})
	})
	return infos
}

func (s *Server) handleAnimations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	infos := s.snapshotAnimations()
	if limit := parseIntQuery(r, "limit"); limit > 0 && len(infos) > limit {
		infos = infos[:limit]
	}

	resp := struct {
		Animations []AnimationInfo `json:"animations"`
		Count      int             `json:"count"`
	}{
		Animations: infos,
		Count:      len(infos),
	}
	writeJSON(w, resp)
}

func (s *Server) handleFrames(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := s.frames.Snapshot()

	if minMs := parseFloatQuery(r, "min_ms"); minMs > 0 {
		filtered := make([]FrameSample, 0, len(resp.Samples))
		for _, sample := range resp.Samples {
			if sample.FrameMs >= minMs {
				filtered = append(filtered, sample)
			}
		}
		resp.Samples = filtered
	}
	if limit := parseIntQuery(r, "limit"); limit > 0 && len(resp.Samples) > limit {
		resp.Samples = resp.Samples[len(resp.Samples)-limit:]
	}

	writeJSON(w, resp)
}

func (s *Server) handleRuntime(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	samples := s.runtime.Snapshot()

	if windowSeconds := parseFloatQuery(r, "window"); windowSeconds > 0 {
		cutoff := time.Now().Add(-time.Duration(windowSeconds * float64(time.Second))).UnixMilli()
		filtered := make([]RuntimeSample, 0, len(samples))
		for _, sample := range samples {
			if sample.Timestamp >= cutoff {
				filtered = append(filtered, sample)
			}
		}
		samples = filtered
	}
	if limit := parseIntQuery(r, "limit"); limit > 0 && len(samples) > limit {
		samples = samples[len(samples)-limit:]
	}

	resp := struct {
		Samples []RuntimeSample `json:"samples"`
	}{
		Samples: samples,
	}
	writeJSON(w, resp)
}

func (s *Server) handleDebug(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var info struct {
		Live      int                   `json:"live"`
		LastFrame animation.FrameReport `json:"lastFrame"`
	}
	s.drv.Do(func(sched *animation.Scheduler) {
		info.Live = sched.Count()
		info.LastFrame = sched.LastFrame()
	})
	writeJSON(w, info)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func parseIntQuery(r *http.Request, key string) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return 0
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0
	}
	return parsed
}

func parseFloatQuery(r *http.Request, key string) float64 {
	value := r.URL.Query().Get(key)
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed <= 0 {
		return 0
	}
	return parsed
}

func targetType(target any) string {
	if target == nil {
		return "<nil>"
	}
	return reflect.TypeOf(target).String()
}
