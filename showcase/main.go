// Command showcase walks through the Motive API end to end: raw animations,
// typed tweens, playback and repeat, all pumped by the frame driver.
//
// Run it with:
//
//	go run ./showcase
package main

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-motive/motive/pkg/animation"
	"github.com/go-motive/motive/pkg/driver"
	"github.com/go-motive/motive/pkg/tween"
)

func main() {
	sched := animation.NewScheduler()
	drv := driver.New(sched, driver.DefaultInterval)
	drv.Start()
	defer drv.Stop()

	stageProgressBar(drv)
	stageColorFade(drv)
	stageBouncePulse(drv)

	fmt.Println("\nAll stages complete.")
}

// stageProgressBar animates a download-style percentage with EaseInOut.
func stageProgressBar(drv *driver.Driver) {
	fmt.Println("Stage 1: eased progress bar")

	var pct atomic.Int32
	done := make(chan struct{})

	drv.Do(func(s *animation.Scheduler) {
		a := animation.New()
		a.Target = &pct
		a.Apply = func(_ any, v int32) { pct.Store(v) }
		a.Duration = 1500
		a.Path = animation.EaseInOut
		a.OnReady = func(*animation.Animation) { close(done) }
		if err := s.Start(a); err != nil {
			fmt.Println("start failed:", err)
			close(done)
		}
	})

	renderUntil(done, func() string {
		v := pct.Load()
		filled := int(v) * 30 / 100
		return fmt.Sprintf("\r  [%-30s] %3d%%", strings.Repeat("=", filled), v)
	})
	fmt.Println()
}

// stageColorFade cross-fades between two colors with a typed tween.
func stageColorFade(drv *driver.Driver) {
	fmt.Println("Stage 2: color tween")

	tw := tween.Color(0xff1e6fd9, 0xffd94a1e)

	var swatch atomic.Uint32
	swatch.Store(tw.Begin)
	done := make(chan struct{})

	drv.Do(func(s *animation.Scheduler) {
		a := tw.Animate(func(c uint32) { swatch.Store(c) })
		a.Duration = 1200
		a.Path = animation.Linear
		a.OnReady = func(*animation.Animation) { close(done) }
		if err := s.Start(a); err != nil {
			fmt.Println("start failed:", err)
			close(done)
		}
	})

	renderUntil(done, func() string {
		c := swatch.Load()
		r, g, b := (c>>16)&0xff, (c>>8)&0xff, c&0xff
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm%s\x1b[0m", r, g, b, strings.Repeat(" ", 24))
		return fmt.Sprintf("\r  %s #%02x%02x%02x", block, r, g, b)
	})
	fmt.Println()
}

// stageBouncePulse runs a there-and-back sweep with two repeats and a
// bouncing return leg.
func stageBouncePulse(drv *driver.Driver) {
	fmt.Println("Stage 3: bounce pulse (2 round trips)")

	var pos atomic.Int32
	done := make(chan struct{})

	drv.Do(func(s *animation.Scheduler) {
		a := animation.New()
		a.Target = &pos
		a.Apply = func(_ any, v int32) { pos.Store(v) }
		a.StartValue = 0
		a.EndValue = 28
		a.Duration = 700
		a.PlaybackDuration = 700
		a.RepeatCount = 2
		a.Path = animation.Bounce
		a.OnReady = func(*animation.Animation) { close(done) }
		if err := s.Start(a); err != nil {
			fmt.Println("start failed:", err)
			close(done)
		}
	})

	renderUntil(done, func() string {
		v := int(pos.Load())
		if v < 0 {
			v = 0
		}
		if v > 28 {
			v = 28
		}
		return fmt.Sprintf("\r  |%s●%s|", strings.Repeat(" ", v), strings.Repeat(" ", 28-v))
	})
	fmt.Println()
}

// renderUntil repaints one status line at ~30fps until done closes.
func renderUntil(done chan struct{}, line func() string) {
	ticker := time.NewTicker(33 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			fmt.Print(line())
			return
		case <-ticker.C:
			fmt.Print(line())
		}
	}
}
