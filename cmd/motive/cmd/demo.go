package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-motive/motive/cmd/motive/internal/config"
	"github.com/go-motive/motive/pkg/animation"
	"github.com/go-motive/motive/pkg/driver"
	"github.com/go-motive/motive/pkg/inspect"
)

func init() {
	RegisterCommand(&Command{
		Name:  "demo",
		Short: "Run the interactive easing demo",
		Long: `Run an interactive terminal demo that animates one bar per easing
path. Every bar sweeps 0 to 100 and back forever, so the character of
each curve is visible side by side. The last bar follows a spring
trajectory instead of a fixed-duration path.

Keys:
  space   pause / resume the animation driver
  r       restart all bars from zero
  q       quit

With --debug-port the demo also serves the HTTP inspector, which
exposes live animation state and frame timings as JSON.`,
		Usage: "motive demo [--fps N] [--debug-port PORT]",
		Run:   runDemo,
	})
}

func runDemo(args []string) error {
	fps := 0
	debugPort := -1

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--fps":
			if i+1 >= len(args) {
				return fmt.Errorf("--fps requires a value")
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil {
				return fmt.Errorf("invalid --fps value %q", args[i+1])
			}
			fps = n
			i++
		case strings.HasPrefix(arg, "--fps="):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "--fps="))
			if err != nil {
				return fmt.Errorf("invalid --fps value %q", arg)
			}
			fps = n
		case arg == "--debug-port":
			if i+1 >= len(args) {
				return fmt.Errorf("--debug-port requires a value")
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil {
				return fmt.Errorf("invalid --debug-port value %q", args[i+1])
			}
			debugPort = n
			i++
		case strings.HasPrefix(arg, "--debug-port="):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "--debug-port="))
			if err != nil {
				return fmt.Errorf("invalid --debug-port value %q", arg)
			}
			debugPort = n
		default:
			return fmt.Errorf("unknown argument %q", arg)
		}
	}

	// Pick up motive.yaml when run inside a project; flags win.
	if root, err := config.FindProjectRoot(); err == nil {
		if cfg, err := config.Resolve(root); err == nil {
			if fps == 0 {
				fps = cfg.FPS
			}
			if debugPort < 0 && cfg.Port > 0 {
				debugPort = cfg.Port
			}
		}
	}
	if fps == 0 {
		fps = config.DefaultFPS
	}
	if fps < 1 || fps > 240 {
		return fmt.Errorf("fps must be between 1 and 240 (got %d)", fps)
	}

	m := newDemoModel(fps)
	m.drv.Start()
	defer m.drv.Stop()

	if debugPort >= 0 {
		srv := inspect.New(m.drv)
		port, err := srv.Start(debugPort)
		if err != nil {
			return fmt.Errorf("failed to start inspector: %w", err)
		}
		defer srv.Shutdown()
		fmt.Printf("Inspector listening on http://127.0.0.1:%d\n", port)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

const (
	demoSweepMs = 1400
	demoBarMax  = 100
)

// demoBar is one animated row of the demo.
type demoBar struct {
	name  string
	path  animation.Path
	value atomic.Int32
}

type demoModel struct {
	drv    *driver.Driver
	bars   []*demoBar
	fps    int
	paused bool
}

type demoFrameMsg time.Time

func newDemoModel(fps int) *demoModel {
	sched := animation.NewScheduler()
	m := &demoModel{
		drv: driver.New(sched, time.Second/time.Duration(fps)),
		fps: fps,
	}

	for _, p := range []animation.Path{
		animation.Linear,
		animation.EaseIn,
		animation.EaseOut,
		animation.EaseInOut,
		animation.Overshoot,
		animation.Bounce,
		animation.Step,
	} {
		m.bars = append(m.bars, &demoBar{name: p.String(), path: p})
	}
	m.bars = append(m.bars, &demoBar{name: "spring", path: animation.Custom(springPath())})

	m.startBars()
	return m
}

// startBars registers one endless ping-pong animation per bar.
func (m *demoModel) startBars() {
	m.drv.Do(func(s *animation.Scheduler) {
		for _, bar := range m.bars {
			a := animation.New()
			a.Target = bar
			a.Apply = func(_ any, v int32) { bar.value.Store(v) }
			a.StartValue = 0
			a.EndValue = demoBarMax
			a.Duration = demoSweepMs
			a.PlaybackDuration = demoSweepMs
			a.RepeatCount = animation.RepeatInfinite
			a.Path = bar.path
			if err := s.Start(a); err != nil {
				fmt.Printf("failed to start %s: %v\n", bar.name, err)
			}
		}
	})
}

// springPath precomputes a critically-under-damped spring trajectory and
// samples it by progress, so the spring can ride the fixed-duration
// scheduler like any other path.
func springPath() animation.PathFunc {
	const samples = 120
	spring := harmonica.NewSpring(harmonica.FPS(samples), 7.0, 0.35)

	table := make([]int32, samples+1)
	pos, vel := 0.0, 0.0
	for i := 1; i <= samples; i++ {
		pos, vel = spring.Update(pos, vel, 1.0)
		table[i] = int32(pos * 1024)
	}
	table[samples] = 1024

	return func(a *animation.Animation) int32 {
		d := a.Duration
		if d <= 0 || a.Elapsed() >= d {
			return a.EndValue
		}
		e := a.Elapsed()
		if e < 0 {
			e = 0
		}
		step := table[int(int64(e)*samples/int64(d))]
		return a.StartValue + int32(int64(step)*int64(a.EndValue-a.StartValue)>>10)
	}
}

func (m *demoModel) Init() tea.Cmd {
	return m.frameTick()
}

func (m *demoModel) frameTick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return demoFrameMsg(t)
	})
}

func (m *demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case " ":
			if m.paused {
				m.drv.Start()
			} else {
				m.drv.Stop()
			}
			m.paused = !m.paused
		case "r":
			m.drv.Do(func(s *animation.Scheduler) {
				s.CancelAll()
			})
			for _, bar := range m.bars {
				bar.value.Store(0)
			}
			m.startBars()
		}
	case demoFrameMsg:
		return m, m.frameTick()
	}
	return m, nil
}

var (
	demoTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	demoNameStyle  = lipgloss.NewStyle().Width(12).Foreground(lipgloss.Color("245"))
	demoBarStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	demoValStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	demoHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

const demoBarWidth = 40

func (m *demoModel) View() string {
	var b strings.Builder

	b.WriteString(demoTitleStyle.Render("Motive easing demo"))
	if m.paused {
		b.WriteString(demoHelpStyle.Render("  (paused)"))
	}
	b.WriteString("\n\n")

	for _, bar := range m.bars {
		v := bar.value.Load()
		filled := int(int64(clampDemo(v)) * demoBarWidth / demoBarMax)
		track := strings.Repeat("█", filled) + strings.Repeat("░", demoBarWidth-filled)

		b.WriteString(demoNameStyle.Render(bar.name))
		b.WriteString(demoBarStyle.Render(track))
		b.WriteString(demoValStyle.Render(fmt.Sprintf(" %4d", v)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(demoHelpStyle.Render("space pause/resume · r restart · q quit"))
	b.WriteString("\n")
	return b.String()
}

func clampDemo(v int32) int32 {
	if v < 0 {
		return 0
	}
	if v > demoBarMax {
		return demoBarMax
	}
	return v
}
