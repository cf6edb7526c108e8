package viz

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/patrickmn/go-cache"

	"github.com/san-kum/loewner/internal/config"
	"github.com/san-kum/loewner/internal/experiment"
)

// steps applied by +/- to the main parameter of each source
const (
	kappaStep = 0.5
	hurstStep = 0.05
	coeffStep = 0.5
)

var viewerDomains = []string{"chordal", "radial", "dipolar"}

type traceMsg struct {
	key    string
	result *experiment.Result
	err    error
}

// Viewer is a Bubble Tea model that draws one trace at a time.
type Viewer struct {
	cfg    *config.Config
	traces *cache.Cache

	result  *experiment.Result
	err     error
	loading bool

	width, height int
}

func NewViewer(cfg *config.Config) *Viewer {
	return &Viewer{
		cfg:    cfg.Clone(),
		traces: cache.New(5*time.Minute, 10*time.Minute),
		width:  80,
		height: 24,
	}
}

// Config returns the configuration of the trace currently shown.
func (m *Viewer) Config() *config.Config {
	return m.cfg.Clone()
}

func (m *Viewer) Init() tea.Cmd {
	return m.compute()
}

func (m *Viewer) key() string {
	return fmt.Sprintf("%s/%s/%v/%d/%d/%g/%g",
		m.cfg.Domain, m.cfg.Source, m.cfg.Drive, m.cfg.Seed, m.cfg.Points, m.cfg.Tf, m.cfg.Width)
}

// adjust moves the main parameter of the configured source one step in the
// direction of sign.
func (m *Viewer) adjust(sign float64) {
	d := &m.cfg.Drive
	switch m.cfg.Source {
	case "fractional":
		d.Hurst = math.Min(1, math.Max(hurstStep, d.Hurst+sign*hurstStep))
	case "power":
		d.Coeff += sign * coeffStep
	default:
		d.Kappa = max(0, d.Kappa+sign*kappaStep)
	}
}

func (m *Viewer) label() string {
	d := m.cfg.Drive
	switch m.cfg.Source {
	case "fractional":
		return fmt.Sprintf("fBm(H=%.2f)", d.Hurst)
	case "power":
		return fmt.Sprintf("u=%.2ft^%.2f", d.Coeff, d.Exponent)
	default:
		return fmt.Sprintf("SLE(%.2f)", d.Kappa)
	}
}

func (m *Viewer) compute() tea.Cmd {
	key := m.key()
	if v, ok := m.traces.Get(key); ok {
		res := v.(*experiment.Result)
		return func() tea.Msg { return traceMsg{key: key, result: res} }
	}

	m.loading = true
	cfg := m.cfg.Clone()
	return func() tea.Msg {
		res, err := experiment.Run(context.Background(), cfg, nil)
		return traceMsg{key: key, result: res, err: err}
	}
}

func (m *Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "d":
			m.cfg.Domain = nextDomain(m.cfg.Domain)
			return m, m.compute()
		case "+", "=":
			m.adjust(1)
			return m, m.compute()
		case "-", "_":
			m.adjust(-1)
			return m, m.compute()
		case "r":
			m.cfg.Seed++
			return m, m.compute()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case traceMsg:
		// stale results from a previous configuration are only cached
		if msg.err == nil {
			m.traces.SetDefault(msg.key, msg.result)
		}
		if msg.key != m.key() {
			return m, nil
		}
		m.loading = false
		m.result = msg.result
		m.err = msg.err
	}

	return m, nil
}

func (m *Viewer) View() string {
	header := Title.Render(strings.ToUpper(m.cfg.Domain)+" "+m.label()) +
		MetricLabel.Render(fmt.Sprintf("  seed %d  n %d", m.cfg.Seed, m.cfg.Points))

	plotW := max(m.width-6, 10)
	plotH := max(m.height-10, 4)

	var body string
	switch {
	case m.loading:
		body = MetricLabel.Render("computing trace...")
	case m.err != nil:
		body = ErrorText.Render(m.err.Error())
	case m.result != nil:
		body = TraceStyle.Render(strings.TrimRight(
			Plot(m.result.Trace, m.result.Domain, m.cfg.Width, plotW, plotH), "\n"))
	}

	lines := []string{header, Panel.Render(body)}
	if m.result != nil && m.err == nil {
		lines = append(lines, "drive "+Sparkline(m.result.Drive, plotW-6))
		lines = append(lines, m.metricsLine())
	}
	lines = append(lines, KeyHint.Render("d domain  +/- parameter  r reseed  q quit"))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Viewer) metricsLine() string {
	names := make([]string, 0, len(m.result.Metrics))
	for name := range m.result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(MetricLabel.Render(name + " "))
		b.WriteString(MetricValue.Render(fmt.Sprintf("%.4g", m.result.Metrics[name])))
		b.WriteString("  ")
	}
	b.WriteString(MetricLabel.Render(m.result.Elapsed.Round(time.Microsecond).String()))
	return b.String()
}

func nextDomain(current string) string {
	for i, d := range viewerDomains {
		if d == current {
			return viewerDomains[(i+1)%len(viewerDomains)]
		}
	}
	return viewerDomains[0]
}

// RunViewer starts the viewer in the alternate screen and returns the
// configuration of the last trace shown.
func RunViewer(cfg *config.Config) (*config.Config, error) {
	p := tea.NewProgram(NewViewer(cfg), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	if v, ok := final.(*Viewer); ok {
		return v.Config(), nil
	}
	return cfg, nil
}
