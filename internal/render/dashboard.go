package render

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/network_traffic_monitor/internal/model"
)

// Dashboard view modes: which rate series drives the bars.
const (
	ViewRaw  = "raw"
	ViewEMA  = "ema"
	ViewBoth = "both"
)

const barWidth = 50

// Dashboard renders samples as a full-screen live view. It owns a Bubble Tea
// program; Render hands the sample to the running program as a message, so
// the driver loop stays identical across renderer variants.
type Dashboard struct {
	prog *tea.Program
	done chan struct{}
	err  error
}

func NewDashboard(view string) *Dashboard {
	d := &Dashboard{done: make(chan struct{})}
	d.prog = tea.NewProgram(newDashModel(view), tea.WithAltScreen())
	return d
}

// Start launches the terminal program. Done is closed when it exits, either
// because the user quit or the terminal failed.
func (d *Dashboard) Start() {
	go func() {
		_, err := d.prog.Run()
		d.err = err
		close(d.done)
	}()
}

func (d *Dashboard) Render(s model.Sample) { d.prog.Send(sampleMsg(s)) }

func (d *Dashboard) Done() <-chan struct{} { return d.done }

// Stop tears the program down and restores the terminal.
func (d *Dashboard) Stop() error {
	d.prog.Quit()
	<-d.done
	return d.err
}

type sampleMsg model.Sample

// dashModel carries the cross-tick dashboard state: the latest sample and
// the running maxima that scale the bars. Maxima never decrease, so a bar
// compresses after a traffic peak instead of rescaling downward.
type dashModel struct {
	view    string
	latest  model.Sample
	seen    bool
	maxSent float64
	maxRecv float64
	width   int
}

func newDashModel(view string) *dashModel {
	return &dashModel{view: view, maxSent: 1.0, maxRecv: 1.0, width: 80}
}

func (m *dashModel) Init() tea.Cmd { return nil }

func (m *dashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case sampleMsg:
		m.latest = model.Sample(msg)
		m.seen = true
		sent, recv := m.barMetrics()
		if sent > m.maxSent {
			m.maxSent = sent
		}
		if recv > m.maxRecv {
			m.maxRecv = recv
		}
	}
	return m, nil
}

// barMetrics picks the rate series that drives the bars: instantaneous for
// the raw view, smoothed otherwise.
func (m *dashModel) barMetrics() (sent, recv float64) {
	if m.view == ViewRaw {
		return m.latest.SentRate, m.latest.RecvRate
	}
	return m.latest.SentRateEMA, m.latest.RecvRateEMA
}

// Styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	outStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	inStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
	gaugeFill   = "█"
	gaugeEmpty  = "░"
	cardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1)
)

func (m *dashModel) View() string {
	if !m.seen {
		return subtleStyle.Render("waiting for first sample...")
	}
	s := m.latest

	header := titleStyle.Render(fmt.Sprintf("NETWORK TRAFFIC [%s] (%s)", s.Iface, strings.ToUpper(m.view)))

	speed := card("Current Speed", m.speedLines(s))

	barSent, barRecv := m.barMetrics()
	cells := m.barCells()
	bars := card("Traffic Level",
		fmt.Sprintf("OUT [%s]\nIN  [%s]",
			outStyle.Render(bar(barSent, m.maxSent, cells)),
			inStyle.Render(bar(barRecv, m.maxRecv, cells))))

	totals := card("Total since start",
		fmt.Sprintf("Sent: %s\nRecv: %s\nTime: %d sec",
			Humanize(float64(s.TotalSent), false),
			Humanize(float64(s.TotalRecv), false),
			int64(s.Uptime)))

	footer := subtleStyle.Render("q to exit | " + s.Timestamp.Format("15:04:05"))

	return lipgloss.JoinVertical(lipgloss.Left, header, speed, bars, totals, footer)
}

func (m *dashModel) speedLines(s model.Sample) string {
	switch m.view {
	case ViewBoth:
		return fmt.Sprintf("OUT: raw %s | avg %s\nIN:  raw %s | avg %s",
			subtleStyle.Render(pad(Humanize(s.SentRate, true))),
			outStyle.Render(pad(Humanize(s.SentRateEMA, true))),
			subtleStyle.Render(pad(Humanize(s.RecvRate, true))),
			inStyle.Render(pad(Humanize(s.RecvRateEMA, true))))
	case ViewEMA:
		return fmt.Sprintf("OUT: %s\nIN:  %s",
			outStyle.Render(pad(Humanize(s.SentRateEMA, true))),
			inStyle.Render(pad(Humanize(s.RecvRateEMA, true))))
	default:
		return fmt.Sprintf("OUT: %s\nIN:  %s",
			outStyle.Render(pad(Humanize(s.SentRate, true))),
			inStyle.Render(pad(Humanize(s.RecvRate, true))))
	}
}

// barCells shrinks the fixed bar when the terminal is narrower than the bar
// plus its "OUT [...]" framing and the card border.
func (m *dashModel) barCells() int {
	cells := barWidth
	if avail := m.width - 10; avail < cells {
		cells = avail
	}
	if cells < 1 {
		cells = 1
	}
	return cells
}

// bar fills cells proportionally to value against the running ceiling. A
// negative value (counter reset) draws as empty rather than panicking on a
// negative repeat count.
func bar(value, ceiling float64, cells int) string {
	ratio := value / ceiling
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(cells))
	return strings.Repeat(gaugeFill, filled) + strings.Repeat(gaugeEmpty, cells-filled)
}

func pad(s string) string { return fmt.Sprintf("%10s", s) }

func card(title, body string) string {
	return cardStyle.Render(labelStyle.Render(title) + "\n" + body)
}
