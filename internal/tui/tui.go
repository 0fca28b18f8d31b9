package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/pokerclock/internal/sound"
	"github.com/lox/pokerclock/internal/structure"
	"github.com/lox/pokerclock/internal/tournament"
)

const (
	adjustSeconds = 10
	seekStep      = 0.05
	sidePanelW    = 26
)

// Config wires the display to the engine and its collaborators.
type Config struct {
	State       *tournament.State
	Ticker      *tournament.Ticker
	Sound       sound.Player
	Schedule    structure.Schedule // loaded again by the start key
	ChipOptions []int
	Logger      *log.Logger
}

// Model is the Bubble Tea model for the tournament clock. It is the only
// writer of the tournament state: ticks and key presses are both applied in
// Update.
type Model struct {
	ctx      context.Context
	state    *tournament.State
	ticker   *tournament.Ticker
	sound    sound.Player
	schedule structure.Schedule
	logger   *log.Logger

	chipOptions []int
	chipIndex   int

	// UI components
	keys     keyMap
	help     help.Model
	bar      progress.Model
	entrants viewport.Model

	status   string
	quitting bool

	// Dimensions
	width  int
	height int
}

// tickMsg carries a ticker tick into the update loop
type tickMsg tournament.Tick

// NewModel creates the display model. ctx bounds the ticker runs it starts.
func NewModel(ctx context.Context, cfg Config) *Model {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 40

	return &Model{
		ctx:         ctx,
		state:       cfg.State,
		ticker:      cfg.Ticker,
		sound:       cfg.Sound,
		schedule:    cfg.Schedule,
		logger:      cfg.Logger.WithPrefix("tui"),
		chipOptions: cfg.ChipOptions,
		keys:        defaultKeyMap(),
		help:        help.New(),
		bar:         bar,
		entrants:    viewport.New(sidePanelW-2, 10),
	}
}

// Init starts listening for ticks
func (m *Model) Init() tea.Cmd {
	return m.waitForTick()
}

// waitForTick returns a command that delivers the next tick
func (m *Model) waitForTick() tea.Cmd {
	return func() tea.Msg {
		return tickMsg(<-m.ticker.C())
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tickMsg:
		if m.ticker.Current(tournament.Tick(msg)) {
			m.handleEvents(m.state.Tick())
			m.syncTicker()
		}
		return m, m.waitForTick()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.ticker.Stop()
			m.quitting = true
			return m, tea.Quit
		}
		m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Pause):
		if !m.state.HasSchedule() {
			m.status = "No tournament loaded, press s to start"
			return
		}
		m.state.TogglePause()
	case key.Matches(msg, m.keys.Next):
		m.handleEvents(m.state.AdvanceLevel())
	case key.Matches(msg, m.keys.Prev):
		m.state.RetreatLevel()
	case key.Matches(msg, m.keys.AddTime):
		m.state.AdjustTime(adjustSeconds)
	case key.Matches(msg, m.keys.SubTime):
		m.state.AdjustTime(-adjustSeconds)
	case key.Matches(msg, m.keys.SeekBack):
		m.seek(-seekStep)
	case key.Matches(msg, m.keys.SeekForward):
		m.seek(seekStep)
	case key.Matches(msg, m.keys.AddPlayer):
		m.state.AddPlayer()
	case key.Matches(msg, m.keys.RemovePlayer):
		m.state.RemovePlayer()
	case key.Matches(msg, m.keys.CycleChips):
		if len(m.chipOptions) > 0 {
			m.chipIndex = (m.chipIndex + 1) % len(m.chipOptions)
		}
	case key.Matches(msg, m.keys.AddChips):
		if amount, ok := m.selectedChips(); ok {
			m.state.AddChips(amount)
		}
	case key.Matches(msg, m.keys.HeadsUp):
		if !m.state.SetHeadsUp() {
			m.status = "Heads-up needs at least two entrants"
		}
	case key.Matches(msg, m.keys.Finish):
		m.state.Reset()
		m.status = "Tournament finished, press s to start a new one"
		m.logger.Info("Tournament finished")
	case key.Matches(msg, m.keys.Start):
		m.state.Start(m.schedule)
		m.chipIndex = 0
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	m.syncTicker()
}

// seek moves the scrub position by delta, clamped to the entry.
func (m *Model) seek(delta float64) {
	if !m.state.HasSchedule() {
		return
	}
	fraction := min(max(m.state.Display().Progress+delta, 0), 1)
	m.state.SeekTime(fraction)
}

func (m *Model) selectedChips() (int, bool) {
	if len(m.chipOptions) == 0 {
		return 0, false
	}
	return m.chipOptions[m.chipIndex], true
}

// syncTicker runs the ticker exactly while the clock is running.
func (m *Model) syncTicker() {
	if m.state.Paused() {
		m.ticker.Stop()
	} else {
		m.ticker.Start(m.ctx)
	}
}

func (m *Model) handleEvents(events []tournament.Event) {
	for _, event := range events {
		m.logger.Debug("Clock event", "type", event.Type, "index", event.Index)
		if m.sound != nil {
			m.sound.Play(event)
		}
		if event.Type == tournament.EventTypeScheduleComplete {
			m.status = "Schedule complete"
		}
	}
}

func (m *Model) resize() {
	centerW := max(m.width-2*(sidePanelW+4)-4, 20)
	m.bar.Width = max(centerW-4, 10)
	m.help.Width = m.width
	m.entrants.Width = sidePanelW - 2
	m.entrants.Height = max(m.height-14, 3)
}

// View renders the clock
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	// Don't render until we have valid dimensions
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	d := m.state.Display()
	m.entrants.SetContent(strings.Join(m.state.Entrants(), "\n"))

	panelH := max(m.height-4, 10)
	left := PanelStyle.Width(sidePanelW).Height(panelH).Render(m.renderStats(d))
	right := PanelStyle.Width(sidePanelW).Height(panelH).Render(m.renderControls())
	centerW := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 20)
	center := CenterPanelStyle.Width(centerW).Height(panelH).Render(m.renderClock(d))

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, center, right)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.help.View(m.keys))
}

func stat(caption, figure, detail string) string {
	var b strings.Builder
	b.WriteString(CaptionStyle.Render(caption))
	b.WriteString("\n")
	b.WriteString(FigureStyle.Render(figure))
	if detail != "" {
		b.WriteString("\n")
		b.WriteString(CaptionStyle.Render(detail))
	}
	b.WriteString("\n\n")
	return b.String()
}

// renderStats renders the left-hand statistics panel
func (m *Model) renderStats(d tournament.Display) string {
	var b strings.Builder
	b.WriteString(stat("TOTAL TIME", d.Elapsed, ""))
	b.WriteString(stat("TOTAL CHIPS", d.TotalChips, d.TotalChipsBB))
	b.WriteString(stat("AVR STACK", d.AverageStack, d.AverageStackBB))
	b.WriteString(stat("PLAYERS", d.Players, ""))
	b.WriteString(stat("NEXT BREAK", d.NextBreak, d.NextBreakDetail))
	return b.String()
}

// renderClock renders the centre panel: level, countdown and blinds
func (m *Model) renderClock(d tournament.Display) string {
	levelStyle, blindsStyle := LevelStyle, BlindsStyle
	if d.OnBreak {
		levelStyle, blindsStyle = BreakStyle, BreakBlindsStyle
	}

	lines := []string{
		levelStyle.Render(d.LevelLabel),
		TimerStyle.Render(d.LevelRemaining),
		blindsStyle.Render(d.BlindsLabel),
		NextLevelStyle.Render(d.NextLevelLabel),
		"",
		m.bar.ViewAs(d.Progress),
	}

	state := "RUNNING"
	if d.Paused {
		state = "PAUSED"
	}
	lines = append(lines, "", CaptionStyle.Render(state))
	if m.status != "" {
		lines = append(lines, WarningStyle.Render(m.status))
	}
	return strings.Join(lines, "\n")
}

// renderControls renders the right-hand panel: chip selector and entrants
func (m *Model) renderControls() string {
	var b strings.Builder
	b.WriteString(CaptionStyle.Render("CHIPS"))
	b.WriteString("\n")
	if amount, ok := m.selectedChips(); ok {
		b.WriteString(ChipsStyle.Render(tournament.FormatChips(amount)))
	} else {
		b.WriteString(CaptionStyle.Render("none configured"))
	}
	b.WriteString("\n\n")
	b.WriteString(HeaderStyle.Render("Entry"))
	b.WriteString("\n")
	b.WriteString(m.entrants.View())
	return b.String()
}
