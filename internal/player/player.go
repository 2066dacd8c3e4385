// Package player plays glyph animations in the terminal. It drives a
// bubbletea model on the alternate screen with play, pause, step and
// restart controls.
package player

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"

	"glyphcast"
)

type playerState string

const (
	stateSizing  playerState = "sizing"
	stateLoading playerState = "loading"
	statePlaying playerState = "playing"
	statePaused  playerState = "paused"
	stateFailed  playerState = "failed"
)

var (
	titleStyle = color.New(color.FgHiCyan, color.Bold)
	keyStyle   = color.New(color.FgHiWhite, color.Bold)
	dimStyle   = color.New(color.FgHiBlack)
	errStyle   = color.New(color.FgHiRed, color.Bold)
	playBadge  = color.New(color.FgHiGreen, color.Bold)
	pauseBadge = color.New(color.FgHiYellow, color.Bold)
)

type errMsg struct{ err error }

type loadedMsg struct {
	animation *glyphcast.Animation
	frames    []string
}

type tickMsg time.Time

// Builder converts a source into an animation once the terminal size
// is known. The arguments are the window size in character cells.
type Builder func(winCols, winRows int) (*glyphcast.Animation, error)

// Model is the bubbletea model for the player.
type Model struct {
	state     playerState
	title     string
	colorMode glyphcast.ColorMode

	build     Builder
	animation *glyphcast.Animation

	frames  []string
	current int

	winCols int
	winRows int
	err     error
}

// Option configures a player Model.
type Option func(*Model)

// WithBuilder defers conversion until the first window size message,
// so the animation can be sized to the terminal.
func WithBuilder(build Builder) Option {
	return func(m *Model) {
		m.build = build
	}
}

// WithAnimation plays an animation that is already converted.
func WithAnimation(a *glyphcast.Animation) Option {
	return func(m *Model) {
		m.animation = a
	}
}

// WithColorMode sets how cell colors are rendered. The default is
// true color.
func WithColorMode(mode glyphcast.ColorMode) Option {
	return func(m *Model) {
		m.colorMode = mode
	}
}

// WithTitle sets the name shown in the status line.
func WithTitle(title string) Option {
	return func(m *Model) {
		m.title = title
	}
}

// New creates a player Model. Either WithBuilder or WithAnimation must
// be supplied.
func New(opts ...Option) Model {
	m := Model{
		state:     stateSizing,
		colorMode: glyphcast.ColorTrue,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init waits for the first window size message before doing any work.
func (m Model) Init() tea.Cmd {
	return nil
}

// load converts (or pre-renders) the animation off the event loop.
func (m Model) load() tea.Cmd {
	build := m.build
	animation := m.animation
	mode := m.colorMode
	cols, rows := m.winCols, m.winRows
	return func() tea.Msg {
		a := animation
		if build != nil {
			var err error
			a, err = build(cols, rows)
			if err != nil {
				return errMsg{err}
			}
		}
		if a == nil || len(a.Frames) == 0 {
			return errMsg{fmt.Errorf("nothing to play")}
		}
		frames := make([]string, len(a.Frames))
		for i, f := range a.Frames {
			frames[i] = glyphcast.RenderANSI(f, mode)
		}
		return loadedMsg{animation: a, frames: frames}
	}
}

// tick schedules the next frame advance at the animation's rate.
func (m Model) tick() tea.Cmd {
	fps := glyphcast.DefaultFPS
	if m.animation != nil && m.animation.FPS > 0 {
		fps = m.animation.FPS
	}
	interval := time.Duration(float64(time.Second) / fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles key presses, window sizing, load results and frame
// ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ", "enter":
			switch m.state {
			case statePlaying:
				m.state = statePaused
				return m, nil
			case statePaused:
				m.state = statePlaying
				return m, m.tick()
			}
		case "right", "l":
			if m.state == statePaused && len(m.frames) > 0 {
				m.current = (m.current + 1) % len(m.frames)
			}
			return m, nil
		case "left", "h":
			if m.state == statePaused && len(m.frames) > 0 {
				m.current = (m.current + len(m.frames) - 1) % len(m.frames)
			}
			return m, nil
		case "r":
			if m.state == statePlaying || m.state == statePaused {
				m.current = 0
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		if msg.Width <= 0 || msg.Height <= 0 {
			return m, nil
		}
		m.winCols, m.winRows = msg.Width, msg.Height
		switch m.state {
		case stateSizing:
			m.state = stateLoading
			return m, m.load()
		case statePlaying, statePaused:
			// Converted output is sized to the window, so a resize
			// means converting again. Decoded files keep their grid.
			if m.build != nil {
				m.state = stateLoading
				return m, m.load()
			}
		}
		return m, nil

	case loadedMsg:
		m.animation = msg.animation
		m.frames = msg.frames
		m.current = 0
		m.state = statePlaying
		return m, m.tick()

	case errMsg:
		m.state = stateFailed
		m.err = msg.err
		return m, nil

	case tickMsg:
		if m.state != statePlaying {
			return m, nil
		}
		m.current = (m.current + 1) % len(m.frames)
		return m, m.tick()
	}

	return m, nil
}

// View renders the current frame with a status line underneath.
func (m Model) View() string {
	switch m.state {
	case stateSizing, stateLoading:
		return fmt.Sprintf("\n  %s %s\n", titleStyle.Sprint("glyphcast"), dimStyle.Sprint("converting "+m.title+"..."))
	case stateFailed:
		return fmt.Sprintf("\n  %s %v\n\n  %s\n", errStyle.Sprint("error:"), m.err, m.helpView())
	}

	var sb strings.Builder
	sb.WriteString(m.frames[m.current])
	sb.WriteString(m.statusView())
	return sb.String()
}

func (m Model) statusView() string {
	badge := playBadge.Sprint("playing")
	if m.state == statePaused {
		badge = pauseBadge.Sprint("paused")
	}
	fps := glyphcast.DefaultFPS
	if m.animation.FPS > 0 {
		fps = m.animation.FPS
	}
	info := fmt.Sprintf("frame %d/%d  %dx%d  %g fps",
		m.current+1, len(m.frames), m.animation.Cols, m.animation.Rows, fps)
	return fmt.Sprintf("%s  %s  %s  %s\n",
		titleStyle.Sprint(m.title), badge, dimStyle.Sprint(info), m.helpView())
}

func (m Model) helpView() string {
	sep := dimStyle.Sprint(" · ")
	return strings.Join([]string{
		keyStyle.Sprint("space") + dimStyle.Sprint(" play/pause"),
		keyStyle.Sprint("←/→") + dimStyle.Sprint(" step"),
		keyStyle.Sprint("r") + dimStyle.Sprint(" restart"),
		keyStyle.Sprint("q") + dimStyle.Sprint(" quit"),
	}, sep)
}

// Run plays the model on the alternate screen until the user quits. A
// conversion failure surfaces as the returned error.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
