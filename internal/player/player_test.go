package player

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"glyphcast"
)

// testClip builds a two-frame 1x1 animation with distinct characters.
func testClip() *glyphcast.Animation {
	frame := func(ch rune) *glyphcast.AsciiFrame {
		return &glyphcast.AsciiFrame{
			Cols:  1,
			Rows:  1,
			Cells: []glyphcast.ChunkResult{{Char: ch}},
		}
	}
	return &glyphcast.Animation{
		FPS:    24,
		Cols:   1,
		Rows:   1,
		Frames: []*glyphcast.AsciiFrame{frame('A'), frame('B')},
	}
}

// step applies a message and unwraps the returned model.
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

// playingModel drives a fresh model through sizing and loading.
func playingModel(t *testing.T, opts ...Option) Model {
	t.Helper()
	m := New(append([]Option{WithColorMode(glyphcast.ColorNone)}, opts...)...)
	m, cmd := step(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	if cmd == nil {
		t.Fatal("First window size should start loading")
	}
	m, cmd = step(t, m, cmd())
	if m.state != statePlaying {
		t.Fatalf("Model is %q after loading, want playing", m.state)
	}
	if cmd == nil {
		t.Fatal("Loading should schedule the first tick")
	}
	return m
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitWaitsForWindowSize(t *testing.T) {
	t.Parallel()

	m := New(WithAnimation(testClip()), WithTitle("clip"))
	if m.Init() != nil {
		t.Error("Init should not issue a command before the window size is known")
	}
	if !strings.Contains(m.View(), "converting clip") {
		t.Errorf("Pre-load view %q should show the converting notice", m.View())
	}
}

func TestZeroWindowSizeIgnored(t *testing.T) {
	t.Parallel()

	m := New(WithAnimation(testClip()))
	m, cmd := step(t, m, tea.WindowSizeMsg{Width: 0, Height: 0})
	if cmd != nil {
		t.Error("A zero-sized window should not start loading")
	}
	if m.state != stateSizing {
		t.Errorf("State = %q, want sizing", m.state)
	}
}

func TestLoadProducesFrames(t *testing.T) {
	t.Parallel()

	m := playingModel(t, WithAnimation(testClip()), WithTitle("clip"))
	if len(m.frames) != 2 {
		t.Fatalf("Loaded %d frames, want 2", len(m.frames))
	}
	if m.frames[0] != "A\n" {
		t.Errorf("Frame 0 = %q, want %q", m.frames[0], "A\n")
	}

	view := m.View()
	if !strings.Contains(view, "A\n") {
		t.Errorf("View %q should show the current frame", view)
	}
	if !strings.Contains(view, "frame 1/2") {
		t.Errorf("View %q should show the frame position", view)
	}
}

func TestTickAdvancesAndWraps(t *testing.T) {
	t.Parallel()

	m := playingModel(t, WithAnimation(testClip()))

	m, cmd := step(t, m, tickMsg{})
	if m.current != 1 {
		t.Errorf("After one tick current = %d, want 1", m.current)
	}
	if cmd == nil {
		t.Error("A playing model should schedule the next tick")
	}

	m, _ = step(t, m, tickMsg{})
	if m.current != 0 {
		t.Errorf("Playback should wrap, current = %d, want 0", m.current)
	}
}

func TestSpaceTogglesPause(t *testing.T) {
	t.Parallel()

	m := playingModel(t, WithAnimation(testClip()))

	m, _ = step(t, m, keyMsg(" "))
	if m.state != statePaused {
		t.Fatalf("State = %q after space, want paused", m.state)
	}
	if !strings.Contains(m.View(), "paused") {
		t.Error("View should show the paused badge")
	}

	// Ticks are ignored while paused.
	m, cmd := step(t, m, tickMsg{})
	if m.current != 0 || cmd != nil {
		t.Error("A paused model should ignore ticks")
	}

	m, cmd = step(t, m, keyMsg(" "))
	if m.state != statePlaying {
		t.Fatalf("State = %q after second space, want playing", m.state)
	}
	if cmd == nil {
		t.Error("Resuming should schedule a tick")
	}
}

func TestStepKeysWhenPaused(t *testing.T) {
	t.Parallel()

	m := playingModel(t, WithAnimation(testClip()))

	// Stepping only works while paused.
	m, _ = step(t, m, keyMsg("l"))
	if m.current != 0 {
		t.Errorf("Stepping while playing moved to frame %d", m.current)
	}

	m, _ = step(t, m, keyMsg(" "))
	m, _ = step(t, m, keyMsg("l"))
	if m.current != 1 {
		t.Errorf("After step forward current = %d, want 1", m.current)
	}
	m, _ = step(t, m, keyMsg("l"))
	if m.current != 0 {
		t.Errorf("Step forward should wrap, current = %d, want 0", m.current)
	}
	m, _ = step(t, m, keyMsg("h"))
	if m.current != 1 {
		t.Errorf("Step back should wrap, current = %d, want 1", m.current)
	}

	m, _ = step(t, m, keyMsg("r"))
	if m.current != 0 {
		t.Errorf("Restart should rewind, current = %d, want 0", m.current)
	}
}

func TestQuitKeys(t *testing.T) {
	t.Parallel()

	m := playingModel(t, WithAnimation(testClip()))
	for _, msg := range []tea.KeyMsg{keyMsg("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		_, cmd := step(t, m, msg)
		if cmd == nil {
			t.Fatalf("Key %q should quit", msg.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("Key %q produced %T, want tea.QuitMsg", msg.String(), cmd())
		}
	}
}

func TestBuilderReceivesWindowSize(t *testing.T) {
	t.Parallel()

	var gotCols, gotRows int
	build := func(winCols, winRows int) (*glyphcast.Animation, error) {
		gotCols, gotRows = winCols, winRows
		return testClip(), nil
	}

	playingModel(t, WithBuilder(build))
	if gotCols != 80 || gotRows != 24 {
		t.Errorf("Builder saw window %dx%d, want 80x24", gotCols, gotRows)
	}
}

func TestResizeRebuildsConvertedOutput(t *testing.T) {
	t.Parallel()

	calls := 0
	build := func(winCols, winRows int) (*glyphcast.Animation, error) {
		calls++
		return testClip(), nil
	}

	m := playingModel(t, WithBuilder(build))
	if calls != 1 {
		t.Fatalf("Builder ran %d times, want 1", calls)
	}

	m, cmd := step(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.state != stateLoading || cmd == nil {
		t.Fatal("Resizing a built animation should reload")
	}
	if _, ok := cmd().(loadedMsg); !ok {
		t.Fatal("Reload should produce a loadedMsg")
	}
	if calls != 2 {
		t.Errorf("Builder ran %d times after resize, want 2", calls)
	}
}

func TestResizeKeepsDecodedAnimation(t *testing.T) {
	t.Parallel()

	m := playingModel(t, WithAnimation(testClip()))
	m, cmd := step(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.state != statePlaying || cmd != nil {
		t.Error("Resizing a decoded animation should not reload")
	}
}

func TestBuildFailureShowsError(t *testing.T) {
	t.Parallel()

	build := func(winCols, winRows int) (*glyphcast.Animation, error) {
		return nil, errors.New("boom")
	}

	m := New(WithBuilder(build), WithColorMode(glyphcast.ColorNone))
	m, cmd := step(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = step(t, m, cmd())
	if m.state != stateFailed {
		t.Fatalf("State = %q, want failed", m.state)
	}
	if !strings.Contains(m.View(), "boom") {
		t.Errorf("View %q should show the failure", m.View())
	}
}

func TestLoadRejectsEmptyAnimation(t *testing.T) {
	t.Parallel()

	m := New(WithAnimation(&glyphcast.Animation{FPS: 30}), WithColorMode(glyphcast.ColorNone))
	m, cmd := step(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	msg := cmd()
	em, ok := msg.(errMsg)
	if !ok {
		t.Fatalf("Loading an empty animation produced %T, want errMsg", msg)
	}
	if !strings.Contains(em.err.Error(), "nothing to play") {
		t.Errorf("Error = %q, want nothing to play", em.err)
	}
	m, _ = step(t, m, msg)
	if m.state != stateFailed {
		t.Errorf("State = %q, want failed", m.state)
	}
}
