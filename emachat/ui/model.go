package ui

import (
	"context"
	"emachat/emachat/controllers"
	"emachat/emachat/services/chatbot"
	"emachat/emachat/types"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const sendTimeout = 5 * time.Second

type Options struct {
	UserLabel   string
	BotLabel    string
	Placeholder string
	Markdown    bool
}

// eventMsg carries one socket event into Update.
type eventMsg struct {
	ev chatbot.Event
}

// socketDoneMsg means the event channel closed; nothing else will arrive.
type socketDoneMsg struct{}

// Model is the chat screen. Socket events and key presses both land in
// Update, one at a time, which is the only place the controller is touched.
type Model struct {
	ctrl   *controllers.ChatController
	events <-chan chatbot.Event
	closer func()

	viewport viewport.Model
	input    textinput.Model
	styles   Styles
	renderer *Renderer
	opts     Options

	width  int
	height int
}

func NewModel(ctrl *controllers.ChatController, events <-chan chatbot.Event, closer func(), opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = opts.Placeholder
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	ti.Prompt = "> "
	ti.Focus()

	styles := DefaultStyles()
	m := Model{
		ctrl:     ctrl,
		events:   events,
		closer:   closer,
		viewport: viewport.New(80, 20),
		input:    ti,
		styles:   styles,
		opts:     opts,
		width:    80,
		height:   24,
	}
	m.renderer = NewRenderer(styles, m.width, opts.Markdown)
	return m
}

func waitForEvent(ch <-chan chatbot.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return socketDoneMsg{}
		}
		return eventMsg{ev: ev}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForEvent(m.events))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		// status line plus the bordered input
		m.viewport.Height = msg.Height - 3
		m.input.Width = msg.Width - 4
		m.renderer = NewRenderer(m.styles, msg.Width, m.opts.Markdown)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			if m.closer != nil {
				m.closer()
			}
			return m, tea.Quit
		case tea.KeyEnter:
			ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
			defer cancel()
			if _, ok := m.ctrl.Submit(ctx, m.input.Value()); ok {
				m.input.Reset()
				m.refresh()
			}
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case eventMsg:
		if m.ctrl.HandleEvent(msg.ev) {
			m.refresh()
		}
		return m, waitForEvent(m.events)

	case socketDoneMsg:
		// no reconnect; the screen stays usable for reading
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderer.Render(m.ctrl.State().Messages))
	m.viewport.GotoBottom()
}

func (m Model) status() string {
	st := m.ctrl.State().Connection
	line := m.opts.UserLabel + " ⇄ " + m.opts.BotLabel + " · " + st.String()
	if st == types.Closed {
		return m.styles.StatusAlert.Render(line)
	}
	return m.styles.Status.Render(line)
}

func (m Model) View() string {
	return m.viewport.View() + "\n" + m.status() + "\n" + m.styles.Input.Render(m.input.View())
}

// Run shows the chat screen until the user quits.
func Run(ctrl *controllers.ChatController, client *chatbot.Client, opts Options) error {
	p := tea.NewProgram(NewModel(ctrl, client.Events(), client.Close, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
