package main

import (
	"chat-feed/domain"
	"chat-feed/domain/event"
	"chat-feed/projection"
	"chat-feed/services"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const sidebarWidth = 30

// feedEventMsg carries a feed event into the bubbletea loop.
type feedEventMsg struct {
	event event.DomainEvent
}

type submitDoneMsg struct {
	accepted bool
	err      error
}

// programSink forwards feed events to a running bubbletea program.
type programSink struct {
	program *tea.Program
}

func (s programSink) Consume(_ context.Context, e event.DomainEvent) error {
	s.program.Send(feedEventMsg{event: e})
	return nil
}

type chatTheme struct {
	panel    lipgloss.Style
	title    lipgloss.Style
	self     lipgloss.Style
	peer     lipgloss.Style
	muted    lipgloss.Style
	status   lipgloss.Style
	errorMsg lipgloss.Style
}

func newChatTheme() chatTheme {
	blue := lipgloss.Color("#01cdfe")
	mint := lipgloss.Color("#05ffa1")
	pink := lipgloss.Color("#ff71ce")
	muted := lipgloss.Color("#9ca3d8")
	return chatTheme{
		panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1),
		title:    lipgloss.NewStyle().Foreground(blue).Bold(true),
		self:     lipgloss.NewStyle().Foreground(mint).Bold(true),
		peer:     lipgloss.NewStyle().Foreground(blue).Bold(true),
		muted:    lipgloss.NewStyle().Foreground(muted),
		status:   lipgloss.NewStyle().Foreground(blue),
		errorMsg: lipgloss.NewStyle().Foreground(pink).Bold(true),
	}
}

type chatModel struct {
	ctx      context.Context
	service  services.IChatService
	timeline *projection.Timeline
	online   []domain.Participant

	ready  bool
	width  int
	height int
	status string
	failed bool

	input    textinput.Model
	messages viewport.Model
	theme    chatTheme
}

func newChatModel(ctx context.Context, service services.IChatService, timeline *projection.Timeline) chatModel {
	input := textinput.New()
	input.Placeholder = "Type a message, Enter to send"
	input.Prompt = "> "
	input.Focus()

	return chatModel{
		ctx:      ctx,
		service:  service,
		timeline: timeline,
		online:   service.Online(),
		input:    input,
		theme:    newChatTheme(),
		status:   "Loading history...",
	}
}

func (m chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			text := m.input.Value()
			if strings.TrimSpace(text) == "" || m.service.Sending() {
				return m, nil
			}
			return m, m.submit(text)
		}

	case feedEventMsg:
		m.onFeedEvent(msg.event)
		return m, nil

	case submitDoneMsg:
		switch {
		case msg.err != nil:
			m.status, m.failed = msg.err.Error(), true
		case !msg.accepted:
			m.status, m.failed = "Message ignored", false
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	if m.input.Value() != before {
		m.service.SetDraft(m.input.Value())
	}
	m.messages, cmd = m.messages.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m chatModel) submit(text string) tea.Cmd {
	return func() tea.Msg {
		accepted, err := m.service.Submit(m.ctx, text)
		return submitDoneMsg{accepted: accepted, err: err}
	}
}

func (m *chatModel) onFeedEvent(e event.DomainEvent) {
	switch evt := e.(type) {
	case event.TranscriptChanged:
		if evt.Cause == event.CauseSent {
			// The draft is cleared when the send lands
			m.input.SetValue(m.service.Draft())
		}
		m.status, m.failed = fmt.Sprintf("%d messages", len(evt.Snapshot)), false
		m.refresh()
	case event.SendAccepted:
		m.status, m.failed = "Sending...", false
	case event.FeedStopped:
		m.status, m.failed = "Feed stopped", true
	}
}

func (m *chatModel) resize() {
	chatWidth := max(m.width-sidebarWidth-4, 20)
	chatHeight := max(m.height-7, 3)
	if !m.ready {
		m.messages = viewport.New(chatWidth, chatHeight)
		// Letters belong to the input box, only paging keys scroll
		m.messages.KeyMap = viewport.KeyMap{
			PageUp:   key.NewBinding(key.WithKeys("pgup")),
			PageDown: key.NewBinding(key.WithKeys("pgdown")),
		}
		m.ready = true
	} else {
		m.messages.Width = chatWidth
		m.messages.Height = chatHeight
	}
	m.input.Width = max(m.width-6, 10)
}

// refresh redraws the transcript and keeps the newest message in sight.
func (m *chatModel) refresh() {
	if !m.ready {
		return
	}
	view := m.timeline.View()
	if view.Loading {
		m.messages.SetContent(m.theme.muted.Render("Loading history..."))
		return
	}

	var b strings.Builder
	for i, msg := range view.Messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.renderMessage(msg))
	}
	m.messages.SetContent(b.String())
	if view.ScrollTarget != 0 {
		m.messages.GotoBottom()
	}
}

func (m chatModel) renderMessage(msg domain.Message) string {
	nameStyle := m.theme.peer
	align := lipgloss.Left
	if msg.IsSelf() {
		nameStyle = m.theme.self
		align = lipgloss.Right
	}
	header := nameStyle.Render(msg.Author.Name)
	if label := msg.Author.Label(); label != "" {
		header += " " + m.theme.muted.Render(label)
	}
	header += "  " + m.theme.muted.Render(msg.CreatedAt.Local().Format(timeLayout))
	body := lipgloss.NewStyle().Width(m.messages.Width).Align(align)
	return body.Render(header) + "\n" + body.Render(msg.Content)
}

func (m chatModel) renderSidebar() string {
	var b strings.Builder
	b.WriteString(m.theme.title.Render(fmt.Sprintf("Online (%d)", len(m.online))))
	for _, p := range m.online {
		style := m.theme.peer
		if p.IsCurrentUser() {
			style = m.theme.self
		}
		b.WriteString("\n" + style.Render("● "+p.Name))
		if label := p.Label(); label != "" {
			b.WriteString("\n  " + m.theme.muted.Render(label))
		}
	}
	return b.String()
}

func (m chatModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	chat := m.theme.panel.Render(m.theme.title.Render("Workshop chat") + "\n" + m.messages.View())
	sidebar := m.theme.panel.Width(sidebarWidth - 2).Render(m.renderSidebar())
	input := m.theme.panel.Width(max(m.width-4, 10)).Render(m.input.View())

	status := m.theme.status.Render(m.status)
	if m.failed {
		status = m.theme.errorMsg.Render(m.status)
	}
	if m.service.Sending() {
		status += m.theme.muted.Render("  (send disabled while sending)")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, chat, sidebar),
		input,
		status+"  "+m.theme.muted.Render("enter: send  esc: quit"),
	)
}

// runTUI joins the feed, calls start, then blocks until the user quits or ctx is cancelled.
func runTUI(ctx context.Context, service services.IChatService, start func()) error {
	timeline := projection.NewTimeline("tui")
	program := tea.NewProgram(newChatModel(ctx, service, timeline), tea.WithAltScreen(), tea.WithContext(ctx))

	// The timeline must see an event before the program is told to redraw
	timelineID := service.Join(timeline)
	defer service.Leave(timelineID)
	viewerID := service.Join(programSink{program: program})
	defer service.Leave(viewerID)
	start()

	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
