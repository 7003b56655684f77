// Package tui is the terminal chat: a sidebar of conversations next to the
// transcript, and a single-line input.
package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"hiper-bot/internal/models"
	"hiper-bot/internal/service"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	headerHeight  = 2
	inputHeight   = 3
	footerHeight  = 2
	frameSize     = 2

	newConversationLabel = "Iniciar Nova Conversa"
	welcomeMessage       = "Digite uma pergunta abaixo para começar."
)

// Submitter answers a message within a session.
type Submitter interface {
	Submit(ctx context.Context, session *service.Session, input string) (*service.Reply, error)
}

type Params struct {
	Chat        Submitter
	Session     *service.Session
	Warnings    []string
	ThinkDelay  time.Duration
	TypingDelay time.Duration
}

type focusArea int

const (
	focusInput focusArea = iota
	focusSidebar
)

type thinkDoneMsg struct{}

type typeTickMsg struct{}

// Model is the bubbletea model for the terminal chat.
type Model struct {
	chat     Submitter
	session  *service.Session
	warnings []string
	ctx      context.Context

	thinkDelay  time.Duration
	typingDelay time.Duration

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	help     help.Model
	keys     KeyMap
	renderer *glamour.TermRenderer
	caser    cases.Caser

	focus  focusArea
	cursor int // 0 is the new-conversation entry

	// The last assistant turn is hidden behind the spinner, then revealed rune by rune.
	thinking bool
	typing   bool
	reveal   []rune
	revealed int

	err      error
	width    int
	height   int
	quitting bool
}

func New(p Params) *Model {
	input := textinput.New()
	input.Placeholder = "Digite sua pergunta..."
	input.Prompt = "> "
	input.CharLimit = service.MaxInputRunes
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.MiniDot
	spin.Style = spinnerStyle

	m := &Model{
		chat:        p.Chat,
		session:     p.Session,
		warnings:    p.Warnings,
		ctx:         context.Background(),
		thinkDelay:  p.ThinkDelay,
		typingDelay: p.TypingDelay,
		viewport:    viewport.New(viewportWidth(defaultWidth), viewportHeight(defaultHeight, len(p.Warnings))),
		input:       input,
		spinner:     spin,
		help:        help.New(),
		keys:        DefaultKeyMap(),
		caser:       cases.Title(language.BrazilianPortuguese),
		width:       defaultWidth,
		height:      defaultHeight,
	}
	m.renderer = createRenderer(m.viewport.Width - frameSize)
	m.refresh()
	return m
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case thinkDoneMsg:
		if !m.thinking {
			return m, nil
		}
		m.thinking = false
		if m.typingDelay <= 0 {
			m.refresh()
			return m, nil
		}
		m.typing = true
		m.revealed = 0
		m.refresh()
		return m, m.typeTick()

	case typeTickMsg:
		if !m.typing {
			return m, nil
		}
		m.revealed++
		if m.revealed >= len(m.reveal) {
			m.typing = false
			m.refresh()
			return m, nil
		}
		m.refresh()
		return m, m.typeTick()

	case spinner.TickMsg:
		if !m.thinking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.focus == focusSidebar {
		return m.handleSidebarKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Send):
		return m, m.submit()
	case key.Matches(msg, m.keys.NewChat):
		m.startNew()
		return m, nil
	case key.Matches(msg, m.keys.Sidebar):
		m.focusSidebar()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.session.Conversations())

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < count {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Send):
		m.activate()
		m.focusInput()
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Sidebar):
		m.focusInput()
	case key.Matches(msg, m.keys.NewChat):
		m.startNew()
		m.focusInput()
	}
	return m, nil
}

func (m *Model) submit() tea.Cmd {
	if m.animating() {
		return nil
	}

	reply, err := m.chat.Submit(m.ctx, m.session, m.input.Value())
	if err != nil {
		m.err = err
		return nil
	}

	m.err = nil
	m.input.Reset()
	m.reveal = []rune(reply.Answer)
	m.revealed = 0

	if m.thinkDelay <= 0 && m.typingDelay <= 0 {
		m.refresh()
		return nil
	}

	m.thinking = true
	m.refresh()
	delay := m.thinkDelay
	return tea.Batch(m.spinner.Tick, tea.Tick(delay, func(time.Time) tea.Msg {
		return thinkDoneMsg{}
	}))
}

func (m *Model) typeTick() tea.Cmd {
	return tea.Tick(m.typingDelay, func(time.Time) tea.Msg {
		return typeTickMsg{}
	})
}

func (m *Model) animating() bool {
	return m.thinking || m.typing
}

func (m *Model) startNew() {
	m.stopAnimation()
	m.session.StartNew()
	m.err = nil
	m.refresh()
}

func (m *Model) activate() {
	if m.cursor == 0 {
		m.startNew()
		return
	}

	summaries := m.session.Conversations()
	if m.cursor > len(summaries) {
		return
	}
	m.stopAnimation()
	if _, err := m.session.Select(summaries[m.cursor-1].Name); err != nil {
		m.err = err
	}
	m.refresh()
}

func (m *Model) stopAnimation() {
	m.thinking = false
	m.typing = false
	m.reveal = nil
	m.revealed = 0
}

func (m *Model) focusSidebar() {
	m.focus = focusSidebar
	m.input.Blur()

	m.cursor = 0
	selected := m.session.SelectedName()
	for i, summary := range m.session.Conversations() {
		if summary.Name == selected {
			m.cursor = i + 1
			break
		}
	}
}

func (m *Model) focusInput() {
	m.focus = focusInput
	m.input.Focus()
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	vpWidth := viewportWidth(width)
	vpHeight := viewportHeight(height, len(m.warnings))
	if vpWidth != m.viewport.Width {
		m.renderer = createRenderer(vpWidth - frameSize)
	}
	m.viewport.Width = vpWidth
	m.viewport.Height = vpHeight
	m.refresh()
}

// viewportWidth leaves room for the bordered sidebar and the viewport frame.
func viewportWidth(total int) int {
	return max(total-sidebarWidth-frameSize-2*frameSize, 20)
}

func viewportHeight(total, warnings int) int {
	return max(total-headerHeight-warnings-inputHeight-footerHeight-frameSize, 3)
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m *Model) roleLabel(role string) string {
	switch role {
	case models.RoleUser:
		return userLabelStyle.Render(m.caser.String("você"))
	case models.RoleAssistant:
		return assistantLabelStyle.Render(m.caser.String("assistente"))
	}
	return m.caser.String(role)
}

func (m *Model) renderTranscript() string {
	conv, ok := m.session.Selected()
	if !ok || len(conv.Turns) == 0 {
		return statusStyle.Render(welcomeMessage)
	}

	var b strings.Builder
	last := len(conv.Turns) - 1
	for i, turn := range conv.Turns {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.roleLabel(turn.Role))
		b.WriteString("\n")

		switch {
		case i == last && m.thinking:
			b.WriteString(m.spinner.View() + " " + statusStyle.Render("Pensando..."))
		case i == last && m.typing:
			b.WriteString(string(m.reveal[:m.revealed]))
		case turn.Role == models.RoleAssistant:
			b.WriteString(renderMarkdown(m.renderer, turn.Content))
		default:
			b.WriteString(turn.Content)
		}
	}
	return b.String()
}

func (m *Model) renderHeader() string {
	lines := []string{
		titleStyle.Render("Hiper Bot") + "  " + taglineStyle.Render("procedimentos de transportadoras e Protheus"),
	}
	for _, w := range m.warnings {
		lines = append(lines, warningStyle.Render("! "+w))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderSidebar() string {
	selected := m.session.SelectedName()
	items := []string{newConversationLabel}
	for _, summary := range m.session.Conversations() {
		items = append(items, summary.Name)
	}

	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		prefix := "  "
		if i > 0 && item == selected {
			prefix = "● "
		}
		style := sidebarItemStyle
		if m.focus == focusSidebar && i == m.cursor {
			style = sidebarCursorStyle
			prefix = "> "
		}
		b.WriteString(style.Render(prefix + item))
	}

	style := sidebarStyle
	if m.focus == focusSidebar {
		style = sidebarFocusedStyle
	}
	return style.Height(m.viewport.Height).Render(b.String())
}

func (m *Model) renderFooter() string {
	var lines []string
	if m.err != nil {
		lines = append(lines, errorStyle.Render(errorText(m.err)))
	}
	if m.focus == focusSidebar {
		lines = append(lines, m.help.ShortHelpView(m.keys.sidebarHelp()))
	} else {
		lines = append(lines, m.help.View(m.keys))
	}
	return strings.Join(lines, "\n")
}

func errorText(err error) string {
	switch {
	case errors.Is(err, service.ErrEmptyMessage):
		return "Digite uma pergunta antes de enviar."
	case errors.Is(err, service.ErrInputTooLong):
		return "A pergunta deve ter no máximo 100 caracteres."
	case errors.Is(err, service.ErrConversationNotFound):
		return "Conversa não encontrada."
	}
	return err.Error()
}

func (m *Model) View() string {
	if m.quitting {
		return statusStyle.Render("Até logo!") + "\n"
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderSidebar(),
		viewportStyle.Render(m.viewport.View()),
	)

	output := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		inputStyle.Width(max(m.width-frameSize, 10)).Render(m.input.View()),
		m.renderFooter(),
	)
	return lipgloss.NewStyle().MaxWidth(m.width).Render(output)
}

// Run starts the terminal program and blocks until the user quits.
func Run(p Params) error {
	_, err := tea.NewProgram(New(p), tea.WithAltScreen()).Run()
	return err
}
