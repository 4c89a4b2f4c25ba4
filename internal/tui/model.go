package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/gemvoice/internal/render"
	"github.com/diogo/gemvoice/internal/transcript"
)

// Dispatcher is the request surface the chat screen drives. One request
// at a time; the transcript store is the display source of truth.
type Dispatcher interface {
	Send(ctx context.Context, text string) (string, error)
	SendWithImage(ctx context.Context, text string, image []byte, mime string) (string, error)
	Busy() bool
	Store() *transcript.Store
}

// Voice speaks a completed reply aloud
type Voice interface {
	Speak(ctx context.Context, text string) error
}

// Recorder persists exchanges for later resuming
type Recorder interface {
	AddMessage(id, role, content string, hadImage bool) error
}

// Options configures the chat screen
type Options struct {
	ModelName    string
	PersonaName  string
	SpeakReplies bool

	// Speaker may be nil; /speak and ctrl+s are then disabled
	Speaker Voice

	// History may be nil; exchanges are then not persisted
	History        Recorder
	ConversationID string

	// Image sent by the /image command
	AttachImage []byte
	AttachMIME  string
}

// Messages for async operations
type (
	responseMsg struct {
		prompt   string
		reply    string
		hadImage bool
	}
	errMsg           struct{ err error }
	speechDoneMsg    struct{ err error }
	animationTickMsg time.Time
)

// Model is the bubbletea model for the chat screen
type Model struct {
	dispatcher Dispatcher
	opts       Options

	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	loading  bool
	speaking bool
	ready    bool
	err      error

	animationFrame int
	width          int
	height         int
}

// NewModel creates a chat screen over the given dispatcher
func NewModel(dispatcher Dispatcher, opts Options) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask anything... (/speak to hear the last reply, /exit to quit)"
	ta.Focus()
	ta.Prompt = "│ "
	ta.CharLimit = 4000
	ta.SetWidth(50)
	ta.SetHeight(2)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = loadingStyle

	vp := viewport.New(80, 20)

	return Model{
		dispatcher: dispatcher,
		opts:       opts,
		textarea:   ta,
		spinner:    sp,
		viewport:   vp,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

// animationTick drives the loading bar animation
func animationTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	m.spinner, spCmd = m.spinner.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4
		inputHeight := 6
		statusHeight := 1
		verticalPadding := 2

		contentWidth := msg.Width - 4
		contentHeight := msg.Height - headerHeight - inputHeight - statusHeight - verticalPadding

		if !m.ready {
			m.viewport = viewport.New(contentWidth, contentHeight)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = contentHeight
		}

		m.textarea.SetWidth(contentWidth - 4)
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyCtrlS:
			if cmd := m.speakLastReply(); cmd != nil {
				return m, tea.Batch(cmd, m.spinner.Tick)
			}

		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}

			switch {
			case input == "/exit" || input == "/quit":
				return m, tea.Quit

			case input == "/speak":
				m.textarea.Reset()
				if cmd := m.speakLastReply(); cmd != nil {
					return m, tea.Batch(cmd, m.spinner.Tick)
				}
				return m, nil
			}

			if m.loading || m.dispatcher.Busy() {
				return m, nil
			}

			m.err = nil
			m.textarea.Reset()
			m.loading = true
			m.animationFrame = 0

			var send tea.Cmd
			if prompt, ok := strings.CutPrefix(input, "/image "); ok {
				send = m.sendImageMessage(strings.TrimSpace(prompt))
			} else {
				send = m.sendMessage(input)
			}

			return m, tea.Batch(send, m.spinner.Tick, animationTick())
		}

	case responseMsg:
		m.loading = false

		if m.opts.History != nil && m.opts.ConversationID != "" {
			if err := m.persistExchange(msg.prompt, msg.reply, msg.hadImage); err != nil {
				m.err = fmt.Errorf("failed to save exchange to history: %w", err)
			}
		}

		m.updateViewport()
		m.viewport.GotoBottom()

		var cmds []tea.Cmd
		if m.opts.SpeakReplies && m.opts.Speaker != nil {
			m.speaking = true
			cmds = append(cmds, m.speak(msg.reply), m.spinner.Tick)
		}
		cmds = append(cmds, tiCmd, vpCmd, spCmd)
		return m, tea.Batch(cmds...)

	case errMsg:
		m.loading = false
		m.err = msg.err
		m.updateViewport()
		m.viewport.GotoBottom()

	case speechDoneMsg:
		m.speaking = false
		if msg.err != nil {
			m.err = msg.err
			m.updateViewport()
			m.viewport.GotoBottom()
		}

	case animationTickMsg:
		if m.loading {
			m.animationFrame++
			m.updateViewport()
			m.viewport.GotoBottom()
			return m, tea.Batch(animationTick(), tiCmd, vpCmd, spCmd)
		}
	}

	return m, tea.Batch(tiCmd, vpCmd, spCmd)
}

// sendMessage dispatches a text prompt asynchronously
func (m Model) sendMessage(prompt string) tea.Cmd {
	return func() tea.Msg {
		reply, err := m.dispatcher.Send(context.Background(), prompt)
		if err != nil {
			return errMsg{err}
		}
		return responseMsg{prompt: prompt, reply: reply}
	}
}

// sendImageMessage dispatches a prompt with the bundled image attached
func (m Model) sendImageMessage(prompt string) tea.Cmd {
	return func() tea.Msg {
		if len(m.opts.AttachImage) == 0 {
			return errMsg{fmt.Errorf("no image available to attach")}
		}
		reply, err := m.dispatcher.SendWithImage(context.Background(), prompt, m.opts.AttachImage, m.opts.AttachMIME)
		if err != nil {
			return errMsg{err}
		}
		return responseMsg{prompt: prompt, reply: reply, hadImage: true}
	}
}

// persistExchange records a completed exchange for later resuming
func (m Model) persistExchange(prompt, reply string, hadImage bool) error {
	if err := m.opts.History.AddMessage(m.opts.ConversationID, "user", prompt, hadImage); err != nil {
		return err
	}
	return m.opts.History.AddMessage(m.opts.ConversationID, "assistant", reply, false)
}

// speakLastReply voices the most recent assistant reply, if any
func (m *Model) speakLastReply() tea.Cmd {
	if m.opts.Speaker == nil || m.speaking {
		return nil
	}
	text := m.dispatcher.Store().LastAssistantText()
	if text == "" {
		return nil
	}
	m.speaking = true
	return m.speak(text)
}

// speak voices text asynchronously
func (m Model) speak(text string) tea.Cmd {
	speaker := m.opts.Speaker
	return func() tea.Msg {
		return speechDoneMsg{err: speaker.Speak(context.Background(), text)}
	}
}

// updateViewport rebuilds the message display from the transcript
func (m *Model) updateViewport() {
	records := m.dispatcher.Store().Snapshot()

	if len(records) == 0 && !m.loading && m.err == nil {
		m.viewport.SetContent(m.renderWelcome())
		return
	}

	var sb strings.Builder
	bubbleWidth := m.viewport.Width - 8
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	for i, rec := range records {
		if i > 0 {
			sb.WriteString("\n")
		}

		switch rec.Kind {
		case transcript.KindUserText:
			sb.WriteString(userLabelStyle.Render("You"))
			sb.WriteString("\n")
			sb.WriteString(userBubbleStyle.Width(bubbleWidth).Render(rec.Text))
			sb.WriteString("\n")

		case transcript.KindImage:
			sb.WriteString(userLabelStyle.Render("You"))
			sb.WriteString("\n")
			attachment := attachmentLabelStyle.Render(fmt.Sprintf("📎 image (%s, %d bytes)", rec.MIME, len(rec.Image)))
			sb.WriteString(attachmentStyle.Width(bubbleWidth).Render(attachment + "\n" + rec.Text))
			sb.WriteString("\n")

		case transcript.KindAssistantText:
			sb.WriteString(assistantLabelStyle.Render("Assistant"))
			sb.WriteString("\n")
			rendered, err := render.MarkdownWithWidth(rec.Text, bubbleWidth-4)
			if err != nil {
				rendered = rec.Text
			}
			sb.WriteString(assistantBubbleStyle.Width(bubbleWidth).Render(strings.TrimSpace(rendered)))
			sb.WriteString("\n")
		}
	}

	if m.loading {
		sb.WriteString("\n")
		sb.WriteString(m.renderLoadingAnimation())
		sb.WriteString("\n")
	}

	if m.err != nil {
		sb.WriteString("\n")
		sb.WriteString(FormatError(m.err))
		sb.WriteString("\n")
	}

	m.viewport.SetContent(sb.String())
}

// renderWelcome shows the initial empty-state screen
func (m Model) renderWelcome() string {
	icon := welcomeIconStyle.Render("🎙")
	title := welcomeTitleStyle.Render("gemvoice")
	subtitle := subtitleStyle.Render("Chat with Gemini, hear the replies")
	hint := hintStyle.Render("Type a message, /image <prompt> to attach a picture,\n/speak or ctrl+s to voice the last reply")

	content := lipgloss.JoinVertical(lipgloss.Center, icon, title, subtitle, "", hint)
	box := welcomeStyle.Render(content)

	if m.viewport.Height > 0 {
		return lipgloss.Place(m.viewport.Width, m.viewport.Height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

// renderLoadingAnimation shows an animated gradient bar while waiting
func (m Model) renderLoadingAnimation() string {
	const barWidth = 24
	var sb strings.Builder
	sb.WriteString(m.spinner.View())
	sb.WriteString(" ")
	for i := 0; i < barWidth; i++ {
		color := gradientColors[(i+m.animationFrame)%len(gradientColors)]
		sb.WriteString(lipgloss.NewStyle().Foreground(color).Render("▬"))
	}
	sb.WriteString(loadingStyle.Render(" thinking"))
	return sb.String()
}

// renderHeader shows the title bar with the active model and persona
func (m Model) renderHeader() string {
	title := titleStyle.Render("gemvoice")
	parts := []string{title}

	if m.opts.ModelName != "" {
		parts = append(parts, subtitleStyle.Render("model: "+m.opts.ModelName))
	}
	if m.opts.PersonaName != "" {
		parts = append(parts, subtitleStyle.Render("persona: "+m.opts.PersonaName))
	}
	if m.opts.SpeakReplies {
		parts = append(parts, speakingStyle.Render("🔊 auto-speak"))
	}

	line := strings.Join(parts, subtitleStyle.Render("  •  "))
	return headerStyle.Width(m.width - 2).Render(line)
}

// renderStatusBar shows the keyboard shortcuts line
func (m Model) renderStatusBar() string {
	shortcuts := []struct{ key, desc string }{
		{"enter", "send"},
		{"ctrl+s", "speak reply"},
		{"/image", "attach"},
		{"esc", "quit"},
	}

	var parts []string
	for _, s := range shortcuts {
		parts = append(parts, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	bar := strings.Join(parts, statusDescStyle.Render("  │  "))
	if m.speaking {
		bar += statusDescStyle.Render("  │  ") + speakingStyle.Render("🔊 speaking...")
	}
	return statusBarStyle.Render(bar)
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("Starting...")
	}

	header := m.renderHeader()
	messages := messagesAreaStyle.Width(m.width - 2).Render(m.viewport.View())

	inputLabel := inputLabelStyle.Render("❯")
	input := inputPanelStyle.Width(m.width - 2).Render(
		lipgloss.JoinHorizontal(lipgloss.Top, inputLabel, m.textarea.View()),
	)

	status := m.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, header, messages, input, status)
}

// RunChat starts the interactive chat screen
func RunChat(dispatcher Dispatcher, opts Options) error {
	m := NewModel(dispatcher, opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat UI failed: %w", err)
	}
	return nil
}
