package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/BioHazard786/warpline/internal/chat"
)

const maxVisibleLines = 200

// Chatter is what the chat view needs from a session.
type Chatter interface {
	Say(text string) error
	Lines() <-chan chat.Line
	Ended() <-chan struct{}
}

type chatLine struct {
	self bool
	text string
	at   time.Time
}

type (
	lineMsg    chat.Line
	endedMsg   struct{}
	sendErrMsg struct{ err error }
)

// ChatModel is the interactive view shown once the data channel is open.
type ChatModel struct {
	code    string
	session Chatter
	gone    <-chan struct{}
	input   textinput.Model
	lines   []chatLine
	height  int
	err     error

	peerLeft bool
	quitting bool
}

// NewChatModel builds the view. gone reports the peer leaving through
// some other route, such as a signaling hang-up.
func NewChatModel(code string, session Chatter, gone <-chan struct{}) *ChatModel {
	in := textinput.New()
	in.Placeholder = "Say something..."
	in.Prompt = SelfStyle.Render("> ")
	in.CharLimit = 2000
	in.Focus()

	return &ChatModel{
		code:    code,
		session: session,
		gone:    gone,
		input:   in,
	}
}

func (m *ChatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitLine(), m.waitEnded())
}

func (m *ChatModel) waitLine() tea.Cmd {
	lines := m.session.Lines()
	ended := m.session.Ended()
	return func() tea.Msg {
		select {
		case l := <-lines:
			return lineMsg(l)
		case <-ended:
			return endedMsg{}
		}
	}
}

func (m *ChatModel) waitEnded() tea.Cmd {
	ended := m.session.Ended()
	gone := m.gone
	return func() tea.Msg {
		select {
		case <-ended:
		case <-gone:
		}
		return endedMsg{}
	}
}

func (m *ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			m.push(chatLine{self: true, text: text, at: time.Now()})
			return m, m.say(text)
		}

	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		return m, nil

	case lineMsg:
		m.push(chatLine{text: msg.Text, at: msg.At})
		return m, m.waitLine()

	case endedMsg:
		if !m.quitting {
			m.peerLeft = true
		}
		return m, tea.Quit

	case sendErrMsg:
		m.err = msg.err
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *ChatModel) say(text string) tea.Cmd {
	return func() tea.Msg {
		if err := m.session.Say(text); err != nil {
			return sendErrMsg{err: err}
		}
		return nil
	}
}

func (m *ChatModel) push(l chatLine) {
	m.lines = append(m.lines, l)
	if len(m.lines) > maxVisibleLines {
		m.lines = m.lines[len(m.lines)-maxVisibleLines:]
	}
}

func (m *ChatModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("%s Room %s", IconChat, m.code)))
	b.WriteString("\n\n")

	lines := m.lines
	// Leave room for the title, the input and the footer.
	if m.height > 6 && len(lines) > m.height-6 {
		lines = lines[len(lines)-(m.height-6):]
	}
	for _, l := range lines {
		who := PeerStyle.Render("peer")
		if l.self {
			who = SelfStyle.Render("you ")
		}
		fmt.Fprintf(&b, "%s %s %s\n", MutedStyle.Render(l.at.Format("15:04")), who, l.text)
	}

	if m.peerLeft {
		b.WriteString(WarningStyle.Render(IconPeer+" peer left the room") + "\n")
		return b.String()
	}
	if m.quitting {
		return b.String()
	}

	b.WriteString("\n" + m.input.View())
	if m.err != nil {
		b.WriteString("\n" + FormatError(m.err))
	}
	b.WriteString(FooterStyle.Render("enter to send • esc to leave"))
	return b.String()
}

// PeerLeft reports whether the chat ended because of the other side.
func (m *ChatModel) PeerLeft() bool {
	return m.peerLeft
}

// RunChat runs the chat view until either person leaves.
func RunChat(code string, session Chatter, gone <-chan struct{}) (peerLeft bool, err error) {
	m := NewChatModel(code, session, gone)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return false, err
	}
	return m.PeerLeft(), nil
}
