/*
 * Copyright 2025 Skye Pulse.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skyepulse/buildmonitor/pkg/models"
)

const (
	focusedEmail    = 0
	focusedPassword = 1
)

// runLogin authenticates either non-interactively (flags/stdin) or via
// the TUI form.
func (a *app) runLogin(ctx context.Context, cmd *CmdConfig) error {
	if cmd.Email != "" || !isInputFromTerminal() {
		return a.loginNonInteractive(ctx, cmd)
	}

	return a.loginInteractive(ctx, cmd)
}

func (a *app) loginNonInteractive(ctx context.Context, cmd *CmdConfig) error {
	if cmd.Email == "" {
		return errEmailRequired
	}

	password := cmd.Password
	if password == "" && !isInputFromTerminal() {
		data, err := os.ReadFile("/dev/stdin")
		if err != nil {
			return fmt.Errorf("reading password from stdin: %w", err)
		}

		password = strings.TrimSpace(string(data))
	}

	if password == "" {
		return errPasswordRequired
	}

	sess, err := a.client.Auth().Login(ctx, models.LoginRequest{
		Email:    cmd.Email,
		Password: password,
		Role:     models.Role(cmd.Role),
	})
	if err != nil {
		return err
	}

	fmt.Println(a.styles.success.Render(
		fmt.Sprintf("Logged in as %s (%s).", sess.User.Email, sess.Role)))

	return nil
}

func (a *app) loginInteractive(ctx context.Context, cmd *CmdConfig) error {
	p := tea.NewProgram(newLoginModel(ctx, a, models.Role(cmd.Role)), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return err
	}

	m, ok := final.(*loginModel)
	if !ok {
		return nil
	}

	if m.err != nil {
		return m.err
	}

	if m.session != nil {
		fmt.Println(a.styles.success.Render(
			fmt.Sprintf("Logged in as %s (%s).", m.session.User.Email, m.session.Role)))
	}

	return nil
}

type loginResultMsg struct {
	session *models.Session
	err     error
}

type loginModel struct {
	ctx  context.Context
	app  *app
	role models.Role

	emailInput    textinput.Model
	passwordInput textinput.Model
	focused       int
	busy          bool
	session       *models.Session
	err           error
	styles        styles
}

func newLoginModel(ctx context.Context, a *app, role models.Role) *loginModel {
	ei := textinput.New()
	ei.Placeholder = "you@example.com"
	ei.Focus()
	ei.Width = 40
	ei.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaCyan))
	ei.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaForeground))
	ei.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaComment))

	pi := textinput.New()
	pi.Placeholder = "Enter password"
	pi.EchoMode = textinput.EchoPassword
	pi.EchoCharacter = '•'
	pi.Width = 40
	pi.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaCyan))
	pi.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaForeground))
	pi.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaComment))

	if role == "" {
		role = models.RoleAdmin
	}

	return &loginModel{
		ctx:           ctx,
		app:           a,
		role:          role,
		emailInput:    ei,
		passwordInput: pi,
		focused:       focusedEmail,
		styles:        newStyles(),
	}
}

func (*loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *loginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.focused == focusedEmail {
		m.emailInput, cmd = m.emailInput.Update(msg)
	} else if m.focused == focusedPassword {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}

	switch msg := msg.(type) {
	case loginResultMsg:
		m.busy = false
		m.session = msg.session
		m.err = msg.err

		if m.err == nil {
			return m, tea.Quit
		}

		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg, cmd)
	}

	return m, cmd
}

func (m *loginModel) handleKeyMsg(msg tea.KeyMsg, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	//nolint:exhaustive // Default case handles all unlisted keys
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		return m.handleEnter(cmd)
	case tea.KeyTab:
		return m.handleTab(cmd)
	default:
		return m, cmd
	}
}

func (m *loginModel) handleEnter(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, cmd
	}

	if m.focused == focusedEmail {
		m.emailInput.Blur()
		m.passwordInput.Focus()
		m.focused = focusedPassword

		return m, textinput.Blink
	}

	if m.focused == focusedPassword {
		return m.submit()
	}

	return m, cmd
}

func (m *loginModel) handleTab(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if m.focused == focusedEmail {
		m.emailInput.Blur()
		m.passwordInput.Focus()
		m.focused = focusedPassword

		return m, textinput.Blink
	}

	if m.focused == focusedPassword {
		m.passwordInput.Blur()
		m.emailInput.Focus()
		m.focused = focusedEmail

		return m, textinput.Blink
	}

	return m, cmd
}

func (m *loginModel) submit() (tea.Model, tea.Cmd) {
	email := strings.TrimSpace(m.emailInput.Value())
	password := m.passwordInput.Value()

	if email == "" {
		m.err = errEmailRequired
		return m, nil
	}

	if password == "" {
		m.err = errPasswordRequired
		return m, nil
	}

	m.busy = true
	m.err = nil

	return m, func() tea.Msg {
		sess, err := m.app.client.Auth().Login(m.ctx, models.LoginRequest{
			Email:    email,
			Password: password,
			Role:     m.role,
		})

		return loginResultMsg{session: sess, err: err}
	}
}

func (m *loginModel) View() string {
	var content strings.Builder

	title := lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.NewStyle().Foreground(lipgloss.Color(draculaPurple)).Render("🛰 "),
		m.styles.title.Render(appName+": Sign in"),
	)
	content.WriteString(title + "\n\n")

	emailSection := lipgloss.JoinVertical(
		lipgloss.Left,
		m.styles.label.Render("Email:"),
		m.emailInput.View(),
	)
	content.WriteString(emailSection + "\n\n")

	passwordSection := lipgloss.JoinVertical(
		lipgloss.Left,
		m.styles.label.Render("Password:"),
		m.passwordInput.View(),
	)
	content.WriteString(passwordSection + "\n\n")

	if m.busy {
		content.WriteString(m.styles.hint.Render("Signing in…") + "\n\n")
	}

	content.WriteString(m.styles.help.Render("Enter → next field | Tab → switch field | Ctrl+C/Esc → quit"))

	if m.err != nil {
		content.WriteString("\n\n")
		content.WriteString(m.styles.error.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	return m.styles.app.Align(lipgloss.Left).Render(content.String())
}

// isInputFromTerminal determines if input is coming from a terminal or
// being piped/redirected.
func isInputFromTerminal() bool {
	fileInfo, _ := os.Stdin.Stat()

	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
