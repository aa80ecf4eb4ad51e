package ui

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dormdash/campus-eats/internal/models"
	"github.com/dormdash/campus-eats/internal/service"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginBottom(1).
			Bold(true).
			Underline(true)

	pageFrame = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true).
			PaddingLeft(1).
			PaddingRight(1).
			Width(78)
)

var actionLabels = map[service.Action]string{
	service.ActionContinueCustomer: "I'm a Customer",
	service.ActionContinueWorker:   "I'm a Delivery Driver",
	service.ActionLogin:            "Log in",
	service.ActionBack:             "Back",
	service.ActionOrders:           "Orders",
	service.ActionAccount:          "Account",
	service.ActionHome:             "Home",
	service.ActionJobs:             "Jobs",
	service.ActionCancel:           "Cancel",
	service.ActionSave:             "Save changes",
	service.ActionLogout:           "Log out",
}

// App is the terminal client. It holds its own session and moves between
// pages through the same navigator and access rules as the web server.
type App struct {
	nav        *service.Navigator
	auth       *service.AuthService
	dashboards *service.DashboardService
	accounts   *service.AccountService

	session models.Session
	page    models.PageName
	slug    string

	body     string
	buttons  []button
	username textinput.Model
	password textinput.Model
	focus    int
	status   StatusBar
}

// NewApp creates the terminal client on the landing page
func NewApp(nav *service.Navigator, auth *service.AuthService, dashboards *service.DashboardService, accounts *service.AccountService) App {
	username := textinput.New()
	username.Placeholder = "Username"
	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	m := App{
		nav:        nav,
		auth:       auth,
		dashboards: dashboards,
		accounts:   accounts,
		session:    auth.Logout(),
		username:   username,
		password:   password,
	}
	m.show(models.PageLanding)
	m.focusField()

	return m
}

// Page is the page currently shown
func (m App) Page() models.PageName {
	return m.page
}

// Session is the terminal client's session
func (m App) Session() models.Session {
	return m.session
}

func (m App) Init() tea.Cmd {
	return textinput.Blink
}

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	log.Printf("App: %v", msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "shift+tab":
			return m, m.focusPrevious()
		case "down", "tab":
			return m, m.focusNext()
		case "enter":
			if m.focus < m.inputCount() {
				return m, m.focusNext()
			}
			return m, m.press(m.buttons[m.focus-m.inputCount()])
		default:
			return m, m.updateInput(msg)
		}
	}

	return m, nil
}

func (m App) View() string {
	theme := service.ThemeFor(m.session.Role)
	accent := lipgloss.Color(theme.PrimaryColor)

	title := string(m.page)
	if p, err := m.nav.Page(m.page); err == nil {
		title = p.Title
	}

	out := []string{
		titleStyle.Foreground(accent).Render(fmt.Sprintf("%s %s", theme.LogoIcon, title)),
	}
	if m.session.LoggedIn {
		out = append(out, fmt.Sprintf("%s · %s", m.session.Username, m.session.Role.Label()), "")
	}
	if m.body != "" {
		out = append(out, m.body, "")
	}
	if m.isLogin() {
		out = append(out, m.username.View(), m.password.View(), "")
	}

	buttons := make([]string, 0, len(m.buttons))
	for _, b := range m.buttons {
		buttons = append(buttons, b.View(accent))
	}
	out = append(out, lipgloss.JoinVertical(lipgloss.Left, buttons...))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		pageFrame.BorderForeground(accent).Render(lipgloss.JoinVertical(lipgloss.Left, out...)),
		m.status.View(),
	)
}

func (m App) isLogin() bool {
	return m.page == models.PageCustomerLogin || m.page == models.PageWorkerLogin
}

func (m App) inputCount() int {
	if m.isLogin() {
		return 2
	}
	return 0
}

// press follows a button's transition
func (m *App) press(b button) tea.Cmd {
	switch b.action {
	case service.ActionLogin:
		role := models.RoleCustomer
		if m.page == models.PageWorkerLogin {
			role = models.RoleWorker
		}

		sess, err := m.auth.Login(context.Background(), role, m.username.Value(), m.password.Value())
		if err != nil {
			if errors.Is(err, service.ErrMissingFields) {
				m.status.Error("Please enter both username and password.")
			} else {
				m.status.Error("Invalid username or password.")
			}
			return nil
		}
		m.session = sess
		m.username.Reset()
		m.password.Reset()
	case service.ActionLogout:
		m.session = m.auth.Logout()
	case service.ActionSave:
		if _, err := m.accounts.Save(m.session, m.accounts.Settings(m.session)); err != nil {
			m.status.Error(err.Error())
			return nil
		}
	}

	next, err := m.nav.Navigate(m.session, m.page, b.action)
	if err != nil {
		m.status.Error(err.Error())
		return nil
	}

	m.slug = b.slug
	m.show(next)
	if b.action == service.ActionSave {
		m.status.Set(service.SettingsSavedMessage)
	}

	return m.focusField()
}

// show switches to page after checking its access rule
func (m *App) show(page models.PageName) {
	decision, err := m.nav.AuthorizePage(m.session, page)
	if err == nil && !decision.Allow {
		page = decision.Target
	}

	m.page = page
	m.status.Clear()
	m.blurField()
	m.focus = 0

	body, buttons, err := m.load(context.Background())
	if err != nil {
		m.status.Error(err.Error())
	}
	m.body = body
	m.buttons = buttons
}

func (m *App) focusField() tea.Cmd {
	switch {
	case m.focus < m.inputCount() && m.focus == 0:
		return m.username.Focus()
	case m.focus < m.inputCount():
		return m.password.Focus()
	case m.focus-m.inputCount() < len(m.buttons):
		m.buttons[m.focus-m.inputCount()].Focus()
	}
	return nil
}

func (m *App) blurField() {
	m.username.Blur()
	m.password.Blur()
	for i := range m.buttons {
		m.buttons[i].Blur()
	}
}

func (m *App) focusNext() tea.Cmd {
	if m.focus >= m.inputCount()+len(m.buttons)-1 {
		return nil
	}
	m.blurField()
	m.focus++
	return m.focusField()
}

func (m *App) focusPrevious() tea.Cmd {
	if m.focus == 0 {
		return nil
	}
	m.blurField()
	m.focus--
	return m.focusField()
}

func (m *App) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch {
	case !m.isLogin():
	case m.focus == 0:
		m.username, cmd = m.username.Update(msg)
	case m.focus == 1:
		m.password, cmd = m.password.Update(msg)
	}

	return cmd
}
