package ui_test

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dormdash/campus-eats/cmd/dormdash/ui"
	"github.com/dormdash/campus-eats/internal/catalog"
	"github.com/dormdash/campus-eats/internal/models"
	"github.com/dormdash/campus-eats/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newApp(t *testing.T) ui.App {
	t.Helper()

	auth, err := service.NewAuthService(
		service.JWTConfig{Secret: "test-secret", ExpiresIn: 1},
		[]service.Account{{Username: "login", Password: "login"}},
	)
	require.NoError(t, err)

	now := func() time.Time { return time.Date(2026, time.October, 18, 15, 0, 0, 0, time.UTC) }
	return ui.NewApp(
		service.NewNavigator(),
		auth,
		service.NewDashboardService(catalog.NewFixture(now), now),
		service.NewAccountService(""),
	)
}

func send(m ui.App, msgs ...tea.Msg) ui.App {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(ui.App)
	}
	return m
}

func TestCustomerLogin(t *testing.T) {
	m := newApp(t)
	assert.Equal(t, models.PageLanding, m.Page())

	m = send(m, enter)
	require.Equal(t, models.PageCustomerLogin, m.Page())

	m = send(m, keys("login"), tab, keys("login"), tab, tab, enter)
	assert.Equal(t, models.PageCustomerDashboard, m.Page())
	assert.True(t, m.Session().Is(models.RoleCustomer))
	assert.Equal(t, "login", m.Session().Username)
	assert.Contains(t, m.View(), "Chick-fil-A")

	// Orders, Account, then one button per restaurant
	m = send(m, down, down, enter)
	assert.Equal(t, models.PageRestaurantMenu, m.Page())
	assert.Contains(t, m.View(), "Waffle Fries")

	m = send(m, enter)
	assert.Equal(t, models.PageCustomerDashboard, m.Page())
}

func TestFailedLogin(t *testing.T) {
	m := newApp(t)

	m = send(m, enter, keys("login"), tab, keys("wrong"), tab, tab, enter)
	assert.Equal(t, models.PageCustomerLogin, m.Page())
	assert.False(t, m.Session().LoggedIn)
	assert.Contains(t, m.View(), "Invalid username or password.")

	m = send(newApp(t), enter, tab, tab, tab, enter)
	assert.Equal(t, models.PageCustomerLogin, m.Page())
	assert.Contains(t, m.View(), "Please enter both username and password.")
}

func TestWorkerSession(t *testing.T) {
	m := newApp(t)

	m = send(m, down, enter)
	require.Equal(t, models.PageWorkerLogin, m.Page())

	// Enter on a field moves to the next one
	m = send(m, keys("alice"), enter, keys("pw1"), enter, tab, enter)
	require.Equal(t, models.PageWorkerDashboard, m.Page())
	assert.Contains(t, m.View(), "Available jobs")

	m = send(m, enter)
	assert.Equal(t, models.PageWorkerOrders, m.Page())
	assert.Contains(t, m.View(), "$24.50")

	m = send(m, enter, down, enter)
	require.Equal(t, models.PageAccount, m.Page())
	assert.Contains(t, m.View(), "alice@umbc.edu")

	m = send(m, down, down, enter)
	assert.Equal(t, models.PageAccount, m.Page())
	assert.Contains(t, m.View(), service.SettingsSavedMessage)

	m = send(m, down, down, down, enter)
	assert.Equal(t, models.PageLanding, m.Page())
	assert.Equal(t, models.NewSession(), m.Session())
}

func TestQuit(t *testing.T) {
	_, cmd := newApp(t).Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestViewShowsTheme(t *testing.T) {
	m := newApp(t)
	m = send(m, down, enter, keys("alice"), tab, keys("pw1"), tab, tab, enter)

	assert.True(t, strings.Contains(m.View(), "🚗"))
}
