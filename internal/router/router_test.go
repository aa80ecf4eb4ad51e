package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/dormdash/campus-eats/internal/api/handler"
	"github.com/dormdash/campus-eats/internal/catalog"
	"github.com/dormdash/campus-eats/internal/config"
	"github.com/dormdash/campus-eats/internal/models"
	"github.com/dormdash/campus-eats/internal/router"
	"github.com/dormdash/campus-eats/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clock() time.Time {
	return time.Date(2026, time.October, 18, 15, 0, 0, 0, time.UTC)
}

func newServer(t *testing.T, mutate func(*config.Config)) *httptest.Server {
	t.Helper()

	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}

	r, err := router.New(router.Dependencies{
		Config:  cfg,
		Catalog: catalog.NewFixture(clock),
		Now:     clock,
	})
	require.NoError(t, err)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

// browser keeps cookies between requests and does not follow redirects
type browser struct {
	t      *testing.T
	base   string
	client *http.Client
}

func newBrowser(t *testing.T, srv *httptest.Server) *browser {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &browser{
		t:    t,
		base: srv.URL,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (b *browser) do(req *http.Request) (*http.Response, string) {
	b.t.Helper()

	resp, err := b.client.Do(req)
	require.NoError(b.t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return resp, string(body)
}

func (b *browser) get(path string) (*http.Response, string) {
	req, err := http.NewRequest(http.MethodGet, b.base+path, nil)
	require.NoError(b.t, err)
	return b.do(req)
}

func (b *browser) post(path string, form url.Values) (*http.Response, string) {
	req, err := http.NewRequest(http.MethodPost, b.base+path, strings.NewReader(form.Encode()))
	require.NoError(b.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *browser) assertRedirect(path, location string) {
	b.t.Helper()

	resp, _ := b.get(path)
	assert.Equal(b.t, http.StatusSeeOther, resp.StatusCode, path)
	assert.Equal(b.t, location, resp.Header.Get("Location"), path)
}

func credentials(username, password string) url.Values {
	return url.Values{"username": {username}, "password": {password}}
}

func TestAnonymousGating(t *testing.T) {
	b := newBrowser(t, newServer(t, nil))

	resp, body := b.get("/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "I'm a Customer")
	assert.Contains(t, body, `href="/worker/login"`)

	resp, _ = b.get("/customer/login")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	b.assertRedirect("/worker", "/worker/login")
	b.assertRedirect("/worker/orders", "/worker/login")
	b.assertRedirect("/customer", "/customer/login")
	b.assertRedirect("/customer/orders", "/customer/login")
	b.assertRedirect("/customer/restaurants/starbucks", "/customer/login")
	b.assertRedirect("/account", "/")
}

func TestCustomerFlow(t *testing.T) {
	b := newBrowser(t, newServer(t, nil))

	resp, _ := b.post("/customer/login", credentials("login", "login"))
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/customer", resp.Header.Get("Location"))

	resp, body := b.get("/customer")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Chick-fil-A")
	assert.Contains(t, body, "Cheeseburger &amp; Fries")
	assert.Contains(t, body, "#f2b90d")

	_, body = b.get("/customer?q=coffee&category=Caf%C3%A9")
	assert.Contains(t, body, "Starbucks")
	assert.NotContains(t, body, "Dunkin Donuts")

	resp, body = b.get("/customer/orders")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "$56.50")
	assert.Contains(t, body, "On the way")

	resp, body = b.get("/customer/restaurants/starbucks")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Caramel Macchiato")
	assert.Contains(t, body, "$5.25")

	resp, _ = b.get("/customer/restaurants/nowhere")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	b.assertRedirect("/", "/customer")
	b.assertRedirect("/customer/login", "/customer")
	b.assertRedirect("/worker/login", "/customer")
	b.assertRedirect("/worker", "/worker/login")

	resp, _ = b.post("/logout", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	b.assertRedirect("/customer", "/customer/login")
}

func TestLoginFailures(t *testing.T) {
	b := newBrowser(t, newServer(t, nil))

	resp, body := b.post("/customer/login", credentials("login", "wrong"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Invalid username or password.")
	assert.Contains(t, body, `value="login"`)

	resp, body = b.post("/customer/login", credentials("", ""))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "Please enter both username and password.")

	resp, _ = b.post("/worker/login", credentials("alice", ""))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Still logged out
	b.assertRedirect("/customer", "/customer/login")
}

func TestWorkerFlow(t *testing.T) {
	b := newBrowser(t, newServer(t, nil))

	resp, _ := b.post("/worker/login", credentials("alice", "pw1"))
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/worker", resp.Header.Get("Location"))

	resp, body := b.get("/worker")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Available jobs")
	assert.Contains(t, body, "#007AFF")

	resp, body = b.get("/worker/orders")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "$24.50")

	b.assertRedirect("/", "/worker")
	b.assertRedirect("/customer", "/customer/login")

	resp, body = b.get("/account")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "alice@umbc.edu")
	assert.Contains(t, body, "Vehicle")
	assert.Contains(t, body, `href="/worker"`)

	form := url.Values{"first_name": {"Alice"}, "vehicle_type": {"Bike"}, "sms_notifications": {"on"}}
	resp, body = b.post("/account", form)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, service.SettingsSavedMessage)
	assert.Contains(t, body, `value="Alice"`)

	form.Set("vehicle_type", "Helicopter")
	resp, _ = b.post("/account", form)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = b.post("/logout", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	b.assertRedirect("/worker", "/worker/login")
	b.assertRedirect("/account", "/")
}

func TestSessionsArePerClient(t *testing.T) {
	srv := newServer(t, nil)
	alice := newBrowser(t, srv)
	guest := newBrowser(t, srv)

	resp, _ := alice.post("/worker/login", credentials("alice", "pw1"))
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, _ = alice.get("/worker")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	guest.assertRedirect("/worker", "/worker/login")
}

func TestCSRF(t *testing.T) {
	srv := newServer(t, func(cfg *config.Config) {
		cfg.Server.CSRFKey = "0123456789abcdef0123456789abcdef"
	})
	b := newBrowser(t, srv)

	resp, _ := b.post("/customer/login", credentials("login", "login"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	_, body := b.get("/customer/login")
	match := regexp.MustCompile(`name="gorilla.csrf.Token" value="([^"]+)"`).FindStringSubmatch(body)
	require.Len(t, match, 2)

	form := credentials("login", "login")
	form.Set("gorilla.csrf.Token", match[1])
	resp, _ = b.post("/customer/login", form)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/customer", resp.Header.Get("Location"))
}

func apiLogin(t *testing.T, srv *httptest.Server, role, username, password string) (*http.Response, handler.LoginResponse) {
	t.Helper()

	body, err := json.Marshal(handler.LoginRequest{Role: role, Username: username, Password: password})
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out handler.LoginResponse
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func apiGet(t *testing.T, srv *httptest.Server, path, token string, out interface{}) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestAPILogin(t *testing.T) {
	srv := newServer(t, nil)

	resp, login := apiLogin(t, srv, "customer", "login", "login")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, models.RoleCustomer, login.Session.Role)
	assert.Equal(t, "login", login.Session.Username)

	resp, _ = apiLogin(t, srv, "customer", "login", "wrong")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = apiLogin(t, srv, "worker", "", "pw1")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = apiLogin(t, srv, "user", "login", "login")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var sess models.Session
	resp = apiGet(t, srv, "/api/session", login.Token, &sess)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, login.Session, sess)

	resp = apiGet(t, srv, "/api/session", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPIRoles(t *testing.T) {
	srv := newServer(t, nil)

	_, customer := apiLogin(t, srv, "customer", "login", "login")
	_, worker := apiLogin(t, srv, "worker", "alice", "pw1")

	var restaurants []models.Restaurant
	resp := apiGet(t, srv, "/api/restaurants?category=Quick%20Bites", customer.Token, &restaurants)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, restaurants, 2)

	var menu service.RestaurantMenu
	resp = apiGet(t, srv, "/api/restaurants/the-commons/menu", customer.Token, &menu)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "The Commons", menu.Restaurant.Name)

	resp = apiGet(t, srv, "/api/restaurants/nowhere/menu", customer.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var orders service.CustomerOrders
	resp = apiGet(t, srv, "/api/orders", customer.Token, &orders)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.Cents(5650), orders.Stats.TotalSpent)

	var jobs []models.Job
	resp = apiGet(t, srv, "/api/jobs", worker.Token, &jobs)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, jobs, 3)

	var deliveries service.WorkerOrders
	resp = apiGet(t, srv, "/api/deliveries", worker.Token, &deliveries)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, deliveries.Stats.Today)

	assert.Equal(t, http.StatusForbidden, apiGet(t, srv, "/api/orders", worker.Token, nil).StatusCode)
	assert.Equal(t, http.StatusForbidden, apiGet(t, srv, "/api/jobs", customer.Token, nil).StatusCode)
	assert.Equal(t, http.StatusUnauthorized, apiGet(t, srv, "/api/jobs", "", nil).StatusCode)
	assert.Equal(t, http.StatusUnauthorized, apiGet(t, srv, "/api/orders", "garbage", nil).StatusCode)
}

func TestAPINavigation(t *testing.T) {
	srv := newServer(t, nil)
	_, worker := apiLogin(t, srv, "worker", "alice", "pw1")

	var nav handler.NavigationResponse
	resp := apiGet(t, srv, "/api/navigation/worker-dashboard", "", &nav)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "redirect", nav.Decision)
	assert.Equal(t, models.PageWorkerLogin, nav.Target)
	assert.Equal(t, "/worker/login", nav.Route)

	nav = handler.NavigationResponse{}
	apiGet(t, srv, "/api/navigation/worker-dashboard", worker.Token, &nav)
	assert.Equal(t, "allow", nav.Decision)
	assert.Empty(t, nav.Target)

	nav = handler.NavigationResponse{}
	apiGet(t, srv, "/api/navigation/customer-dashboard", worker.Token, &nav)
	assert.Equal(t, "redirect", nav.Decision)
	assert.Equal(t, models.PageCustomerLogin, nav.Target)

	nav = handler.NavigationResponse{}
	apiGet(t, srv, "/api/navigation/landing", worker.Token, &nav)
	assert.Equal(t, models.PageWorkerDashboard, nav.Target)

	resp = apiGet(t, srv, "/api/navigation/admin", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var pages []models.Page
	resp = apiGet(t, srv, "/api/pages", "", &pages)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, pages, 9)
}

func TestOperationalRoutes(t *testing.T) {
	srv := newServer(t, nil)

	resp := apiGet(t, srv, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	apiLogin(t, srv, "customer", "login", "wrong")

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `dormdash_login_attempts_total{result="failure",role="customer"} 1`)
	assert.Contains(t, string(body), "dormdash_http_requests_total")
}

func TestHealthCheckFailure(t *testing.T) {
	r, err := router.New(router.Dependencies{
		Config:  config.Default(),
		Catalog: catalog.NewFixture(clock),
		Health: func(ctx context.Context) error {
			return errors.New("connection refused")
		},
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCartFlow(t *testing.T) {
	b := newBrowser(t, newServer(t, nil))
	b.post("/customer/login", credentials("login", "login"))

	const menu = "/customer/restaurants/chick-fil-a"
	cart := func(op, item string) *http.Response {
		resp, _ := b.post(menu+"/cart", url.Values{"op": {op}, "item": {item}})
		return resp
	}

	resp, body := b.get(menu)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Your cart is empty.")
	assert.Contains(t, body, `action="/customer/restaurants/chick-fil-a/cart"`)

	for _, item := range []string{"1", "1", "4"} {
		resp = cart("add", item)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, menu, resp.Header.Get("Location"))
	}

	_, body = b.get(menu)
	assert.Contains(t, body, "Your cart (3)")
	assert.Contains(t, body, "Subtotal: $14.97")

	cart("decrement", "4")
	_, body = b.get(menu)
	assert.Contains(t, body, "Your cart (2)")
	assert.Contains(t, body, "Subtotal: $11.98")
	assert.NotContains(t, body, "Waffle Fries ×")

	_, body = b.get("/customer/restaurants/starbucks")
	assert.Contains(t, body, "Your cart is empty.")

	assert.Equal(t, http.StatusNotFound, cart("add", "99").StatusCode)
	assert.Equal(t, http.StatusBadRequest, cart("checkout", "1").StatusCode)

	cart("clear", "")
	_, body = b.get(menu)
	assert.Contains(t, body, "Your cart is empty.")

	b.post("/logout", nil)
	resp = cart("add", "1")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/customer/login", resp.Header.Get("Location"))
}

func TestRestaurantsIndex(t *testing.T) {
	b := newBrowser(t, newServer(t, nil))
	b.assertRedirect("/customer/restaurants", "/customer/login")

	b.post("/customer/login", credentials("login", "login"))
	b.assertRedirect("/customer/restaurants", "/customer")
}

func TestMalformedForm(t *testing.T) {
	b := newBrowser(t, newServer(t, nil))

	req, err := http.NewRequest(http.MethodPost, b.base+"/customer/login", strings.NewReader("username=%zz"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, body := b.do(req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
	assert.Contains(t, body, "Invalid form")
}
