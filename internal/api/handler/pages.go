package handler

import (
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/dormdash/campus-eats/internal/catalog"
	"github.com/dormdash/campus-eats/internal/metrics"
	"github.com/dormdash/campus-eats/internal/middleware"
	"github.com/dormdash/campus-eats/internal/models"
	"github.com/dormdash/campus-eats/internal/service"
	"github.com/dormdash/campus-eats/internal/session"
	"github.com/dormdash/campus-eats/internal/view"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
)

const (
	msgMissingFields      = "Please enter both username and password."
	msgInvalidCredentials = "Invalid username or password."
)

// PageHandler serves the HTML pages. Access rules are applied by
// middleware.RequireAccess before these handlers run.
type PageHandler struct {
	nav        *service.Navigator
	auth       *service.AuthService
	dashboards *service.DashboardService
	accounts   *service.AccountService
	carts      *service.CartService
	store      *session.Store
	views      *view.Renderer
	metrics    *metrics.Metrics
}

// NewPageHandler creates a new page handler
func NewPageHandler(
	nav *service.Navigator,
	auth *service.AuthService,
	dashboards *service.DashboardService,
	accounts *service.AccountService,
	carts *service.CartService,
	store *session.Store,
	views *view.Renderer,
	m *metrics.Metrics,
) *PageHandler {
	return &PageHandler{
		nav:        nav,
		auth:       auth,
		dashboards: dashboards,
		accounts:   accounts,
		carts:      carts,
		store:      store,
		views:      views,
		metrics:    m,
	}
}

// render fills the common page data and writes the template
func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, name models.PageName, data interface{}, flash, errMsg string) {
	sess := middleware.GetSession(r.Context())

	title := ""
	if p, err := h.nav.Page(name); err == nil {
		title = p.Title
	}

	h.views.Render(w, status, view.Page{
		Name:    name,
		Title:   title,
		Session: sess,
		Theme:   service.ThemeFor(sess.Role),
		Links:   h.nav.Links(sess, name),
		CSRF:    csrf.TemplateField(r),
		Flash:   flash,
		Error:   errMsg,
		Data:    data,
	})
}

func (h *PageHandler) fail(w http.ResponseWriter, err error) {
	log.Printf("Page error: %v", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// Landing shows the role picker
func (h *PageHandler) Landing(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, models.PageLanding, nil, "", "")
}

// LoginForm shows the login form for role
func (h *PageHandler) LoginForm(role models.UserRole) http.HandlerFunc {
	page := service.LoginPage(role)
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, r, http.StatusOK, page, view.LoginForm{
			Role:   role,
			Action: h.nav.Route(page),
		}, "", "")
	}
}

// Login checks the submitted credentials for role. On success the session
// cookie is written and the user is sent to the role's home page; failures
// re-render the form with the message inline.
func (h *PageHandler) Login(role models.UserRole) http.HandlerFunc {
	page := service.LoginPage(role)
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form", http.StatusBadRequest)
			return
		}

		username := r.PostFormValue("username")
		password := r.PostFormValue("password")

		sess, err := h.auth.Login(r.Context(), role, username, password)
		if err != nil {
			status, msg := http.StatusUnauthorized, msgInvalidCredentials
			if errors.Is(err, service.ErrMissingFields) {
				status, msg = http.StatusBadRequest, msgMissingFields
			}
			h.recordLogin(role, "failure")

			h.render(w, r, status, page, view.LoginForm{
				Role:     role,
				Action:   h.nav.Route(page),
				Username: username,
			}, "", msg)
			return
		}

		if err := h.store.Save(w, r, sess); err != nil {
			h.fail(w, err)
			return
		}
		h.recordLogin(role, "success")
		log.Printf("%s %q logged in", role, sess.Username)

		http.Redirect(w, r, h.nav.Route(service.HomePage(sess.Role)), http.StatusSeeOther)
	}
}

func (h *PageHandler) recordLogin(role models.UserRole, result string) {
	if h.metrics != nil {
		h.metrics.Login(string(role), result)
	}
}

// Logout clears the session cookie and returns to the landing page
func (h *PageHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Save(w, r, h.auth.Logout()); err != nil {
		h.fail(w, err)
		return
	}
	http.Redirect(w, r, h.nav.Route(models.PageLanding), http.StatusSeeOther)
}

// CustomerDashboard shows restaurants filtered by ?q= and ?category=
func (h *PageHandler) CustomerDashboard(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	q := r.URL.Query()

	dashboard, err := h.dashboards.Customer(r.Context(), sess.Username, q.Get("q"), q.Get("category"))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.render(w, r, http.StatusOK, models.PageCustomerDashboard, dashboard, "", "")
}

// CustomerOrders shows the customer's order history
func (h *PageHandler) CustomerOrders(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	orders, err := h.dashboards.CustomerOrders(r.Context(), sess.Username)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.render(w, r, http.StatusOK, models.PageCustomerOrders, orders, "", "")
}

// Restaurants has no page of its own; the list lives on the dashboard
func (h *PageHandler) Restaurants(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.nav.Route(models.PageCustomerDashboard), http.StatusSeeOther)
}

// RestaurantMenu shows one restaurant's menu with the customer's cart for it
func (h *PageHandler) RestaurantMenu(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	menu, err := h.dashboards.Menu(r.Context(), slug)
	if errors.Is(err, catalog.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.fail(w, err)
		return
	}

	h.render(w, r, http.StatusOK, models.PageRestaurantMenu, view.MenuPage{
		Restaurant: menu.Restaurant,
		Sections:   menu.Sections,
		Cart:       h.store.LoadCarts(r)[slug],
		CartAction: h.menuRoute(slug) + "/cart",
	}, "", "")
}

// UpdateCart applies one cart operation and returns to the menu
func (h *PageHandler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	slug := mux.Vars(r)["slug"]
	item := r.PostFormValue("item")
	carts := h.store.LoadCarts(r)

	var err error
	switch r.PostFormValue("op") {
	case "add":
		carts, err = h.carts.Add(r.Context(), carts, slug, item)
	case "increment":
		carts = h.carts.UpdateQuantity(carts, slug, item, 1)
	case "decrement":
		carts = h.carts.UpdateQuantity(carts, slug, item, -1)
	case "remove":
		carts = h.carts.Remove(carts, slug, item)
	case "clear":
		carts = h.carts.Clear(carts, slug)
	default:
		http.Error(w, "Unknown cart operation", http.StatusBadRequest)
		return
	}
	if errors.Is(err, catalog.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.fail(w, err)
		return
	}

	if err := h.store.SaveCarts(w, r, carts); err != nil {
		h.fail(w, err)
		return
	}
	http.Redirect(w, r, h.menuRoute(slug), http.StatusSeeOther)
}

func (h *PageHandler) menuRoute(slug string) string {
	return h.nav.Route(models.PageRestaurantMenu) + "/" + url.PathEscape(slug)
}

// WorkerDashboard shows the current delivery and open jobs
func (h *PageHandler) WorkerDashboard(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	dashboard, err := h.dashboards.Worker(r.Context(), sess.Username)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.render(w, r, http.StatusOK, models.PageWorkerDashboard, dashboard, "", "")
}

// WorkerOrders shows the worker's delivery history
func (h *PageHandler) WorkerOrders(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	deliveries, err := h.dashboards.WorkerOrders(r.Context(), sess.Username)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.render(w, r, http.StatusOK, models.PageWorkerOrders, deliveries, "", "")
}

// Account shows the settings form for the session's role
func (h *PageHandler) Account(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	h.render(w, r, http.StatusOK, models.PageAccount, view.AccountForm{
		Settings:     h.accounts.Settings(sess),
		VehicleTypes: models.VehicleTypes,
	}, "", "")
}

// SaveAccount echoes the submitted settings with a confirmation. Nothing is stored.
func (h *PageHandler) SaveAccount(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	sess := middleware.GetSession(r.Context())

	settings, err := h.accounts.Save(sess, accountFromForm(r))
	form := view.AccountForm{Settings: settings, VehicleTypes: models.VehicleTypes}
	if err != nil {
		h.render(w, r, http.StatusBadRequest, models.PageAccount, form, "", err.Error())
		return
	}
	h.render(w, r, http.StatusOK, models.PageAccount, form, service.SettingsSavedMessage, "")
}

func accountFromForm(r *http.Request) models.AccountSettings {
	checked := func(name string) bool {
		return r.PostFormValue(name) != ""
	}

	return models.AccountSettings{
		FirstName:          r.PostFormValue("first_name"),
		LastName:           r.PostFormValue("last_name"),
		Email:              r.PostFormValue("email"),
		Phone:              r.PostFormValue("phone"),
		Building:           r.PostFormValue("building"),
		Room:               r.PostFormValue("room"),
		Floor:              r.PostFormValue("floor"),
		Instructions:       r.PostFormValue("instructions"),
		CardLast4:          r.PostFormValue("card_last4"),
		CardExpiry:         r.PostFormValue("card_expiry"),
		ZIP:                r.PostFormValue("zip"),
		VehicleType:        r.PostFormValue("vehicle_type"),
		VehicleModel:       r.PostFormValue("vehicle_model"),
		LicensePlate:       r.PostFormValue("license_plate"),
		VehicleColor:       r.PostFormValue("vehicle_color"),
		EmailNotifications: checked("email_notifications"),
		SMSNotifications:   checked("sms_notifications"),
		PushNotifications:  checked("push_notifications"),
		OrderAlerts:        checked("order_alerts"),
	}
}
