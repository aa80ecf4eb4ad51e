package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dormdash/campus-eats/internal/api"
	"github.com/dormdash/campus-eats/internal/catalog"
	"github.com/dormdash/campus-eats/internal/metrics"
	"github.com/dormdash/campus-eats/internal/middleware"
	"github.com/dormdash/campus-eats/internal/models"
	"github.com/dormdash/campus-eats/internal/service"
	"github.com/gorilla/mux"
)

// APIHandler serves the JSON API used by non-browser clients
type APIHandler struct {
	nav        *service.Navigator
	auth       *service.AuthService
	dashboards *service.DashboardService
	metrics    *metrics.Metrics
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(nav *service.Navigator, auth *service.AuthService, dashboards *service.DashboardService, m *metrics.Metrics) *APIHandler {
	return &APIHandler{
		nav:        nav,
		auth:       auth,
		dashboards: dashboards,
		metrics:    m,
	}
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Role     string `json:"role"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token and the session it encodes
type LoginResponse struct {
	Token   string         `json:"token"`
	Session models.Session `json:"session"`
}

// NavigationResponse is the access decision for one page
type NavigationResponse struct {
	Page     models.PageName `json:"page"`
	Decision string          `json:"decision"`
	Target   models.PageName `json:"target,omitempty"`
	Route    string          `json:"route"`
}

// Login exchanges credentials for a bearer token
func (h *APIHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		api.BadRequest(w, "role must be customer or worker")
		return
	}

	sess, err := h.auth.Login(r.Context(), role, req.Username, req.Password)
	switch {
	case errors.Is(err, service.ErrMissingFields):
		h.recordLogin(role, "failure")
		api.BadRequest(w, err.Error())
		return
	case err != nil:
		h.recordLogin(role, "failure")
		api.Unauthorized(w, err.Error())
		return
	}

	token, err := h.auth.GenerateToken(sess)
	if err != nil {
		api.InternalError(w, err)
		return
	}
	h.recordLogin(role, "success")

	api.JSON(w, http.StatusOK, LoginResponse{Token: token, Session: sess})
}

func (h *APIHandler) recordLogin(role models.UserRole, result string) {
	if h.metrics != nil {
		h.metrics.Login(string(role), result)
	}
}

// Session returns the caller's session
func (h *APIHandler) Session(w http.ResponseWriter, r *http.Request) {
	api.JSON(w, http.StatusOK, middleware.GetSession(r.Context()))
}

// Navigation reports whether the caller may open a page and where they
// would be sent otherwise
func (h *APIHandler) Navigation(w http.ResponseWriter, r *http.Request) {
	page := models.PageName(mux.Vars(r)["page"])

	decision, err := h.nav.AuthorizePage(middleware.GetSession(r.Context()), page)
	if errors.Is(err, service.ErrUnknownPage) {
		api.NotFound(w, err.Error())
		return
	}
	if err != nil {
		api.InternalError(w, err)
		return
	}

	resp := NavigationResponse{
		Page:     page,
		Decision: decision.String(),
		Route:    h.nav.Route(page),
	}
	if !decision.Allow {
		resp.Target = decision.Target
		resp.Route = h.nav.Route(decision.Target)
	}
	api.JSON(w, http.StatusOK, resp)
}

// Pages lists the page catalog
func (h *APIHandler) Pages(w http.ResponseWriter, r *http.Request) {
	api.JSON(w, http.StatusOK, h.nav.Pages())
}

// Restaurants lists every restaurant
func (h *APIHandler) Restaurants(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	restaurants, err := h.dashboards.Restaurants(r.Context())
	if err != nil {
		api.InternalError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, service.FilterRestaurants(restaurants, q.Get("q"), q.Get("category")))
}

// Menu returns a restaurant's menu grouped by category
func (h *APIHandler) Menu(w http.ResponseWriter, r *http.Request) {
	menu, err := h.dashboards.Menu(r.Context(), mux.Vars(r)["slug"])
	if errors.Is(err, catalog.ErrNotFound) {
		api.NotFound(w, "Restaurant not found")
		return
	}
	if err != nil {
		api.InternalError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, menu)
}

// Orders returns the customer's orders with their summary
func (h *APIHandler) Orders(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	orders, err := h.dashboards.CustomerOrders(r.Context(), sess.Username)
	if err != nil {
		api.InternalError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, orders)
}

// Jobs lists the jobs open to workers
func (h *APIHandler) Jobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.dashboards.Jobs(r.Context())
	if err != nil {
		api.InternalError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, jobs)
}

// Deliveries returns the worker's deliveries with their summary
func (h *APIHandler) Deliveries(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	deliveries, err := h.dashboards.WorkerOrders(r.Context(), sess.Username)
	if err != nil {
		api.InternalError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, deliveries)
}
