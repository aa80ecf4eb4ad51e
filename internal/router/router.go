package router

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dormdash/campus-eats/internal/api"
	"github.com/dormdash/campus-eats/internal/api/handler"
	"github.com/dormdash/campus-eats/internal/catalog"
	"github.com/dormdash/campus-eats/internal/config"
	"github.com/dormdash/campus-eats/internal/metrics"
	"github.com/dormdash/campus-eats/internal/middleware"
	"github.com/dormdash/campus-eats/internal/models"
	"github.com/dormdash/campus-eats/internal/service"
	"github.com/dormdash/campus-eats/internal/session"
	"github.com/dormdash/campus-eats/internal/view"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
)

// Dependencies are what the router needs from main
type Dependencies struct {
	Config  *config.Config
	Catalog catalog.Provider
	Metrics *metrics.Metrics
	// Health reports the catalog backend's health. Optional.
	Health func(context.Context) error
	// Now is the clock used for order statistics. Defaults to time.Now.
	Now func() time.Time
}

// Router handles HTTP routing
type Router struct {
	mux     *mux.Router
	handler http.Handler
	nav     *service.Navigator
	auth    *service.AuthService
	metrics *metrics.Metrics
	health  func(context.Context) error
}

// New creates a new router
func New(deps Dependencies) (*Router, error) {
	cfg := deps.Config

	auth, err := service.NewAuthServiceFromConfig(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	views, err := view.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	m := deps.Metrics
	if m == nil {
		m = metrics.New()
	}

	r := &Router{
		mux:     mux.NewRouter(),
		nav:     service.NewNavigator(),
		auth:    auth,
		metrics: m,
		health:  deps.Health,
	}

	store := session.NewStore(session.Options{
		Name:     cfg.Session.Name,
		HashKey:  []byte(cfg.Session.HashKey),
		BlockKey: []byte(cfg.Session.BlockKey),
		MaxAge:   cfg.Session.MaxAge,
		Secure:   cfg.Server.SecureCookies,
	})
	dashboards := service.NewDashboardService(deps.Catalog, deps.Now)
	accounts := service.NewAccountService(cfg.Auth.EmailDomain)
	carts := service.NewCartService(deps.Catalog)

	pages := handler.NewPageHandler(r.nav, auth, dashboards, accounts, carts, store, views, m)
	apiHandler := handler.NewAPIHandler(r.nav, auth, dashboards, m)

	r.setupRoutes(cfg.Server, pages, apiHandler, store)
	r.handler = middleware.Logger(m)(r.mux)

	return r, nil
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

// setupRoutes sets up the routes for the router
func (r *Router) setupRoutes(server config.Server, pages *handler.PageHandler, apiHandler *handler.APIHandler, store *session.Store) {
	// Operational routes
	r.mux.HandleFunc("/healthz", r.handleHealth).Methods(http.MethodGet)
	r.mux.Handle("/metrics", r.metrics.Handler()).Methods(http.MethodGet)

	// JSON API, authenticated with bearer tokens
	apiRouter := r.mux.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/auth/login", apiHandler.Login).Methods(http.MethodPost)

	optional := middleware.OptionalAuth(r.auth)
	apiRouter.Handle("/navigation/{page}", optional(http.HandlerFunc(apiHandler.Navigation))).Methods(http.MethodGet)
	apiRouter.HandleFunc("/pages", apiHandler.Pages).Methods(http.MethodGet)

	authed := middleware.Auth(r.auth)
	customer := func(h http.HandlerFunc) http.Handler {
		return authed(middleware.RequireRole(models.RoleCustomer)(h))
	}
	worker := func(h http.HandlerFunc) http.Handler {
		return authed(middleware.RequireRole(models.RoleWorker)(h))
	}

	apiRouter.Handle("/session", authed(http.HandlerFunc(apiHandler.Session))).Methods(http.MethodGet)
	apiRouter.Handle("/restaurants", customer(apiHandler.Restaurants)).Methods(http.MethodGet)
	apiRouter.Handle("/restaurants/{slug}/menu", customer(apiHandler.Menu)).Methods(http.MethodGet)
	apiRouter.Handle("/orders", customer(apiHandler.Orders)).Methods(http.MethodGet)
	apiRouter.Handle("/jobs", worker(apiHandler.Jobs)).Methods(http.MethodGet)
	apiRouter.Handle("/deliveries", worker(apiHandler.Deliveries)).Methods(http.MethodGet)

	// HTML pages, authenticated with the session cookie
	pageRouter := r.mux.PathPrefix("/").Subrouter()
	pageRouter.Use(middleware.Session(store))
	if server.CSRFKey != "" {
		pageRouter.Use(csrf.Protect(
			[]byte(server.CSRFKey),
			csrf.Secure(server.SecureCookies),
			csrf.Path("/"),
		))
	}

	pageRouter.Handle(r.nav.Route(models.PageLanding), r.page(models.PageLanding, pages.Landing)).Methods(http.MethodGet)

	for _, role := range []models.UserRole{models.RoleCustomer, models.RoleWorker} {
		login := service.LoginPage(role)
		pageRouter.Handle(r.nav.Route(login), r.page(login, pages.LoginForm(role))).Methods(http.MethodGet)
		pageRouter.Handle(r.nav.Route(login), r.page(login, pages.Login(role))).Methods(http.MethodPost)
	}

	pageRouter.Handle(r.nav.Route(models.PageCustomerDashboard), r.page(models.PageCustomerDashboard, pages.CustomerDashboard)).Methods(http.MethodGet)
	pageRouter.Handle(r.nav.Route(models.PageCustomerOrders), r.page(models.PageCustomerOrders, pages.CustomerOrders)).Methods(http.MethodGet)
	pageRouter.Handle(r.nav.Route(models.PageRestaurantMenu), r.page(models.PageRestaurantMenu, pages.Restaurants)).Methods(http.MethodGet)
	pageRouter.Handle(r.nav.Route(models.PageRestaurantMenu)+"/{slug}", r.page(models.PageRestaurantMenu, pages.RestaurantMenu)).Methods(http.MethodGet)
	pageRouter.Handle(r.nav.Route(models.PageRestaurantMenu)+"/{slug}/cart", r.page(models.PageRestaurantMenu, pages.UpdateCart)).Methods(http.MethodPost)
	pageRouter.Handle(r.nav.Route(models.PageWorkerDashboard), r.page(models.PageWorkerDashboard, pages.WorkerDashboard)).Methods(http.MethodGet)
	pageRouter.Handle(r.nav.Route(models.PageWorkerOrders), r.page(models.PageWorkerOrders, pages.WorkerOrders)).Methods(http.MethodGet)
	pageRouter.Handle(r.nav.Route(models.PageAccount), r.page(models.PageAccount, pages.Account)).Methods(http.MethodGet)
	pageRouter.Handle(r.nav.Route(models.PageAccount), r.page(models.PageAccount, pages.SaveAccount)).Methods(http.MethodPost)

	pageRouter.HandleFunc("/logout", pages.Logout).Methods(http.MethodPost)
}

// page guards a handler with the access rule of the named page
func (r *Router) page(name models.PageName, h http.HandlerFunc) http.Handler {
	return middleware.RequireAccess(r.nav, name, r.metrics)(h)
}

// handleHealth reports whether the catalog backend is reachable
func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	if r.health != nil {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()

		if err := r.health(ctx); err != nil {
			api.Error(w, http.StatusServiceUnavailable, "catalog unavailable")
			return
		}
	}
	api.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
