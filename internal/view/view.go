// Package view renders the server-side HTML pages.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/dormdash/campus-eats/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page is the data every template receives
type Page struct {
	Name    models.PageName
	Title   string
	Session models.Session
	Theme   models.Theme
	// Links maps navigation actions to routes
	Links map[string]string
	CSRF  template.HTML
	Flash string
	Error string
	Data  interface{}
}

// LoginForm backs both login pages
type LoginForm struct {
	Role     models.UserRole
	Action   string
	Username string
}

// MenuPage backs the restaurant menu and its cart
type MenuPage struct {
	Restaurant models.Restaurant
	Sections   []models.MenuSection
	Cart       models.Cart
	CartAction string
}

// AccountForm backs the account settings page
type AccountForm struct {
	Settings     models.AccountSettings
	VehicleTypes []string
}

// Renderer holds one parsed template set per page
type Renderer struct {
	pages map[models.PageName]*template.Template
}

var files = map[models.PageName]string{
	models.PageLanding:           "landing.html",
	models.PageCustomerLogin:     "login.html",
	models.PageWorkerLogin:       "login.html",
	models.PageCustomerDashboard: "customer_dashboard.html",
	models.PageCustomerOrders:    "customer_orders.html",
	models.PageRestaurantMenu:    "restaurant_menu.html",
	models.PageWorkerDashboard:   "worker_dashboard.html",
	models.PageWorkerOrders:      "worker_orders.html",
	models.PageAccount:           "account.html",
}

var funcs = template.FuncMap{
	"when": func(t time.Time) string {
		return t.Format("Jan 2, 3:04 PM")
	},
	"lower": strings.ToLower,
}

// New parses the embedded templates
func New() (*Renderer, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[models.PageName]*template.Template)}
	for name, file := range files {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(sub, "layout.html", file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render writes the page with the given status. The template is executed
// into a buffer first so a failure never sends a half-written page.
func (r *Renderer) Render(w http.ResponseWriter, status int, page Page) {
	tmpl, ok := r.pages[page.Name]
	if !ok {
		log.Printf("No template for page %q", page.Name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", page); err != nil {
		log.Printf("Failed to render %s: %v", page.Name, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
