package service

import (
	"errors"
	"fmt"

	"github.com/dormdash/campus-eats/internal/models"
)

var (
	ErrUnknownPage       = errors.New("unknown page")
	ErrUnknownTransition = errors.New("unknown transition")
)

// Action is a button or link that moves the user between pages
type Action string

const (
	ActionContinueCustomer Action = "continue-customer"
	ActionContinueWorker   Action = "continue-worker"
	ActionLogin            Action = "login"
	ActionBack             Action = "back"
	ActionOrders           Action = "orders"
	ActionAccount          Action = "account"
	ActionRestaurant       Action = "restaurant"
	ActionHome             Action = "home"
	ActionJobs             Action = "jobs"
	ActionCancel           Action = "cancel"
	ActionSave             Action = "save"
	ActionLogout           Action = "logout"
)

// Decision is the outcome of an access check
type Decision struct {
	Allow  bool
	Target models.PageName
}

// Allowed admits the request
func Allowed() Decision {
	return Decision{Allow: true}
}

// RedirectTo sends the request to target instead
func RedirectTo(target models.PageName) Decision {
	return Decision{Target: target}
}

func (d Decision) String() string {
	if d.Allow {
		return "allow"
	}
	return "redirect"
}

// HomePage returns the page a logged-in role lands on
func HomePage(role models.UserRole) models.PageName {
	switch role {
	case models.RoleCustomer:
		return models.PageCustomerDashboard
	case models.RoleWorker:
		return models.PageWorkerDashboard
	default:
		return models.PageLanding
	}
}

// LoginPage returns the login form for role
func LoginPage(role models.UserRole) models.PageName {
	if role == models.RoleWorker {
		return models.PageWorkerLogin
	}
	return models.PageCustomerLogin
}

// Authorize decides whether a session may see a page requiring access.
// Rules are evaluated in order: logged-in users are kept off the
// unauthenticated forms, role pages demand a matching login, and
// authenticated pages send anonymous users to the landing page.
func Authorize(sess models.Session, access models.Access) Decision {
	switch access {
	case models.AccessUnauthenticated:
		if sess.LoggedIn {
			return RedirectTo(HomePage(sess.Role))
		}
	case models.AccessCustomer:
		if !sess.Is(models.RoleCustomer) {
			return RedirectTo(LoginPage(models.RoleCustomer))
		}
	case models.AccessWorker:
		if !sess.Is(models.RoleWorker) {
			return RedirectTo(LoginPage(models.RoleWorker))
		}
	case models.AccessAuthenticated:
		if !sess.LoggedIn {
			return RedirectTo(models.PageLanding)
		}
	}
	return Allowed()
}

// Transition is an edge of the page graph
type Transition struct {
	Action Action
	To     models.PageName
}

// Navigator owns the page catalog and the explicit transition table
type Navigator struct {
	pages       map[models.PageName]models.Page
	order       []models.PageName
	transitions map[models.PageName][]Transition
}

// NewNavigator creates a navigator over the standard page catalog
func NewNavigator() *Navigator {
	n := &Navigator{
		pages: make(map[models.PageName]models.Page),
		transitions: map[models.PageName][]Transition{
			models.PageLanding: {
				{ActionContinueCustomer, models.PageCustomerLogin},
				{ActionContinueWorker, models.PageWorkerLogin},
			},
			models.PageCustomerLogin: {
				{ActionBack, models.PageLanding},
				{ActionLogin, models.PageHome},
			},
			models.PageWorkerLogin: {
				{ActionBack, models.PageLanding},
				{ActionLogin, models.PageHome},
			},
			models.PageCustomerDashboard: {
				{ActionOrders, models.PageCustomerOrders},
				{ActionAccount, models.PageAccount},
				{ActionRestaurant, models.PageRestaurantMenu},
			},
			models.PageCustomerOrders: {
				{ActionHome, models.PageCustomerDashboard},
			},
			models.PageRestaurantMenu: {
				{ActionBack, models.PageCustomerDashboard},
			},
			models.PageWorkerDashboard: {
				{ActionOrders, models.PageWorkerOrders},
				{ActionAccount, models.PageAccount},
			},
			models.PageWorkerOrders: {
				{ActionJobs, models.PageWorkerDashboard},
			},
			models.PageAccount: {
				{ActionBack, models.PageHome},
				{ActionCancel, models.PageHome},
				{ActionSave, models.PageAccount},
				{ActionLogout, models.PageLanding},
			},
		},
	}
	for _, p := range models.Pages() {
		n.pages[p.Name] = p
		n.order = append(n.order, p.Name)
	}
	return n
}

// Page looks up a page by name
func (n *Navigator) Page(name models.PageName) (models.Page, error) {
	p, ok := n.pages[name]
	if !ok {
		return models.Page{}, fmt.Errorf("%w: %s", ErrUnknownPage, name)
	}
	return p, nil
}

// Pages returns the catalog in display order
func (n *Navigator) Pages() []models.Page {
	pages := make([]models.Page, 0, len(n.order))
	for _, name := range n.order {
		pages = append(pages, n.pages[name])
	}
	return pages
}

// Route returns the URL path of a page, or "/" for unknown pages
func (n *Navigator) Route(name models.PageName) string {
	if p, ok := n.pages[name]; ok {
		return p.Route
	}
	return "/"
}

// AuthorizePage runs Authorize against a page of the catalog
func (n *Navigator) AuthorizePage(sess models.Session, name models.PageName) (Decision, error) {
	p, err := n.Page(name)
	if err != nil {
		return Decision{}, err
	}
	return Authorize(sess, p.Access), nil
}

// Transitions lists the actions available from a page
func (n *Navigator) Transitions(from models.PageName) []Transition {
	return n.transitions[from]
}

// Resolve maps the PageHome placeholder to the session's home page
func (n *Navigator) Resolve(sess models.Session, target models.PageName) models.PageName {
	if target == models.PageHome {
		return HomePage(sess.Role)
	}
	return target
}

// Navigate follows action from a page and returns the page the session ends
// up on once the target's access rule has been applied.
func (n *Navigator) Navigate(sess models.Session, from models.PageName, action Action) (models.PageName, error) {
	if _, err := n.Page(from); err != nil {
		return "", err
	}

	for _, t := range n.transitions[from] {
		if t.Action != action {
			continue
		}

		target := n.Resolve(sess, t.To)
		decision, err := n.AuthorizePage(sess, target)
		if err != nil {
			return "", err
		}
		if !decision.Allow {
			return decision.Target, nil
		}
		return target, nil
	}

	return "", fmt.Errorf("%w: %s from %s", ErrUnknownTransition, action, from)
}

// Links maps each action available from a page to the route it leads to
// for this session. Used by templates to render navigation.
func (n *Navigator) Links(sess models.Session, from models.PageName) map[string]string {
	links := make(map[string]string)
	for _, t := range n.transitions[from] {
		links[string(t.Action)] = n.Route(n.Resolve(sess, t.To))
	}
	return links
}
