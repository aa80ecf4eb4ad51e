package models

// PageName identifies a screen of the application
type PageName string

const (
	PageLanding           PageName = "landing"
	PageCustomerLogin     PageName = "customer-login"
	PageWorkerLogin       PageName = "worker-login"
	PageCustomerDashboard PageName = "customer-dashboard"
	PageCustomerOrders    PageName = "customer-orders"
	PageRestaurantMenu    PageName = "restaurant-menu"
	PageWorkerDashboard   PageName = "worker-dashboard"
	PageWorkerOrders      PageName = "worker-orders"
	PageAccount           PageName = "account-settings"

	// PageHome is a transition target resolved to the session role's home page
	PageHome PageName = "home"
)

// Access is the requirement a page places on the session
type Access string

const (
	AccessAny             Access = "any"
	AccessUnauthenticated Access = "unauthenticated"
	AccessAuthenticated   Access = "authenticated"
	AccessCustomer        Access = "customer"
	AccessWorker          Access = "worker"
)

// AccessFor returns the access level that admits only role
func AccessFor(role UserRole) Access {
	switch role {
	case RoleCustomer:
		return AccessCustomer
	case RoleWorker:
		return AccessWorker
	default:
		return AccessUnauthenticated
	}
}

// Page is an entry of the static page catalog
type Page struct {
	Name   PageName `json:"name"`
	Route  string   `json:"route"`
	Title  string   `json:"title"`
	Access Access   `json:"access"`
}

// Pages returns the page catalog
func Pages() []Page {
	return []Page{
		{Name: PageLanding, Route: "/", Title: "DormDash", Access: AccessUnauthenticated},
		{Name: PageCustomerLogin, Route: "/customer/login", Title: "Customer Login", Access: AccessUnauthenticated},
		{Name: PageWorkerLogin, Route: "/worker/login", Title: "Worker Login", Access: AccessUnauthenticated},
		{Name: PageCustomerDashboard, Route: "/customer", Title: "Campus Eats", Access: AccessCustomer},
		{Name: PageCustomerOrders, Route: "/customer/orders", Title: "My Orders", Access: AccessCustomer},
		{Name: PageRestaurantMenu, Route: "/customer/restaurants", Title: "Menu", Access: AccessCustomer},
		{Name: PageWorkerDashboard, Route: "/worker", Title: "Jobs", Access: AccessWorker},
		{Name: PageWorkerOrders, Route: "/worker/orders", Title: "My Deliveries", Access: AccessWorker},
		{Name: PageAccount, Route: "/account", Title: "Account", Access: AccessAuthenticated},
	}
}
