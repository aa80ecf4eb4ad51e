package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dormdash/campus-eats/internal/models"
	"github.com/dormdash/campus-eats/internal/service"
)

var (
	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1)

	faintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

// load renders the current page's content and its buttons
func (m *App) load(ctx context.Context) (string, []button, error) {
	var (
		lines []string
		err   error
	)

	switch m.page {
	case models.PageLanding:
		lines = []string{"Campus food, delivered to your dorm."}
	case models.PageCustomerLogin, models.PageWorkerLogin:
		lines = []string{"Enter your username and password."}
	case models.PageCustomerDashboard:
		var d *service.CustomerDashboard
		d, err = m.dashboards.Customer(ctx, m.session.Username, "", "")
		if err == nil {
			lines = customerDashboardLines(d)
			return strings.Join(lines, "\n"), m.restaurantButtons(d.Restaurants), nil
		}
	case models.PageCustomerOrders:
		var o *service.CustomerOrders
		o, err = m.dashboards.CustomerOrders(ctx, m.session.Username)
		if err == nil {
			lines = customerOrderLines(o)
		}
	case models.PageRestaurantMenu:
		var menu *service.RestaurantMenu
		menu, err = m.dashboards.Menu(ctx, m.slug)
		if err == nil {
			lines = menuLines(menu)
		}
	case models.PageWorkerDashboard:
		var d *service.WorkerDashboard
		d, err = m.dashboards.Worker(ctx, m.session.Username)
		if err == nil {
			lines = workerDashboardLines(d)
		}
	case models.PageWorkerOrders:
		var o *service.WorkerOrders
		o, err = m.dashboards.WorkerOrders(ctx, m.session.Username)
		if err == nil {
			lines = workerOrderLines(o)
		}
	case models.PageAccount:
		lines = accountLines(m.session, m.accounts.Settings(m.session))
	}

	return strings.Join(lines, "\n"), m.actionButtons(), err
}

func (m *App) actionButtons() []button {
	var buttons []button
	for _, t := range m.nav.Transitions(m.page) {
		buttons = append(buttons, button{label: actionLabels[t.Action], action: t.Action})
	}
	return buttons
}

// restaurantButtons expands the restaurant transition into one button per restaurant
func (m *App) restaurantButtons(restaurants []models.Restaurant) []button {
	var buttons []button
	for _, b := range m.actionButtons() {
		if b.action != service.ActionRestaurant {
			buttons = append(buttons, b)
			continue
		}
		for _, r := range restaurants {
			buttons = append(buttons, button{
				label:  fmt.Sprintf("%s %s", r.Icon, r.Name),
				action: service.ActionRestaurant,
				slug:   r.Slug,
			})
		}
	}
	return buttons
}

func customerDashboardLines(d *service.CustomerDashboard) []string {
	var lines []string
	if o := d.ActiveOrder; o != nil {
		lines = append(lines,
			sectionStyle.Render("Current order"),
			fmt.Sprintf("%s %s · %s · %s", o.Icon, o.Title, o.Restaurant, o.Status.CustomerLabel()),
		)
	}
	lines = append(lines, sectionStyle.Render("Restaurants"))
	for _, r := range d.Restaurants {
		lines = append(lines, fmt.Sprintf("%s %s  %s", r.Icon, r.Name, faintStyle.Render(string(r.Category)+" · "+r.Hours)))
	}
	return lines
}

func customerOrderLines(o *service.CustomerOrders) []string {
	lines := []string{
		fmt.Sprintf("Total orders: %d   This month: %d   Total spent: %s",
			o.Stats.TotalOrders, o.Stats.ThisMonth, o.Stats.TotalSpent),
		sectionStyle.Render("History"),
	}
	for _, order := range o.Orders {
		lines = append(lines, fmt.Sprintf("%s %s · %s · %s · %s",
			order.Icon, order.Title, order.Restaurant, order.Total, order.Status.CustomerLabel()))
	}
	return lines
}

func menuLines(menu *service.RestaurantMenu) []string {
	lines := []string{
		fmt.Sprintf("%s %s", menu.Restaurant.Icon, menu.Restaurant.Name),
		faintStyle.Render(menu.Restaurant.Hours + " · " + menu.Restaurant.Info),
	}
	for _, section := range menu.Sections {
		lines = append(lines, sectionStyle.Render(section.Category))
		for _, item := range section.Items {
			lines = append(lines, fmt.Sprintf("%s %s  %s", item.Icon, item.Name, item.Price))
		}
	}
	return lines
}

func workerDashboardLines(d *service.WorkerDashboard) []string {
	var lines []string
	if dl := d.ActiveDelivery; dl != nil {
		lines = append(lines,
			sectionStyle.Render("Current delivery"),
			fmt.Sprintf("%s %s · %s · %s", dl.Icon, dl.Title, dl.Restaurant, dl.Earnings),
		)
	}
	lines = append(lines, sectionStyle.Render("Available jobs"))
	for _, j := range d.Jobs {
		lines = append(lines, fmt.Sprintf("%s %s · %s → %s · %s", j.Icon, j.Title, j.Restaurant, j.Location, j.Pay))
	}
	return lines
}

func workerOrderLines(o *service.WorkerOrders) []string {
	lines := []string{
		fmt.Sprintf("Today: %d   This week: %d   Total earnings: %s",
			o.Stats.Today, o.Stats.ThisWeek, o.Stats.TotalEarnings),
		sectionStyle.Render("History"),
	}
	for _, d := range o.Deliveries {
		lines = append(lines, fmt.Sprintf("%s %s · %s · %s · %s",
			d.Icon, d.Title, d.Restaurant, d.Earnings, d.Status.WorkerLabel()))
	}
	return lines
}

func accountLines(sess models.Session, s models.AccountSettings) []string {
	lines := []string{
		fmt.Sprintf("%s %s", s.FirstName, s.LastName),
		s.Email,
		s.Phone,
	}
	if sess.Is(models.RoleWorker) {
		lines = append(lines,
			sectionStyle.Render("Vehicle"),
			fmt.Sprintf("%s · %s %s · %s", s.VehicleType, s.VehicleColor, s.VehicleModel, s.LicensePlate),
		)
	} else {
		lines = append(lines,
			sectionStyle.Render("Delivery address"),
			fmt.Sprintf("%s, room %s (floor %s)", s.Building, s.Room, s.Floor),
		)
	}
	return lines
}
