package models

// VehicleTypes are the choices offered to delivery workers
var VehicleTypes = []string{"Car", "Bike", "Scooter", "Walking"}

// AccountSettings is the editable content of the account page.
// Saving it shows a confirmation but nothing is persisted.
type AccountSettings struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	// Customer only
	Building     string `json:"building,omitempty"`
	Room         string `json:"room,omitempty"`
	Floor        string `json:"floor,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	CardLast4    string `json:"card_last4,omitempty"`
	CardExpiry   string `json:"card_expiry,omitempty"`
	ZIP          string `json:"zip,omitempty"`

	// Worker only
	VehicleType  string `json:"vehicle_type,omitempty"`
	VehicleModel string `json:"vehicle_model,omitempty"`
	LicensePlate string `json:"license_plate,omitempty"`
	VehicleColor string `json:"vehicle_color,omitempty"`

	EmailNotifications bool `json:"email_notifications"`
	SMSNotifications   bool `json:"sms_notifications"`
	PushNotifications  bool `json:"push_notifications"`
	// OrderAlerts is "new order alerts" for workers and "order status updates" for customers
	OrderAlerts bool `json:"order_alerts"`
}

// Theme is the color scheme and back-navigation target selected by role
type Theme struct {
	PrimaryColor   string   `json:"primary_color"`
	SecondaryColor string   `json:"secondary_color"`
	GradientStart  string   `json:"gradient_start"`
	GradientEnd    string   `json:"gradient_end"`
	LogoIcon       string   `json:"logo_icon"`
	BackPage       PageName `json:"back_page"`
}
