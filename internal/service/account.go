package service

import (
	"fmt"

	"github.com/dormdash/campus-eats/internal/models"
)

// SettingsSavedMessage is the confirmation shown after saving account settings
const SettingsSavedMessage = "Settings saved successfully!"

// ThemeFor selects the color scheme and back target for a role
func ThemeFor(role models.UserRole) models.Theme {
	if role == models.RoleWorker {
		return models.Theme{
			PrimaryColor:   "#007AFF",
			SecondaryColor: "#dbeafe",
			GradientStart:  "#dbeafe",
			GradientEnd:    "#e0e7ff",
			LogoIcon:       "🚗",
			BackPage:       models.PageWorkerDashboard,
		}
	}
	return models.Theme{
		PrimaryColor:   "#f2b90d",
		SecondaryColor: "#fef3c7",
		GradientStart:  "#fef3c7",
		GradientEnd:    "#fde68a",
		LogoIcon:       "🎓",
		BackPage:       models.PageCustomerDashboard,
	}
}

// AccountService produces the account page contents
type AccountService struct {
	emailDomain string
}

// NewAccountService creates a new account service
func NewAccountService(emailDomain string) *AccountService {
	if emailDomain == "" {
		emailDomain = "umbc.edu"
	}
	return &AccountService{emailDomain: emailDomain}
}

// Settings returns the prefilled settings for a session
func (s *AccountService) Settings(sess models.Session) models.AccountSettings {
	settings := models.AccountSettings{
		FirstName:          "John",
		LastName:           "Doe",
		Email:              fmt.Sprintf("%s@%s", sess.Username, s.emailDomain),
		Phone:              "+1 (410) 555-1234",
		EmailNotifications: true,
		SMSNotifications:   true,
		PushNotifications:  true,
		OrderAlerts:        true,
	}

	switch sess.Role {
	case models.RoleWorker:
		settings.VehicleType = models.VehicleTypes[0]
		settings.VehicleModel = "Honda Civic"
		settings.LicensePlate = "ABC1234"
		settings.VehicleColor = "Silver"
	default:
		settings.Building = "Sondheim Hall"
		settings.Room = "305"
		settings.Floor = "3"
		settings.Instructions = "Leave at door"
		settings.CardLast4 = "1234"
		settings.CardExpiry = "12/25"
		settings.ZIP = "21250"
	}

	return settings
}

// Save accepts submitted settings and returns what the page should show.
// Nothing is stored: the next visit shows the defaults again.
func (s *AccountService) Save(sess models.Session, submitted models.AccountSettings) (models.AccountSettings, error) {
	if sess.Role == models.RoleWorker {
		valid := false
		for _, v := range models.VehicleTypes {
			if submitted.VehicleType == v {
				valid = true
				break
			}
		}
		if !valid {
			return submitted, fmt.Errorf("unknown vehicle type %q", submitted.VehicleType)
		}
	}

	return submitted, nil
}
