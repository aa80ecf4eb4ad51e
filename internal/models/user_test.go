package models_test

import (
	"testing"

	"github.com/dormdash/campus-eats/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	role, err := models.ParseRole("customer")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, role)

	role, err = models.ParseRole("worker")
	require.NoError(t, err)
	assert.Equal(t, models.RoleWorker, role)

	for _, s := range []string{"", "user", "Customer", "admin"} {
		role, err := models.ParseRole(s)
		assert.Error(t, err, s)
		assert.Equal(t, models.RoleNone, role, s)
	}
}

func TestSessionValid(t *testing.T) {
	assert.True(t, models.NewSession().Valid())
	assert.False(t, models.NewSession().LoggedIn)

	assert.True(t, models.Session{ID: "1", LoggedIn: true, Role: models.RoleWorker, Username: "alice"}.Valid())
	assert.False(t, models.Session{LoggedIn: true}.Valid())
	assert.False(t, models.Session{Role: models.RoleCustomer}.Valid())
	assert.False(t, models.Session{Username: "ghost"}.Valid())
}

func TestSessionIs(t *testing.T) {
	sess := models.Session{ID: "1", LoggedIn: true, Role: models.RoleCustomer, Username: "login"}

	assert.True(t, sess.Is(models.RoleCustomer))
	assert.False(t, sess.Is(models.RoleWorker))
	assert.False(t, models.NewSession().Is(models.RoleNone))
}

func TestCentsString(t *testing.T) {
	assert.Equal(t, "$14.50", models.Cents(1450).String())
	assert.Equal(t, "$0.00", models.Cents(0).String())
	assert.Equal(t, "$4.05", models.Cents(405).String())
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "On the way", models.OrderStatusActive.CustomerLabel())
	assert.Equal(t, "Delivered", models.OrderStatusCompleted.CustomerLabel())
	assert.Equal(t, "Active", models.OrderStatusActive.WorkerLabel())
	assert.Equal(t, "Cancelled", models.OrderStatusCancelled.WorkerLabel())
}
