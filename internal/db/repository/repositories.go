package repository

import (
	"github.com/dormdash/campus-eats/internal/db"
)

// Repositories provides access to all repository instances
type Repositories struct {
	Catalog *CatalogRepository
}

// NewRepositories creates a new repositories container
func NewRepositories(database *db.Postgres) *Repositories {
	return &Repositories{
		Catalog: NewCatalogRepository(database.DB),
	}
}
