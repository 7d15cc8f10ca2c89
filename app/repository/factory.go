package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Repositories bundles the repository instances for the two intake tables.
type Repositories struct {
	Pending PendingSubmissionRepository
	Paid    PaidSubmissionRepository
}

// NewRepositories creates all repositories from a DB handle.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Pending: NewPendingSubmissionRepository(db),
		Paid:    NewPaidSubmissionRepository(db),
	}
}

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// GetPendingSubmissionRepository returns the pending-submission repository instance
func (f *Factory) GetPendingSubmissionRepository() PendingSubmissionRepository {
	return f.GetRepositories().Pending
}

// GetPaidSubmissionRepository returns the paid-submission repository instance
func (f *Factory) GetPaidSubmissionRepository() PaidSubmissionRepository {
	return f.GetRepositories().Paid
}
