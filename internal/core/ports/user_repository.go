package ports

import (
	"context"
	"time"

	"github.com/skillbridge/jobmatch/internal/core/domain"
)

// UserRepository defines persistence for accounts and their role profiles.
type UserRepository interface {
	// Create inserts the user and returns it with its assigned ID.
	// Returns domain.ErrUserExists when the email is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	RecordLogin(ctx context.Context, id string, at time.Time) error
	MarkEmailVerified(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// Delete removes the user. Used to roll back a signup whose profile
	// could not be stored.
	Delete(ctx context.Context, id string) error
}

// ProfileRepository stores the role-specific profile created at signup.
type ProfileRepository interface {
	CreateJobSeeker(ctx context.Context, p *domain.JobSeekerProfile) error
	CreateEmployer(ctx context.Context, p *domain.EmployerProfile) error
}
