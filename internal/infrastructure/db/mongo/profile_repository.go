package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skillbridge/jobmatch/internal/core/domain"
)

// ProfileRepository stores the role-specific profiles created at signup.
type ProfileRepository struct {
	jobSeekers *mongo.Collection
	employers  *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{
		jobSeekers: db.Collection(jobSeekerCollection),
		employers:  db.Collection(employerCollection),
	}
}

type mongoJobSeekerProfile struct {
	UserID       primitive.ObjectID `bson:"user_id"`
	University   string             `bson:"university"`
	FieldOfStudy string             `bson:"field_of_study,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
}

type mongoEmployerProfile struct {
	UserID             primitive.ObjectID `bson:"user_id"`
	CompanyName        string             `bson:"company_name"`
	ContactPersonName  string             `bson:"contact_person_name"`
	CompanySize        string             `bson:"company_size"`
	Industry           string             `bson:"industry"`
	CompanyWebsite     string             `bson:"company_website,omitempty"`
	CompanyDescription string             `bson:"company_description,omitempty"`
	CreatedAt          time.Time          `bson:"created_at"`
}

func (r *ProfileRepository) CreateJobSeeker(ctx context.Context, p *domain.JobSeekerProfile) error {
	oid, err := primitive.ObjectIDFromHex(p.UserID)
	if err != nil {
		return fmt.Errorf("job seeker profile: %w", domain.ErrUserNotFound)
	}

	_, err = r.jobSeekers.InsertOne(ctx, mongoJobSeekerProfile{
		UserID:       oid,
		University:   p.University,
		FieldOfStudy: p.FieldOfStudy,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("insert job seeker profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) CreateEmployer(ctx context.Context, p *domain.EmployerProfile) error {
	oid, err := primitive.ObjectIDFromHex(p.UserID)
	if err != nil {
		return fmt.Errorf("employer profile: %w", domain.ErrUserNotFound)
	}

	_, err = r.employers.InsertOne(ctx, mongoEmployerProfile{
		UserID:             oid,
		CompanyName:        p.CompanyName,
		ContactPersonName:  p.ContactPersonName,
		CompanySize:        p.CompanySize,
		Industry:           p.Industry,
		CompanyWebsite:     p.CompanyWebsite,
		CompanyDescription: p.CompanyDescription,
		CreatedAt:          time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("insert employer profile: %w", err)
	}
	return nil
}
