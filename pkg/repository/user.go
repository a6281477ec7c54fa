package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/signalist/pkg/domain"
)

// UserRepository handles user profiles
type UserRepository struct {
	db *sqlx.DB
}

// userSQL represents a user for SQL operations
type userSQL struct {
	Email             string    `db:"email"`
	Name              string    `db:"name"`
	Country           string    `db:"country"`
	InvestmentGoals   string    `db:"investment_goals"`
	RiskTolerance     string    `db:"risk_tolerance"`
	PreferredIndustry string    `db:"preferred_industry"`
	CreatedAt         time.Time `db:"created_at"`
}

func (u userSQL) toDomain() domain.UserProfile {
	return domain.UserProfile{
		Email:             u.Email,
		Name:              u.Name,
		Country:           u.Country,
		InvestmentGoals:   domain.InvestmentGoal(u.InvestmentGoals),
		RiskTolerance:     domain.RiskTolerance(u.RiskTolerance),
		PreferredIndustry: domain.Industry(u.PreferredIndustry),
		CreatedAt:         u.CreatedAt,
	}
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// SaveUser stores a profile. Signing up again with the same email replaces the profile.
func (r *UserRepository) SaveUser(ctx context.Context, p domain.UserProfile) error {
	if p.Email == "" {
		return fmt.Errorf("save user without email: %w", domain.ErrValidation)
	}
	query := `
		INSERT INTO users (email, name, country, investment_goals, risk_tolerance, preferred_industry)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
			name = excluded.name,
			country = excluded.country,
			investment_goals = excluded.investment_goals,
			risk_tolerance = excluded.risk_tolerance,
			preferred_industry = excluded.preferred_industry
	`
	return withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, p.Email, p.Name, p.Country,
			string(p.InvestmentGoals), string(p.RiskTolerance), string(p.PreferredIndustry))
		if err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		return nil
	})
}

// ListUsers returns all users ordered by sign-up time
func (r *UserRepository) ListUsers(ctx context.Context) ([]domain.UserProfile, error) {
	var rows []userSQL
	if err := r.db.SelectContext(ctx, &rows, `SELECT email, name, country, investment_goals, risk_tolerance,
		preferred_industry, created_at FROM users ORDER BY created_at, email`); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	res := make([]domain.UserProfile, 0, len(rows))
	for _, u := range rows {
		res = append(res, u.toDomain())
	}
	return res, nil
}

// DeleteUser removes the user, missing user is not an error
func (r *UserRepository) DeleteUser(ctx context.Context, email string) error {
	return withLockRetry(ctx, func() error {
		if _, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE email = ?", email); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
}
