package domain

import (
	"fmt"
	"strings"
	"time"
)

// InvestmentGoal is the self-reported investment goal selected at sign-up
type InvestmentGoal string

// investment goals offered by the sign-up form
const (
	GoalGrowth       InvestmentGoal = "Growth"
	GoalIncome       InvestmentGoal = "Income"
	GoalBalanced     InvestmentGoal = "Balanced"
	GoalConservative InvestmentGoal = "Conservative"
)

// RiskTolerance is the self-reported risk level selected at sign-up
type RiskTolerance string

// risk levels offered by the sign-up form
const (
	RiskLow    RiskTolerance = "Low"
	RiskMedium RiskTolerance = "Medium"
	RiskHigh   RiskTolerance = "High"
)

// Industry is the preferred industry selected at sign-up
type Industry string

// industries offered by the sign-up form
const (
	IndustryTechnology    Industry = "Technology"
	IndustryHealthcare    Industry = "Healthcare"
	IndustryFinance       Industry = "Finance"
	IndustryEnergy        Industry = "Energy"
	IndustryConsumerGoods Industry = "Consumer Goods"
)

// UserProfile is the identity and investment preferences of a user.
// Created at sign-up and read-only afterwards.
type UserProfile struct {
	Email             string         `json:"email"`
	Name              string         `json:"name"`
	Country           string         `json:"country"`
	InvestmentGoals   InvestmentGoal `json:"investmentGoals"`
	RiskTolerance     RiskTolerance  `json:"riskTolerance"`
	PreferredIndustry Industry       `json:"preferredIndustry"`
	CreatedAt         time.Time      `json:"-"`
}

// SignUpRequest carries the sign-up form fields, credentials included
type SignUpRequest struct {
	FullName          string         `json:"fullName" validate:"required,min=2"`
	Email             string         `json:"email" validate:"required,email"`
	Password          string         `json:"password" validate:"required,min=8"`
	Country           string         `json:"country" validate:"required,len=2"`
	InvestmentGoals   InvestmentGoal `json:"investmentGoals" validate:"required,oneof=Growth Income Balanced Conservative"`
	RiskTolerance     RiskTolerance  `json:"riskTolerance" validate:"required,oneof=Low Medium High"`
	PreferredIndustry Industry       `json:"preferredIndustry" validate:"required,oneof=Technology Healthcare Finance Energy 'Consumer Goods'"`
}

// ApplyDefaults fills empty preference fields with the sign-up form defaults
func (r *SignUpRequest) ApplyDefaults() {
	if r.Country == "" {
		r.Country = "US"
	}
	if r.InvestmentGoals == "" {
		r.InvestmentGoals = GoalGrowth
	}
	if r.RiskTolerance == "" {
		r.RiskTolerance = RiskMedium
	}
	if r.PreferredIndustry == "" {
		r.PreferredIndustry = IndustryTechnology
	}
}

// Profile returns the user profile part of the request, without credentials
func (r SignUpRequest) Profile() UserProfile {
	return UserProfile{
		Email:             strings.TrimSpace(r.Email),
		Name:              strings.TrimSpace(r.FullName),
		Country:           strings.ToUpper(strings.TrimSpace(r.Country)),
		InvestmentGoals:   r.InvestmentGoals,
		RiskTolerance:     r.RiskTolerance,
		PreferredIndustry: r.PreferredIndustry,
	}
}

// Credentials are used to sign in
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Payload converts the profile to the data of a "user created" event
func (p UserProfile) Payload() map[string]any {
	return map[string]any{
		"email":             p.Email,
		"name":              p.Name,
		"country":           p.Country,
		"investmentGoals":   string(p.InvestmentGoals),
		"riskTolerance":     string(p.RiskTolerance),
		"preferredIndustry": string(p.PreferredIndustry),
	}
}

// ProfileFromPayload restores a profile from event data. Email is required.
func ProfileFromPayload(data map[string]any) (UserProfile, error) {
	str := func(key string) string {
		v, ok := data[key]
		if !ok || v == nil {
			return ""
		}
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprint(v)
	}

	p := UserProfile{
		Email:             str("email"),
		Name:              str("name"),
		Country:           str("country"),
		InvestmentGoals:   InvestmentGoal(str("investmentGoals")),
		RiskTolerance:     RiskTolerance(str("riskTolerance")),
		PreferredIndustry: Industry(str("preferredIndustry")),
	}
	if p.Email == "" {
		return UserProfile{}, fmt.Errorf("%w: event payload has no email", ErrValidation)
	}
	return p, nil
}

// Session is returned by the authentication provider on sign-up and sign-in
type Session struct {
	Token string      `json:"token"`
	User  AccountUser `json:"user"`
}

// AccountUser is the provider-side account of a user
type AccountUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
