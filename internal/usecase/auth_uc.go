package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"mercadito/internal/domain"
)

var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

type AuthUC struct {
	Identity domain.IdentityVerifier
	Users    domain.UserRepo
}

// AuthUser mirrors the identity provider's user envelope: subject id, email
// and the attached profile row.
type AuthUser struct {
	ID      uuid.UUID           `json:"id"`
	Email   string              `json:"email"`
	Profile *domain.UserProfile `json:"profile"`
}

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type ProfileInput struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

func validateProfileFields(fullName, phone, address string, details []string) []string {
	if fullName != "" && (len(fullName) < 2 || len(fullName) > 200) {
		details = append(details, "full_name must be between 2 and 200 characters")
	}
	if phone != "" && (len(phone) < 8 || len(phone) > 20) {
		details = append(details, "phone must be between 8 and 20 characters")
	}
	if len(address) > 500 {
		details = append(details, "address must not exceed 500 characters")
	}
	return details
}

// Register creates the identity user first and the profile second; if the
// profile insert fails the identity user is deleted so the two stay atomic
// from the outside.
func (uc *AuthUC) Register(ctx context.Context, in RegisterInput) (*AuthUser, error) {
	details := []string{}
	if !emailRe.MatchString(strings.TrimSpace(in.Email)) {
		details = append(details, "invalid email")
	}
	if len(in.Password) < 6 {
		details = append(details, "password must be at least 6 characters")
	}
	details = validateProfileFields(in.FullName, in.Phone, in.Address, details)
	if len(details) > 0 {
		return nil, &domain.ValidationError{Details: details}
	}

	id, err := uc.Identity.CreateUser(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	profile := &domain.UserProfile{
		ID:       id.UserID,
		FullName: strings.TrimSpace(in.FullName),
		Phone:    strings.TrimSpace(in.Phone),
		Address:  strings.TrimSpace(in.Address),
		Role:     domain.RoleCustomer,
	}
	if err := uc.Users.Create(ctx, profile); err != nil {
		if derr := uc.Identity.DeleteUser(ctx, id.UserID); derr != nil {
			log.Error().Err(derr).Str("user_id", id.UserID.String()).Msg("orphaned identity user after profile failure")
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return &AuthUser{ID: id.UserID, Email: id.Email, Profile: profile}, nil
}

func (uc *AuthUC) Login(ctx context.Context, email, password string) (*AuthUser, string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, "", domain.Validation("email and password are required")
	}
	id, err := uc.Identity.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	profile, err := uc.Users.FindByID(ctx, id.UserID)
	if err != nil {
		return nil, "", fmt.Errorf("load profile: %w", err)
	}
	token, err := uc.Identity.IssueToken(id)
	if err != nil {
		return nil, "", err
	}
	return &AuthUser{ID: id.UserID, Email: id.Email, Profile: profile}, token, nil
}

// ExternalLogin handles identities verified by an outside provider (Google):
// the email is trusted, a profile is created on first sign-in.
func (uc *AuthUC) ExternalLogin(ctx context.Context, email, fullName string) (*AuthUser, string, error) {
	id, created, err := uc.Identity.EnsureUser(ctx, email)
	if err != nil {
		return nil, "", err
	}
	var profile *domain.UserProfile
	if created {
		profile = &domain.UserProfile{ID: id.UserID, FullName: fullName, Role: domain.RoleCustomer}
		if err := uc.Users.Create(ctx, profile); err != nil {
			if derr := uc.Identity.DeleteUser(ctx, id.UserID); derr != nil {
				log.Error().Err(derr).Str("user_id", id.UserID.String()).Msg("orphaned identity user after profile failure")
			}
			return nil, "", fmt.Errorf("create profile: %w", err)
		}
	} else {
		profile, err = uc.Users.FindByID(ctx, id.UserID)
		if err != nil {
			return nil, "", fmt.Errorf("load profile: %w", err)
		}
	}
	token, err := uc.Identity.IssueToken(id)
	if err != nil {
		return nil, "", err
	}
	return &AuthUser{ID: id.UserID, Email: id.Email, Profile: profile}, token, nil
}

func (uc *AuthUC) UpdateProfile(ctx context.Context, userID uuid.UUID, in ProfileInput) (*domain.UserProfile, error) {
	if details := validateProfileFields(in.FullName, in.Phone, in.Address, nil); len(details) > 0 {
		return nil, &domain.ValidationError{Details: details}
	}
	profile, err := uc.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.FullName = strings.TrimSpace(in.FullName)
	profile.Phone = strings.TrimSpace(in.Phone)
	profile.Address = strings.TrimSpace(in.Address)
	if err := uc.Users.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
