package service

import (
	"context"
	"fmt"
	"strings"

	"coursework_tracker/internal/common"
	"coursework_tracker/internal/common/security"
	"coursework_tracker/internal/domain/model"
	"coursework_tracker/internal/domain/repository"
	"coursework_tracker/internal/logger"

	"go.uber.org/zap"
)

type AuthService struct {
	records *repository.Records
	logger  *zap.SugaredLogger
}

func NewAuthService(records *repository.Records) *AuthService {
	return &AuthService{records: records, logger: logger.NewNamedLogger("auth")}
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User  model.PublicUser `json:"user"`
	Token string           `json:"token"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, common.Errorf("email and password are required: %w", common.ErrValidation)
	}
	role := req.Role
	if role == "" {
		role = model.RoleStudent
	}
	if !model.ValidRole(role) {
		return nil, common.Errorf("unknown role %q: %w", req.Role, common.ErrValidation)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var user model.User
	err = s.records.Update(ctx, func(doc *model.Document) error {
		if _, taken := doc.FindUserByEmail(email); taken {
			return common.Errorf("email %s is already registered: %w", email, common.ErrConflict)
		}
		user = model.User{
			ID:       repository.NextUserID(doc),
			Email:    email,
			Password: hashedPassword,
			Role:     role,
		}
		doc.Users = append(doc.Users, user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Infof("User %d registered as %s", user.ID, user.Role)

	token, err := security.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{User: user.Public(), Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, common.Errorf("email and password are required: %w", common.ErrValidation)
	}

	var user model.User
	var found bool
	s.records.View(func(doc *model.Document) {
		if i, ok := doc.FindUserByEmail(email); ok {
			user, found = doc.Users[i], true
		}
	})
	// Same error for unknown email and wrong password.
	if !found || !security.CheckPasswordHash(req.Password, user.Password) {
		return nil, common.Errorf("invalid credentials: %w", common.ErrUnauthorized)
	}

	token, err := security.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{User: user.Public(), Token: token}, nil
}
