package staff

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gymdesk/internal/auth"
	"gymdesk/internal/db"
	"gymdesk/internal/logger"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStaffNotFound      = errors.New("staff not found")
)

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*LoginResponse, error)
	GetByID(ctx context.Context, id int) (*Staff, error)
	Create(ctx context.Context, req CreateStaffRequest) (*Staff, error)
	// EnsureAdmin creates the bootstrap admin account when it does not exist.
	EnsureAdmin(ctx context.Context, name, email, password string) error
}

type service struct {
	repo      Repository
	jwtSecret string
}

func NewService(repo Repository, jwtSecret string) Service {
	return &service{repo: repo, jwtSecret: jwtSecret}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	member, err := s.repo.FindByEmail(ctx, normalizeEmail(req.Email))
	if db.IsNotFound(err) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find staff: %w", err)
	}

	if !auth.CheckPassword(member.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	pair, err := auth.GenerateTokens(member.ID, member.Email, member.Role, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{TokenPair: *pair, Staff: member}, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (*LoginResponse, error) {
	pair, claims, err := auth.Refresh(refreshToken, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	member, err := s.GetByID(ctx, claims.StaffID)
	if err != nil {
		return nil, err
	}

	// The role may have changed since the refresh token was issued.
	if member.Role != claims.Role {
		if pair, err = auth.GenerateTokens(member.ID, member.Email, member.Role, s.jwtSecret); err != nil {
			return nil, err
		}
	}

	return &LoginResponse{TokenPair: *pair, Staff: member}, nil
}

func (s *service) GetByID(ctx context.Context, id int) (*Staff, error) {
	member, err := s.repo.FindByID(ctx, id)
	if db.IsNotFound(err) {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find staff %d: %w", id, err)
	}
	return member, nil
}

func (s *service) Create(ctx context.Context, req CreateStaffRequest) (*Staff, error) {
	email := normalizeEmail(req.Email)

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	member, err := s.repo.Create(ctx, strings.TrimSpace(req.Name), email, hash, req.Role)
	if db.IsUniqueViolation(err, "") {
		return nil, ErrEmailExists
	}
	if err != nil {
		return nil, fmt.Errorf("create staff: %w", err)
	}

	logger.Info("staff account created", "staff_id", member.ID, "role", member.Role)
	return member, nil
}

func (s *service) EnsureAdmin(ctx context.Context, name, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := s.Create(ctx, CreateStaffRequest{Name: name, Email: email, Password: password, Role: auth.RoleAdmin})
	if errors.Is(err, ErrEmailExists) {
		return nil
	}
	return err
}
