package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/R-umaria/boxedwithlove/internal/errors"
	"github.com/R-umaria/boxedwithlove/internal/models"
	repository "github.com/R-umaria/boxedwithlove/internal/repositories"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	repo        repository.UserRepository
	rateLimiter repository.LoginRateLimiter
}

func NewUserService(repo repository.UserRepository, rateLimiter repository.LoginRateLimiter) *UserService {
	return &UserService{
		repo:        repo,
		rateLimiter: rateLimiter,
	}
}

// NormalizeEmail is applied before every lookup so the same address never
// registers twice with different casing.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {

	email := NormalizeEmail(req.Email)

	existingUser, _ := s.repo.GetUserByEmail(ctx, email)
	if existingUser != nil {
		return nil, errors.ConflictError("Email already registered")
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.InternalError("Failed to secure password").WithError(err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    email,
		Password: string(hashedPassword),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, errors.DatabaseError("Failed to create user").WithError(err)
	}

	return user, nil
}

func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {

	email := NormalizeEmail(req.Email)

	allowed, _, retryAfter, err := s.rateLimiter.CheckLoginRateLimit(ctx, email)
	if err != nil {
		return nil, errors.InternalError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return nil, errors.TooManyRequestsError("Too many login attempts. Please try again later.").
			WithDetail(fmt.Sprintf("retry after %d seconds", retryAfter))
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, errors.UnauthorizedError("Invalid email or password")
	}

	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("User not found").WithError(err)
	}

	return user, nil
}
