package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/paie-hub/payroll-backend-go/internal/domain/company"
	"github.com/paie-hub/payroll-backend-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	user.UserRepository
	companyRepo company.CompanyRepository
	cost        int
}

func NewUserService(userRepo user.UserRepository, companyRepo company.CompanyRepository) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepo,
		companyRepo:    companyRepo,
		cost:           bcrypt.DefaultCost,
	}
}

// Create adds a user. Every role but SUPER_ADMIN needs an existing entreprise;
// a SUPER_ADMIN is never bound to one.
func (s *UserServiceImpl) Create(ctx context.Context, entrepriseID *int64, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if req.Role == user.RoleSuperAdmin {
		entrepriseID = nil
	} else {
		if entrepriseID == nil {
			return user.UserResponse{}, user.ErrEntrepriseIDRequired
		}
		if _, err := s.companyRepo.GetByID(ctx, *entrepriseID); err != nil {
			return user.UserResponse{}, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.UserRepository.Create(ctx, user.User{
		EntrepriseID: entrepriseID,
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		IsActive:     true,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("User created", "user_id", created.ID, "role", created.Role)
	return user.NewUserResponse(created), nil
}

func (s *UserServiceImpl) GetByID(ctx context.Context, id int64) (user.UserResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(u), nil
}

func (s *UserServiceImpl) ListByEntreprise(ctx context.Context, entrepriseID int64) ([]user.UserResponse, error) {
	users, err := s.UserRepository.ListByEntreprise(ctx, entrepriseID)
	if err != nil {
		return nil, err
	}
	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.NewUserResponse(u))
	}
	return responses, nil
}

func (s *UserServiceImpl) SetActive(ctx context.Context, entrepriseID int64, id int64, active bool) (user.UserResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	if u.IsSuperAdmin() || !u.BelongsTo(entrepriseID) {
		return user.UserResponse{}, user.ErrUserNotFound
	}

	updated, err := s.UserRepository.SetActive(ctx, id, active)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(updated), nil
}
