package user

import "context"

type UserService interface {
	Create(ctx context.Context, entrepriseID *int64, req CreateUserRequest) (UserResponse, error)
	GetByID(ctx context.Context, id int64) (UserResponse, error)
	ListByEntreprise(ctx context.Context, entrepriseID int64) ([]UserResponse, error)
	SetActive(ctx context.Context, entrepriseID int64, id int64, active bool) (UserResponse, error)
}
