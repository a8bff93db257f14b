package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	ListByEntreprise(ctx context.Context, entrepriseID int64) ([]User, error)
	SetActive(ctx context.Context, id int64, active bool) (User, error)
}
