package user

import (
	"context"

	"github.com/Niranjjith/Attendance-System/internal/repository/postgres/user"
)

type User interface {
	GetList(ctx context.Context, filter user.Filter) ([]user.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id int) (user.GetDetailByIdResponse, error)
	GetMe(ctx context.Context) (user.GetDetailByIdResponse, error)
	Create(ctx context.Context, request user.CreateRequest) (user.CreateResponse, error)
	CreateMany(ctx context.Context, requests []user.CreateRequest) (int, error)
	UpdateColumns(ctx context.Context, request user.UpdateRequest) error
	ChangePassword(ctx context.Context, request user.ChangePasswordRequest) error
	ExistingUserIDs(ctx context.Context) (map[string]struct{}, error)
	Delete(ctx context.Context, id int) error
}

type Department interface {
	Names(ctx context.Context) (map[string]int, error)
}
