package auth

import (
	"context"

	"github.com/Niranjjith/Attendance-System/internal/entity"
)

type User interface {
	GetByUserID(ctx context.Context, userID string) (entity.User, error)
}
