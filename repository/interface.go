package repository

import (
	"context"
	"errors"

	"sales-pulse/models"
)

// ErrOrderNotFound is returned when no order matches the requested id
var ErrOrderNotFound = errors.New("order not found")

// ErrUpstream is returned when the order source answers with something unusable
var ErrUpstream = errors.New("order source returned an invalid response")

// OrderRepositoryInterface defines the contract for reading printable orders
type OrderRepositoryInterface interface {
	GetOrderForm(ctx context.Context, orderID string) (*models.OrderForm, error)
}

// UserRightRepositoryInterface defines the contract for reading role rights
type UserRightRepositoryInterface interface {
	ListRights(ctx context.Context) ([]models.UserRight, error)
}
