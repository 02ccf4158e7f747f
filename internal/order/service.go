package order

import (
	"context"

	"mebelshop/internal/logger"

	"go.uber.org/zap"
)

// Service defines the read and status operations over persisted orders.
// Order creation goes through the cart workflow, never directly.
type Service interface {
	List(ctx context.Context, status *OrderStatus) ([]Order, error)
	Detail(ctx context.Context, orderID int64) ([]DetailRow, error)
	SetStatus(ctx context.Context, orderID int64, status string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, status *OrderStatus) ([]Order, error) {
	return s.repo.List(ctx, status)
}

func (s *service) Detail(ctx context.Context, orderID int64) ([]DetailRow, error) {
	return s.repo.Detail(ctx, orderID)
}

func (s *service) SetStatus(ctx context.Context, orderID int64, status string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SetOrderStatus"),
		zap.Int64("order_id", orderID),
	)

	parsed, err := ParseStatus(status)
	if err != nil {
		log.Warn("invalid status", zap.String("status", status))
		return err
	}

	if err := s.repo.SetStatus(ctx, orderID, parsed); err != nil {
		log.Error("failed to set status", zap.Error(err))
		return err
	}

	log.Info("order status updated", zap.String("status", string(parsed)))
	return nil
}
