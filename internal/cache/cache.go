package cache

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Cache interface {
	Get(ctx context.Context, key string) (decimal.Decimal, error)
	Set(ctx context.Context, key string, value decimal.Decimal, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
