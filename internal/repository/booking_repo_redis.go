package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/skyfly/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisBookingRepository stores the same JSON document as the file store
// under a single key without expiry.
type RedisBookingRepository struct {
	client *redis.Client
	key    string
}

func NewRedisBookingRepository(client *redis.Client, key string) *RedisBookingRepository {
	return &RedisBookingRepository{client: client, key: key}
}

func (r *RedisBookingRepository) Load(ctx context.Context) ([]domain.Booking, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []domain.Booking{}, nil
		}
		return []domain.Booking{}, fmt.Errorf("get %s: %w", r.key, err)
	}
	return decodeBookings(data)
}

func (r *RedisBookingRepository) Save(ctx context.Context, bookings []domain.Booking) error {
	data, err := encodeBookings(bookings)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", r.key, err)
	}
	return nil
}

var _ BookingStore = (*RedisBookingRepository)(nil)
