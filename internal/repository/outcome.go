package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/rocketscienceinc/bingo-backend/internal/entity"
)

const outcomeKeyPrefix = "outcome:"

type OutcomeRepository interface {
	Save(ctx context.Context, key string, outcome *entity.Outcome) error
	GetByKey(ctx context.Context, key string) (*entity.Outcome, error)
	DeleteByKey(ctx context.Context, key string) error
}

type dbOutcome struct {
	client *redis.Client
	ttl    time.Duration
}

// NewOutcomeRepository stores outcomes under "outcome:<key>". A zero ttl keeps them forever.
func NewOutcomeRepository(client *redis.Client, ttl time.Duration) OutcomeRepository {
	return &dbOutcome{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbOutcome) Save(ctx context.Context, key string, outcome *entity.Outcome) error {
	outcomeJSON, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("could not marshal outcome: %w", err)
	}

	if err = that.client.Set(ctx, outcomeKeyPrefix+key, outcomeJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set outcome: %w", err)
	}

	return nil
}

func (that *dbOutcome) GetByKey(ctx context.Context, key string) (*entity.Outcome, error) {
	response, err := that.client.Get(ctx, outcomeKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrOutcomeNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get outcome by key: %w", err)
	}

	var outcome entity.Outcome
	if err = json.Unmarshal([]byte(response), &outcome); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrCorruptOutcome, err)
	}

	return &outcome, nil
}

func (that *dbOutcome) DeleteByKey(ctx context.Context, key string) error {
	deleted, err := that.client.Del(ctx, outcomeKeyPrefix+key).Result()
	if err != nil {
		return fmt.Errorf("failed to delete outcome by key: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrOutcomeNotFound
	}

	return nil
}
