package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/rocketscienceinc/bingo-backend/internal/bingo"
	"github.com/rocketscienceinc/bingo-backend/internal/entity"
	"github.com/rocketscienceinc/bingo-backend/internal/parser"
)

type outcomeRepo interface {
	Save(ctx context.Context, key string, outcome *entity.Outcome) error
	GetByKey(ctx context.Context, key string) (*entity.Outcome, error)
	DeleteByKey(ctx context.Context, key string) error
}

type SimulationManager struct {
	logger        *slog.Logger
	outcomeRepo   outcomeRepo
	defaultPolicy string
}

// NewSimulationManager returns a manager that caches outcomes in outcomeRepo.
// A nil outcomeRepo disables caching.
func NewSimulationManager(logger *slog.Logger, outcomeRepo outcomeRepo, defaultPolicy string) *SimulationManager {
	return &SimulationManager{
		logger:        logger.With("component", "simulation"),
		outcomeRepo:   outcomeRepo,
		defaultPolicy: defaultPolicy,
	}
}

// Simulate parses a puzzle and reports the outcome under policyName, or the default policy
// when policyName is empty.
func (that *SimulationManager) Simulate(ctx context.Context, puzzle []byte, policyName string) (*entity.Outcome, error) {
	log := that.logger.With("method", "Simulate")

	if policyName == "" {
		policyName = that.defaultPolicy
	}

	policy, err := bingo.PolicyByName(policyName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve policy: %w", err)
	}

	input, err := parser.ParseBytes(puzzle)
	if err != nil {
		return nil, fmt.Errorf("failed to parse puzzle: %w", err)
	}

	key := policy.Name() + ":" + fingerprint(input)
	log = log.With("policy", policy.Name(), "key", key)

	if cached := that.getCached(ctx, log, key); cached != nil {
		return cached, nil
	}

	log.Debug("running simulation", "boards", len(input.Boards), "draws", len(input.Draws))

	outcome, err := bingo.Run(input.Boards, input.Draws, policy)
	if err != nil {
		return nil, fmt.Errorf("failed to run simulation: %w", err)
	}

	log.Info("simulation finished", "board", outcome.BoardIndex, "round", outcome.Round, "score", outcome.Score)

	that.saveOutcome(ctx, log, key, &outcome)

	return &outcome, nil
}

func (that *SimulationManager) getCached(ctx context.Context, log *slog.Logger, key string) *entity.Outcome {
	if that.outcomeRepo == nil {
		return nil
	}

	outcome, err := that.outcomeRepo.GetByKey(ctx, key)
	switch {
	case errors.Is(err, apperror.ErrOutcomeNotFound):
		return nil
	case errors.Is(err, apperror.ErrCorruptOutcome):
		log.Warn("evicting corrupt cached outcome", "error", err)
		if err = that.outcomeRepo.DeleteByKey(ctx, key); err != nil && !errors.Is(err, apperror.ErrOutcomeNotFound) {
			log.Warn("failed to evict cached outcome", "error", err)
		}
		return nil
	case err != nil:
		log.Warn("failed to read cached outcome", "error", err)
		return nil
	}

	log.Debug("outcome served from cache")

	return outcome
}

func (that *SimulationManager) saveOutcome(ctx context.Context, log *slog.Logger, key string, outcome *entity.Outcome) {
	if that.outcomeRepo == nil {
		return
	}

	if err := that.outcomeRepo.Save(ctx, key, outcome); err != nil {
		log.Warn("failed to cache outcome", "error", err)
	}
}

// fingerprint hashes the parsed puzzle so that formatting differences share a cache entry.
// It must be taken before the boards are marked.
func fingerprint(input *parser.Input) string {
	digest := xxhash.New()

	writeInts := func(tag string, values []int) {
		_, _ = digest.WriteString(tag)
		for _, value := range values {
			_, _ = digest.WriteString(strconv.Itoa(value))
			_, _ = digest.WriteString(",")
		}
	}

	writeInts("d", input.Draws)
	for _, board := range input.Boards {
		writeInts("b", []int{board.Width(), board.Height()})
		writeInts("v", board.Values())
	}

	return strconv.FormatUint(digest.Sum64(), 16)
}
