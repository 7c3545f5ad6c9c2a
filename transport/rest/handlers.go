package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/rocketscienceinc/bingo-backend/internal/entity"
)

type simulationUseCase interface {
	Simulate(ctx context.Context, puzzle []byte, policyName string) (*entity.Outcome, error)
}

type SimulationHandlers struct {
	logger        *slog.Logger
	simulation    simulationUseCase
	maxInputBytes int64
}

func NewSimulationHandlers(logger *slog.Logger, simulation simulationUseCase, maxInputBytes int64) *SimulationHandlers {
	return &SimulationHandlers{
		logger:        logger.With("component", "rest"),
		simulation:    simulation,
		maxInputBytes: maxInputBytes,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// Simulate takes the puzzle text as the request body and the policy from ?policy=.
func (that *SimulationHandlers) Simulate(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "Simulate")

	puzzle, err := io.ReadAll(http.MaxBytesReader(w, r.Body, that.maxInputBytes))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "puzzle is too large"})
			return
		}

		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read puzzle"})
		return
	}

	outcome, err := that.simulation.Simulate(r.Context(), puzzle, r.URL.Query().Get("policy"))
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			log.Error("simulation failed", "error", err)
		}

		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrMalformedInput), errors.Is(err, apperror.ErrUnknownPolicy):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrNoWinner):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
