package get_candidates

import (
	"context"

	buildCandidates "github.com/m04kA/EMS-ReservationService/internal/usecase/build_candidates"
)

type BuildCandidatesUseCase interface {
	Execute(ctx context.Context, req buildCandidates.Request) (*buildCandidates.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
