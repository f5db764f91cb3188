package get_candidates

import (
	"github.com/m04kA/EMS-ReservationService/internal/domain"
	buildCandidates "github.com/m04kA/EMS-ReservationService/internal/usecase/build_candidates"
)

// CandidateResponse одна единица в наборе кандидатов
type CandidateResponse struct {
	UnitID    int64  `json:"unitId"`
	TypeID    int64  `json:"typeId"`
	Label     string `json:"label"`
	Available bool   `json:"available"`
	Checked   bool   `json:"checked"`
}

// CandidatesResponse HTTP response model
type CandidatesResponse struct {
	Generation uint64              `json:"generation"`
	CategoryID int64               `json:"categoryId"`
	Candidates []CandidateResponse `json:"candidates"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *buildCandidates.Response) *CandidatesResponse {
	out := &CandidatesResponse{
		Generation: resp.Generation,
		CategoryID: resp.CategoryID,
		Candidates: make([]CandidateResponse, 0, len(resp.Candidates)),
	}
	for _, c := range resp.Candidates {
		out.Candidates = append(out.Candidates, fromDomainCandidate(c))
	}
	return out
}

func fromDomainCandidate(c domain.Candidate) CandidateResponse {
	return CandidateResponse{
		UnitID:    c.Unit.ID,
		TypeID:    c.Unit.TypeID,
		Label:     c.Unit.Label,
		Available: c.Available,
		Checked:   c.Checked,
	}
}
