package build_candidates

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/EMS-ReservationService/internal/domain"
	"github.com/m04kA/EMS-ReservationService/internal/infra/sessions"
)

type UseCase struct {
	pool     UnitPoolProvider
	checker  AvailabilityChecker
	sessions SessionStore
	cache    PoolCache // nil, если кэш выключен
	logger   Logger
}

func NewUseCase(pool UnitPoolProvider, checker AvailabilityChecker, store SessionStore, cache PoolCache, logger Logger) *UseCase {
	return &UseCase{
		pool:     pool,
		checker:  checker,
		sessions: store,
		cache:    cache,
		logger:   logger,
	}
}

// Execute собирает свежий набор кандидатов для сессии подбора.
//
// Порядок: снимок фильтров и поколения -> состав пула категории -> батч
// проверок доступности (только при полном окне) -> коммит в сессию с
// проверкой поколения. Пост-фильтрация выполняется внутри коммита против
// актуального выбора сессии: занятые единицы остаются в наборе только
// если они уже выбраны (с пометкой available=false). Если фильтры
// изменились за время сборки, набор отбрасывается с ErrStaleGeneration.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	if req.SessionID == "" {
		return nil, fmt.Errorf("%w: Execute - sessionID is empty", ErrInvalidInput)
	}

	session, err := uc.sessions.Get(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, sessions.ErrSessionNotFound) {
			uc.logger.Warn("BuildCandidates: сессия не найдена: sessionID=%s", req.SessionID)
			return nil, fmt.Errorf("%w: Execute - sessionID=%s", ErrSessionNotFound, req.SessionID)
		}
		uc.logger.Error("BuildCandidates: ошибка чтения сессии: sessionID=%s: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: Execute - get session: %v", ErrInternal, err)
	}

	if session.RequesterID != req.RequesterID {
		uc.logger.Warn("BuildCandidates: попытка доступа к чужой сессии: sessionID=%s, requesterID=%d", req.SessionID, req.RequesterID)
		return nil, fmt.Errorf("%w: Execute - sessionID=%s", ErrAccessDenied, req.SessionID)
	}

	// Снимок фильтров: сборка работает с поколением, зафиксированным здесь
	generation := session.Generation
	categoryID := session.CategoryID
	window := session.Window
	exclude := session.ExcludeReservationID

	// Категория не выбрана - пустой набор без единого запроса к пулу
	if categoryID == 0 {
		return &Response{Generation: generation, CategoryID: 0, Candidates: []domain.Candidate{}}, nil
	}

	units, err := uc.loadPool(ctx, categoryID)
	if err != nil {
		uc.logger.Error("BuildCandidates: пул единиц недоступен: categoryID=%d: %v", categoryID, err)
		return nil, fmt.Errorf("%w: Execute - categoryID=%d: %v", ErrPoolUnavailable, categoryID, err)
	}

	windowComplete := window.Validate() == nil

	var candidates []domain.Candidate
	if windowComplete {
		candidates = uc.checkBatch(ctx, units, window, exclude)
	} else {
		// Окно не задано полностью: проверки не выполняются, единицы
		// показываются с available=true и пометкой checked=false
		candidates = make([]domain.Candidate, len(units))
		for i, unit := range units {
			candidates[i] = domain.Candidate{Unit: *unit, Available: true, Checked: false}
		}
	}

	set := domain.CandidateSet{
		Generation:     generation,
		CategoryID:     categoryID,
		Window:         window,
		WindowComplete: windowComplete,
		Items:          candidates,
	}

	final, err := uc.commit(ctx, req.SessionID, set)
	if err != nil {
		return nil, err
	}

	return &Response{Generation: generation, CategoryID: categoryID, Candidates: final}, nil
}

// commit применяет свежий набор к сессии атомарно. Набор для устаревшего
// поколения отбрасывается и не трогает ни выбор, ни сессию. Пост-фильтрация
// идёт внутри той же блокировки против актуального выбора, чтобы добавление
// единицы во время сборки не дало набор, отфильтрованный по старому выбору.
func (uc *UseCase) commit(ctx context.Context, sessionID string, set domain.CandidateSet) ([]domain.Candidate, error) {
	var final []domain.Candidate
	_, err := uc.sessions.Update(ctx, sessionID, func(s *domain.SelectionSession) error {
		if s.Generation != set.Generation {
			return fmt.Errorf("%w: built for generation %d, session at %d", ErrStaleGeneration, set.Generation, s.Generation)
		}
		if set.WindowComplete {
			s.Selection = domain.Reduce(s.Selection, domain.RefreshAvailability{Candidates: set.Items})
		}
		final = filterCandidates(set.Items, s.Selection, set.WindowComplete)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrStaleGeneration) {
			uc.logger.Info("BuildCandidates: набор устарел и отброшен: sessionID=%s, generation=%d", sessionID, set.Generation)
			return nil, err
		}
		if errors.Is(err, sessions.ErrSessionNotFound) {
			return nil, fmt.Errorf("%w: commit - sessionID=%s", ErrSessionNotFound, sessionID)
		}
		return nil, fmt.Errorf("%w: commit: %v", ErrInternal, err)
	}
	return final, nil
}

// loadPool получает состав пула, сперва из кэша, при промахе - от провайдера.
// Ошибки кэша не фатальны: кэш деградирует до прямого запроса.
func (uc *UseCase) loadPool(ctx context.Context, categoryID int64) ([]*domain.EquipmentUnit, error) {
	if uc.cache != nil {
		units, err := uc.cache.Get(ctx, categoryID)
		if err == nil {
			return units, nil
		}
	}

	units, err := uc.pool.GetUnitsByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, categoryID, units); err != nil {
			uc.logger.Warn("BuildCandidates: не удалось записать пул в кэш: categoryID=%d: %v", categoryID, err)
		}
	}

	return units, nil
}

// filterCandidates выполняет пост-фильтрацию набора. Убираются кандидаты
// тех типов, единица которых уже выбрана, и, при полном окне, занятые
// единицы. Сама выбранная единица остаётся в наборе даже занятой, чтобы
// её можно было показать с пометкой available=false и перевыбрать.
func filterCandidates(candidates []domain.Candidate, selection domain.Selection, windowComplete bool) []domain.Candidate {
	filtered := make([]domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if selection.HasUnit(c.Unit.ID) {
			filtered = append(filtered, c)
			continue
		}
		if selection.HasType(c.Unit.TypeID) {
			continue
		}
		if windowComplete && !c.Available {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered
}
