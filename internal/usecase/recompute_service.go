package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/ligaops/competition-engine/internal/domain/season"
	"github.com/ligaops/competition-engine/internal/domain/standing"
	"github.com/ligaops/competition-engine/internal/platform/resilience"
)

const (
	recomputeStatusSuccess = "success"
	recomputeStatusFailed  = "failed"
	recomputeStatusSkipped = "skipped"
	recomputeStatusShared  = "shared"

	defaultRecomputeWorkers = 4
	maxRecomputeWorkers     = 16
)

type recomputeKind string

const (
	recomputeKindSuspensions recomputeKind = "suspensions"
	recomputeKindStandings   recomputeKind = "standings"
)

// RecomputeInput selects which seasons to rebuild and how.
type RecomputeInput struct {
	// SeasonIDs narrows the run; empty means every known season.
	SeasonIDs  []string
	Mode       standing.Mode
	MaxWorkers int
	// DryRun resolves targets and reports the task plan without touching
	// stored rows.
	DryRun bool
}

// RecomputeResult summarizes one fan-out run.
type RecomputeResult struct {
	SeasonCount  int                   `json:"season_count"`
	TaskCount    int                   `json:"task_count"`
	SuccessCount int                   `json:"success_count"`
	FailedCount  int                   `json:"failed_count"`
	SkippedCount int                   `json:"skipped_count"`
	WorkerCount  int                   `json:"worker_count"`
	Tasks        []RecomputeTaskResult `json:"tasks"`
}

// RecomputeTaskResult is the outcome of one (season, kind) task.
type RecomputeTaskResult struct {
	SeasonID   string `json:"season_id"`
	Kind       string `json:"kind"`
	Status     string `json:"status"`
	Records    int    `json:"records"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

type recomputeTask struct {
	seasonID string
	kind     recomputeKind
}

// RecomputeService rebuilds derived season data (suspensions, then the
// table) for many seasons concurrently. Per-(season, kind) singleflight
// keeps overlapping triggers from running the same rebuild twice.
type RecomputeService struct {
	seasonRepo  season.Repository
	suspensions *SuspensionService
	standings   *StandingService
	flights     resilience.SingleFlight
}

func NewRecomputeService(
	seasonRepo season.Repository,
	suspensions *SuspensionService,
	standings *StandingService,
) *RecomputeService {
	return &RecomputeService{
		seasonRepo:  seasonRepo,
		suspensions: suspensions,
		standings:   standings,
	}
}

// Run fans the selected rebuilds out over a worker pool and reports every
// task's outcome.
func (s *RecomputeService) Run(ctx context.Context, input RecomputeInput) (RecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecomputeService.Run")
	defer span.End()

	mode := input.Mode
	if mode == "" {
		mode = standing.ModeLive
	}
	if mode != standing.ModeLive && mode != standing.ModeFinal {
		return RecomputeResult{}, fmt.Errorf("%w: unknown standings mode %q", ErrInvalidInput, mode)
	}

	seasonIDs, err := s.resolveSeasonIDs(ctx, input.SeasonIDs)
	if err != nil {
		return RecomputeResult{}, err
	}

	tasks := make([]recomputeTask, 0, len(seasonIDs)*2)
	for _, seasonID := range seasonIDs {
		tasks = append(tasks,
			recomputeTask{seasonID: seasonID, kind: recomputeKindSuspensions},
			recomputeTask{seasonID: seasonID, kind: recomputeKindStandings},
		)
	}

	workerCount := normalizeRecomputeWorkerCount(input.MaxWorkers, len(tasks))
	result := RecomputeResult{
		SeasonCount: len(seasonIDs),
		TaskCount:   len(tasks),
		WorkerCount: workerCount,
		Tasks:       make([]RecomputeTaskResult, 0, len(tasks)),
	}
	if len(tasks) == 0 {
		return result, nil
	}

	results := make(chan RecomputeTaskResult, len(tasks))

	var successCount atomic.Int32
	var failedCount atomic.Int32
	var skippedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, task := range tasks {
		task := task
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := RecomputeTaskResult{
				SeasonID: task.seasonID,
				Kind:     string(task.kind),
			}
			row.Records, row.Status, row.Message = s.runTask(ctx, task, mode, input.DryRun)
			row.DurationMs = time.Since(start).Milliseconds()

			switch row.Status {
			case recomputeStatusSuccess, recomputeStatusShared:
				successCount.Add(1)
			case recomputeStatusSkipped:
				skippedCount.Add(1)
			default:
				failedCount.Add(1)
			}

			results <- row
		}); err != nil {
			workers.Done()
			return RecomputeResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Tasks = append(result.Tasks, row)
	}

	sort.SliceStable(result.Tasks, func(i, j int) bool {
		if result.Tasks[i].SeasonID != result.Tasks[j].SeasonID {
			return result.Tasks[i].SeasonID < result.Tasks[j].SeasonID
		}
		return result.Tasks[i].Kind < result.Tasks[j].Kind
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.SkippedCount = int(skippedCount.Load())

	return result, nil
}

func (s *RecomputeService) runTask(ctx context.Context, task recomputeTask, mode standing.Mode, dryRun bool) (records int, status, message string) {
	if dryRun {
		return 0, recomputeStatusSkipped, "dry run"
	}

	key := task.seasonID + ":" + string(task.kind)
	val, err, shared := s.flights.Do(key, func() (any, error) {
		switch task.kind {
		case recomputeKindSuspensions:
			items, err := s.suspensions.Recalculate(ctx, task.seasonID)
			return len(items), err
		case recomputeKindStandings:
			rows, err := s.standings.Recompute(ctx, task.seasonID, mode, PreserveOverrides)
			return len(rows), err
		default:
			return 0, fmt.Errorf("%w: unknown recompute kind %q", ErrInvalidInput, task.kind)
		}
	})
	if err != nil {
		return 0, recomputeStatusFailed, err.Error()
	}

	if n, ok := val.(int); ok {
		records = n
	}
	if shared {
		return records, recomputeStatusShared, "joined in-flight rebuild"
	}
	return records, recomputeStatusSuccess, ""
}

func (s *RecomputeService) resolveSeasonIDs(ctx context.Context, requested []string) ([]string, error) {
	if len(requested) > 0 {
		out := make([]string, 0, len(requested))
		seen := make(map[string]struct{}, len(requested))
		for _, id := range requested {
			id = strings.TrimSpace(id)
			if id == "" {
				return nil, fmt.Errorf("%w: season id cannot be empty", ErrInvalidInput)
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
		return out, nil
	}

	seasons, err := s.seasonRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	out := make([]string, 0, len(seasons))
	for _, item := range seasons {
		out = append(out, item.ID)
	}
	return out, nil
}

func normalizeRecomputeWorkerCount(requested, taskCount int) int {
	count := requested
	if count <= 0 {
		count = defaultRecomputeWorkers
	}
	if count > maxRecomputeWorkers {
		count = maxRecomputeWorkers
	}
	if taskCount > 0 && count > taskCount {
		count = taskCount
	}
	return count
}
