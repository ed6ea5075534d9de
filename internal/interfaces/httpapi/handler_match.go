package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ligaops/competition-engine/internal/domain/match"
	"github.com/ligaops/competition-engine/internal/usecase"
)

type scheduleMatchRequest struct {
	HomeTeamID  string `json:"home_team_id" validate:"required"`
	AwayTeamID  string `json:"away_team_id" validate:"required"`
	ScheduledAt string `json:"scheduled_at" validate:"required"`
}

type finishMatchRequest struct {
	HomeGoals int `json:"home_goals" validate:"gte=0"`
	AwayGoals int `json:"away_goals" validate:"gte=0"`
}

type matchDTO struct {
	ID                string `json:"id"`
	SeasonID          string `json:"season_id"`
	HomeTeamID        string `json:"home_team_id"`
	AwayTeamID        string `json:"away_team_id"`
	Status            string `json:"status"`
	ScheduledAtUTC    string `json:"scheduled_at_utc"`
	HomeGoals         int    `json:"home_goals"`
	AwayGoals         int    `json:"away_goals"`
	OfficialsComplete bool   `json:"officials_complete"`
	StandingsEligible bool   `json:"standings_eligible"`
	Version           int64  `json:"version"`
	CreatedAtUTC      string `json:"created_at_utc"`
	UpdatedAtUTC      string `json:"updated_at_utc"`
}

type matchReadinessDTO struct {
	Target  string   `json:"target"`
	Ready   bool     `json:"ready"`
	Missing []string `json:"missing"`
}

func (h *Handler) ScheduleMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ScheduleMatch")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	var req scheduleMatchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: scheduled_at must be RFC3339: %v", usecase.ErrInvalidInput, err))
		return
	}

	item, err := h.matchService.Schedule(ctx, usecase.ScheduleMatchInput{
		SeasonID:    seasonID,
		HomeTeamID:  req.HomeTeamID,
		AwayTeamID:  req.AwayTeamID,
		ScheduledAt: scheduledAt,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "schedule match failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(ctx, item))
}

func (h *Handler) BeginMatchPreparation(w http.ResponseWriter, r *http.Request) {
	h.applyMatchEvent(w, r, "httpapi.Handler.BeginMatchPreparation", h.matchService.BeginPreparation)
}

func (h *Handler) MarkMatchReady(w http.ResponseWriter, r *http.Request) {
	h.applyMatchEvent(w, r, "httpapi.Handler.MarkMatchReady", h.matchService.MarkReady)
}

func (h *Handler) KickoffMatch(w http.ResponseWriter, r *http.Request) {
	h.applyMatchEvent(w, r, "httpapi.Handler.KickoffMatch", h.matchService.Kickoff)
}

func (h *Handler) ReportMatch(w http.ResponseWriter, r *http.Request) {
	h.applyMatchEvent(w, r, "httpapi.Handler.ReportMatch", h.matchService.Report)
}

func (h *Handler) CompleteMatch(w http.ResponseWriter, r *http.Request) {
	h.applyMatchEvent(w, r, "httpapi.Handler.CompleteMatch", h.matchService.Complete)
}

func (h *Handler) applyMatchEvent(
	w http.ResponseWriter,
	r *http.Request,
	spanName string,
	apply func(context.Context, string) (match.Match, error),
) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	item, err := apply(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "match lifecycle event failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, item))
}

func (h *Handler) FinishMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FinishMatch")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req finishMatchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.Finish(ctx, matchID, req.HomeGoals, req.AwayGoals)
	if err != nil {
		h.logger.WarnContext(ctx, "finish match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, item))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	item, err := h.matchService.GetByID(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, item))
}

func (h *Handler) ListMatchesBySeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchesBySeason")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	items, err := h.matchService.ListBySeason(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

// GetMatchReadiness reports which guard conditions still block the target
// stage without attempting the transition.
func (h *Handler) GetMatchReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchReadiness")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	target := match.Status(strings.TrimSpace(r.URL.Query().Get("target")))
	if target == "" {
		target = match.StatusReady
	}

	missing, err := h.matchService.CanEnter(ctx, matchID, target)
	if err != nil {
		h.logger.WarnContext(ctx, "match readiness failed", "match_id", matchID, "target", target, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchReadinessDTO{
		Target:  string(target),
		Ready:   len(missing) == 0,
		Missing: missing,
	})
}

func matchToDTO(ctx context.Context, v match.Match) matchDTO {
	ctx, span := startSpan(ctx, "httpapi.matchToDTO")
	defer span.End()

	return matchDTO{
		ID:                v.ID,
		SeasonID:          v.SeasonID,
		HomeTeamID:        v.HomeTeamID,
		AwayTeamID:        v.AwayTeamID,
		Status:            string(v.Status),
		ScheduledAtUTC:    v.ScheduledAt.UTC().Format(time.RFC3339),
		HomeGoals:         v.HomeGoals,
		AwayGoals:         v.AwayGoals,
		OfficialsComplete: v.OfficialsComplete,
		StandingsEligible: v.StandingsEligible,
		Version:           v.Version,
		CreatedAtUTC:      v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAtUTC:      v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
