package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/ligaops/competition-engine/internal/domain/discipline"
	"github.com/ligaops/competition-engine/internal/domain/standing"
	"github.com/ligaops/competition-engine/internal/usecase"
)

type recordCardRequest struct {
	MatchID      string `json:"match_id" validate:"required"`
	PlayerID     string `json:"player_id" validate:"required"`
	SeasonTeamID string `json:"season_team_id" validate:"required"`
	Card         string `json:"card" validate:"required,oneof=yellow red"`
	Minute       int    `json:"minute" validate:"gte=0,lte=120"`
}

type issueManualSuspensionRequest struct {
	PlayerID      string `json:"player_id" validate:"required"`
	SeasonTeamID  string `json:"season_team_id" validate:"required"`
	MatchesBanned int    `json:"matches_banned" validate:"required,gt=0"`
}

type markServedRequest struct {
	MatchID string `json:"match_id" validate:"required"`
}

type recomputeJobRequest struct {
	SeasonIDs  []string `json:"season_ids" validate:"dive,required"`
	Mode       string   `json:"mode" validate:"omitempty,oneof=live final"`
	MaxWorkers int      `json:"max_workers" validate:"gte=0,lte=16"`
	DryRun     bool     `json:"dry_run"`
}

type cardEventDTO struct {
	ID            string `json:"id"`
	SeasonID      string `json:"season_id"`
	MatchID       string `json:"match_id"`
	PlayerID      string `json:"player_id"`
	SeasonTeamID  string `json:"season_team_id"`
	Card          string `json:"card"`
	Minute        int    `json:"minute"`
	RecordedAtUTC string `json:"recorded_at_utc"`
}

type suspensionDTO struct {
	ID             string   `json:"id"`
	SeasonID       string   `json:"season_id"`
	PlayerID       string   `json:"player_id"`
	SeasonTeamID   string   `json:"season_team_id"`
	Reason         string   `json:"reason"`
	MatchesBanned  int      `json:"matches_banned"`
	ServedMatchIDs []string `json:"served_match_ids"`
	Status         string   `json:"status"`
	TriggerMatchID string   `json:"trigger_match_id,omitempty"`
	Version        int64    `json:"version"`
	UpdatedAtUTC   string   `json:"updated_at_utc"`
}

func (h *Handler) RecordCard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordCard")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	var req recordCardRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	event, err := h.suspensionService.RecordCard(ctx, usecase.RecordCardInput{
		MatchID:      req.MatchID,
		PlayerID:     req.PlayerID,
		SeasonTeamID: req.SeasonTeamID,
		Card:         discipline.CardType(req.Card),
		Minute:       req.Minute,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record card failed",
			"season_id", seasonID, "match_id", req.MatchID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, cardEventToDTO(ctx, event))
}

func (h *Handler) IssueManualSuspension(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IssueManualSuspension")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	var req issueManualSuspensionRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.suspensionService.IssueManual(ctx, seasonID, req.PlayerID, req.SeasonTeamID, req.MatchesBanned)
	if err != nil {
		h.logger.WarnContext(ctx, "issue manual suspension failed",
			"season_id", seasonID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, suspensionToDTO(ctx, item))
}

func (h *Handler) MarkSuspensionServed(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MarkSuspensionServed")
	defer span.End()

	suspensionID := strings.TrimSpace(r.PathValue("suspensionID"))
	var req markServedRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.suspensionService.MarkServed(ctx, suspensionID, req.MatchID)
	if err != nil {
		h.logger.WarnContext(ctx, "mark suspension served failed",
			"suspension_id", suspensionID, "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, suspensionToDTO(ctx, item))
}

func (h *Handler) ListSuspensionsBySeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSuspensionsBySeason")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	items, err := h.suspensionService.ListBySeason(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list suspensions failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]suspensionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, suspensionToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) RunRecomputeJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecomputeJob")
	defer span.End()

	var req recomputeJobRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	mode := standing.Mode(req.Mode)
	if req.Mode == "" {
		mode = standing.ModeLive
	}

	result, err := h.recomputeService.Run(ctx, usecase.RecomputeInput{
		SeasonIDs:  req.SeasonIDs,
		Mode:       mode,
		MaxWorkers: req.MaxWorkers,
		DryRun:     req.DryRun,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "recompute job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func cardEventToDTO(ctx context.Context, v discipline.CardEvent) cardEventDTO {
	ctx, span := startSpan(ctx, "httpapi.cardEventToDTO")
	defer span.End()

	return cardEventDTO{
		ID:            v.ID,
		SeasonID:      v.SeasonID,
		MatchID:       v.MatchID,
		PlayerID:      v.PlayerID,
		SeasonTeamID:  v.SeasonTeamID,
		Card:          string(v.Card),
		Minute:        v.Minute,
		RecordedAtUTC: v.RecordedAt.UTC().Format(time.RFC3339),
	}
}

func suspensionToDTO(ctx context.Context, v discipline.Suspension) suspensionDTO {
	ctx, span := startSpan(ctx, "httpapi.suspensionToDTO")
	defer span.End()

	return suspensionDTO{
		ID:             v.ID,
		SeasonID:       v.SeasonID,
		PlayerID:       v.PlayerID,
		SeasonTeamID:   v.SeasonTeamID,
		Reason:         string(v.Reason),
		MatchesBanned:  v.MatchesBanned,
		ServedMatchIDs: append([]string(nil), v.ServedMatchIDs...),
		Status:         string(v.Status),
		TriggerMatchID: v.TriggerMatchID,
		Version:        v.Version,
		UpdatedAtUTC:   v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
