package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ligaops/competition-engine/internal/domain/lineup"
	"github.com/ligaops/competition-engine/internal/usecase"
)

type submitLineupRequest struct {
	Starters    []string `json:"starters" validate:"required,dive,required"`
	Substitutes []string `json:"substitutes" validate:"dive,required"`
	Formation   string   `json:"formation" validate:"max=20"`
	KitType     string   `json:"kit_type" validate:"max=20"`
}

type reviewLineupRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=APPROVE REJECT"`
	Reason  string `json:"reason" validate:"max=500"`
}

type lineupDTO struct {
	MatchID         string   `json:"match_id"`
	Side            string   `json:"side"`
	SeasonTeamID    string   `json:"season_team_id"`
	Starters        []string `json:"starters"`
	Substitutes     []string `json:"substitutes"`
	Formation       string   `json:"formation,omitempty"`
	KitType         string   `json:"kit_type,omitempty"`
	Status          string   `json:"status"`
	RejectionReason string   `json:"rejection_reason,omitempty"`
	Version         int64    `json:"version"`
	UpdatedAtUTC    string   `json:"updated_at_utc"`
}

func (h *Handler) SubmitLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitLineup")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	side, err := parseLineupSide(ctx, r.PathValue("side"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req submitLineupRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.lineupService.Submit(ctx, matchID, side, lineup.Squad{
		Starters:    req.Starters,
		Substitutes: req.Substitutes,
		Formation:   req.Formation,
		KitType:     req.KitType,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit lineup failed", "match_id", matchID, "side", side, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(ctx, item))
}

func (h *Handler) ReviewLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReviewLineup")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	side, err := parseLineupSide(ctx, r.PathValue("side"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req reviewLineupRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.lineupService.Review(ctx, matchID, side, usecase.LineupReviewOutcome(req.Outcome), req.Reason)
	if err != nil {
		h.logger.WarnContext(ctx, "review lineup failed", "match_id", matchID, "side", side, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(ctx, item))
}

func (h *Handler) UnlockLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UnlockLineup")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	side, err := parseLineupSide(ctx, r.PathValue("side"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.lineupService.Unlock(ctx, matchID, side)
	if err != nil {
		h.logger.WarnContext(ctx, "unlock lineup failed", "match_id", matchID, "side", side, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(ctx, item))
}

func (h *Handler) ListLineupsByMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLineupsByMatch")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	items, err := h.lineupService.GetByMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list lineups failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]lineupDTO, 0, len(items))
	for _, item := range items {
		out = append(out, lineupToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func parseLineupSide(ctx context.Context, raw string) (lineup.Side, error) {
	ctx, span := startSpan(ctx, "httpapi.parseLineupSide")
	defer span.End()

	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "home":
		return lineup.SideHome, nil
	case "away":
		return lineup.SideAway, nil
	default:
		return "", fmt.Errorf("%w: side must be home or away", usecase.ErrInvalidInput)
	}
}

func lineupToDTO(ctx context.Context, v lineup.Submission) lineupDTO {
	ctx, span := startSpan(ctx, "httpapi.lineupToDTO")
	defer span.End()

	return lineupDTO{
		MatchID:         v.MatchID,
		Side:            string(v.Side),
		SeasonTeamID:    v.SeasonTeamID,
		Starters:        append([]string(nil), v.Starters...),
		Substitutes:     append([]string(nil), v.Substitutes...),
		Formation:       v.Formation,
		KitType:         v.KitType,
		Status:          string(v.Status),
		RejectionReason: v.RejectionReason,
		Version:         v.Version,
		UpdatedAtUTC:    v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
