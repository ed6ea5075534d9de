package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/ligaops/competition-engine/internal/domain/standing"
	"github.com/ligaops/competition-engine/internal/usecase"
)

type recomputeStandingsRequest struct {
	Mode   string `json:"mode" validate:"required,oneof=live final"`
	Policy string `json:"policy" validate:"required,oneof=preserve discard"`
}

type adjustStandingRequest struct {
	Delta int `json:"delta" validate:"required"`
}

type standingRowDTO struct {
	SeasonID       string `json:"season_id"`
	SeasonTeamID   string `json:"season_team_id"`
	Rank           int    `json:"rank"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Draw           int    `json:"draw"`
	Loss           int    `json:"loss"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
	ManualDelta    int    `json:"manual_delta,omitempty"`
	TotalPoints    int    `json:"total_points"`
	Adjusted       bool   `json:"adjusted"`
	UpdatedAtUTC   string `json:"updated_at_utc"`
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	rows, err := h.standingService.Table(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get standings failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingRowsToDTO(ctx, rows))
}

func (h *Handler) RecomputeStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecomputeStandings")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	var req recomputeStandingsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.standingService.Recompute(ctx, seasonID, standing.Mode(req.Mode), usecase.OverridePolicy(req.Policy))
	if err != nil {
		h.logger.WarnContext(ctx, "recompute standings failed",
			"season_id", seasonID, "mode", req.Mode, "policy", req.Policy, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingRowsToDTO(ctx, rows))
}

func (h *Handler) AdjustStanding(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdjustStanding")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	teamID := strings.TrimSpace(r.PathValue("teamID"))
	var req adjustStandingRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.standingService.AdjustTeam(ctx, seasonID, teamID, req.Delta)
	if err != nil {
		h.logger.WarnContext(ctx, "adjust standing failed",
			"season_id", seasonID, "team_id", teamID, "delta", req.Delta, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingRowsToDTO(ctx, rows))
}

func (h *Handler) ResetStandingAdjustment(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetStandingAdjustment")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	teamID := strings.TrimSpace(r.PathValue("teamID"))
	rows, err := h.standingService.ResetTeam(ctx, seasonID, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "reset standing adjustment failed",
			"season_id", seasonID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingRowsToDTO(ctx, rows))
}

func standingRowsToDTO(ctx context.Context, rows []standing.Row) []standingRowDTO {
	ctx, span := startSpan(ctx, "httpapi.standingRowsToDTO")
	defer span.End()

	out := make([]standingRowDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, standingRowDTO{
			SeasonID:       row.SeasonID,
			SeasonTeamID:   row.SeasonTeamID,
			Rank:           row.Rank,
			Played:         row.Played,
			Won:            row.Won,
			Draw:           row.Draw,
			Loss:           row.Loss,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference(),
			Points:         row.Points,
			ManualDelta:    row.ManualDelta,
			TotalPoints:    row.TotalPoints(),
			Adjusted:       row.Adjusted,
			UpdatedAtUTC:   row.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}
