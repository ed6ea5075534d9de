package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ligaops/competition-engine/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo season, roster and fixtures into an empty
// database. A database that already holds a season is left untouched.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM seasons`); err != nil {
		return fmt.Errorf("count seasons for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, s := range memory.SeedSeasons() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO seasons (public_id, name, required_team_count, yellow_threshold, yellow_ban, red_card_ban,
	max_foreign_starters, max_substitutes, tie_break_seed, starts_at, ends_at)
VALUES (:public_id, :name, :required_team_count, :yellow_threshold, :yellow_ban, :red_card_ban,
	:max_foreign_starters, :max_substitutes, :tie_break_seed, :starts_at, :ends_at)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":            s.ID,
			"name":                 s.Name,
			"required_team_count":  s.RequiredTeamCount,
			"yellow_threshold":     s.Rules.YellowThreshold,
			"yellow_ban":           s.Rules.YellowBan,
			"red_card_ban":         s.Rules.RedCardBan,
			"max_foreign_starters": s.Rules.MaxForeignStarters,
			"max_substitutes":      s.Rules.MaxSubstitutes,
			"tie_break_seed":       s.Rules.TieBreakSeed,
			"starts_at":            s.StartsAt,
			"ends_at":              s.EndsAt,
		})
		if err != nil {
			return fmt.Errorf("bind seed season %s query: %w", s.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed season %s: %w", s.ID, err)
		}
	}

	for _, p := range memory.SeedRoster() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO roster_players (public_id, season_public_id, team_public_id, name, shirt_number, is_foreign)
VALUES (:public_id, :season_public_id, :team_public_id, :name, :shirt_number, :is_foreign)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":        p.ID,
			"season_public_id": p.SeasonID,
			"team_public_id":   p.SeasonTeamID,
			"name":             p.Name,
			"shirt_number":     p.ShirtNumber,
			"is_foreign":       p.Foreign,
		})
		if err != nil {
			return fmt.Errorf("bind seed roster player %s query: %w", p.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed roster player %s: %w", p.ID, err)
		}
	}

	for _, m := range memory.SeedMatches() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO matches (public_id, season_public_id, home_team_public_id, away_team_public_id,
	status, scheduled_at, home_goals, away_goals, officials_complete, standings_eligible, version)
VALUES (:public_id, :season_public_id, :home_team_public_id, :away_team_public_id,
	:status, :scheduled_at, :home_goals, :away_goals, :officials_complete, :standings_eligible, :version)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":           m.ID,
			"season_public_id":    m.SeasonID,
			"home_team_public_id": m.HomeTeamID,
			"away_team_public_id": m.AwayTeamID,
			"status":              string(m.Status),
			"scheduled_at":        m.ScheduledAt,
			"home_goals":          m.HomeGoals,
			"away_goals":          m.AwayGoals,
			"officials_complete":  m.OfficialsComplete,
			"standings_eligible":  m.StandingsEligible,
			"version":             m.Version,
		})
		if err != nil {
			return fmt.Errorf("bind seed match %s query: %w", m.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed match %s: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bootstrap seed: %w", err)
	}

	return nil
}
