package roster

import "fmt"

// Player is one approved season-roster record. Roster facts are provided by
// the team/roster collaborator and are read-only inside this engine.
type Player struct {
	ID           string
	SeasonID     string
	SeasonTeamID string
	Name         string
	ShirtNumber  int
	Foreign      bool
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.SeasonID == "" {
		return fmt.Errorf("player season id is required")
	}
	if p.SeasonTeamID == "" {
		return fmt.Errorf("player season team id is required")
	}
	return nil
}
