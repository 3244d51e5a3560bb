package models

// Group is a named bucket of team references. Order is insertion order.
type Group struct {
	Name    string   `json:"name"`
	TeamIDs []string `json:"team_ids"`
}

func (g Group) Contains(teamID string) bool {
	for _, id := range g.TeamIDs {
		if id == teamID {
			return true
		}
	}
	return false
}
