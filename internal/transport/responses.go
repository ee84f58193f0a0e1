package transport

import (
	"io"
	"net/http"

	"lingo/internal/address"
	"lingo/internal/wizard"
)

// sessionView is the wire shape of a wizard session. The draft itself is not
// echoed back; each screen holds its own working copy and the server is the
// source of truth only for position and mode.
type sessionView struct {
	ID           string `json:"session_id"`
	Mode         string `json:"mode"`
	Step         int    `json:"step"`
	StepName     string `json:"step_name"`
	VisitedSteps []int  `json:"visited_steps"`
	Editing      bool   `json:"editing_from_review,omitempty"`
}

func newSessionView(state *wizard.State) sessionView {
	visited := make([]int, 0, len(state.Sequencer.Visited))
	for step := wizard.StepPersonal; step <= wizard.StepReview; step++ {
		if state.Sequencer.Visited[step] {
			visited = append(visited, int(step))
		}
	}
	return sessionView{
		ID:           state.ID.String(),
		Mode:         string(state.Sequencer.Mode),
		Step:         int(state.Sequencer.Current),
		StepName:     state.Sequencer.Current.String(),
		VisitedSteps: visited,
		Editing:      state.Sequencer.EditingFromReview,
	}
}

type stepView struct {
	Step int    `json:"step"`
	Name string `json:"name"`
}

type suggestionView struct {
	PlaceID     string `json:"place_id"`
	Description string `json:"description"`
}

type addressView struct {
	Formatted  string  `json:"formatted"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	City       string  `json:"city"`
	RegionCode string  `json:"region_code"`
	PostalCode string  `json:"postal_code"`
}

func newAddressView(resolved *address.Resolved) addressView {
	return addressView{
		Formatted:  resolved.Formatted,
		Latitude:   resolved.Latitude,
		Longitude:  resolved.Longitude,
		City:       resolved.City,
		RegionCode: resolved.RegionCode,
		PostalCode: resolved.PostalCode,
	}
}

func readAll(r *http.Request, limit int64) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(nil, r.Body, limit))
}
