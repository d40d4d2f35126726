package rocket

import (
	"encoding/json"

	"github.com/rocketresume/rocket/pkg/analysis"
)

// maxCollected caps how many achievement records a session carries in
// its metadata. Counters keep the true totals.
const maxCollected = 10

// State is a session's coaching progress. It round-trips through the
// session row's metadata column between turns.
type State struct {
	Phase          Phase                  `json:"phase"`
	PhaseExchanges int                    `json:"phase_exchanges"`
	Achievements   int                    `json:"achievements"`
	Quantified     int                    `json:"quantified"`
	Collected      []analysis.Achievement `json:"collected,omitempty"`
}

// NewState is the state of a freshly started session.
func NewState() State {
	return State{Phase: PhaseIntro}
}

// absorb records one user message's mined achievements.
func (s *State) absorb(mined []analysis.Achievement) {
	s.PhaseExchanges++
	s.Achievements += len(mined)
	s.Quantified += len(analysis.Quantified(mined))
	for _, a := range mined {
		if len(s.Collected) == maxCollected {
			break
		}
		s.Collected = append(s.Collected, a)
	}
}

// DecodeState reads a state out of session metadata. Missing or
// malformed metadata yields a fresh state, so sessions created before a
// format change keep working.
func DecodeState(metadata []byte) State {
	if len(metadata) == 0 {
		return NewState()
	}
	var st State
	if err := json.Unmarshal(metadata, &st); err != nil || !ValidPhase(string(st.Phase)) {
		return NewState()
	}
	return st
}

// Encode serializes the state for the session metadata column.
func (s State) Encode() ([]byte, error) {
	return json.Marshal(s)
}
