package assistant

import "github.com/FACorreiaa/go-route-planner/internal/types"

const (
	ModeAsk   = "ask"
	ModeReady = "ready"

	InputDate        = "date"
	InputSingle      = "single"
	InputMultiselect = "multiselect"
)

// Preferences are the trip parameters collected during the conversation.
type Preferences struct {
	Date   string   `json:"date,omitempty"`
	City   string   `json:"city,omitempty"`
	Tags   []string `json:"tags,omitempty"`
	Budget string   `json:"budget,omitempty"`
	Pace   string   `json:"pace,omitempty"`
}

// Step is the next move of the conversation: either a question about one
// field (ModeAsk) or the completed preferences (ModeReady).
type Step struct {
	Mode       string       `json:"mode"`
	Question   string       `json:"question,omitempty"`
	Field      string       `json:"field,omitempty"`
	Input      string       `json:"input,omitempty"`
	Options    []string     `json:"options,omitempty"`
	KnownPrefs *Preferences `json:"known_prefs,omitempty"`
	Prefs      *Preferences `json:"prefs,omitempty"`
	// Note explains why the scripted flow answered instead of the model.
	Note string `json:"note,omitempty"`
}

type NextRequest struct {
	KnownPrefs Preferences `json:"known_prefs"`
}

type ExplainRequest struct {
	Prefs Preferences  `json:"prefs"`
	Stops []types.Stop `json:"stops" validate:"dive"`
}

type ExplainResponse struct {
	Text string `json:"text"`
}
