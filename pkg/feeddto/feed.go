// Package feeddto defines the JSON payloads served by the live feed,
// shaped to match the broadcast API that downstream pollers expect.
package feeddto

// Clock is the remaining time per side in centiseconds. The simulator has
// no real clocks; running games report a fixed budget, finished games zero.
type Clock struct {
	White int `json:"white"`
	Black int `json:"black"`
}

// GameState is the poll payload for one board.
type GameState struct {
	Moves    []string `json:"moves"`
	Result   string   `json:"result"`
	Finished bool     `json:"finished"`
	Clock    Clock    `json:"clock"`
	White    string   `json:"white,omitempty"`
	Black    string   `json:"black,omitempty"`
	Round    string   `json:"round"`
	Event    string   `json:"event"`
}

// PlayerRef names one side of a pairing.
type PlayerRef struct {
	Name string `json:"name"`
}

// Pairing is one board's entry in a round index.
type Pairing struct {
	White  PlayerRef `json:"white"`
	Black  PlayerRef `json:"black"`
	Result string    `json:"result"`
	Live   bool      `json:"live"`
}

// RoundIndex lists the pairings of one round.
type RoundIndex struct {
	Pairings []Pairing `json:"pairings"`
}

// RoundSummary is the per-round entry of the tournament descriptor.
type RoundSummary struct {
	Count int `json:"count"`
	Live  int `json:"live"`
}

// Tournament is the top-level descriptor.
type Tournament struct {
	Name     string         `json:"name"`
	Location string         `json:"location"`
	Rounds   []RoundSummary `json:"rounds"`
}

// Health is the liveness payload.
type Health struct {
	Status string `json:"status"`
}

// APIError is the body for not-found and similar request errors.
type APIError struct {
	Error string `json:"error"`
}
