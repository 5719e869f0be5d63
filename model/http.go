package model

type PartSummary struct {
	Track      int    `json:"track"`
	Channel    uint8  `json:"channel"`
	Label      string `json:"label,omitempty"`
	NoteEvents int    `json:"note_events"`
}

// ConflictSummary's owner fields are only meaningful when Kind is
// "already_pressed".
type ConflictSummary struct {
	Kind         string `json:"kind"`
	Tick         uint64 `json:"tick"`
	Note         string `json:"note"`
	Track        int    `json:"track"`
	Channel      uint8  `json:"channel"`
	OwnerTrack   int    `json:"owner_track"`
	OwnerChannel uint8  `json:"owner_channel"`
	OwnerTick    uint64 `json:"owner_tick"`
}

type RangeErrorSummary struct {
	Tick    uint64 `json:"tick"`
	Note    string `json:"note"`
	Track   int    `json:"track"`
	Channel uint8  `json:"channel"`
}

type ReportResponse struct {
	File         string              `json:"file"`
	Format       uint16              `json:"format"`
	TicksPerBeat uint16              `json:"ticks_per_beat"`
	TempoBPM     int                 `json:"tempo_bpm"`
	Divisor      float64             `json:"divisor"`
	Parts        []PartSummary       `json:"parts"`
	Conflicts    []ConflictSummary   `json:"conflicts"`
	RangeErrors  []RangeErrorSummary `json:"range_errors"`
	Notes        int                 `json:"notes"`
	TotalLength  float64             `json:"total_length"`
	OverLimit    bool                `json:"over_limit"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
