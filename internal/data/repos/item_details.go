package repos

import "github.com/google/uuid"

// ItemDetails is the read-only display snapshot an approval row is enriched
// with in queue views. Fields are populated per item_type by that type's
// DisplayMeta join; it is never persisted on the approval record.
type ItemDetails struct {
	ItemID           uuid.UUID `json:"id"`
	TrackName        string    `json:"track_name,omitempty"`
	PerformerName    string    `json:"performer_name,omitempty"`
	Instrument       string    `json:"instrument,omitempty"`
	TrackType        string    `json:"track_type,omitempty"`
	NarratorName     string    `json:"narrator_name,omitempty"`
	Language         string    `json:"language,omitempty"`
	ScriptText       string    `json:"script_text,omitempty"`
	MixerName        string    `json:"mixer_name,omitempty"`
	MixVersion       int       `json:"mix_version,omitempty"`
	MixNotes         string    `json:"mix_notes,omitempty"`
	FinalMixerName   string    `json:"final_mixer_name,omitempty"`
	VersionNumber    int       `json:"version_number,omitempty"`
	CompositionNotes string    `json:"composition_notes,omitempty"`
	RecordingQuality string    `json:"recording_quality,omitempty"`
	SessionName      string    `json:"session_name,omitempty"`
	ShabadFirstLine  string    `json:"shabad_first_line,omitempty"`
	RaagName         string    `json:"raag_name,omitempty"`
	StorageKey       string    `json:"storage_key,omitempty"`
	DurationSeconds  float64   `json:"duration_seconds,omitempty"`
}
