package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/pkg/errors"
)

// tutorSettingName is the key the tutor settings record is stored under.
const tutorSettingName = "tutor"

// Depth is the user-selected verbosity tier for tutor answers.
type Depth string

const (
	DepthShort    Depth = "short"
	DepthMedium   Depth = "medium"
	DepthDetailed Depth = "detailed"
)

// TutorSetting holds the user-chosen generation parameters. The record is
// persisted wholesale; there is no partial merge.
type TutorSetting struct {
	Language    string  `json:"language"`
	Depth       Depth   `json:"depth"`
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// DefaultTutorSetting returns the hard-coded defaults applied when nothing
// has been persisted yet.
func DefaultTutorSetting() *TutorSetting {
	return &TutorSetting{
		Language:    "RO",
		Depth:       DepthMedium,
		Model:       "gpt-4o-mini",
		Temperature: 0.5,
		MaxTokens:   300,
	}
}

// GetTutorSetting loads the persisted tutor settings. When nothing is
// persisted yet the defaults are saved and returned, so subsequent loads
// are stable. An unreadable or corrupt record falls back to defaults
// rather than failing the caller.
func (s *Store) GetTutorSetting(ctx context.Context) (*TutorSetting, error) {
	value, err := s.driver.GetSettingValue(ctx, tutorSettingName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			setting := DefaultTutorSetting()
			if err := s.UpsertTutorSetting(ctx, setting); err != nil {
				return nil, err
			}
			return setting, nil
		}
		return nil, errors.Wrap(err, "failed to load tutor setting")
	}

	// Temperature is decoded through a pointer so that a record missing the
	// key gets the default while an explicit 0.0 is kept.
	var raw struct {
		Language    string   `json:"language"`
		Depth       Depth    `json:"depth"`
		Model       string   `json:"model"`
		Temperature *float64 `json:"temperature"`
		MaxTokens   int      `json:"max_tokens"`
	}
	if err := json.Unmarshal([]byte(value), &raw); err != nil {
		slog.Warn("corrupt tutor setting record, falling back to defaults", "err", err)
		return DefaultTutorSetting(), nil
	}
	setting := &TutorSetting{
		Language:    raw.Language,
		Depth:       raw.Depth,
		Model:       raw.Model,
		Temperature: DefaultTutorSetting().Temperature,
		MaxTokens:   raw.MaxTokens,
	}
	if raw.Temperature != nil {
		setting.Temperature = *raw.Temperature
	}
	return setting, nil
}

// UpsertTutorSetting overwrites the persisted settings record wholesale.
// No range validation happens here; that is a caller responsibility.
func (s *Store) UpsertTutorSetting(ctx context.Context, setting *TutorSetting) error {
	value, err := json.Marshal(setting)
	if err != nil {
		return errors.Wrap(err, "failed to marshal tutor setting")
	}
	return s.driver.UpsertSettingValue(ctx, tutorSettingName, string(value))
}
