// Package profile holds the runtime configuration resolved from flags,
// environment variables and defaults.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// Profile is the resolved runtime configuration for a notetutor instance.
type Profile struct {
	// Mode is "prod" or "dev".
	Mode string
	// Addr is the binding address, empty for all interfaces.
	Addr string
	// Port is the HTTP listen port.
	Port int
	// Data is the directory holding the database and vector index.
	Data string
	// Driver is the database driver: sqlite, mysql or postgres.
	Driver string
	// DSN is the database connection string. For sqlite this is derived
	// from Data when empty.
	DSN string

	// APIKey authenticates against the model provider.
	APIKey string
	// APIBaseURL points at an OpenAI-compatible endpoint (OpenRouter works).
	APIBaseURL string
	// Model is the chat model identifier used when settings carry none.
	Model string
	// EmbedModel is the embedding model for the note vector index.
	EmbedModel string

	// MaxChatHistory bounds the per-topic conversation log.
	MaxChatHistory int
	// ModelTimeout bounds a single model invocation.
	ModelTimeout time.Duration
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// Validate normalizes the profile and fills in defaults.
func (p *Profile) Validate() error {
	if p.Mode != "prod" && p.Mode != "dev" {
		p.Mode = "dev"
	}
	if p.Data == "" {
		if p.Mode == "prod" {
			p.Data = "/var/opt/notetutor"
		} else {
			p.Data = "."
		}
	}
	dataDir, err := filepath.Abs(p.Data)
	if err != nil {
		return errors.Wrapf(err, "unable to resolve data dir %q", p.Data)
	}
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return errors.Wrapf(err, "unable to create data dir %q", dataDir)
	}
	p.Data = dataDir

	if p.Driver == "" {
		p.Driver = "sqlite"
	}
	if p.Driver == "sqlite" && p.DSN == "" {
		p.DSN = filepath.Join(p.Data, fmt.Sprintf("notetutor_%s.db", p.Mode))
	}
	if p.DSN == "" {
		return errors.Errorf("dsn is required for driver %q", p.Driver)
	}

	if p.APIBaseURL == "" {
		p.APIBaseURL = "https://openrouter.ai/api/v1"
	}
	if p.Model == "" {
		p.Model = "gpt-4o-mini"
	}
	if p.EmbedModel == "" {
		p.EmbedModel = "text-embedding-3-small"
	}
	if p.MaxChatHistory <= 0 {
		p.MaxChatHistory = 10
	}
	if p.ModelTimeout <= 0 {
		p.ModelTimeout = 60 * time.Second
	}
	return nil
}
