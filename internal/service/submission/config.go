package submission

import (
	"strings"

	"github.com/omidvesal/intake_backend/config"
)

const (
	// VariantCombined serves one contact form with an optional resume.
	VariantCombined = "combined"
	// VariantSplit serves separate general and internship forms.
	VariantSplit = "split"
)

type Config struct {
	Variant string

	// MaxResumeSize is the upload ceiling in bytes.
	MaxResumeSize int64

	// PhoneRegion enables E.164 normalization of mobile values when set.
	PhoneRegion string

	// DownloadBaseURL prefixes resume download URLs; empty keeps them
	// relative to the serving host.
	DownloadBaseURL string
}

func DefaultConfig() Config {
	return Config{
		Variant:       VariantCombined,
		MaxResumeSize: 5 << 20,
	}
}

// FromCentralConfig converts the central config to package Config, falling
// back to defaults for unset values.
func FromCentralConfig(cfg *config.Config) Config {
	out := DefaultConfig()
	if cfg.Submissions.Variant != "" {
		out.Variant = cfg.Submissions.Variant
	}
	if cfg.Submissions.MaxResumeSizeMB > 0 {
		out.MaxResumeSize = int64(cfg.Submissions.MaxResumeSizeMB) << 20
	}
	out.PhoneRegion = cfg.Submissions.PhoneRegion
	out.DownloadBaseURL = strings.TrimRight(cfg.Server.Domain, "/")
	return out
}
