package config

import "testing"

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "zero config passes", mutate: func(c *Config) {}},
		{name: "known variant", mutate: func(c *Config) { c.Submissions.Variant = "split" }},
		{name: "unknown variant", mutate: func(c *Config) { c.Submissions.Variant = "both" }, wantErr: true},
		{name: "unknown blob backend", mutate: func(c *Config) { c.Blob.Backend = "gridfs" }, wantErr: true},
		{name: "port out of range", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: true},
		{name: "bad notification address", mutate: func(c *Config) { c.Notifications.Email.To = "not-an-address" }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "verbose" }, wantErr: true},
		{name: "sampling rate above one", mutate: func(c *Config) { c.Observability.Tracing.SamplingRate = 1.5 }, wantErr: true},
		{name: "phone region wrong length", mutate: func(c *Config) { c.Submissions.PhoneRegion = "IRN" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}
