package phone

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		region string
		want   string
	}{
		{"iranian mobile with leading zero", "09121234567", "IR", "+989121234567"},
		{"already e164", "+989121234567", "IR", "+989121234567"},
		{"spaces and dashes", "0912 123-4567", "IR", "+989121234567"},
		{"us number with punctuation", "(212) 555-0123", "US", "+12125550123"},
		{"garbage stays as given", "call me maybe", "IR", "call me maybe"},
		{"too short stays as given", "12345", "IR", "12345"},
		{"empty input", "", "IR", ""},
		{"normalization disabled", "09121234567", "", "09121234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw, tt.region); got != tt.want {
				t.Errorf("Normalize(%q, %q) = %q, want %q", tt.raw, tt.region, got, tt.want)
			}
		})
	}
}
