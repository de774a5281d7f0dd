package email

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestBuildSubmissionEmail(t *testing.T) {
	data := SubmissionEmailData{
		To:          "owner@example.com",
		Kind:        "internship",
		Name:        "Omid",
		LastName:    "Vaezi",
		Mobile:      "+989121234567",
		Email:       "omid@example.com",
		Subject:     "Summer internship",
		Message:     "I would like to apply.",
		ResumeURL:   "https://api.example.com/api/resume/abc",
		SubmittedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		AppName:     "Intake",
	}

	msg := BuildSubmissionEmail(data)

	if len(msg.To) != 1 || msg.To[0] != "owner@example.com" {
		t.Errorf("To = %v", msg.To)
	}
	if !strings.Contains(msg.Subject, "internship") || !strings.Contains(msg.Subject, "Omid Vaezi") {
		t.Errorf("Subject = %q", msg.Subject)
	}
	for _, want := range []string{"omid@example.com", "+989121234567", "I would like to apply.", data.ResumeURL} {
		if !strings.Contains(msg.TextBody, want) {
			t.Errorf("text body missing %q", want)
		}
	}
	if !strings.Contains(msg.HTMLBody, data.ResumeURL) {
		t.Error("html body missing resume link")
	}
}

func TestBuildSubmissionEmail_OptionalSectionsOmitted(t *testing.T) {
	msg := BuildSubmissionEmail(SubmissionEmailData{
		To:          "owner@example.com",
		Kind:        "contact",
		Name:        "Sara",
		Email:       "sara@example.com",
		SubmittedAt: time.Now(),
	})

	if strings.Contains(msg.TextBody, "Resume:") {
		t.Error("text body advertises a resume that was never uploaded")
	}
	if strings.Contains(msg.TextBody, "Mobile:") {
		t.Error("text body lists an empty mobile")
	}
	if strings.Contains(msg.HTMLBody, "Download Resume") {
		t.Error("html body renders a resume button without a link")
	}
}

func TestBuildSubmissionEmail_EscapesFormFieldsInHTML(t *testing.T) {
	msg := BuildSubmissionEmail(SubmissionEmailData{
		To:          "owner@example.com",
		Kind:        "contact",
		Name:        `<script>alert(1)</script>`,
		LastName:    `"><b>bold</b>`,
		Mobile:      `<i>0912</i>`,
		Email:       "sara@example.com",
		Subject:     `<style>*{display:none}</style>`,
		Message:     `<img src=x onerror=alert(2)>`,
		ResumeURL:   `https://api.example.com/api/resume/x"><script>alert(3)</script>`,
		SubmittedAt: time.Now(),
	})

	for _, raw := range []string{
		"<script>alert(1)</script>",
		"<b>bold</b>",
		"<i>0912</i>",
		"<style>",
		"<img src=x onerror=alert(2)>",
		`"><script>alert(3)</script>`,
	} {
		if strings.Contains(msg.HTMLBody, raw) {
			t.Errorf("html body contains unescaped %q", raw)
		}
	}

	// The values themselves still arrive, entity-encoded.
	for _, escaped := range []string{
		"&lt;script&gt;alert(1)&lt;/script&gt;",
		"&lt;img src=x onerror=alert(2)&gt;",
	} {
		if !strings.Contains(msg.HTMLBody, escaped) {
			t.Errorf("html body missing escaped form %q", escaped)
		}
	}

	// The plain-text body is not HTML; values stay as given there.
	if !strings.Contains(msg.TextBody, "<img src=x onerror=alert(2)>") {
		t.Error("text body must carry the message verbatim")
	}
}

func TestSend_Disabled(t *testing.T) {
	client, err := New(Config{Enabled: false})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	err = client.Send(context.Background(), Message{To: []string{"a@b.c"}, Subject: "x", TextBody: "y"})
	if _, ok := err.(ErrDisabled); !ok {
		t.Errorf("expected ErrDisabled, got %v", err)
	}
}
