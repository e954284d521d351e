package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHandleMessageAppendsToContactLog(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	body, err := json.Marshal(ContactSubmittedEvent{
		ContactID:   5,
		Name:        "Alice Baker",
		Email:       "a@b.com",
		Comments:    "interested in unit 4B",
		SubmittedAt: "2026-09-01T10:00:00Z",
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := handleMessage(body); err != nil {
		t.Fatalf("first message: %v", err)
	}
	if err := handleMessage(body); err != nil {
		t.Fatalf("second message: %v", err)
	}

	data, err := os.ReadFile(filepath.Join("logs", "contact.log"))
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), "contact_id=5"); got != 2 {
		t.Fatalf("log has %d entries, want 2 (appended, not truncated):\n%s", got, data)
	}
}

func TestHandleMessageRejectsMalformedPayload(t *testing.T) {
	if err := handleMessage([]byte("{not json")); err == nil {
		t.Fatal("malformed payload must error so it gets nacked")
	}
}
