package entry

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestNewAssignsIdentity(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)
	a := New("first", DefaultMetadata(), now)
	b := New("second", DefaultMetadata(), now)

	if a.ID == "" || b.ID == "" {
		t.Fatalf("expected ids, got %q and %q", a.ID, b.ID)
	}
	if a.ID == b.ID {
		t.Fatalf("expected distinct ids, both %q", a.ID)
	}
	if !a.Pending() {
		t.Fatalf("expected new entry to be pending")
	}
	if a.Timestamp == "" {
		t.Fatalf("expected display timestamp")
	}
}

func TestAttachReplyOnce(t *testing.T) {
	e := New("text", DefaultMetadata(), time.Now())

	if err := e.AttachReply(""); !errors.Is(err, ErrEmptyReply) {
		t.Fatalf("expected ErrEmptyReply, got %v", err)
	}
	if err := e.AttachReply("a reflection"); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := e.AttachReply("another"); !errors.Is(err, ErrReplyAttached) {
		t.Fatalf("expected ErrReplyAttached, got %v", err)
	}
	if e.AI != "a reflection" {
		t.Fatalf("reply changed to %q", e.AI)
	}
}

func TestEntryJSONShape(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)
	e := New("Had a tough meeting today", Metadata{Importance: 4, Topic: "work", InsightLevel: Deep}, now)

	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, k := range []string{"id", "created", "timestamp", "user", "ai", "importance", "topic", "insightLevel"} {
		if _, ok := raw[k]; !ok {
			t.Errorf("missing key %q in %s", k, b)
		}
	}
	if raw["created"] != "2024-03-09T14:30:00Z" {
		t.Errorf("unexpected created %v", raw["created"])
	}

	var back Entry
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal entry: %v", err)
	}
	again, err := json.Marshal(&back)
	if err != nil {
		t.Fatalf("marshal again: %v", err)
	}
	if string(again) != string(b) {
		t.Fatalf("round trip changed bytes:\n%s\n%s", b, again)
	}
}

func TestLegacyEntryWithoutCreated(t *testing.T) {
	var e Entry
	if err := json.Unmarshal([]byte(`{"timestamp":"3/9/2024, 2:30:00 PM","user":"hi","ai":"","importance":3,"insightLevel":2}`), &e); err != nil {
		t.Fatalf("unmarshal legacy: %v", err)
	}
	if e.When() != "3/9/2024, 2:30:00 PM" {
		t.Fatalf("expected legacy display time, got %q", e.When())
	}
	twin := e
	if !e.EnsureID("0/2024-03-09/0") || e.ID == "" {
		t.Fatalf("expected id to be assigned")
	}
	if e.EnsureID("0/2024-03-09/1") {
		t.Fatalf("expected existing id to be kept")
	}

	if !twin.EnsureID("0/2024-03-09/0") || twin.ID != e.ID {
		t.Fatalf("same slot and text should derive the same id, got %q and %q", twin.ID, e.ID)
	}
	other := Entry{Timestamp: e.Timestamp, User: e.User}
	if other.EnsureID("0/2024-03-09/1"); other.ID == e.ID {
		t.Fatalf("different slots should derive different ids")
	}
}

func TestParseInsight(t *testing.T) {
	tests := []struct {
		in      string
		want    Insight
		wantErr bool
	}{
		{in: "1", want: Gentle},
		{in: "gentle", want: Gentle},
		{in: "", want: Balanced},
		{in: "Balanced", want: Balanced},
		{in: "3", want: Deep},
		{in: "deep", want: Deep},
		{in: "4", wantErr: true},
		{in: "profound", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseInsight(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseInsight(%q) err = %v", tt.in, err)
			}
			if !tt.wantErr && got != tt.want {
				t.Fatalf("ParseInsight(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMetadataNormalizeAndValidate(t *testing.T) {
	m := Metadata{Importance: 9, Mood: -2, Topic: "  Work ", InsightLevel: 0}.Normalize()
	if m.Importance != MaxImportance || m.Mood != 0 || m.Topic != "work" || m.InsightLevel != Balanced {
		t.Fatalf("unexpected normalized metadata %+v", m)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("normalized metadata should validate: %v", err)
	}
	if err := (Metadata{Importance: 0, InsightLevel: Gentle}).Validate(); !errors.Is(err, ErrImportanceRange) {
		t.Fatalf("expected importance error, got %v", err)
	}
	if err := (Metadata{Importance: 2, Mood: 11, InsightLevel: Gentle}).Validate(); !errors.Is(err, ErrMoodRange) {
		t.Fatalf("expected mood error, got %v", err)
	}
	if got := (Metadata{}).TopicOrDefault(); got != DefaultTopic {
		t.Fatalf("expected default topic, got %q", got)
	}
}
