package models

import (
	"strings"
	"testing"
)

func TestNewAnalysisCreate(t *testing.T) {
	c := NewAnalysisCreate("clip.mp4", 1.5, true, "")
	if c.Error != nil {
		t.Errorf("Empty message should store no error, got %q", *c.Error)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Expected valid record: %v", err)
	}

	long := strings.Repeat("é", 600)
	c = NewAnalysisCreate("clip.mp4", 0, false, long)
	if c.Error == nil || len([]rune(*c.Error)) != MaxErrorLength {
		t.Errorf("Error should be truncated to %d runes", MaxErrorLength)
	}
}

func TestAnalysisCreateValidate(t *testing.T) {
	cases := []struct {
		name string
		c    AnalysisCreate
		want error
	}{
		{"empty filename", AnalysisCreate{Filename: ""}, ErrInvalidFilename},
		{"long filename", AnalysisCreate{Filename: strings.Repeat("a", 256)}, ErrInvalidFilename},
		{"negative time", AnalysisCreate{Filename: "a.mp4", ProcessingTime: -1}, ErrInvalidProcessingTime},
		{"valid", AnalysisCreate{Filename: strings.Repeat("a", 255)}, nil},
	}
	for _, tc := range cases {
		if got := tc.c.Validate(); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestAnalysisFilterMatch(t *testing.T) {
	yes := true
	a := Analysis{Filename: "a.mp4", MovementDetected: false}

	if !(AnalysisFilter{}).Match(a) {
		t.Error("Empty filter should match")
	}
	if (AnalysisFilter{MovementDetected: &yes}).Match(a) {
		t.Error("Movement filter should not match")
	}
	if (AnalysisFilter{Filename: "b.mp4"}).Match(a) {
		t.Error("Filename filter should not match")
	}
}
