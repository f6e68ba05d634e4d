package cmd

import (
	"testing"

	"github.com/flightdeck-dev/flightdeck/pkg/types"
)

func TestShortID(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"0d9c7a9e-51c2-4c8f-9f1e-0a9a2b3c4d5e", "0d9c7a9e"},
		{"abc", "abc"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := shortID(tt.id); got != tt.want {
			t.Errorf("shortID(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestStageList(t *testing.T) {
	tests := []struct {
		name   string
		stages []types.StageName
		want   string
	}{
		{"empty", nil, "-"},
		{"single", []types.StageName{types.StageTest}, "test"},
		{"both", []types.StageName{types.StageTest, types.StageDeploy}, "test,deploy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stageList(tt.stages); got != tt.want {
				t.Errorf("stageList(%v) = %q, want %q", tt.stages, got, tt.want)
			}
		})
	}
}

func TestBuildColumn(t *testing.T) {
	if got := buildColumn(0); got != "-" {
		t.Errorf("buildColumn(0) = %q, want -", got)
	}
	if got := buildColumn(42); got != "42" {
		t.Errorf("buildColumn(42) = %q, want 42", got)
	}
}
