package main

import (
	"slices"
	"strings"
	"testing"
)

func TestFormatPageStatus(t *testing.T) {
	tests := []struct {
		page, total int
		zoom        float64
		want        string
	}{
		{1, 10, 1.0, "1 / 10  100%"},
		{7, 12, 1.2, "7 / 12  120%"},
		{3, 3, 0.5787, "3 / 3  58%"},
	}
	for _, tt := range tests {
		if got := formatPageStatus(tt.page, tt.total, tt.zoom); got != tt.want {
			t.Errorf("formatPageStatus(%d, %d, %v) = %q, want %q", tt.page, tt.total, tt.zoom, got, tt.want)
		}
	}
}

func TestHelpRows(t *testing.T) {
	f := newTestViewer(t)
	rows := f.viewer.renderer.helpRows()

	var names []string
	for _, row := range rows {
		names = append(names, row.action)
	}
	if !slices.IsSorted(names) {
		t.Errorf("help rows not sorted: %v", names)
	}
	if slices.Contains(names, actionPlayMusic) {
		t.Error("actions without bindings should be hidden")
	}

	i := slices.Index(names, actionZoomIn)
	if i < 0 {
		t.Fatal("zoom_in missing from help")
	}
	if got := rows[i].input(); got != "Equal, Shift+Equal | Ctrl+WheelUp" {
		t.Errorf("unexpected zoom_in input %q", got)
	}
	if rows[i].description != "Zoom in" {
		t.Errorf("unexpected description %q", rows[i].description)
	}
}

func TestHelpWarnings(t *testing.T) {
	f := newTestViewer(t)
	f.viewer.configStatus = ConfigLoadResult{
		Status: "Warning",
		Path:   "/tmp/config.json",
		Warnings: []string{
			"short",
			strings.Repeat("x", 80),
			"dropped",
		},
	}

	warnings := f.viewer.renderer.helpWarnings()
	if len(warnings) != maxHelpWarnings {
		t.Fatalf("Expected %d warnings, got %v", maxHelpWarnings, warnings)
	}
	if warnings[0] != "• short" {
		t.Errorf("unexpected first warning %q", warnings[0])
	}
	if !strings.HasSuffix(warnings[1], "...") || len(warnings[1]) > len("• ")+50 {
		t.Errorf("long warning not truncated: %q", warnings[1])
	}
	if got := f.viewer.renderer.helpStatusLine(); got != "Config Status: Warning (/tmp/config.json)" {
		t.Errorf("unexpected status line %q", got)
	}
}
