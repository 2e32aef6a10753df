package analysis

import (
	"strings"
	"testing"
)

func TestSelectedSectionsDefaultsToAll(t *testing.T) {
	sections := SelectedSections(Options{})
	if len(sections) != 6 {
		t.Fatalf("expected all 6 sections, got %d", len(sections))
	}
}

func TestSelectedSectionsHonorsFlags(t *testing.T) {
	sections := SelectedSections(Options{PlotAnalysis: true, SentimentAnalysis: true})
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %v", sections)
	}
	if sections[0] != sectionPlot || sections[1] != sectionSentiment {
		t.Fatalf("unexpected sections %v", sections)
	}
}

func TestBuildSystemPromptContainsSelectedSections(t *testing.T) {
	prompt := BuildSystemPrompt(Options{CharacterAnalysis: true})
	if !strings.Contains(prompt, sectionCharacter) {
		t.Fatalf("prompt missing selected section")
	}
	if strings.Contains(prompt, sectionPlot) {
		t.Fatalf("prompt contains unselected section")
	}
	if !strings.Contains(prompt, "摘要") {
		t.Fatalf("prompt missing summary header")
	}
}

func TestCleanSummaryStripsNumberedPrefixes(t *testing.T) {
	raw := "1. first point\nplain line\n2. second point"
	want := "first point\nplain line\nsecond point"
	if got := CleanSummary(raw); got != want {
		t.Fatalf("CleanSummary = %q, want %q", got, want)
	}
}

func TestCleanSummaryLeavesDecimalsAlone(t *testing.T) {
	raw := "价格为 3.50 元"
	if got := CleanSummary(raw); got != raw {
		t.Fatalf("CleanSummary mangled %q into %q", raw, got)
	}
}
