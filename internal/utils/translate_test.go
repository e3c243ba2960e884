package utils

import "testing"

func TestTranslateSeriesStatus(t *testing.T) {
	if got := TranslateSeriesStatus("Returning Series"); got != "Em exibição" {
		t.Errorf("Expected \"Em exibição\", got %q", got)
	}
	if got := TranslateSeriesStatus("Ended"); got != "Finalizada" {
		t.Errorf("Expected \"Finalizada\", got %q", got)
	}
	// Unknown statuses pass through untouched
	if got := TranslateSeriesStatus("Pilot"); got != "Pilot" {
		t.Errorf("Expected passthrough, got %q", got)
	}
}

func TestTranslateJob(t *testing.T) {
	if got := TranslateJob("Director"); got != "Diretor" {
		t.Errorf("Expected \"Diretor\", got %q", got)
	}
	if got := TranslateJob("Writer"); got != "Roteirista" {
		t.Errorf("Expected \"Roteirista\", got %q", got)
	}
	if got := TranslateJob("Best Boy"); got != "Best Boy" {
		t.Errorf("Expected passthrough, got %q", got)
	}
}
