package ai

import (
	"reflect"
	"strings"
	"testing"
)

func TestFindPlanBlockComplete(t *testing.T) {
	text := "sure, here you go\n" + PlanBlockOpen + `
name: Push Day
date: 2025-10-16
workouts:
1. bench press 3x8
2. ohp 5x5
` + PlanBlockClose + "\nhow's that?"

	block, ok := FindPlanBlock(text)
	if !ok {
		t.Fatal("expected a plan block")
	}
	if block.Name != "Push Day" {
		t.Errorf("name = %q", block.Name)
	}
	if block.Date != "2025-10-16" {
		t.Errorf("date = %q", block.Date)
	}
	want := []string{"bench press 3x8", "ohp 5x5"}
	if !reflect.DeepEqual(block.Items, want) {
		t.Errorf("items = %v; want %v", block.Items, want)
	}
	if m := block.Missing(); len(m) != 0 {
		t.Errorf("missing = %v; want none", m)
	}
}

func TestFindPlanBlockLastWins(t *testing.T) {
	text := PlanBlockOpen + "\nname: Old\ndate: 2025-10-01\nworkouts:\n1. squat\n" + PlanBlockClose +
		"\nactually:\n" +
		PlanBlockOpen + "\nname: New\ndate: 2025-10-02\nworkouts:\n1. deadlift\n" + PlanBlockClose

	block, ok := FindPlanBlock(text)
	if !ok || block.Name != "New" || block.Date != "2025-10-02" {
		t.Fatalf("got %+v, %v; want the second block", block, ok)
	}
}

func TestFindPlanBlockMissingFields(t *testing.T) {
	text := PlanBlockOpen + "\nname: Push Day\nworkouts:\n" + PlanBlockClose

	block, ok := FindPlanBlock(text)
	if !ok {
		t.Fatal("expected a plan block")
	}
	want := []string{"date", "workouts"}
	if got := block.Missing(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Missing() = %v; want %v", got, want)
	}
}

func TestFindPlanBlockUnparseableDateCountsAsMissing(t *testing.T) {
	text := PlanBlockOpen + "\nname: Push Day\ndate: someday soon\nworkouts:\n1. bench press\n" + PlanBlockClose

	block, ok := FindPlanBlock(text)
	if !ok {
		t.Fatal("expected a plan block")
	}
	if block.Date != "" {
		t.Fatalf("date = %q; want empty", block.Date)
	}
	if got := block.Missing(); !reflect.DeepEqual(got, []string{"date"}) {
		t.Fatalf("Missing() = %v; want [date]", got)
	}
}

func TestFindPlanBlockNumericDateNormalized(t *testing.T) {
	text := PlanBlockOpen + "\nname: Legs\ndate: 10/16/2025\nworkouts:\n1. squat 5x5\n" + PlanBlockClose

	block, _ := FindPlanBlock(text)
	if block.Date != "2025-10-16" {
		t.Fatalf("date = %q; want 2025-10-16", block.Date)
	}
}

func TestFindPlanBlockAbsent(t *testing.T) {
	if _, ok := FindPlanBlock("no template here"); ok {
		t.Fatal("expected no plan block")
	}
}

func TestPlanBlockTemplateRoundTrips(t *testing.T) {
	// The template we tell users to fill in must itself parse as a block.
	block, ok := FindPlanBlock(PlanBlockTemplate)
	if !ok {
		t.Fatal("template did not parse as a plan block")
	}
	if !strings.Contains(strings.Join(block.Missing(), ","), "date") {
		t.Fatalf("unfilled template should be missing its date, got %v", block.Missing())
	}
}
