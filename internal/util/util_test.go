package util

import (
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
)

func TestEscapeAwareRuneCountInString(t *testing.T) {
	var bold = color.New(color.Bold)
	var myColor = color.New(color.FgBlue)

	s := myColor.Sprintf("•ABC%s%s", bold.Sprintf("DEF"), "\x1B[00;38;5;244m\x1B[m\x1B[00;38;5;33mGHI\x1B[0m")
	count := EscapeAwareRuneCountInString(s)
	if count != 10 {
		t.Errorf("Count was incorrect, got: %d, want: %d.", count, 10)
	}
}

func TestRightPad(t *testing.T) {
	if got := RightPad("age", 6); got != "age   " {
		t.Fatalf("unexpected %q", got)
	}
	if got := RightPad("income", 3); got != "income" {
		t.Fatalf("unexpected %q", got)
	}
	colored := color.New(color.FgRed).Sprint("x")
	if EscapeAwareRuneCountInString(RightPad(colored, 4)) != 4 {
		t.Fatal("padding must ignore escape sequences")
	}
}

func TestWrapString(t *testing.T) {
	got := WrapString("Please select columns and estimation methods to continue", 20)
	expect := []string{
		"Please select",
		"columns and",
		"estimation methods",
		"to continue",
	}
	if diff := cmp.Diff(expect, got); diff != "" {
		t.Fatal(diff)
	}
}
