package main

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestPrompterAsk(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("  hello \n\n<\n"), &out)

	got, err := p.ask("Name", "")
	if err != nil || got != "hello" {
		t.Fatalf("expected hello, got %q (%v)", got, err)
	}
	got, err = p.ask("Phone", "9876543210")
	if err != nil || got != "9876543210" {
		t.Fatalf("expected default on empty line, got %q (%v)", got, err)
	}
	if _, err = p.ask("Address", ""); !errors.Is(err, errBack) {
		t.Fatalf("expected errBack, got %v", err)
	}
	if _, err = p.ask("Anything", ""); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if !strings.Contains(out.String(), "Phone [9876543210]: ") {
		t.Fatalf("expected default shown in prompt, got %q", out.String())
	}
}

func TestPrompterChoose_RepromptsOnBadInput(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("0\nabc\n2\n"), &out)

	idx, err := p.choose("Pick", []string{"Cash", "Card"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != 1 {
		t.Fatalf("expected index 1, got %d", idx)
	}
	if n := strings.Count(out.String(), "Please enter a number between 1 and 2"); n != 2 {
		t.Fatalf("expected 2 re-prompts, got %d", n)
	}
}

func TestPrompterConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
	}
	for _, tt := range tests {
		p := newPrompter(strings.NewReader(tt.input), io.Discard)
		got, err := p.confirm("Sure?")
		if err != nil {
			t.Fatalf("input %q: unexpected error %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("input %q: expected %v, got %v", tt.input, tt.want, got)
		}
	}
}
