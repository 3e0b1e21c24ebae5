package repl

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/peterh/liner"
)

// scripted replays fixed lines and records the prompts it was shown.
type scripted struct {
	lines   []string
	prompts []string
}

func (s *scripted) Prompt(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func newTestSession(lines ...string) (*Session, *scripted, *bytes.Buffer, *bytes.Buffer) {
	p := &scripted{lines: lines}
	var out, errs bytes.Buffer
	s := NewSession(p, Options{
		Prompt:             "> ",
		ContinuationPrompt: ". ",
		ScanPrompt:         "? ",
		ReportStatus:       true,
		Output:             &out,
		Errors:             &errs,
	})
	return s, p, &out, &errs
}

func TestLoop(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		wantOut  string
		wantErrs string
	}{
		{
			name:    "multi-line program",
			lines:   []string{"BEGIN CODE", "INT x = 4", "DISPLAY: x * x & $", "END CODE"},
			wantOut: "16\n",
		},
		{
			name:    "blank lines before program",
			lines:   []string{"", "  ", "BEGIN CODE", "DISPLAY: \"a\" & $", "END CODE"},
			wantOut: "a\n",
		},
		{
			name:    "partial line gets a newline",
			lines:   []string{"BEGIN CODE", "DISPLAY: 1", "END CODE"},
			wantOut: "1\n",
		},
		{
			name:    "status for silent program",
			lines:   []string{"BEGIN CODE", "INT x = 1", "END CODE"},
			wantOut: "No Error\n",
		},
		{
			name:    "scan reads the next line",
			lines:   []string{"BEGIN CODE", "INT a, b", "SCAN: a, b", "DISPLAY: a + b", "END CODE", "2, 3"},
			wantOut: "5\n",
		},
		{
			name:     "error then next program",
			lines:    []string{"BEGIN CODE", "DISPLAY 1", "BEGIN CODE", "DISPLAY: 2 & $", "END CODE"},
			wantOut:  "2\n",
			wantErrs: "syntax error",
		},
		{
			name:     "runtime error",
			lines:    []string{"BEGIN CODE", "INT z = 0", "DISPLAY: 1 / z", "END CODE"},
			wantErrs: "runtime error: Division by zero.",
		},
		{
			name:    "quit",
			lines:   []string{":quit", "BEGIN CODE", "DISPLAY: 1", "END CODE"},
			wantOut: "",
		},
		{
			name:    "unfinished program at end of input",
			lines:   []string{"BEGIN CODE", "DISPLAY: 1"},
			wantOut: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, out, errs := newTestSession(tt.lines...)
			if err := s.Loop(context.Background()); err != nil {
				t.Fatalf("Loop() error = %v", err)
			}
			if out.String() != tt.wantOut {
				t.Errorf("output = %q, want %q", out.String(), tt.wantOut)
			}
			if tt.wantErrs == "" && errs.Len() > 0 {
				t.Errorf("unexpected errors: %s", errs.String())
			}
			if !strings.Contains(errs.String(), tt.wantErrs) {
				t.Errorf("errors = %q, want %q", errs.String(), tt.wantErrs)
			}
		})
	}
}

func TestReadProgram_Prompts(t *testing.T) {
	s, p, _, _ := newTestSession("BEGIN CODE", "END CODE")

	src, err := s.ReadProgram()
	if err != nil {
		t.Fatalf("ReadProgram() error = %v", err)
	}
	if src != "BEGIN CODE\nEND CODE" {
		t.Errorf("ReadProgram() = %q", src)
	}
	if got := strings.Join(p.prompts, "|"); got != "> |. " {
		t.Errorf("prompts = %q, want %q", got, "> |. ")
	}
}

func TestExecute_ScanPrompt(t *testing.T) {
	s, p, out, _ := newTestSession("7")

	s.Execute(context.Background(), "BEGIN CODE\nINT n\nSCAN: n\nDISPLAY: n\nEND CODE")

	if out.String() != "7\n" {
		t.Errorf("output = %q, want %q", out.String(), "7\n")
	}
	if len(p.prompts) != 1 || p.prompts[0] != "? " {
		t.Errorf("prompts = %q, want one scan prompt", p.prompts)
	}
}

type aborting struct{}

func (aborting) Prompt(string) (string, error) { return "", liner.ErrPromptAborted }

func TestPromptReader_AbortCancels(t *testing.T) {
	r := promptReader{p: aborting{}, prompt: "? "}
	if _, err := r.ReadLine(context.Background()); !errors.Is(err, context.Canceled) {
		t.Errorf("ReadLine() error = %v, want context.Canceled", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r = promptReader{p: &scripted{lines: []string{"1"}}, prompt: "? "}
	if _, err := r.ReadLine(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("ReadLine() on a cancelled context error = %v, want context.Canceled", err)
	}
}

func TestExecute_AbortAtScan(t *testing.T) {
	var out, errs bytes.Buffer
	s := NewSession(aborting{}, Options{ScanPrompt: "? ", ReportStatus: true, Output: &out, Errors: &errs})

	s.Execute(context.Background(), "BEGIN CODE\nINT n\nSCAN: n\nDISPLAY: n\nEND CODE")

	if out.Len() != 0 {
		t.Errorf("output = %q, want none", out.String())
	}
	if !strings.Contains(errs.String(), context.Canceled.Error()) {
		t.Errorf("errors = %q, want cancellation", errs.String())
	}
}
