package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"gptcommit/internal/llm"
)

type stubGenerator struct {
	diff, delimiter string
	message         string
	err             error
}

func (s *stubGenerator) Generate(_ context.Context, diff, delimiter string) (string, error) {
	s.diff, s.delimiter = diff, delimiter
	return s.message, s.err
}

func TestGenerateMessage(t *testing.T) {
	t.Parallel()
	gen := &stubGenerator{message: "feat: x"}
	got, err := generateMessage(context.Background(), gen, "+x", " | ")
	if err != nil {
		t.Fatalf("generateMessage: %v", err)
	}
	if got != "feat: x" || gen.diff != "+x" || gen.delimiter != " | " {
		t.Errorf("got %q, stub saw %+v", got, gen)
	}
}

func TestGenerateMessage_failure(t *testing.T) {
	t.Parallel()
	gen := &stubGenerator{err: llm.ErrNoCommitMessage}
	_, err := generateMessage(context.Background(), gen, "+x", "")
	if !errors.Is(err, llm.ErrNoCommitMessage) {
		t.Fatalf("err = %v, want ErrNoCommitMessage", err)
	}
	if !strings.Contains(err.Error(), "No commit message were generated. Try again.") {
		t.Errorf("err = %q", err.Error())
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)

	if err := Execute("1.2.3", "abc123", "today"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := out.String(); !strings.Contains(got, "1.2.3") || !strings.Contains(got, "abc123") {
		t.Errorf("output = %q", got)
	}
}
