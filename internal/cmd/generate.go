package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gptcommit/internal/config"
	"gptcommit/internal/git"
	"gptcommit/internal/llm"
	"gptcommit/internal/logging"
	"gptcommit/internal/tui"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const maxRegenerations = 10

var (
	providerFlag  string
	delimiterFlag string
	copyFlag      bool
	printFlag     bool
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Short:   "Generate a commit message for staged changes",
	Aliases: []string{"g", "gen"},
	RunE:    runGenerate,
}

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Generate message and commit changes",
	RunE:  runCommit,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, generateCmd, commitCmd} {
		c.Flags().StringVarP(&providerFlag, "provider", "p", "", "provider to use (default from config)")
		c.Flags().StringVar(&delimiterFlag, "delimiter", "", "string used to join message lines (default newline)")
	}
	generateCmd.Flags().BoolVarP(&copyFlag, "copy", "c", false, "copy the message to the clipboard")
	generateCmd.Flags().BoolVar(&printFlag, "print", false, "print the message and exit")
}

// session holds what one generate/commit invocation needs.
type session struct {
	cfg       *config.Config
	repo      *git.Repo
	gen       llm.Generator
	delimiter string
	spinner   bool
}

func newSession(cfgFile, providerName, delimiter string) (*session, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	repo, err := git.Open(wd)
	if err != nil {
		return nil, err
	}

	if providerName == "" {
		providerName = cfg.DefaultProvider
	}
	opts, err := cfg.GeneratorOptions(providerName)
	if err != nil {
		return nil, err
	}
	gen, err := llm.CreateGenerator(providerName, cfg.APIKey(providerName), opts)
	if err != nil {
		return nil, err
	}

	if delimiter == "" {
		delimiter = cfg.Delimiter
	}
	return &session{
		cfg:       cfg,
		repo:      repo,
		gen:       gen,
		delimiter: delimiter,
		spinner:   isatty.IsTerminal(os.Stderr.Fd()),
	}, nil
}

// stagedDiff stages everything first when auto_add is on.
func (s *session) stagedDiff(ctx context.Context, out io.Writer) (string, error) {
	if s.cfg.AutoAdd {
		fmt.Fprintln(out, "Auto-adding all changes...")
		if err := s.repo.AddAll(ctx); err != nil {
			return "", fmt.Errorf("failed to auto-add changes: %w", err)
		}
	}

	diff, err := s.repo.StagedDiff(ctx)
	if errors.Is(err, git.ErrNothingStaged) {
		return "", fmt.Errorf("%w. Run 'git add' first or enable auto_add in config", err)
	}
	return diff, err
}

func (s *session) generate(ctx context.Context, diff string) (string, error) {
	if !s.spinner {
		return generateMessage(ctx, s.gen, diff, s.delimiter)
	}
	return tui.RunSpinner(ctx, os.Stderr, "Generating commit message...", func(ctx context.Context) (string, error) {
		return generateMessage(ctx, s.gen, diff, s.delimiter)
	})
}

func generateMessage(ctx context.Context, gen llm.Generator, diff, delimiter string) (string, error) {
	log := logging.For("cmd")
	log.Debug().Int("diff_bytes", len(diff)).Msg("generating commit message")

	message, err := gen.Generate(ctx, diff, delimiter)
	if err != nil {
		return "", fmt.Errorf("failed to generate message: %w", err)
	}
	return message, nil
}

func (s *session) commit(ctx context.Context, out io.Writer, message string) error {
	if err := s.repo.Commit(ctx, message); err != nil {
		return err
	}
	fmt.Fprintln(out, "Changes committed successfully!")

	if s.cfg.AutoPush {
		fmt.Fprintln(out, "Auto-pushing to remote...")
		if err := s.repo.Push(ctx); err != nil {
			return fmt.Errorf("commit succeeded but push failed: %w", err)
		}
		fmt.Fprintln(out, "Changes pushed successfully!")
	}
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	s, err := newSession(cfgFile, providerFlag, delimiterFlag)
	if err != nil {
		return err
	}
	diff, err := s.stagedDiff(ctx, out)
	if err != nil {
		return err
	}

	in := bufio.NewReader(cmd.InOrStdin())
	for attempt := 0; attempt < maxRegenerations; attempt++ {
		message, err := s.generate(ctx, diff)
		if err != nil {
			return err
		}

		if printFlag {
			fmt.Fprintln(out, message)
			return copyIfRequested(out, message)
		}

		fmt.Fprintf(out, "\nSuggested commit message:\n%s\n\n", message)
		if err := copyIfRequested(out, message); err != nil {
			return err
		}

		act, err := promptUserAction(in, out, s.cfg.AutoPush)
		if err != nil {
			return err
		}
		switch act {
		case actionCommit:
			return s.commit(ctx, out, message)
		case actionRegenerate:
			fmt.Fprintln(out, "Regenerating...")
			continue
		case actionEdit:
			edited, err := editMessage(in, out, message)
			if err != nil {
				return err
			}
			return s.commit(ctx, out, edited)
		case actionCopy:
			if err := clipboard.WriteAll(message); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
			fmt.Fprintln(out, "Copied to clipboard.")
			return nil
		case actionCancel:
			fmt.Fprintln(out, "Cancelled")
			return nil
		}
	}
	return fmt.Errorf("maximum regeneration attempts (%d) reached", maxRegenerations)
}

func copyIfRequested(out io.Writer, message string) error {
	if !copyFlag {
		return nil
	}
	if err := clipboard.WriteAll(message); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	fmt.Fprintln(out, "Copied to clipboard.")
	return nil
}

func runCommit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	s, err := newSession(cfgFile, providerFlag, delimiterFlag)
	if err != nil {
		return err
	}
	diff, err := s.stagedDiff(ctx, out)
	if err != nil {
		return err
	}
	message, err := s.generate(ctx, diff)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Committing with message:\n%s\n", message)
	return s.commit(ctx, out, message)
}
