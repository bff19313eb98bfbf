package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gptcommit/internal/config"
	"gptcommit/internal/git"
	"gptcommit/internal/logging"
	"gptcommit/internal/tui"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	generateFlag bool
	debugFlag    bool
	buildInfo    = struct{ version, commit, buildTime string }{"dev", "unknown", "unknown"}
	rootCmd      = &cobra.Command{
		Use:   "gptcommit",
		Short: "Generate git commit messages from staged changes with an LLM",
		Long: `gptcommit sends your staged diff to a chat-completion model and turns the reply
into a conventional commit message. Works with OpenAI, Groq, z.ai and local Ollama models.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if generateFlag {
				return runGenerate(cmd, args)
			}
			return tui.Run(cfgFile)
		},
	}
)

func Execute(version, commit, buildTime string) error {
	buildInfo.version, buildInfo.commit, buildInfo.buildTime = version, commit, buildTime
	rootCmd.Version = version
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/gptcommit/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&generateFlag, "generate", "g", false, "Run generate directly (bypass TUI)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "Enable debug logging")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logging.Init(debugFlag)
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log := logging.For("cmd")
			log.Warn().Err(err).Msg("failed to load .env")
		}
	}

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gptcommit version %s (commit %s, built %s)\n",
			buildInfo.version, buildInfo.commit, buildInfo.buildTime)
	},
}
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage gptcommit configuration",
}
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create initial configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Init(cfgFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created at: %s\n", path)
		fmt.Fprintln(cmd.OutOrStdout(), "Run 'gptcommit' to pick a provider or set OPENAI_API_KEY.")
		return nil
	},
}
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, content, err := config.Show(cfgFile)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	},
}
var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Update a configuration value",
	Example: `  gptcommit config set general.language french
  gptcommit config set general.emoji true
  gptcommit config set providers.openai.temperature 0.4`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return config.Set(cfgFile, args[0], args[1])
	},
}

var (
	learnCount   int
	learnMaxDiff int
	learnClear   bool
)

var configLearnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Store recent commits as examples sent before each diff",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		if learnClear {
			cfg.Examples = nil
		} else {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			repo, err := git.Open(wd)
			if err != nil {
				return err
			}
			examples, err := repo.RecentExchanges(learnCount, learnMaxDiff)
			if err != nil {
				return err
			}
			cfg.Examples = examples
		}

		if err := config.Save(cfgFile, cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored %d example(s).\n", len(cfg.Examples))
		return nil
	},
}

func init() {
	configLearnCmd.Flags().IntVarP(&learnCount, "count", "n", 3, "number of commits to learn from")
	configLearnCmd.Flags().IntVar(&learnMaxDiff, "max-diff", 4000, "skip commits whose diff is larger than this many bytes")
	configLearnCmd.Flags().BoolVar(&learnClear, "clear", false, "remove stored examples")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configLearnCmd)
}
