// Package main provides the CLI entrypoint for kotoba.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kotobadev/kotoba/internal/config"
	"github.com/kotobadev/kotoba/internal/engine"
	"github.com/kotobadev/kotoba/internal/model"
	"github.com/kotobadev/kotoba/internal/progress"
	"github.com/kotobadev/kotoba/internal/statsui"
	"github.com/kotobadev/kotoba/internal/store"
	"github.com/kotobadev/kotoba/internal/tui"
	"github.com/kotobadev/kotoba/internal/vocab"
)

const (
	defaultMode      = model.ModeWeighted
	defaultDirection = model.DirectionJPEN
	defaultTheme     = "dark"
)

var (
	practiceVocab     string
	practiceMode      string
	practiceDirection string
	practiceTheme     string

	statsVocab string

	wordsVocab  string
	wordsTier   string
	wordsSearch string
	wordsSort   string

	importSheet string
	importOut   string

	resetVocab string
	resetYes   bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "kotoba",
		Short:         "TUI flashcard trainer for Japanese vocabulary",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceVocab, "vocab", "", "vocabulary CSV path")
	rootCmd.Flags().StringVar(&practiceMode, "mode", defaultMode, "card selection mode (uniform or weighted)")
	rootCmd.Flags().StringVar(&practiceDirection, "direction", defaultDirection, "card direction (jp-en or en-jp)")
	rootCmd.Flags().StringVar(&practiceTheme, "theme", defaultTheme, "color theme (dark or light)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newWordsCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newResetCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadPracticeConfig(cmd)
	if err != nil {
		return err
	}

	eng, st, err := setupEngine(cfg.VocabPath)
	if err != nil {
		return err
	}
	defer closeStore(st)

	program := tea.NewProgram(tui.NewModel(eng, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func loadPracticeConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "vocab", &practiceVocab, fileCfg.Practice.Vocab)
	applyStringConfig(cmd, "mode", &practiceMode, fileCfg.Practice.Mode)
	applyStringConfig(cmd, "direction", &practiceDirection, fileCfg.Practice.Direction)
	applyStringConfig(cmd, "theme", &practiceTheme, fileCfg.UI.Theme)

	cfg := model.Config{
		VocabPath: practiceVocab,
		Mode:      practiceMode,
		Direction: practiceDirection,
		Theme:     practiceTheme,
	}
	if cfg.VocabPath == "" {
		cfg.VocabPath = config.DefaultVocabPath()
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg model.Config) error {
	if cfg.Mode != model.ModeUniform && cfg.Mode != model.ModeWeighted {
		return fmt.Errorf("--mode must be %q or %q", model.ModeUniform, model.ModeWeighted)
	}
	if cfg.Direction != model.DirectionJPEN && cfg.Direction != model.DirectionENJP {
		return fmt.Errorf("--direction must be %q or %q", model.DirectionJPEN, model.DirectionENJP)
	}
	if cfg.Theme != "dark" && cfg.Theme != "light" {
		return fmt.Errorf("--theme must be \"dark\" or \"light\"")
	}
	return nil
}

// setupEngine loads the vocabulary, opens the store, and initializes the
// engine. A missing or empty vocabulary is fatal; the engine never serves
// from an implicit empty set.
func setupEngine(vocabPath string) (*engine.Engine, *store.Store, error) {
	items, err := vocab.LoadCSV(vocabPath)
	if err != nil {
		return nil, nil, vocabLoadError(vocabPath, err)
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	eng := engine.New(st)
	if err := eng.Initialize(context.Background(), items); err != nil {
		closeStore(st)
		return nil, nil, fmt.Errorf("failed to initialize engine: %w", err)
	}
	return eng, st, nil
}

func vocabLoadError(path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load vocabulary: %v", err),
		fmt.Sprintf("expected vocabulary CSV at: %s", path),
		"Import one: kotoba import <file.xlsx>",
		"Or point at an existing file: kotoba --vocab <path>",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Browse progress",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsVocab, "vocab", "", "vocabulary CSV path")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "vocab", &statsVocab, fileCfg.Practice.Vocab)
	if statsVocab == "" {
		statsVocab = config.DefaultVocabPath()
	}

	eng, st, err := setupEngine(statsVocab)
	if err != nil {
		return err
	}
	defer closeStore(st)

	program := tea.NewProgram(statsui.NewModel(eng), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newWordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "List words with performance data",
		Args:  cobra.NoArgs,
		RunE:  runWordsCmd,
	}
	cmd.Flags().StringVar(&wordsVocab, "vocab", "", "vocabulary CSV path")
	cmd.Flags().StringVar(&wordsTier, "tier", "", "filter by tier (unseen, struggling, learning, confident, mastered)")
	cmd.Flags().StringVar(&wordsSearch, "search", "", "substring match on word or translation")
	cmd.Flags().StringVar(&wordsSort, "sort", string(model.SortAccuracyAsc), "sort order (accuracy, accuracy-desc, attempts, attempts-asc, key)")
	return cmd
}

func runWordsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "vocab", &wordsVocab, fileCfg.Practice.Vocab)
	if wordsVocab == "" {
		wordsVocab = config.DefaultVocabPath()
	}

	eng, st, err := setupEngine(wordsVocab)
	if err != nil {
		return err
	}
	defer closeStore(st)

	query := model.WordQuery{
		Tier:   wordsTier,
		Search: wordsSearch,
		Sort:   model.WordSort(wordsSort),
	}
	rows, total, err := progress.QueryWords(eng.Vocab(), eng.LedgerSnapshot(), query)
	if err != nil {
		return err
	}
	return progress.RenderWords(cmd.OutOrStdout(), rows, total)
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Import vocabulary from an XLSX workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
	cmd.Flags().StringVar(&importSheet, "sheet", "", "sheet name (default: first sheet)")
	cmd.Flags().StringVar(&importOut, "out", "", "output CSV path (default: config vocabulary path)")
	return cmd
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	outPath := importOut
	if outPath == "" {
		fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if fileCfg.Practice.Vocab != nil && *fileCfg.Practice.Vocab != "" {
			outPath = *fileCfg.Practice.Vocab
		} else {
			outPath = config.DefaultVocabPath()
		}
	}

	importCfg := vocab.DefaultImportConfig(args[0])
	importCfg.SheetName = importSheet
	result, err := vocab.ImportXLSX(importCfg, outPath)
	if err != nil {
		return fmt.Errorf("failed to import vocabulary: %w", err)
	}
	for _, msg := range result.Errors {
		logErrln(msg)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d rows to %s\n",
		result.Imported, result.TotalProcessed, outPath); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget all recorded progress",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
	cmd.Flags().StringVar(&resetVocab, "vocab", "", "vocabulary CSV path")
	cmd.Flags().BoolVar(&resetYes, "yes", false, "skip the confirmation prompt")
	return cmd
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "vocab", &resetVocab, fileCfg.Practice.Vocab)
	if resetVocab == "" {
		resetVocab = config.DefaultVocabPath()
	}

	if !resetYes {
		if _, err := fmt.Fprint(cmd.OutOrStdout(), "This clears all answer history, sessions, and the streak. Continue? [y/N] "); err != nil {
			return fmt.Errorf("failed to write prompt: %w", err)
		}
		scanner := bufio.NewScanner(cmd.InOrStdin())
		if !scanner.Scan() {
			return fmt.Errorf("reset aborted")
		}
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if answer != "y" && answer != "yes" {
			return fmt.Errorf("reset aborted")
		}
	}

	eng, st, err := setupEngine(resetVocab)
	if err != nil {
		return err
	}
	defer closeStore(st)

	if err := eng.Reset(context.Background()); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), "All progress cleared."); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# kotoba configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# vocab = %q
# mode = %q         # Card selection: uniform or weighted
# direction = %q    # Front side: jp-en or en-jp

[ui]
# theme = %q        # dark or light
`,
		config.DefaultVocabPath(),
		defaultMode,
		defaultDirection,
		defaultTheme,
	)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		logErrf("failed to close db: %v\n", err)
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
