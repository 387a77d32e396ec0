// Package main provides the CLI entrypoint for keydrill.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/keydrill/internal/config"
	"github.com/verte-zerg/keydrill/internal/keymap"
	"github.com/verte-zerg/keydrill/internal/lesson"
	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/sampler"
	"github.com/verte-zerg/keydrill/internal/stats"
	"github.com/verte-zerg/keydrill/internal/store"
	"github.com/verte-zerg/keydrill/internal/tui"
	"github.com/verte-zerg/keydrill/internal/wordlist"
)

const (
	defaultSourceLayout = "qwerty"
	defaultTargetLayout = "dvorak"
	defaultWords        = 100
)

var (
	practiceSource   string
	practiceTarget   string
	practiceWords    int
	practiceWordList string
	practiceSeed     int64
	practiceSkip     bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "keydrill",
		Short:         "Keyboard layout trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceSource, "source-layout", defaultSourceLayout, "layout the keyboard is set to")
	rootCmd.Flags().StringVar(&practiceTarget, "target-layout", defaultTargetLayout, "layout to practice")
	rootCmd.Flags().IntVar(&practiceWords, "words", defaultWords, "words per lesson")
	rootCmd.Flags().StringVar(&practiceWordList, "wordlist", "", "word list file (default: built-in list)")
	rootCmd.Flags().Int64Var(&practiceSeed, "seed", 0, "sampling seed, 0 picks one from the clock")
	rootCmd.Flags().BoolVar(&practiceSkip, "skip-unsatisfiable", false, "skip lessons no word can be drawn for")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLessonsCmd())
	rootCmd.AddCommand(newLayoutsCmd())

	return rootCmd
}

func loadPracticeConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "source-layout", &practiceSource, fileCfg.Practice.SourceLayout)
	applyStringConfig(cmd, "target-layout", &practiceTarget, fileCfg.Practice.TargetLayout)
	applyIntConfig(cmd, "words", &practiceWords, fileCfg.Practice.Words)
	applyStringConfig(cmd, "wordlist", &practiceWordList, fileCfg.Practice.WordList)
	applyInt64Config(cmd, "seed", &practiceSeed, fileCfg.Practice.Seed)
	applyBoolConfig(cmd, "skip-unsatisfiable", &practiceSkip, fileCfg.Practice.SkipUnsatisfiable)

	return model.Config{
		SourceLayout:      practiceSource,
		TargetLayout:      practiceTarget,
		Words:             practiceWords,
		WordListPath:      practiceWordList,
		Seed:              practiceSeed,
		SkipUnsatisfiable: practiceSkip,
		Lessons:           fileCfg.LessonConfigs(),
	}, nil
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadPracticeConfig(cmd)
	if err != nil {
		return err
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	lessons := resolveLessons(cfg)
	if err := lesson.Validate(lessons); err != nil {
		return fmt.Errorf("invalid lesson table: %w", err)
	}
	remapper, err := keymap.NewRemapper(cfg.SourceLayout, cfg.TargetLayout)
	if err != nil {
		return err
	}
	corpus, err := wordlist.Load(cfg.WordListPath)
	if err != nil {
		return fmt.Errorf("failed to load word list: %w", err)
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("keydrill needs an interactive terminal")
	}

	st, err := store.Open()
	if err != nil {
		return fmt.Errorf("failed to open run log: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close run log: %v\n", cerr)
		}
	}()

	smp := sampler.New()
	if cfg.Seed != 0 {
		smp = sampler.NewSeeded(cfg.Seed)
	}

	runID := uuid.NewString()
	queue := tui.NewKeyQueue()
	ui := tui.NewModel(remapper.Target(), queue)
	program := tea.NewProgram(ui, tea.WithAltScreen())
	sink := tui.NewProgramSink(program)

	runner, err := lesson.NewRunner(lesson.Options{
		RunID:             runID,
		Lessons:           lessons,
		Corpus:            corpus,
		Words:             cfg.Words,
		SkipUnsatisfiable: cfg.SkipUnsatisfiable,
		Sampler:           smp,
		Remapper:          remapper,
		Input:             queue,
		Sink:              sink,
		Recorder:          st,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runDone := make(chan error, 1)
	go func() {
		err := runner.Run(ctx)
		runDone <- err
		program.Send(tui.DoneMsg{Err: err})
	}()

	_, progErr := program.Run()
	cancel()
	runErr := <-runDone

	for _, notice := range sink.Notices() {
		logErrln(notice)
	}
	if progErr != nil {
		return fmt.Errorf("failed to run TUI: %w", progErr)
	}
	if runErr != nil && !errors.Is(runErr, lesson.ErrAborted) && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return printRunReport(context.Background(), cmd.OutOrStdout(), st, runID, stats.TerminalWidth(os.Stdout))
}

func printRunReport(ctx context.Context, w io.Writer, st *store.Store, runID string, width int) error {
	lessons, err := st.ListLessons(ctx, runID)
	if err != nil {
		return fmt.Errorf("failed to load lessons: %w", err)
	}
	keys, err := st.ListKeyAggregates(ctx, runID)
	if err != nil {
		return fmt.Errorf("failed to load key stats: %w", err)
	}
	if err := stats.RenderRun(w, lessons, keys); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := stats.RenderTrend(w, lessons, width); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
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
		if err := os.WriteFile(path, []byte(config.Template), 0o644); err != nil {
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

func newLessonsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lessons",
		Short: "List the lesson table",
		Args:  cobra.NoArgs,
		RunE:  runLessonsCmd,
	}
}

func runLessonsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	lessons := resolveLessons(model.Config{Lessons: fileCfg.LessonConfigs()})
	if err := lesson.Validate(lessons); err != nil {
		return fmt.Errorf("invalid lesson table: %w", err)
	}
	return writeLessons(cmd.OutOrStdout(), lessons)
}

func writeLessons(w io.Writer, lessons []lesson.Lesson) error {
	nameWidth := 0
	for _, l := range lessons {
		if len(l.Name) > nameWidth {
			nameWidth = len(l.Name)
		}
	}
	for i, l := range lessons {
		if _, err := fmt.Fprintf(w, "%d  %-*s  %s\n", i+1, nameWidth, l.Name, l.Allowed().String()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newLayoutsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layouts [name]",
		Short: "List layouts or print one",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLayoutsCmd,
	}
}

func runLayoutsCmd(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		for _, name := range keymap.Names() {
			if _, err := fmt.Fprintln(out, name); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		return nil
	}
	layout, err := keymap.Lookup(args[0])
	if err != nil {
		return err
	}
	return writeLayout(out, layout)
}

var layoutIndent = [...]int{0, 2, 3, 4}

func writeLayout(w io.Writer, layout *keymap.Layout) error {
	for i, row := range keymap.Rows() {
		glyphs := make([]string, 0, len(row))
		for _, k := range row {
			glyphs = append(glyphs, fmt.Sprintf("%-2s", layout.Glyph(k)))
		}
		line := strings.Repeat(" ", layoutIndent[i]) + strings.TrimRight(strings.Join(glyphs, " "), " ")
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func resolveLessons(cfg model.Config) []lesson.Lesson {
	return lesson.FromConfig(cfg.Lessons)
}

func validateConfig(cfg model.Config) error {
	if cfg.Words <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if _, err := keymap.Lookup(cfg.SourceLayout); err != nil {
		return fmt.Errorf("--source-layout: %w", err)
	}
	if _, err := keymap.Lookup(cfg.TargetLayout); err != nil {
		return fmt.Errorf("--target-layout: %w", err)
	}
	return nil
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

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
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
