package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"go.uber.org/zap"

	"github.com/forPelevin/hlselect/internal/domain/highlights"
	"github.com/forPelevin/hlselect/internal/ports"
	"github.com/forPelevin/hlselect/internal/ports/adapters/console"
	"github.com/forPelevin/hlselect/internal/ports/adapters/openrouter"
	"github.com/forPelevin/hlselect/internal/ports/adapters/transcriptfile"
	"github.com/forPelevin/hlselect/internal/types"
	"github.com/forPelevin/hlselect/internal/usecase"
)

type Config struct {
	Input  string
	OutDir string
	Mode   highlights.Mode

	MaxAttempts  int
	PreviewChars int

	OpenRouterAPIKey       string
	OpenRouterModel        string
	OpenRouterBaseURL      string
	OpenRouterAllowedHosts []string
	OpenRouterReferer      string
	OpenRouterTitle        string
	OpenRouterTimeout      time.Duration

	Logger *zap.Logger

	// Stdin/Stdout default to the process streams.
	Stdin  io.Reader
	Stdout io.Writer
}

func (c Config) Validate() error {
	if c.Input == "" {
		return errors.New("input is empty")
	}
	if _, err := os.Stat(c.Input); err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	if c.MaxAttempts < 0 {
		return fmt.Errorf("max attempts must be >= 0")
	}
	if c.Mode == highlights.ModeAutomated {
		return openrouter.ValidateBaseURL(c.OpenRouterBaseURL, c.OpenRouterAllowedHosts)
	}
	return nil
}

type Output struct {
	Result       types.Result
	ManifestPath string
	Manifest     types.Manifest
}

func Run(ctx context.Context, cfg Config) (Output, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	stdin, stdout := cfg.Stdin, cfg.Stdout
	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}

	// adapters
	var src ports.TranscriptSource = transcriptfile.New()
	op := console.New(stdin, stdout)
	deps := usecase.Deps{Operator: op, Log: log}
	if cfg.Mode == highlights.ModeAutomated {
		deps.LLM = openrouter.New(
			cfg.OpenRouterAPIKey,
			cfg.OpenRouterModel,
			cfg.OpenRouterBaseURL,
			openrouter.WithTimeout(cfg.OpenRouterTimeout),
			openrouter.WithAppInfo(cfg.OpenRouterReferer, cfg.OpenRouterTitle),
		)
	}

	uc := usecase.New(deps, usecase.Options{
		Mode:         cfg.Mode,
		MaxAttempts:  cfg.MaxAttempts,
		PreviewChars: cfg.PreviewChars,
	})
	AnnounceMode(log, op, uc.Mode())

	transcript, err := src.Load(ctx, cfg.Input)
	if err != nil {
		return Output{}, err
	}
	log.Debug("transcript loaded", zap.String("input", cfg.Input), zap.Int("chars", len([]rune(transcript))))

	res, err := uc.Select(ctx, transcript)
	if err != nil {
		return Output{}, fmt.Errorf("select highlight: %w", err)
	}

	now := time.Now().UTC()
	m := buildManifest(cfg.Input, cfg.Mode, res, now)
	log = log.With(zap.String("selection_id", m.ID))

	outDir := cfg.OutDir
	if outDir == "" {
		outDir = "out"
	}
	runOutDir := buildRunOutDir(outDir, cfg.Input, now)
	if err := os.MkdirAll(runOutDir, 0o755); err != nil {
		return Output{}, err
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return Output{}, fmt.Errorf("marshal manifest: %w", err)
	}
	manifestPath := filepath.Join(runOutDir, "selection.json")
	if err := os.WriteFile(manifestPath, b, 0o644); err != nil {
		return Output{}, err
	}

	switch {
	case m.Cancelled:
		log.Warn("no highlight selected", zap.String("manifest", manifestPath))
	case m.Degenerate:
		log.Warn("highlight has zero duration", zap.Int("at", res.Start), zap.String("manifest", manifestPath))
	default:
		log.Info("selection written", zap.String("manifest", manifestPath))
	}
	fmt.Fprintln(stdout, RenderSummary(m))

	return Output{Result: res, ManifestPath: manifestPath, Manifest: m}, nil
}

// ManualModeNotice is shown on the console whenever manual entry is used,
// whatever the log level.
const ManualModeNotice = "Automated highlight selection unavailable (API key missing or DISABLED); manual entry will be used."

// AnnounceMode tells the operator up front that prompts are coming.
func AnnounceMode(log *zap.Logger, op ports.Operator, mode highlights.Mode) {
	log.Info("highlight selection mode", zap.Stringer("mode", mode))
	if mode == highlights.ModeManual {
		op.Warn("%s", ManualModeNotice)
	}
}

func buildManifest(input string, mode highlights.Mode, res types.Result, now time.Time) types.Manifest {
	m := types.Manifest{
		ID:        uuid.NewString(),
		Input:     input,
		Mode:      mode.String(),
		CreatedAt: now.Format(time.RFC3339),
	}
	if mode == highlights.ModeManual && res.Cancelled() {
		m.Cancelled = true
		return m
	}
	m.Degenerate = highlights.Degenerate(res.Start, res.End)
	m.Selection = &types.Clip{
		StartSec: res.Start,
		EndSec:   res.End,
		Duration: res.Duration(),
		Content:  res.Content,
	}
	return m
}

// RenderSummary formats the manifest as a table for the terminal.
func RenderSummary(m types.Manifest) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Mode", "Start", "End", "Duration", "Content"})
	if m.Selection == nil {
		tw.AppendRow(table.Row{m.Mode, "-", "-", "-", "cancelled"})
	} else {
		s := m.Selection
		tw.AppendRow(table.Row{
			m.Mode,
			strconv.Itoa(s.StartSec) + "s",
			strconv.Itoa(s.EndSec) + "s",
			strconv.Itoa(s.Duration) + "s",
			s.Content,
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, WidthMax: 60},
	})
	return tw.Render()
}

func buildRunOutDir(outRoot, input string, now time.Time) string {
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	name = normalizePathSegment(name)
	if name == "" {
		name = "input"
	}
	ts := now.UTC().Format("20060102-150405Z")
	runSeed := fmt.Sprintf("%s|%d", input, now.UTC().UnixNano())
	suffix := hash(runSeed)[:6]
	return filepath.Join(outRoot, fmt.Sprintf("%s-%s-%s", name, ts, suffix))
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}

// ensure adapters implement ports
var _ ports.Highlighter = (*openrouter.Adapter)(nil)
var _ ports.Operator = (*console.Operator)(nil)
var _ ports.TranscriptSource = (*transcriptfile.Source)(nil)
