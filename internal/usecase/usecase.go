package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/forPelevin/hlselect/internal/domain/highlights"
	"github.com/forPelevin/hlselect/internal/ports"
	"github.com/forPelevin/hlselect/internal/types"
)

const DefaultMaxAttempts = 5

type Deps struct {
	LLM      ports.Highlighter
	Operator ports.Operator
	Log      *zap.Logger
}

type Options struct {
	Mode highlights.Mode
	// MaxAttempts caps automated requests per selection while replies are
	// degenerate. 0 means no cap.
	MaxAttempts  int
	PreviewChars int
}

type Usecase struct {
	d   Deps
	opt Options
}

func New(d Deps, opt Options) Usecase {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if opt.MaxAttempts < 0 {
		opt.MaxAttempts = DefaultMaxAttempts
	}
	return Usecase{d: d, opt: opt}
}

func (u Usecase) Mode() highlights.Mode { return u.opt.Mode }

// Select picks one highlight from the transcript using the configured mode.
func (u Usecase) Select(ctx context.Context, transcript string) (types.Result, error) {
	if u.opt.Mode == highlights.ModeAutomated {
		return u.selectAutomated(ctx, transcript)
	}
	return u.selectManual(ctx, transcript)
}

func (u Usecase) selectAutomated(ctx context.Context, transcript string) (types.Result, error) {
	if u.d.LLM == nil {
		return types.Result{}, errors.New("automated selection: no highlight service configured")
	}

	var res types.Result
	for attempt := 1; ; attempt++ {
		c, err := u.d.LLM.Highlight(ctx, transcript)
		if err != nil {
			return types.Result{}, err
		}
		start, okS := highlights.Truncate(c.Start)
		end, okE := highlights.Truncate(c.End)
		if !okS || !okE {
			return types.Result{}, highlights.SchemaError("timestamps out of range start=%v end=%v", c.Start, c.End)
		}
		res = types.Result{Start: start, End: end, Content: c.Content}
		u.d.Log.Info("highlight proposed",
			zap.Int("attempt", attempt),
			zap.Int("start", start),
			zap.Int("end", end),
		)
		if !highlights.Degenerate(start, end) {
			return res, nil
		}

		u.d.Log.Warn("degenerate highlight", zap.Int("attempt", attempt), zap.Int("at", start))
		if u.opt.MaxAttempts > 0 && attempt >= u.opt.MaxAttempts {
			u.d.Log.Warn("giving up on degenerate highlights", zap.Int("attempts", attempt))
			return res, nil
		}
		if !u.confirm(ctx, "Error - Get Highlights again (y/n) -> ") {
			return res, nil
		}
	}
}

func (u Usecase) selectManual(ctx context.Context, transcript string) (types.Result, error) {
	op := u.d.Operator
	if op == nil {
		return types.Result{}, errors.New("manual selection: no operator console")
	}

	rule := strings.Repeat("=", 60)
	op.Say("\n%s", rule)
	op.Say("MANUAL HIGHLIGHT SELECTION MODE")
	op.Say("%s", rule)
	op.Say("\nTranscription preview (first %d chars):", previewChars(u.opt.PreviewChars))
	op.Say("%s", highlights.Preview(transcript, u.opt.PreviewChars))
	op.Say("\n%s", strings.Repeat("-", 60))

	for {
		start, end, err := u.askSpan(ctx)
		if errors.Is(err, highlights.ErrCancelled) {
			return u.cancelled(), nil
		}
		var inputErr *inputError
		if errors.As(err, &inputErr) {
			op.Warn("Invalid input. Please enter numeric values.")
			continue
		}
		if err != nil {
			return types.Result{}, err
		}

		if v := highlights.CheckManual(start, end); len(v) > 0 {
			op.Warn("Invalid timestamps. Please ensure:")
			for _, r := range v {
				op.Warn("   - %s", r)
			}
			continue
		}

		op.Say("\nSelected highlight: %s", highlights.FormatSpan(start, end))
		ans, err := op.Ask(ctx, "Confirm this selection? (y/n): ")
		if errors.Is(err, highlights.ErrCancelled) {
			return u.cancelled(), nil
		}
		if err != nil {
			return types.Result{}, err
		}
		if isYes(ans) {
			u.d.Log.Info("manual highlight accepted", zap.Int("start", start), zap.Int("end", end))
			return types.Result{Start: start, End: end}, nil
		}
		op.Say("Let's try again...")
	}
}

type inputError struct{ value string }

func (e *inputError) Error() string { return fmt.Sprintf("not a number: %q", e.value) }

func (u Usecase) askSpan(ctx context.Context) (int, int, error) {
	op := u.d.Operator
	op.Say("\nEnter the highlight timestamps for your short:")
	rawStart, err := op.Ask(ctx, "Start time (in seconds): ")
	if err != nil {
		return 0, 0, err
	}
	rawEnd, err := op.Ask(ctx, "End time (in seconds): ")
	if err != nil {
		return 0, 0, err
	}
	start, err := parseSeconds(rawStart)
	if err != nil {
		return 0, 0, err
	}
	end, err := parseSeconds(rawEnd)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func parseSeconds(s string) (int, error) {
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &inputError{value: s}
	}
	v, ok := highlights.Truncate(f)
	if !ok {
		return 0, &inputError{value: s}
	}
	return v, nil
}

func (u Usecase) confirm(ctx context.Context, prompt string) bool {
	if u.d.Operator == nil {
		return false
	}
	ans, err := u.d.Operator.Ask(ctx, prompt)
	if err != nil {
		return false
	}
	return isYes(ans)
}

func (u Usecase) cancelled() types.Result {
	u.d.Operator.Warn("\nOperation cancelled by user.")
	u.d.Log.Info("manual highlight selection cancelled")
	return types.Result{}
}

func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func previewChars(n int) int {
	if n <= 0 {
		return highlights.PreviewChars
	}
	return n
}
