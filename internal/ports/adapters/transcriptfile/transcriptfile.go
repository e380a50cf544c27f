package transcriptfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/forPelevin/hlselect/internal/types"
)

// Source reads transcripts produced by whisper-style tools. JSON files with
// timed segments are flattened into one line per segment; anything else is
// taken as already formatted text.
type Source struct{}

func New() *Source { return &Source{} }

func (s *Source) Load(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}

	var text string
	if strings.EqualFold(filepath.Ext(path), ".json") {
		var tr types.Transcript
		if err := json.Unmarshal(b, &tr); err != nil {
			return "", fmt.Errorf("parse transcript %s: %w", filepath.Base(path), err)
		}
		text = Format(tr)
	} else {
		text = strings.TrimSpace(string(b))
	}
	if text == "" {
		return "", errors.New("transcript is empty")
	}
	return text, nil
}

// Format renders segments as "<start> - <end>: <text>" lines.
func Format(tr types.Transcript) string {
	var b strings.Builder
	for _, seg := range tr.Segments {
		txt := strings.TrimSpace(seg.Text)
		if txt == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(sec(seg.Start))
		b.WriteString(" - ")
		b.WriteString(sec(seg.End))
		b.WriteString(": ")
		b.WriteString(txt)
	}
	return b.String()
}

func sec(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
