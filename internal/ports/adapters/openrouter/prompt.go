package openrouter

import (
	"fmt"

	"github.com/forPelevin/hlselect/internal/domain/highlights"
)

var systemPrompt = fmt.Sprintf(
	"The user message is a video transcription where every line is "+
		"\"<start seconds> - <end seconds>: <text>\". "+
		"Pick the single most interesting part that can be cut into a short vertical video. "+
		"Choose exactly one contiguous highlight: one start, one end and the spoken content between them. "+
		"The highlight must not be longer than %d seconds and start must be before end. "+
		"Reply with valid JSON only, an object with exactly three fields: "+
		"\"start\" (number, seconds), \"content\" (string, highlight text), \"end\" (number, seconds). "+
		"No prose, no explanation, no markdown.",
	highlights.MaxAutomatedSeconds,
)
