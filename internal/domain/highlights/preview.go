package highlights

const (
	PreviewChars  = 500
	previewMarker = "..."
)

// Preview returns the first n runes of the transcript, followed by "..." only
// when something was cut off. n <= 0 uses PreviewChars.
func Preview(transcript string, n int) string {
	if n <= 0 {
		n = PreviewChars
	}
	r := []rune(transcript)
	if len(r) <= n {
		return transcript
	}
	return string(r[:n]) + previewMarker
}
