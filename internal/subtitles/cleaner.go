package subtitles

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	dialogueDash   = regexp.MustCompile(`^(?:\s*- )+`)
	markupTag      = regexp.MustCompile(`<[^>]*>`)
	episodePattern = regexp.MustCompile(`(\d{1,2})x(\d{2}(?:-\d{2})?)`)
)

var creditPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)opensubtitles`),
	regexp.MustCompile(`(?i)subtitles? by`),
	regexp.MustCompile(`(?i)synced? and corrected`),
	regexp.MustCompile(`(?i)advertise (your|yours?) product`),
	regexp.MustCompile(`(?i)http(s)?://`),
	regexp.MustCompile(`(?i)\bwww\.`),
	regexp.MustCompile(`(?i)\bsubscene\b`),
	regexp.MustCompile(`(?i)\byts\b`),
	regexp.MustCompile(`(?i)\byify\b`),
}

// NoEpisode labels files whose name carries no season/episode marker.
const NoEpisode = "n/a"

// Clean joins the physical lines of one entry into a single line of text.
// Markup tags are removed and leading "- " dialogue dashes are dropped from
// every line. Cleaning already clean text returns it unchanged.
func Clean(lines []string) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		line = markupTag.ReplaceAllString(line, "")
		line = dialogueDash.ReplaceAllString(line, "")
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	joined := markupTag.ReplaceAllString(strings.Join(parts, " "), "")
	return strings.TrimSpace(dialogueDash.ReplaceAllString(joined, ""))
}

// CleanText applies Clean to newline separated text.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return Clean(strings.Split(text, "\n"))
}

// IsCredit reports whether text looks like a release-group or advertisement cue.
func IsCredit(text string) bool {
	payload := strings.TrimSpace(strings.ToLower(text))
	if payload == "" {
		return false
	}
	for _, pattern := range creditPatterns {
		if pattern.MatchString(payload) {
			return true
		}
	}
	return false
}

// EpisodeLabel derives an S<season>E<episode> label from filename, e.g.
// "show 1x02.srt" -> "S1E02". A non-empty series prefixes matched labels.
// Names without a marker yield NoEpisode.
func EpisodeLabel(filename, series string) string {
	match := episodePattern.FindStringSubmatch(filepath.Base(filename))
	if match == nil {
		return NoEpisode
	}
	label := fmt.Sprintf("S%sE%s", match[1], match[2])
	if series = strings.TrimSpace(series); series != "" {
		return series + "-" + label
	}
	return label
}
