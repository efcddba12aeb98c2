package services

import (
	"fmt"
	"strings"

	"studymate/models"
)

// Grounding-context rendering. The model must never receive an empty context
// section, so empty collections render as fixed placeholder strings.

const (
	noNotesPlaceholder   = "No notes available yet."
	noHistoryPlaceholder = "No previous conversation."

	// chatNoteSeparator joins note blocks inside a chat prompt;
	// quizNoteSeparator visually delimits whole documents for quiz generation.
	chatNoteSeparator = "\n\n"
	quizNoteSeparator = "\n\n---\n\n"
)

// RenderNotes concatenates notes as "Title: ...\nContent: ..." blocks in the
// order given (callers pass newest first).
func RenderNotes(notes []models.Note, separator string) string {
	if len(notes) == 0 {
		return noNotesPlaceholder
	}
	blocks := make([]string, 0, len(notes))
	for _, note := range notes {
		blocks = append(blocks, fmt.Sprintf("Title: %s\nContent: %s", note.Title, note.Content))
	}
	return strings.Join(blocks, separator)
}

// RenderHistory renders chat messages as "role: content" lines. Messages are
// expected in chronological order.
func RenderHistory(msgs []models.ChatMessage) string {
	if len(msgs) == 0 {
		return noHistoryPlaceholder
	}
	lines := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		lines = append(lines, fmt.Sprintf("%s: %s", msg.Role, msg.Content))
	}
	return strings.Join(lines, "\n")
}
