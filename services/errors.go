package services

import "errors"

var (
	// ErrNoNotes indicates quiz generation was requested for a subject with
	// no notes to ground it.
	ErrNoNotes = errors.New("no notes found")
	// ErrInvalidQuiz indicates the model's output could not be parsed and
	// validated into exactly ten well-formed questions.
	ErrInvalidQuiz = errors.New("invalid quiz")
)
