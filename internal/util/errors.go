package util

import "errors"

var (
	ErrPermissionDenied     = errors.New("permission denied")
	ErrQuizNotFound         = errors.New("quiz not found")
	ErrQuizInactive         = errors.New("quiz is not active")
	ErrInvalidQuiz          = errors.New("invalid quiz")
	ErrQuestionNotFound     = errors.New("question not found")
	ErrInvalidQuestion      = errors.New("invalid question")
	ErrAttemptNotFound      = errors.New("attempt not found")
	ErrAttemptNotInProgress = errors.New("attempt already completed or abandoned")
	ErrInvalidTimeSpent     = errors.New("time spent must not be negative")
	ErrProgressNotFound     = errors.New("progress record not found")
)
