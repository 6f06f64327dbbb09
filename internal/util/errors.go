package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrAccountDisabled     = errors.New("account disabled")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrCourseNotFound      = errors.New("course not found")
	ErrNotEnrolled         = errors.New("not enrolled in this course")
	ErrExamNotFound        = errors.New("exam not found")
	ErrExamHasNoQuestions  = errors.New("exam has no questions")
	ErrSessionNotFound     = errors.New("exam session not found")
	ErrAlreadySubmitted    = errors.New("exam already submitted")
	ErrAuthRequired        = errors.New("please sign in")
	ErrAttemptNotFound     = errors.New("attempt not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrAnswersNotSaved     = errors.New("attempt saved but answers could not be stored")
)
