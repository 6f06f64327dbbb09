package service

import (
	"math"
	"shikkha_backend/internal/model"
	"shikkha_backend/internal/util"
	"shikkha_backend/pkg/logger"
	"shikkha_backend/pkg/monitoring"
	"sync"
	"time"

	"go.uber.org/zap"
)

type SessionState string

const (
	SessionInProgress SessionState = "in_progress"
	SessionSubmitted  SessionState = "submitted"
	SessionAbandoned  SessionState = "abandoned"
)

type SubmitTrigger string

const (
	TriggerManual SubmitTrigger = "manual"
	TriggerTimer  SubmitTrigger = "timer"
)

// ExamSession is the ephemeral state of one in-progress exam-taking
// interaction. It lives only in memory: abandoning the session before
// submission discards everything, there is no draft save.
//
// The timer goroutine and HTTP handlers serialize on mu; the state check
// under that lock is the only guard against a manual submit racing the
// timer expiry, first caller wins.
type ExamSession struct {
	ID        string               `json:"id"`
	StudentID uint                 `json:"studentId"`
	Exam      *model.Exam          `json:"exam"`
	Questions []model.ExamQuestion `json:"questions"`

	mu        sync.Mutex
	state     SessionState
	answers   map[uint]string
	remaining int
	stopTick  chan struct{}
}

func (s *ExamSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Remaining returns the countdown value in whole seconds.
func (s *ExamSession) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// Select records the student's choice for a question, overwriting any
// prior selection. Selections after submission are rejected.
func (s *ExamSession) Select(questionID uint, optionKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != SessionInProgress {
		return util.ErrAlreadySubmitted
	}
	s.answers[questionID] = optionKey
	return nil
}

// durationSeconds derives the countdown start value from the exam
// metadata: explicit duration in minutes when declared, otherwise the
// start/end window, clamped to zero.
func durationSeconds(exam *model.Exam) int {
	if exam.Duration > 0 {
		return exam.Duration * 60
	}
	if exam.StartTime != nil && exam.EndTime != nil {
		secs := int(math.Floor(exam.EndTime.Sub(*exam.StartTime).Seconds()))
		if secs > 0 {
			return secs
		}
	}
	return 0
}

// SubmitResult is what the student sees right after submission.
type SubmitResult struct {
	Tally
	AttemptID    string `json:"attemptId"`
	AnswersSaved bool   `json:"answersSaved"`
}

// SessionManager owns the active in-memory exam sessions.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*ExamSession

	ExamSvc       *ExamService
	EnrollmentSvc *EnrollmentService
}

func NewSessionManager(examSvc *ExamService, enrollmentSvc *EnrollmentService) *SessionManager {
	return &SessionManager{
		sessions:      make(map[string]*ExamSession),
		ExamSvc:       examSvc,
		EnrollmentSvc: enrollmentSvc,
	}
}

// Start loads the exam and its question set and opens a new session in
// the InProgress state with the countdown running. A load failure means
// the session is never created.
func (m *SessionManager) Start(studentID, examID uint) (*ExamSession, error) {
	exam, err := m.ExamSvc.GetExam(examID)
	if err != nil {
		return nil, err
	}

	if m.EnrollmentSvc != nil {
		enrolled, err := m.EnrollmentSvc.IsEnrolled(studentID, exam.CourseID)
		if err != nil {
			return nil, err
		}
		if !enrolled {
			return nil, util.ErrNotEnrolled
		}
	}

	questions, err := m.ExamSvc.LoadQuestions(examID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, util.ErrExamHasNoQuestions
	}

	session := &ExamSession{
		ID:        model.GenerateUUID(),
		StudentID: studentID,
		Exam:      exam,
		Questions: questions,
		state:     SessionInProgress,
		answers:   make(map[uint]string),
		remaining: durationSeconds(exam),
		stopTick:  make(chan struct{}),
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()
	monitoring.ActiveExamSessions.Inc()

	// A zero countdown means the exam metadata gave no usable duration;
	// the session then runs without a clock, manual submit only.
	if session.remaining > 0 {
		go m.runTimer(session)
	}

	return session, nil
}

func (m *SessionManager) Get(sessionID string) (*ExamSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, util.ErrSessionNotFound
	}
	return session, nil
}

// runTimer decrements the countdown once per second and triggers a single
// auto-submit at zero. The loop stops on manual submit or abandon.
func (m *SessionManager) runTimer(session *ExamSession) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-session.stopTick:
			return
		case <-ticker.C:
			session.mu.Lock()
			if session.state != SessionInProgress {
				session.mu.Unlock()
				return
			}
			if session.remaining > 0 {
				session.remaining--
			}
			expired := session.remaining == 0
			session.mu.Unlock()

			if expired {
				// A manual submit that won the race surfaces as either error.
				if _, err := m.Submit(session.ID, TriggerTimer); err != nil &&
					err != util.ErrAlreadySubmitted && err != util.ErrSessionNotFound {
					logger.Log.Error("auto-submit at timer expiry failed",
						zap.String("session_id", session.ID),
						zap.Error(err))
				}
				return
			}
		}
	}
}

// Submit grades the session and persists the attempt. Exactly one caller
// wins; a second submit (manual racing timer, or a late expiry tick)
// returns ErrAlreadySubmitted and writes nothing. A step-1 persistence
// failure leaves the session InProgress so the student can retry.
func (m *SessionManager) Submit(sessionID string, trigger SubmitTrigger) (*SubmitResult, error) {
	session, err := m.Get(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.state != SessionInProgress {
		return nil, util.ErrAlreadySubmitted
	}

	tally := GradeExam(session.Questions, session.answers)

	attemptID, answersSaved, err := m.ExamSvc.RecordAttempt(
		session.StudentID, session.Exam.ID, session.Questions, session.answers, tally)
	if err != nil {
		// Nothing persisted; the session stays open for a retry.
		return nil, err
	}

	session.state = SessionSubmitted
	close(session.stopTick)
	monitoring.ExamSubmissions.WithLabelValues(string(trigger)).Inc()

	m.remove(sessionID)

	return &SubmitResult{
		Tally:        tally,
		AttemptID:    attemptID,
		AnswersSaved: answersSaved,
	}, nil
}

// Abandon discards an unsubmitted session without persisting anything.
// The terminal state is set under the session lock before the countdown
// channel closes, so concurrent abandons cannot close it twice.
func (m *SessionManager) Abandon(sessionID string) error {
	session, err := m.Get(sessionID)
	if err != nil {
		return err
	}

	session.mu.Lock()
	if session.state == SessionInProgress {
		session.state = SessionAbandoned
		close(session.stopTick)
	}
	session.mu.Unlock()

	m.remove(sessionID)

	return nil
}

// remove drops the session from the registry. The gauge only moves when
// an entry was actually present, so racing callers cannot drive it
// negative.
func (m *SessionManager) remove(sessionID string) {
	m.mu.Lock()
	_, present := m.sessions[sessionID]
	delete(m.sessions, sessionID)
	m.mu.Unlock()

	if present {
		monitoring.ActiveExamSessions.Dec()
	}
}
