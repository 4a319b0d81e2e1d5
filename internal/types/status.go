package types

// TaskStatus is the closed lifecycle of a task. Tasks are created
// incomplete; transitions are caller-driven.
type TaskStatus string

const (
	TaskStatusIncomplete TaskStatus = "incomplete"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusComplete   TaskStatus = "complete"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusIncomplete, TaskStatusInProgress, TaskStatusComplete:
		return true
	}
	return false
}

// ActiveTaskStatuses are the statuses the context snapshot treats as
// still-open work.
func ActiveTaskStatuses() []TaskStatus {
	return []TaskStatus{TaskStatusIncomplete, TaskStatusInProgress}
}

// VerificationType enumerates how a task's completion is judged. Only the
// text type is generated here; the others exist for stored records.
type VerificationType string

const (
	VerificationTypeText VerificationType = "text"
	VerificationTypeCode VerificationType = "code"
	VerificationTypeQuiz VerificationType = "quiz"
)

func (v VerificationType) Valid() bool {
	switch v {
	case VerificationTypeText, VerificationTypeCode, VerificationTypeQuiz:
		return true
	}
	return false
}
