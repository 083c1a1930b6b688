package domain

import "time"

const EventNameQuestionResolved = "question.resolved"

// EventQuestionResolved is published once per question, after a winning
// claim has been recorded and the round advanced.
type EventQuestionResolved struct {
	RoundID     string
	QuestionID  string
	Winner      string
	ResolveTime time.Time
}

func (EventQuestionResolved) Name() string { return EventNameQuestionResolved }
