package game

import (
	"encoding/json"
	"fmt"

	"github.com/victornm/thinkfast/internal/domain"
)

type MessageType string

const (
	MessageTypePushAnswer     MessageType = "push_answer"
	MessageTypeNewQuestion    MessageType = "new_question"
	MessageTypeCorrectAnswer  MessageType = "correct_answer"
	MessageTypeTooLate        MessageType = "too_late"
	MessageTypeWrongAnswer    MessageType = "wrong_answer"
	MessageTypeInvalidMessage MessageType = "invalid_message"
)

// Message is the envelope shared by all outbound frames.
type Message struct {
	MessageType MessageType `json:"message_type"`
}

// QuestionMessage announces the next question to every player.
type QuestionMessage struct {
	MessageType MessageType `json:"message_type"`
	QuestionID  string      `json:"question_id"`
	Question    string      `json:"question"`
	Options     []string    `json:"options"`

	// Answer ships to every client so reviewers can inspect the game.
	// Unsuitable for a non-demo deployment.
	Answer string `json:"answer"`
}

func newQuestionMessage(q domain.Question) QuestionMessage {
	return QuestionMessage{
		MessageType: MessageTypeNewQuestion,
		QuestionID:  q.QuestionID,
		Question:    q.Question,
		Options:     q.Options,
		Answer:      q.Answer,
	}
}

// Submission is an inbound answer for the question the client believes is current.
type Submission struct {
	MessageType MessageType `json:"message_type"`
	QuestionID  string      `json:"question_id"`
	Answer      string      `json:"answer"`
}

// ParseSubmission decodes an inbound frame. Anything that is not a
// well-formed push_answer message is a protocol violation.
func ParseSubmission(payload []byte) (Submission, error) {
	var sub Submission
	if err := json.Unmarshal(payload, &sub); err != nil {
		return Submission{}, fmt.Errorf("decode submission: %w", err)
	}

	if sub.MessageType != MessageTypePushAnswer {
		return Submission{}, fmt.Errorf("unexpected message_type %q", sub.MessageType)
	}

	if sub.QuestionID == "" {
		return Submission{}, fmt.Errorf("missing question_id")
	}

	return sub, nil
}
