package openrouter

import (
	"fmt"
	"strings"

	"flashcard-backend/application/ports"
)

const (
	questionLabel = "Question: "
	answerLabel   = "Answer: "

	// missingAnswer stands in when a block carries a question but no answer
	missingAnswer = "Answer not provided"
)

// ParsePairs extracts question/answer pairs from model output. The expected
// shape is blocks separated by a blank line, each block a "Question: " line
// with the answer after "Answer: " on the same or a following line. Blocks
// without the question label are skipped.
func ParsePairs(content string) []ports.QA {
	pairs := []ports.QA{}
	for _, block := range strings.Split(content, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		qStart := strings.Index(block, questionLabel)
		if qStart < 0 {
			continue
		}
		rest := block[qStart+len(questionLabel):]

		question := rest
		answer := missingAnswer
		if aStart := strings.Index(rest, answerLabel); aStart >= 0 {
			question = rest[:aStart]
			answer = strings.TrimSpace(rest[aStart+len(answerLabel):])
			if answer == "" {
				answer = missingAnswer
			}
		}
		question = strings.TrimSpace(question)
		if question == "" {
			continue
		}

		pairs = append(pairs, ports.QA{Question: question, Answer: answer})
	}
	return pairs
}

// FallbackPair is the single degraded pair returned when model output yields
// nothing parseable for a flashcard batch.
func FallbackPair(topic string) ports.QA {
	return ports.QA{
		Question: fmt.Sprintf("What is an interesting fact about %s?", topic),
		Answer:   fmt.Sprintf("I'm sorry, but I couldn't generate specific flashcards about %s at this time. Please try again later.", topic),
	}
}

// TriviaFallbackPair is the degraded pair for a trivia request
func TriviaFallbackPair(location string) ports.QA {
	return ports.QA{
		Question: fmt.Sprintf("What is an interesting fact about %s?", location),
		Answer:   fmt.Sprintf("I'm sorry, but I couldn't generate a specific trivia question about %s at this time. Please try again later.", location),
	}
}
