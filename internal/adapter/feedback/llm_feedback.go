package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lms-quiz/internal/domain"
	"lms-quiz/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

const maxFeedbackLen = 600

// llmFeedbackAdvisor implements domain.FeedbackAdvisor with an LLM. The score of
// a short-answer question is still decided by exact match; this only explains.
type llmFeedbackAdvisor struct {
	model   llms.Model
	timeout time.Duration
}

// NewLLMFeedbackAdvisor wraps any langchaingo model.
func NewLLMFeedbackAdvisor(model llms.Model, timeout time.Duration) domain.FeedbackAdvisor {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &llmFeedbackAdvisor{model: model, timeout: timeout}
}

// NewOllamaFeedbackAdvisor connects to an Ollama server.
func NewOllamaFeedbackAdvisor(serverURL, modelName string, timeout time.Duration) (domain.FeedbackAdvisor, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("ollama server URL cannot be empty")
	}
	if modelName == "" {
		return nil, fmt.Errorf("ollama model name cannot be empty")
	}
	llm, err := ollama.New(
		ollama.WithModel(modelName),
		ollama.WithServerURL(serverURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}
	return NewLLMFeedbackAdvisor(llm, timeout), nil
}

func (a *llmFeedbackAdvisor) Feedback(ctx context.Context, question *domain.Question, answer string) (string, error) {
	if strings.TrimSpace(answer) == "" {
		return "", nil
	}
	l := logger.Get()

	prompt := fmt.Sprintf(`You are a tutor reviewing a learner's short answer. In at most three sentences,
say what the answer gets right and what it is missing compared to the reference answer.
Do not give a score.

Question: %s
Reference answer: %s
Learner's answer: %s`, question.Text, domain.DisplayAnswer(question.Correct), answer)

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	raw, err := llms.GenerateFromSinglePrompt(ctx, a.model, prompt, llms.WithTemperature(0.2))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			l.Warn("LLM feedback request timed out", zap.String("question_id", question.ID))
			return "", fmt.Errorf("LLM request timed out: %w", err)
		}
		return "", fmt.Errorf("LLM call failed: %w", err)
	}

	text := cleanResponse(raw)
	l.Debug("LLM feedback received", zap.String("question_id", question.ID), zap.Int("length", len(text)))
	return text, nil
}

// cleanResponse drops <think> blocks emitted by reasoning models and caps the length.
func cleanResponse(raw string) string {
	text := strings.TrimSpace(raw)
	if start := strings.Index(text, "<think>"); start != -1 {
		if end := strings.Index(text, "</think>"); end > start {
			text = strings.TrimSpace(text[:start] + text[end+len("</think>"):])
		}
	}
	if len(text) > maxFeedbackLen {
		text = strings.TrimSpace(text[:maxFeedbackLen]) + "…"
	}
	return text
}
