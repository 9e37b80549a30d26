// Package catalog loads quiz definitions from YAML files.
package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"lms-quiz/internal/domain"
	"lms-quiz/internal/logger"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// FileCatalog implements domain.QuizCatalog over a YAML file.
type FileCatalog struct {
	path string
}

func NewFileCatalog(path string) *FileCatalog {
	return &FileCatalog{path: path}
}

// LoadQuizCatalog reads the file on every call so edits are picked up by a reload.
func (c *FileCatalog) LoadQuizCatalog(ctx context.Context) ([]*domain.Quiz, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read quiz catalog %s: %w", c.path, err)
	}
	quizzes, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("quiz catalog %s: %w", c.path, err)
	}
	logger.Get().Info("Quiz catalog file loaded", zap.String("path", c.path), zap.Int("quizzes", len(quizzes)))
	return quizzes, nil
}

// Parse decodes a catalog document. Unknown keys are rejected so typos in
// field names surface at load time.
func Parse(data []byte) ([]*domain.Quiz, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return []*domain.Quiz{}, nil
		}
		return nil, fmt.Errorf("failed to decode YAML: %w", err)
	}

	quizzes := make([]*domain.Quiz, 0, len(doc.Quizzes))
	for _, entry := range doc.Quizzes {
		quiz, err := entry.ToDomain()
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, quiz)
	}
	return quizzes, nil
}
