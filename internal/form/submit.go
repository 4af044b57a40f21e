package form

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tobaccoform/internal/models"

	"go.uber.org/zap"
)

// ErrNoBrand is returned when neither control yields a brand; nothing is sent.
var ErrNoBrand = errors.New("no brand selected or entered")

// ErrUnknownTaste marks a record whose taste is outside the known set.
var ErrUnknownTaste = errors.New("unknown taste")

// CheckRecord reports why a record read from outside the form, such as a
// CSV row, cannot be sent.
func CheckRecord(record models.TobaccoRecord) error {
	if strings.TrimSpace(record.Brand) == "" {
		return ErrNoBrand
	}
	if !record.Taste.Valid() {
		return fmt.Errorf("%w %q", ErrUnknownTaste, record.Taste)
	}
	return nil
}

type Submitter struct {
	creator RecordCreator
	logger  *zap.Logger
}

func NewSubmitter(creator RecordCreator, logger *zap.Logger) *Submitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Submitter{creator: creator, logger: logger}
}

// Send posts record and returns the raw response text. ok is false when the
// request never completed; that failure is only logged.
func (s *Submitter) Send(ctx context.Context, record models.TobaccoRecord) (text string, ok bool) {
	text, err := s.creator.CreateTobacco(ctx, record)
	if err != nil {
		s.logger.Error("Failed to submit tobacco",
			zap.String("brand", record.Brand),
			zap.String("taste", string(record.Taste)),
			zap.Error(err))
		return "", false
	}
	s.logger.Info("Submitted tobacco",
		zap.String("brand", record.Brand),
		zap.String("response", text))
	return text, true
}

// ResolveBrand picks the brand for mode. Non-blank text wins in EnterNew;
// every other case reads the selector, even while it is hidden.
func ResolveBrand(mode Mode, selected models.Brand, text string) models.Brand {
	if mode == EnterNew {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			return trimmed
		}
	}
	return selected
}
