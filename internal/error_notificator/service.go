package error_notificator

import (
	"context"

	"go.uber.org/zap"
)

// Service всегда пишет в лог; если настроен канал (telegram), дублирует туда.
type Service struct {
	infra Notificator
	log   *zap.SugaredLogger
}

func NewService(infra Notificator, log *zap.SugaredLogger) *Service {
	return &Service{infra: infra, log: log}
}

func (s *Service) Notify(ctx context.Context, runID string, err error, details string) error {
	s.log.Errorw("[error_notificator] pipeline failure", "run", runID, "error", err, "details", details)

	if s.infra == nil {
		return nil
	}
	if sendErr := s.infra.Notify(ctx, runID, err, details); sendErr != nil {
		s.log.Warnw("[error_notificator] send fail", "run", runID, "error", sendErr)
		return sendErr
	}
	return nil
}
