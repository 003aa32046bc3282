package services

import (
	"context"

	"github.com/SscSPs/property_market_app/pkg/logger"
)

// BaseService provides common functionality for all services
type BaseService struct {
	component string
}

func newBaseService(component string) BaseService {
	return BaseService{component: component}
}

// GetLogger gets the logger from context, tagged with the service component.
func (s *BaseService) GetLogger(ctx context.Context) *logger.Logger {
	l := logger.FromContext(ctx)
	if s.component != "" {
		return l.WithComponent(s.component)
	}
	return l
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, "error", err)
	args = append(args, keyvals...)
	s.GetLogger(ctx).Errorw(msg, args...)
}

// LogWarn logs a recoverable failure with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, "error", err)
	args = append(args, keyvals...)
	s.GetLogger(ctx).Warnw(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Infow(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debugw(msg, keyvals...)
}
