package guidebook

import (
	"context"
	"log/slog"
)

// EventSink defines the interface for engine event handling
type EventSink interface {
	// ContentObjectCreated is fired when a content library object is created
	ContentObjectCreated(ctx context.Context, obj *ContentObject) error

	// ContentObjectUpdated is fired when a content library object is updated
	ContentObjectUpdated(ctx context.Context, obj *ContentObject) error

	// ContentObjectDeleted is fired when a content library object is deleted
	ContentObjectDeleted(ctx context.Context, objectID string) error

	// GuidebookAssembled is fired when a guidebook is assembled and saved
	GuidebookAssembled(ctx context.Context, gb *Guidebook) error
}

// NoopEventSink is an event sink that does nothing
type NoopEventSink struct{}

// NewNoopEventSink creates a new no-op event sink
func NewNoopEventSink() *NoopEventSink { return &NoopEventSink{} }

func (*NoopEventSink) ContentObjectCreated(context.Context, *ContentObject) error { return nil }
func (*NoopEventSink) ContentObjectUpdated(context.Context, *ContentObject) error { return nil }
func (*NoopEventSink) ContentObjectDeleted(context.Context, string) error         { return nil }
func (*NoopEventSink) GuidebookAssembled(context.Context, *Guidebook) error       { return nil }

// LoggingEventSink logs engine events through slog.
type LoggingEventSink struct {
	logger *slog.Logger
}

// NewLoggingEventSink creates an event sink that logs every event.
func NewLoggingEventSink(logger *slog.Logger) *LoggingEventSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingEventSink{logger: logger}
}

func (s *LoggingEventSink) ContentObjectCreated(ctx context.Context, obj *ContentObject) error {
	s.logger.InfoContext(ctx, "content object created", "id", obj.ID, "type", obj.Type, "target", obj.Target)
	return nil
}

func (s *LoggingEventSink) ContentObjectUpdated(ctx context.Context, obj *ContentObject) error {
	s.logger.InfoContext(ctx, "content object updated", "id", obj.ID, "type", obj.Type)
	return nil
}

func (s *LoggingEventSink) ContentObjectDeleted(ctx context.Context, objectID string) error {
	s.logger.InfoContext(ctx, "content object deleted", "id", objectID)
	return nil
}

func (s *LoggingEventSink) GuidebookAssembled(ctx context.Context, gb *Guidebook) error {
	s.logger.InfoContext(ctx, "guidebook assembled", "id", gb.ID, "city", gb.CityCode,
		"l1", gb.Counts.L1, "l2", gb.Counts.L2, "l3", gb.Counts.L3, "l4", gb.Counts.L4)
	return nil
}
