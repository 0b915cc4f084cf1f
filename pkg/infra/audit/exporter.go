package audit

import (
	"context"

	"github.com/safenest/trustpipe/pkg/domain/moderation"
)

//go:generate mockery --name=Exporter --dir=. --output=./mocks --filename=exporter_mock.go --case=underscore --with-expecter

// Exporter publishes every moderation event to the guardian dashboard feed.
type Exporter interface {
	Export(ctx context.Context, event *moderation.ModerationEvent) error
	Close()
}

// NoopExporter satisfies Exporter when the audit feed is disabled.
type NoopExporter struct{}

func NewNoopExporter() Exporter {
	return &NoopExporter{}
}

func (*NoopExporter) Export(_ context.Context, _ *moderation.ModerationEvent) error {
	return nil
}

func (*NoopExporter) Close() {}
