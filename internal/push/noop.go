package push

import "context"

// NoopSender drops every notification. Used when push delivery is not
// configured so the pipeline needs no nil checks.
type NoopSender struct{}

func NewNoopSender() NoopSender { return NoopSender{} }

func (NoopSender) Send(ctx context.Context, title, message string, attrs map[string]string) error {
	return nil
}
