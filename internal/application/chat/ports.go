package chat

import "context"

// MessageSender puerto de salida hacia el canal WhatsApp. La implementación
// vive en infrastructure/whatsapp; los tests usan un fake.
type MessageSender interface {
	SendText(ctx context.Context, to, body string) error
}
