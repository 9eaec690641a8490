package dto

// Payload entrante del webhook de WhatsApp Cloud API (Meta Graph API).
// Solo se modelan los campos que el asistente consume; el resto del JSON se ignora.

// WebhookPayload cuerpo del POST /webhook.
type WebhookPayload struct {
	Object string         `json:"object"`
	Entry  []WebhookEntry `json:"entry"`
}

// WebhookEntry entrada por cuenta de WhatsApp Business.
type WebhookEntry struct {
	ID      string          `json:"id"`
	Changes []WebhookChange `json:"changes"`
}

// WebhookChange cambio notificado (campo "messages" para mensajes entrantes).
type WebhookChange struct {
	Field string       `json:"field"`
	Value WebhookValue `json:"value"`
}

// WebhookValue mensajes y contactos del cambio.
type WebhookValue struct {
	MessagingProduct string           `json:"messaging_product"`
	Contacts         []WebhookContact `json:"contacts"`
	Messages         []WebhookMessage `json:"messages"`
}

// WebhookContact perfil del remitente.
type WebhookContact struct {
	WaID    string `json:"wa_id"`
	Profile struct {
		Name string `json:"name"`
	} `json:"profile"`
}

// WebhookMessage mensaje entrante; solo se procesan los de tipo "text".
type WebhookMessage struct {
	From      string `json:"from"` // teléfono del remitente
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Text      struct {
		Body string `json:"body"`
	} `json:"text"`
}
