package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	appchat "github.com/jhoicas/Pedidos-api/internal/application/chat"
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
)

// WebhookHandler recibe los eventos del webhook de WhatsApp Cloud API.
//
// Meta reintenta las entregas que no responden 200, así que el POST siempre
// responde 200 una vez parseado el cuerpo: un fallo al procesar un mensaje se
// loguea, no se propaga como error HTTP.
type WebhookHandler struct {
	dispatcher  *appchat.Dispatcher
	sender      appchat.MessageSender
	verifyToken string
	log         zerolog.Logger
}

// NewWebhookHandler construye el handler del webhook.
func NewWebhookHandler(dispatcher *appchat.Dispatcher, sender appchat.MessageSender, verifyToken string, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{dispatcher: dispatcher, sender: sender, verifyToken: verifyToken, log: log}
}

// Verify godoc
// @Summary      Verificación del webhook (challenge de Meta)
// @Tags         webhook
// @Produce      plain
// @Param        hub.mode          query  string  true  "subscribe"
// @Param        hub.verify_token  query  string  true  "token configurado en Meta"
// @Param        hub.challenge     query  string  true  "challenge a devolver"
// @Success      200  {string}  string
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /webhook [get]
func (h *WebhookHandler) Verify(c *fiber.Ctx) error {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode != "subscribe" || token != h.verifyToken {
		h.log.Warn().Str("mode", mode).Msg("verificación de webhook rechazada")
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "VERIFY_FAILED", Message: "token de verificación inválido"})
	}
	return c.SendString(challenge)
}

// Receive godoc
// @Summary      Mensajes entrantes de WhatsApp
// @Tags         webhook
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WebhookPayload  true  "Evento de Meta"
// @Success      200   {object}  map[string]string
// @Router       /webhook [post]
func (h *WebhookHandler) Receive(c *fiber.Ctx) error {
	var payload dto.WebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		// Cuerpo ilegible: 200 igual, Meta no tiene nada útil que reintentar.
		h.log.Warn().Err(err).Msg("payload de webhook ilegible")
		return c.JSON(fiber.Map{"status": "ignored"})
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			if change.Field != "messages" {
				continue
			}
			for _, msg := range change.Value.Messages {
				if msg.Type != "text" {
					continue
				}
				h.handleText(c, msg.From, msg.Text.Body)
			}
		}
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// handleText resuelve el mensaje y envía la respuesta al remitente.
func (h *WebhookHandler) handleText(c *fiber.Ctx, from, body string) {
	reply, err := h.dispatcher.HandleMessage(from, body)
	if err != nil {
		h.log.Error().Err(err).Str("from", from).Msg("error procesando mensaje entrante")
		return
	}
	if reply == "" {
		return
	}
	if err := h.sender.SendText(c.Context(), from, reply); err != nil {
		h.log.Error().Err(err).Str("to", from).Msg("error enviando respuesta por WhatsApp")
	}
}
