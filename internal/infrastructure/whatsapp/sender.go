// Package whatsapp implementa el canal de salida hacia la Cloud API de
// WhatsApp (Meta Graph API) usando net/http de la librería estándar; no
// requiere SDK oficial.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	appchat "github.com/jhoicas/Pedidos-api/internal/application/chat"
	"github.com/jhoicas/Pedidos-api/pkg/config"
)

// Verificar en tiempo de compilación que CloudAPISender implementa MessageSender.
var _ appchat.MessageSender = (*CloudAPISender)(nil)

// CloudAPISender adaptador que envía mensajes de texto vía
// POST {base}/{phone_number_id}/messages.
type CloudAPISender struct {
	cfg        config.WhatsAppConfig
	httpClient *http.Client
}

// NewCloudAPISender construye el adaptador.
// Si AccessToken está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewCloudAPISender(cfg config.WhatsAppConfig) *CloudAPISender {
	return &CloudAPISender{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ── Estructuras del protocolo de la Cloud API ─────────────────────────────────

type textMessageRequest struct {
	MessagingProduct string      `json:"messaging_product"`
	To               string      `json:"to"`
	Type             string      `json:"type"`
	Text             textPayload `json:"text"`
}

type textPayload struct {
	Body string `json:"body"`
}

type apiErrorResponse struct {
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// SendText envía un mensaje de texto plano al número indicado.
func (s *CloudAPISender) SendText(ctx context.Context, to, body string) error {
	if s.cfg.AccessToken == "" {
		return fmt.Errorf("whatsapp: WA_ACCESS_TOKEN no configurado")
	}
	if s.cfg.PhoneNumberID == "" {
		return fmt.Errorf("whatsapp: WA_PHONE_NUMBER_ID no configurado")
	}

	payload, err := json.Marshal(textMessageRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             textPayload{Body: body},
	})
	if err != nil {
		return fmt.Errorf("whatsapp: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", s.cfg.APIBaseURL, s.cfg.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("whatsapp: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.AccessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp: enviar mensaje: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	// La Graph API devuelve el detalle del error en el cuerpo.
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var apiErr apiErrorResponse
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error != nil {
		return fmt.Errorf("whatsapp: API %d (%s): %s", resp.StatusCode, apiErr.Error.Type, apiErr.Error.Message)
	}
	return fmt.Errorf("whatsapp: API %d: %s", resp.StatusCode, string(raw))
}
