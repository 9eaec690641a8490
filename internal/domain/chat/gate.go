package chat

import (
	"time"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// State es el estado de onboarding de un teléfono en el gate conversacional.
// Las transiciones las dispara el contenido de los mensajes, no comandos
// explícitos; la regresión ACTIVE → STALE_SESSION es puramente temporal.
type State int

const (
	// StateNew cliente sin nombre real registrado.
	StateNew State = iota
	// StateNameCaptured nombre registrado, falta la dirección por defecto.
	StateNameCaptured
	// StateStaleSession onboarding completo pero la ubicación de sesión no es fresca.
	StateStaleSession
	// StateActive ubicación de sesión fresca: el mensaje pasa directo al resolver.
	StateActive
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "NEW"
	case StateNameCaptured:
		return "NAME_CAPTURED"
	case StateStaleSession:
		return "ONBOARDED_STALE_SESSION"
	case StateActive:
		return "ACTIVE"
	}
	return "UNKNOWN"
}

// ResolveState colapsa los campos de la sesión en un único estado del gate.
// Una sesión nil (teléfono nunca visto) es NEW. La frescura se evalúa contra
// el reloj en el momento de la resolución, no con un timer de fondo.
func ResolveState(session *entity.CustomerSession, now time.Time, ttl time.Duration) State {
	if session == nil || !session.HasName() {
		return StateNew
	}
	if !session.Onboarded() {
		return StateNameCaptured
	}
	if session.NeedsCurrentLocation(now, ttl) {
		return StateStaleSession
	}
	return StateActive
}

// gateRule intercepta el mensaje mientras el onboarding no está completo.
// Precondiciones ya garantizadas por el orden de la cadena: los comandos de
// pago se evaluaron antes y el teléfono del dueño nunca llega aquí.
func (r *Resolver) gateRule(req *request) (*ParsedIntent, error) {
	switch req.state {
	case StateNew:
		if name, ok := CandidateName(req.raw); ok {
			return &ParsedIntent{
				Intent: IntentSaveCustomerName,
				Data:   map[string]any{"name": name},
			}, nil
		}
		return &ParsedIntent{Intent: IntentRequestCustomerName, Data: map[string]any{}}, nil

	case StateNameCaptured:
		if loc, ok := CandidateLocation(req.raw); ok {
			return &ParsedIntent{
				Intent: IntentSaveCustomerLocation,
				Data:   map[string]any{"location": loc},
			}, nil
		}
		return &ParsedIntent{Intent: IntentRequestCustomerLocation, Data: map[string]any{}}, nil

	case StateStaleSession:
		if loc, ok := CandidateLocation(req.raw); ok {
			return &ParsedIntent{
				Intent: IntentSaveCurrentLocation,
				Data:   map[string]any{"location": loc},
			}, nil
		}
		return &ParsedIntent{Intent: IntentRequestCurrentLocation, Data: map[string]any{}}, nil
	}

	// StateActive: sin intercepción, sigue la cadena.
	return nil, nil
}
