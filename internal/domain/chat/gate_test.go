package chat_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Pedidos-api/internal/domain/chat"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

const gateTTL = 30 * time.Minute

func TestResolveState_TelefonoNuncaVisto(t *testing.T) {
	assert.Equal(t, chat.StateNew, chat.ResolveState(nil, fixedNow, gateTTL))
}

func TestResolveState_NombrePlaceholderSigueSiendoNuevo(t *testing.T) {
	// El canal asigna "Customer" al primer contacto; no cuenta como presentarse.
	s := &entity.CustomerSession{Phone: customerPhone, Name: entity.PlaceholderName}
	assert.Equal(t, chat.StateNew, chat.ResolveState(s, fixedNow, gateTTL))
}

func TestResolveState_ConNombreSinDireccion(t *testing.T) {
	s := &entity.CustomerSession{Phone: customerPhone, Name: "Ravi Kumar"}
	assert.Equal(t, chat.StateNameCaptured, chat.ResolveState(s, fixedNow, gateTTL))
}

func TestResolveState_OnboardedSinUbicacionDeSesion(t *testing.T) {
	s := &entity.CustomerSession{
		Phone:        customerPhone,
		Name:         "Ravi Kumar",
		HomeLocation: "MG Road 12",
	}
	assert.Equal(t, chat.StateStaleSession, chat.ResolveState(s, fixedNow, gateTTL))
}

func TestResolveState_UbicacionFresca(t *testing.T) {
	upd := fixedNow.Add(-10 * time.Minute)
	s := &entity.CustomerSession{
		Phone:              customerPhone,
		Name:               "Ravi Kumar",
		HomeLocation:       "MG Road 12",
		CurrentLocation:    "MG Road 12",
		LastLocationUpdate: &upd,
		SessionActive:      true,
	}
	assert.Equal(t, chat.StateActive, chat.ResolveState(s, fixedNow, gateTTL))
}

// La regresión ACTIVE → STALE es puramente temporal: misma sesión, distinto reloj.
func TestResolveState_VentanaDeFrescura(t *testing.T) {
	upd := fixedNow
	s := &entity.CustomerSession{
		Phone:              customerPhone,
		Name:               "Ravi Kumar",
		HomeLocation:       "MG Road 12",
		CurrentLocation:    "MG Road 12",
		LastLocationUpdate: &upd,
		SessionActive:      true,
	}

	cases := []struct {
		elapsed time.Duration
		want    chat.State
	}{
		{29 * time.Minute, chat.StateActive},
		{30 * time.Minute, chat.StateActive}, // el límite exacto aún es fresco
		{31 * time.Minute, chat.StateStaleSession},
		{24 * time.Hour, chat.StateStaleSession},
	}
	for _, tc := range cases {
		got := chat.ResolveState(s, fixedNow.Add(tc.elapsed), gateTTL)
		assert.Equal(t, tc.want, got, "a los %s", tc.elapsed)
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "NEW", chat.StateNew.String())
	assert.Equal(t, "NAME_CAPTURED", chat.StateNameCaptured.String())
	assert.Equal(t, "ONBOARDED_STALE_SESSION", chat.StateStaleSession.String())
	assert.Equal(t, "ACTIVE", chat.StateActive.String())
}
