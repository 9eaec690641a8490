package entity

import (
	"strings"
	"time"
)

// PlaceholderName es el nombre que el canal asigna a un cliente que aún no se presenta.
const PlaceholderName = "Customer"

// CustomerSession representa el estado de onboarding de un cliente de WhatsApp,
// identificado por su número de teléfono. Se crea en el primer mensaje entrante
// y nunca se borra desde el asistente.
type CustomerSession struct {
	Phone              string
	Name               string     // vacío o placeholder = onboarding incompleto
	HomeLocation       string     // dirección de entrega por defecto
	CurrentLocation    string     // dirección válida para la sesión activa
	LastLocationUpdate *time.Time // última escritura de CurrentLocation
	SessionActive      bool       // true una vez capturada la ubicación de sesión
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// HasName indica si el cliente ya se presentó con un nombre real.
func (s *CustomerSession) HasName() bool {
	if s == nil {
		return false
	}
	name := strings.TrimSpace(s.Name)
	return name != "" && !strings.EqualFold(name, PlaceholderName)
}

// Onboarded indica si el onboarding está completo: nombre real + dirección por defecto.
func (s *CustomerSession) Onboarded() bool {
	return s != nil && s.HasName() && strings.TrimSpace(s.HomeLocation) != ""
}

// NeedsCurrentLocation indica si hay que volver a pedir la ubicación de sesión:
// cliente ya onboarded pero sin ubicación fresca dentro de la ventana ttl.
func (s *CustomerSession) NeedsCurrentLocation(now time.Time, ttl time.Duration) bool {
	if !s.Onboarded() {
		return false
	}
	if strings.TrimSpace(s.CurrentLocation) == "" || !s.SessionActive {
		return true
	}
	if s.LastLocationUpdate == nil {
		return true
	}
	return now.Sub(*s.LastLocationUpdate) > ttl
}

// DeliveryLocation devuelve la dirección a usar para un pedido: la de la sesión
// si existe, si no la de casa.
func (s *CustomerSession) DeliveryLocation() string {
	if s == nil {
		return ""
	}
	if loc := strings.TrimSpace(s.CurrentLocation); loc != "" {
		return loc
	}
	return strings.TrimSpace(s.HomeLocation)
}
