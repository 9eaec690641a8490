package chat_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Pedidos-api/internal/domain/chat"
)

func TestCandidateName_Validos(t *testing.T) {
	cases := map[string]string{
		"ravi":                  "Ravi",
		"RAVI KUMAR":            "Ravi Kumar",
		"my name is ravi kumar": "Ravi Kumar",
		"i'm anita":             "Anita",
		"call me Jo":            "Jo",
		"mary-jane":             "Mary-Jane",
	}
	for raw, want := range cases {
		got, ok := chat.CandidateName(raw)
		assert.True(t, ok, "debe aceptar %q", raw)
		assert.Equal(t, want, got, "entrada: %q", raw)
	}
}

func TestCandidateName_Invalidos(t *testing.T) {
	invalid := []string{
		"",
		"x",                // muy corto
		"help",             // palabra reservada
		"menu",             // palabra reservada
		"payment options",  // variante de comando de pago
		"1234",             // sin letras
		"ravi@kumar",       // carácter no permitido
		"my name is",       // solo relleno
		strings.Repeat("a", 51), // muy largo
	}
	for _, raw := range invalid {
		_, ok := chat.CandidateName(raw)
		assert.False(t, ok, "no debe aceptar %q como nombre", raw)
	}
}

func TestCandidateLocation_Validas(t *testing.T) {
	cases := map[string]string{
		"MG Road 12, Bangalore":           "MG Road 12, Bangalore",
		"my location is Indiranagar 100":  "Indiranagar 100",
		"i live at Flat 4B, Rose Apts":    "Flat 4B, Rose Apts",
		"Sector 21 (near park) #12":       "Sector 21 (near park) #12",
		"12/4 Main St":                    "12/4 Main St",
	}
	for raw, want := range cases {
		got, ok := chat.CandidateLocation(raw)
		assert.True(t, ok, "debe aceptar %q", raw)
		assert.Equal(t, want, got, "entrada: %q", raw)
	}
}

func TestCandidateLocation_Invalidas(t *testing.T) {
	invalid := []string{
		"",
		"ab",            // muy corta
		"order",         // palabra reservada
		"delivery",      // palabra reservada
		"payment help",  // variante de comando de pago
		"casa@centro",   // carácter no permitido
		strings.Repeat("a", 201), // muy larga
	}
	for _, raw := range invalid {
		_, ok := chat.CandidateLocation(raw)
		assert.False(t, ok, "no debe aceptar %q como dirección", raw)
	}
}
