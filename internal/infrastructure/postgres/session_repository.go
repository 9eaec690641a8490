package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo implementación de SessionRepository (usable con pool o tx).
// La clave es el teléfono; Save hace upsert last-write-wins, que es el modelo
// de consistencia acordado para mensajes concurrentes del mismo número.
type SessionRepo struct {
	q Querier
}

// NewSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

// Get obtiene la sesión por teléfono; (nil, nil) si nunca escribió.
func (r *SessionRepo) Get(phone string) (*entity.CustomerSession, error) {
	query := `
		SELECT phone, name, home_location, current_location, last_location_update,
		       session_active, created_at, updated_at
		FROM customer_sessions WHERE phone = $1`
	var s entity.CustomerSession
	err := r.q.QueryRow(context.Background(), query, phone).Scan(
		&s.Phone, &s.Name, &s.HomeLocation, &s.CurrentLocation, &s.LastLocationUpdate,
		&s.SessionActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &s, nil
}

// Save inserta o actualiza la sesión completa.
func (r *SessionRepo) Save(session *entity.CustomerSession) error {
	query := `
		INSERT INTO customer_sessions
			(phone, name, home_location, current_location, last_location_update, session_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (phone) DO UPDATE SET
			name = EXCLUDED.name,
			home_location = EXCLUDED.home_location,
			current_location = EXCLUDED.current_location,
			last_location_update = EXCLUDED.last_location_update,
			session_active = EXCLUDED.session_active,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		session.Phone, session.Name, session.HomeLocation, session.CurrentLocation,
		session.LastLocationUpdate, session.SessionActive, session.CreatedAt, session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
