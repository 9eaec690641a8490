package repository

import "github.com/jhoicas/Pedidos-api/internal/domain/entity"

// SessionRepository define el puerto de persistencia para CustomerSession.
// La clave es el número de teléfono; Save hace upsert (last-write-wins).
type SessionRepository interface {
	Get(phone string) (*entity.CustomerSession, error)
	Save(session *entity.CustomerSession) error
}
