package usecase

import (
	"time"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// SessionUseCase escrituras sobre la sesión de cliente. El núcleo
// conversacional solo lee; cuando emite save_customer_name y compañía, el
// dispatcher invoca estas operaciones.
type SessionUseCase struct {
	repo repository.SessionRepository
}

// NewSessionUseCase construye el caso de uso.
func NewSessionUseCase(repo repository.SessionRepository) *SessionUseCase {
	return &SessionUseCase{repo: repo}
}

// EnsureSession crea la sesión en el primer mensaje de un teléfono nuevo.
func (uc *SessionUseCase) EnsureSession(phone string) (*entity.CustomerSession, error) {
	session, err := uc.repo.Get(phone)
	if err != nil {
		return nil, err
	}
	if session != nil {
		return session, nil
	}
	now := time.Now()
	session = &entity.CustomerSession{
		Phone:     phone,
		Name:      entity.PlaceholderName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Save(session); err != nil {
		return nil, err
	}
	return session, nil
}

// SaveName registra el nombre capturado por el gate.
func (uc *SessionUseCase) SaveName(phone, name string) error {
	return uc.mutate(phone, func(s *entity.CustomerSession) {
		s.Name = name
	})
}

// SaveHomeLocation registra la dirección por defecto y activa la sesión con
// esa misma dirección como ubicación actual.
func (uc *SessionUseCase) SaveHomeLocation(phone, location string) error {
	now := time.Now()
	return uc.mutate(phone, func(s *entity.CustomerSession) {
		s.HomeLocation = location
		s.CurrentLocation = location
		s.LastLocationUpdate = &now
		s.SessionActive = true
	})
}

// SaveCurrentLocation refresca la ubicación de la sesión activa.
func (uc *SessionUseCase) SaveCurrentLocation(phone, location string) error {
	now := time.Now()
	return uc.mutate(phone, func(s *entity.CustomerSession) {
		s.CurrentLocation = location
		s.LastLocationUpdate = &now
		s.SessionActive = true
	})
}

// mutate lee, aplica y guarda (last-write-wins).
func (uc *SessionUseCase) mutate(phone string, fn func(*entity.CustomerSession)) error {
	session, err := uc.EnsureSession(phone)
	if err != nil {
		return err
	}
	fn(session)
	session.UpdatedAt = time.Now()
	return uc.repo.Save(session)
}
