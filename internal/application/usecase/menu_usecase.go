package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// MenuUseCase casos de uso CRUD para el menú. Lo consumen los comandos de
// operador del chat y el API del dashboard por igual.
type MenuUseCase struct {
	repo repository.MenuItemRepository
}

// NewMenuUseCase construye el caso de uso.
func NewMenuUseCase(repo repository.MenuItemRepository) *MenuUseCase {
	return &MenuUseCase{repo: repo}
}

// Create crea un ítem del menú. Nace disponible.
func (uc *MenuUseCase) Create(in dto.CreateMenuItemRequest) (*dto.MenuItemResponse, error) {
	if in.Name == "" || !in.Price.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	item := &entity.MenuItem{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Available:   true,
		Position:    in.Position,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return toMenuItemResponse(item), nil
}

// GetByID obtiene un ítem por ID.
func (uc *MenuUseCase) GetByID(id string) (*dto.MenuItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return toMenuItemResponse(item), nil
}

// FindByRef resuelve un ítem por ID o, si no existe, por nombre (primer
// resultado de la búsqueda). Es la semántica de <id-or-name> de los comandos
// de operador.
func (uc *MenuUseCase) FindByRef(ref string) (*entity.MenuItem, error) {
	item, err := uc.repo.GetByID(ref)
	if err != nil {
		return nil, err
	}
	if item != nil {
		return item, nil
	}
	matches, err := uc.repo.SearchByName(ref)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

// Update actualiza campos de un ítem (parcial).
func (uc *MenuUseCase) Update(id string, in dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Price != nil {
		if !in.Price.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		item.Price = *in.Price
	}
	if in.Available != nil {
		item.Available = *in.Available
	}
	if in.Position != nil {
		item.Position = *in.Position
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return toMenuItemResponse(item), nil
}

// ToggleAvailability invierte la disponibilidad del ítem.
func (uc *MenuUseCase) ToggleAvailability(id string) (*dto.MenuItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	item.Available = !item.Available
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return toMenuItemResponse(item), nil
}

// List lista ítems con paginación (dashboard, incluye no disponibles).
func (uc *MenuUseCase) List(limit, offset int) (*dto.MenuItemListResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MenuItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toMenuItemResponse(it))
	}
	return &dto.MenuItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListAvailable lista solo los disponibles, en orden del menú (para el chat).
func (uc *MenuUseCase) ListAvailable() ([]*entity.MenuItem, error) {
	return uc.repo.ListAvailable()
}

// Delete elimina un ítem por ID.
func (uc *MenuUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toMenuItemResponse(it *entity.MenuItem) *dto.MenuItemResponse {
	if it == nil {
		return nil
	}
	return &dto.MenuItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Price:       it.Price,
		Available:   it.Available,
		Position:    it.Position,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}
