package repository

import "github.com/jhoicas/Pedidos-api/internal/domain/entity"

// MenuItemRepository define el puerto de persistencia para MenuItem (DIP).
// SearchByName es substring case-insensitive sobre disponibles, en orden estable del menú.
type MenuItemRepository interface {
	Create(item *entity.MenuItem) error
	GetByID(id string) (*entity.MenuItem, error)
	SearchByName(term string) ([]*entity.MenuItem, error)
	ListAvailable() ([]*entity.MenuItem, error)
	List(limit, offset int) ([]*entity.MenuItem, error)
	Update(item *entity.MenuItem) error
	Delete(id string) error
}
