package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.MenuItemRepository = (*MenuItemRepo)(nil)

// MenuItemRepo implementación de MenuItemRepository (usable con pool o tx).
type MenuItemRepo struct {
	q Querier
}

// NewMenuItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMenuItemRepository(q Querier) *MenuItemRepo {
	return &MenuItemRepo{q: q}
}

const menuItemColumns = `id, name, description, price, available, sort_order, created_at, updated_at`

// Create persiste un nuevo ítem del menú.
func (r *MenuItemRepo) Create(item *entity.MenuItem) error {
	query := `
		INSERT INTO menu_items (id, name, description, price, available, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Description, item.Price, item.Available, item.Position,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert menu item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID.
func (r *MenuItemRepo) GetByID(id string) (*entity.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = $1`
	var it entity.MenuItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&it.ID, &it.Name, &it.Description, &it.Price, &it.Available, &it.Position,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	return &it, nil
}

// SearchByName busca por substring case-insensitive solo entre disponibles,
// en el orden estable del menú (sort_order, luego created_at).
func (r *MenuItemRepo) SearchByName(term string) ([]*entity.MenuItem, error) {
	query := `
		SELECT ` + menuItemColumns + `
		FROM menu_items
		WHERE available = TRUE AND name ILIKE '%' || $1 || '%'
		ORDER BY sort_order, created_at`
	return r.queryList(query, term)
}

// ListAvailable lista los ítems disponibles en orden del menú.
func (r *MenuItemRepo) ListAvailable() ([]*entity.MenuItem, error) {
	query := `
		SELECT ` + menuItemColumns + `
		FROM menu_items WHERE available = TRUE
		ORDER BY sort_order, created_at`
	return r.queryList(query)
}

// List lista todos los ítems con paginación (dashboard).
func (r *MenuItemRepo) List(limit, offset int) ([]*entity.MenuItem, error) {
	query := `
		SELECT ` + menuItemColumns + `
		FROM menu_items ORDER BY sort_order, created_at LIMIT $1 OFFSET $2`
	return r.queryList(query, limit, offset)
}

// Update actualiza un ítem.
func (r *MenuItemRepo) Update(item *entity.MenuItem) error {
	query := `
		UPDATE menu_items
		SET name = $2, description = $3, price = $4, available = $5, sort_order = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Description, item.Price, item.Available, item.Position, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update menu item: %w", err)
	}
	return nil
}

// Delete elimina un ítem por ID.
func (r *MenuItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	return nil
}

func (r *MenuItemRepo) queryList(query string, args ...any) ([]*entity.MenuItem, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()
	var list []*entity.MenuItem
	for rows.Next() {
		var it entity.MenuItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.Available, &it.Position, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
