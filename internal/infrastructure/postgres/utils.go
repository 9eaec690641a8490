package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// noRows detecta la condición "fila no encontrada"; los repositorios la
// traducen a (nil, nil) en lugar de error.
func noRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
