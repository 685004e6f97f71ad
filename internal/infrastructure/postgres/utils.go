package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE que se traducen a errores de dominio.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único.
func isUniqueViolation(err error) bool { return pgCode(err) == pgUniqueViolation }

// isForeignKeyViolation verifica si el error apunta a una fila referenciada inexistente.
func isForeignKeyViolation(err error) bool { return pgCode(err) == pgForeignKeyViolation }

// isCheckViolation verifica si el error viene de un CHECK (ej. quantity_needed > 0).
func isCheckViolation(err error) bool { return pgCode(err) == pgCheckViolation }

// nullIfEmpty convierte "" en NULL para columnas opcionales.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// emptyIfNull es el inverso de nullIfEmpty al escanear.
func emptyIfNull(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
