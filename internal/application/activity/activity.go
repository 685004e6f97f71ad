// Package activity define el puerto de auditoría que consumen los casos de uso.
// La persistencia y consulta del registro viven fuera de este servicio.
package activity

import "context"

// Acciones registrables.
const (
	ActionCreate      = "CREATE"
	ActionUpdate      = "UPDATE"
	ActionDelete      = "DELETE"
	ActionArchive     = "ARCHIVE"
	ActionRestore     = "RESTORE"
	ActionSell        = "SELL"
	ActionAdjustStock = "ADJUST_STOCK"
)

// Tipos de entidad.
const (
	EntityProduct   = "PRODUCT"
	EntityInventory = "INVENTORY"
	EntityRecipe    = "RECIPE"
	EntityOrder     = "ORDER"
)

// Actor identifica quién origina la acción. Lo arma la capa HTTP de forma explícita.
type Actor struct {
	UserID    string
	UserName  string
	Role      string
	IP        string
	UserAgent string
}

// Entry es un evento de auditoría.
type Entry struct {
	Action      string
	EntityType  string
	EntityID    string
	EntityName  string
	Description string
	Metadata    map[string]any
	Actor       Actor
}

// Logger recibe eventos de auditoría. Un fallo al registrar nunca revierte la operación.
type Logger interface {
	Log(ctx context.Context, e Entry) error
}

// Nop descarta los eventos.
type Nop struct{}

func (Nop) Log(context.Context, Entry) error { return nil }
