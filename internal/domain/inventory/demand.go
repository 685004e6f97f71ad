package inventory

import (
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DemandLine es una línea vendida con su receta ya cargada (Recipe nil = sin efecto en inventario).
type DemandLine struct {
	ProductID   string
	ProductName string
	Quantity    int
	Recipe      *entity.Recipe
}

// Requirement es la demanda total de un insumo para toda la venta.
type Requirement struct {
	InventoryItemID string
	Name            string
	Unit            string
	Needed          decimal.Decimal
	Uses            []Use // líneas de venta que consumen el insumo
}

// Use identifica una línea de venta que aporta demanda a un insumo.
type Use struct {
	Line        int // índice de la línea de venta
	ProductID   string
	ProductName string
	Quantity    int
}

// AggregateDemand suma QuantityNeeded × Quantity por insumo a través de todas las líneas.
// El orden del resultado es el de primera aparición. Las líneas con QuantityNeeded <= 0 se omiten.
func AggregateDemand(lines []DemandLine) []Requirement {
	index := make(map[string]int)
	var reqs []Requirement
	for li, line := range lines {
		if line.Recipe == nil || line.Quantity <= 0 {
			continue
		}
		qty := decimal.NewFromInt(int64(line.Quantity))
		for _, ing := range line.Recipe.Ingredients {
			if ing.QuantityNeeded.LessThanOrEqual(decimal.Zero) {
				continue
			}
			needed := ing.QuantityNeeded.Mul(qty)
			use := Use{Line: li, ProductID: line.ProductID, ProductName: line.ProductName, Quantity: line.Quantity}
			if i, ok := index[ing.InventoryItemID]; ok {
				reqs[i].Needed = reqs[i].Needed.Add(needed)
				reqs[i].Uses = appendUse(reqs[i].Uses, use)
				continue
			}
			unit := ing.ItemUnit
			if unit == "" {
				unit = ing.Unit
			}
			index[ing.InventoryItemID] = len(reqs)
			reqs = append(reqs, Requirement{
				InventoryItemID: ing.InventoryItemID,
				Name:            ing.ItemName,
				Unit:            unit,
				Needed:          needed,
				Uses:            []Use{use},
			})
		}
	}
	return reqs
}

// appendUse evita repetir la misma línea cuando su receta lista el insumo dos veces.
func appendUse(uses []Use, u Use) []Use {
	if n := len(uses); n > 0 && uses[n-1] == u {
		return uses
	}
	return append(uses, u)
}

// CheckSufficiency compara la demanda con las existencias (normalmente leídas con bloqueo).
// Devuelve todos los faltantes en el orden de reqs; vacío si la venta procede.
func CheckSufficiency(reqs []Requirement, available map[string]decimal.Decimal) []domain.Shortage {
	var shortages []domain.Shortage
	for _, r := range reqs {
		have := available[r.InventoryItemID]
		if have.LessThan(r.Needed) {
			shortages = append(shortages, domain.Shortage{
				InventoryItemID: r.InventoryItemID,
				Ingredient:      r.Name,
				Unit:            r.Unit,
				Needed:          r.Needed,
				Available:       have,
			})
		}
	}
	return shortages
}
