// Package sales coordina la deducción de inventario por receta: valida la demanda combinada
// de todas las líneas contra existencias bloqueadas y aplica todos los descuentos en una sola
// transacción, o ninguno.
package sales

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafe-pos-api/internal/application/activity"
	appinventory "github.com/jhoicas/cafe-pos-api/internal/application/inventory"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/inventory"
)

// Metrics registra el resultado de cada venta.
type Metrics interface {
	SaleObserved(channel string, status string, elapsed time.Duration)
}

type nopMetrics struct{}

func (nopMetrics) SaleObserved(string, string, time.Duration) {}

// StatusFailed etiqueta de métricas para ventas con error fatal.
const StatusFailed = "failed"

// Coordinator ejecuta ventas atómicas.
type Coordinator struct {
	txRunner appinventory.TxRunner
	ledger   *appinventory.StockLedger
	activity activity.Logger
	metrics  Metrics
}

// NewCoordinator construye el coordinador. activity y metrics pueden ser nil.
func NewCoordinator(txRunner appinventory.TxRunner, ledger *appinventory.StockLedger, activityLog activity.Logger, metrics Metrics) *Coordinator {
	if activityLog == nil {
		activityLog = activity.Nop{}
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Coordinator{txRunner: txRunner, ledger: ledger, activity: activityLog, metrics: metrics}
}

// ProcessSale vende quantity unidades de un producto (venta manual del admin).
// Un producto sin receta se vende sin efecto en inventario.
func (c *Coordinator) ProcessSale(ctx context.Context, productID string, quantity int, sc SaleContext) (*SaleResult, error) {
	if sc.ReferenceID == "" {
		sc.ReferenceID = productID
	}
	res, err := c.run(ctx, []Line{{ProductID: productID, Quantity: quantity}}, sc)
	if err != nil || !res.Committed() {
		return res, err
	}
	line := res.Lines[0]
	_ = c.activity.Log(ctx, activity.Entry{
		Action:      activity.ActionSell,
		EntityType:  activity.EntityProduct,
		EntityID:    line.Product.ID,
		EntityName:  line.Product.Name,
		Description: fmt.Sprintf("Sold %dx %s", line.Quantity, line.Product.Name),
		Metadata: map[string]any{
			"quantity":             line.Quantity,
			"channel":              sc.Channel,
			"ingredients_deducted": DeductionsMetadata(res.Deductions),
		},
		Actor: sc.Actor,
	})
	return res, nil
}

// ProcessOrder aplica todas las líneas de una orden como una sola unidad atómica.
func (c *Coordinator) ProcessOrder(ctx context.Context, lines []Line, sc SaleContext) (*SaleResult, error) {
	res, err := c.run(ctx, lines, sc)
	if err != nil || !res.Committed() {
		return res, err
	}
	_ = c.activity.Log(ctx, activity.Entry{
		Action:      activity.ActionSell,
		EntityType:  activity.EntityOrder,
		EntityID:    sc.ReferenceID,
		EntityName:  sc.OrderNumber,
		Description: SummarizeLines(res.Lines),
		Metadata: map[string]any{
			"channel":              sc.Channel,
			"ingredients_deducted": DeductionsMetadata(res.Deductions),
		},
		Actor: sc.Actor,
	})
	return res, nil
}

func (c *Coordinator) run(ctx context.Context, lines []Line, sc SaleContext) (*SaleResult, error) {
	start := time.Now()
	var res *SaleResult
	err := c.txRunner.RunSale(ctx, func(repos appinventory.TxRepos) error {
		r, err := c.DeductInTx(ctx, repos, lines, sc)
		if err != nil {
			return err
		}
		res = r
		if !r.Committed() {
			return ErrRejected
		}
		return nil
	})
	switch {
	case errors.Is(err, ErrRejected):
		c.metrics.SaleObserved(sc.Channel, string(StatusRejected), time.Since(start))
		return res, nil
	case err != nil:
		c.metrics.SaleObserved(sc.Channel, StatusFailed, time.Since(start))
		return nil, fatal(err)
	}
	c.metrics.SaleObserved(sc.Channel, string(StatusCommitted), time.Since(start))
	return res, nil
}

// DeductInTx ejecuta validación y aplicación con los repos de la transacción del caller.
// Un rechazo se devuelve en el resultado sin escrituras; el caller debe hacer Rollback de
// cualquier otra escritura propia (p. ej. retornando ErrRejected). Un error es siempre fatal
// y envuelve domain.ErrTransactionFailed.
func (c *Coordinator) DeductInTx(ctx context.Context, repos appinventory.TxRepos, lines []Line, sc SaleContext) (*SaleResult, error) {
	if len(lines) == 0 {
		return rejected(RejectInvalidQuantity, "", "la venta no tiene líneas"), nil
	}

	// ── 1. Validar: productos y recetas ───────────────────────────────────────
	resolved := make([]ResolvedLine, 0, len(lines))
	demand := make([]inventory.DemandLine, 0, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			return rejected(RejectInvalidQuantity, l.ProductID, "la cantidad debe ser un entero positivo"), nil
		}
		product, err := repos.Products.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, fatal(err)
		}
		if product == nil || product.IsArchived {
			return rejected(RejectNotFound, l.ProductID, "producto "+l.ProductID+" no encontrado"), nil
		}
		recipe, err := repos.Recipes.GetByProductID(ctx, l.ProductID)
		if err != nil {
			return nil, fatal(err)
		}
		resolved = append(resolved, ResolvedLine{Product: product, Quantity: l.Quantity})
		demand = append(demand, inventory.DemandLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    l.Quantity,
			Recipe:      recipe,
		})
	}

	// ── 2. Bloquear insumos en orden ascendente de ID ─────────────────────────
	reqs := inventory.AggregateDemand(demand)
	ids := make([]string, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.InventoryItemID)
	}
	sort.Strings(ids)
	available := make(map[string]decimal.Decimal, len(ids))
	locked := make(map[string]*entity.InventoryItem, len(ids))
	for _, id := range ids {
		item, err := repos.Items.GetForUpdate(ctx, id)
		if err != nil {
			return nil, fatal(err)
		}
		if item == nil {
			return rejected(RejectNotFound, "", "insumo "+id+" no encontrado"), nil
		}
		available[id] = item.Quantity
		locked[id] = item
	}
	for i := range reqs {
		item := locked[reqs[i].InventoryItemID]
		reqs[i].Name = item.Name
		reqs[i].Unit = item.Unit
	}

	// Disponibilidad por línea con las existencias bloqueadas.
	for i, dl := range demand {
		if dl.Recipe != nil {
			for j := range dl.Recipe.Ingredients {
				ing := &dl.Recipe.Ingredients[j]
				if q, ok := available[ing.InventoryItemID]; ok {
					ing.Available = q
				}
			}
		}
		resolved[i].Availability = inventory.ComputeAvailability(dl.Recipe)
	}

	// ── 3. Comparar demanda combinada ─────────────────────────────────────────
	if shortages := inventory.CheckSufficiency(reqs, available); len(shortages) > 0 {
		p := shortages[0]
		return &SaleResult{
			Status: StatusRejected,
			Lines:  resolved,
			Rejection: &Rejection{
				Code: RejectInsufficientStock,
				Message: fmt.Sprintf("Insufficient %s. Need %s %s, have %s %s",
					p.Ingredient, p.Needed.String(), p.Unit, p.Available.String(), p.Unit),
				Shortages: shortages,
			},
		}, nil
	}

	// ── 4. Aplicar ────────────────────────────────────────────────────────────
	deductions := make([]Deduction, 0, len(reqs))
	for _, r := range reqs {
		reason := movementReason(sc, r.Uses)
		mov, item, err := c.ledger.ApplyInTx(ctx, repos.Items, repos.Movements, r.InventoryItemID, r.Needed.Neg(), reason, sc.ReferenceID)
		if err != nil {
			return nil, fatal(err)
		}
		deductions = append(deductions, Deduction{
			InventoryItemID: r.InventoryItemID,
			Ingredient:      r.Name,
			Unit:            r.Unit,
			Quantity:        r.Needed,
			Remaining:       item.Quantity,
			MovementID:      mov.ID,
			Reason:          reason,
		})
	}
	return &SaleResult{Status: StatusCommitted, Lines: resolved, Deductions: deductions}, nil
}

// movementReason arma el motivo del movimiento: "Sale: 2x Latte" o
// "Order #ORD-123456: 2x Latte, 1x Mocha" con las líneas que consumen el insumo.
func movementReason(sc SaleContext, uses []inventory.Use) string {
	parts := make([]string, 0, len(uses))
	for _, u := range uses {
		parts = append(parts, fmt.Sprintf("%dx %s", u.Quantity, u.ProductName))
	}
	if sc.OrderNumber != "" {
		return "Order #" + sc.OrderNumber + ": " + strings.Join(parts, ", ")
	}
	return "Sale: " + strings.Join(parts, ", ")
}

// SummarizeLines describe las líneas como "2x Latte, 1x Mocha".
func SummarizeLines(lines []ResolvedLine) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, fmt.Sprintf("%dx %s", l.Quantity, l.Product.Name))
	}
	return strings.Join(parts, ", ")
}

// DeductionsMetadata arma el payload de auditoría de los descuentos.
func DeductionsMetadata(ds []Deduction) []map[string]any {
	out := make([]map[string]any, 0, len(ds))
	for _, d := range ds {
		out = append(out, map[string]any{
			"inventory_item_id": d.InventoryItemID,
			"ingredient":        d.Ingredient,
			"unit":              d.Unit,
			"deducted":          d.Quantity.String(),
			"remaining":         d.Remaining.String(),
		})
	}
	return out
}
