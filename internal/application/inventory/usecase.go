package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/tienda-stock-api/internal/domain"
	"github.com/jhoicas/tienda-stock-api/internal/domain/entity"
	domaininv "github.com/jhoicas/tienda-stock-api/internal/domain/inventory"
	"github.com/jhoicas/tienda-stock-api/internal/domain/repository"
)

// ApplyMovementUseCase es el motor de movimientos: valida la petición, aplica
// los nuevos totales sobre producto y variante, registra la entrada en el
// libro y señala stock bajo, todo dentro de una transacción con bloqueo de
// fila (SELECT FOR UPDATE) y Commit/Rollback.
type ApplyMovementUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	variantRepo   repository.VariantRepository
	confirmations *ConfirmationStore
}

// NewApplyMovementUseCase construye el motor.
func NewApplyMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
	confirmations *ConfirmationStore,
) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		variantRepo:   variantRepo,
		confirmations: confirmations,
	}
}

// MovementInput entrada del motor. SizeID nil significa movimiento solo sobre
// el total del producto. ConfirmToken solo aplica a ventas: vacío en la
// primera invocación, con el token emitido en la segunda.
type MovementInput struct {
	ProductID    int64
	SizeID       *int64
	Tipo         string
	Cantidad     int
	Usuario      string
	ConfirmToken string
}

// LowStockAlert carga útil para el colaborador de notificaciones/dashboard.
type LowStockAlert struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	NewStock    int    `json:"new_stock"`
	Threshold   int    `json:"threshold"`
}

// MovementResult resultado de una invocación del motor.
// Pending=true indica la primera fase de una venta: no se escribió nada y el
// caller debe reinvocar con ConfirmToken.
type MovementResult struct {
	Pending         bool
	ConfirmToken    string
	TransactionID   string
	MovementID      int64
	NewStock        int
	NewVariantStock *int
	LowStock        bool
	Alert           *LowStockAlert
}

// ApplyMovement aplica un movimiento de stock.
//
// Orden de validación (sin escrituras parciales antes de pasar todas):
//  1. cantidad entero positivo
//  2. producto existe
//  3. variante existe (si se indicó talla)
//  4. nuevo total >= 0
//  5. nuevo stock de variante >= 0
//
// Las ventas sin token válido devuelven un resultado Pending con el token a
// confirmar; devolución y reposición se ejecutan directamente.
func (uc *ApplyMovementUseCase) ApplyMovement(ctx context.Context, input MovementInput) (*MovementResult, error) {
	if input.Cantidad <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if !entity.ValidMovementType(input.Tipo) {
		return nil, domain.ErrInvalidInput
	}

	if input.Tipo == entity.MovementTypeVenta {
		if input.ConfirmToken == "" {
			return uc.requestConfirmation(input)
		}
		if !uc.confirmations.Redeem(input.ConfirmToken, input.ProductID, input.SizeID, input.Cantidad) {
			return nil, domain.ErrInvalidConfirmation
		}
	}
	return uc.apply(ctx, input)
}

// ApplyConfirmed salta la fase de confirmación. Lo usa el colaborador de
// checkout: el cliente ya confirmó la orden, la venta por línea no necesita
// revalidación humana.
func (uc *ApplyMovementUseCase) ApplyConfirmed(ctx context.Context, input MovementInput) (*MovementResult, error) {
	if input.Cantidad <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if !entity.ValidMovementType(input.Tipo) {
		return nil, domain.ErrInvalidInput
	}
	return uc.apply(ctx, input)
}

// OrderLine una línea de orden para la reserva de stock del checkout.
type OrderLine struct {
	ProductID int64
	SizeID    *int64
	Cantidad  int
}

// ReserveForOrder aplica una venta confirmada por cada línea de la orden, en
// orden. Cada línea es su propia transacción: si una falla, las anteriores ya
// quedaron aplicadas y registradas; el checkout decide si compensa con
// devoluciones o aborta la orden.
func (uc *ApplyMovementUseCase) ReserveForOrder(ctx context.Context, lines []OrderLine, usuario string) ([]*MovementResult, error) {
	results := make([]*MovementResult, 0, len(lines))
	for _, line := range lines {
		res, err := uc.ApplyConfirmed(ctx, MovementInput{
			ProductID: line.ProductID,
			SizeID:    line.SizeID,
			Tipo:      entity.MovementTypeVenta,
			Cantidad:  line.Cantidad,
			Usuario:   usuario,
		})
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// requestConfirmation valida existencia con lecturas fuera de transacción y
// emite el token. No escribe nada: el chequeo de stock definitivo ocurre al
// confirmar, con la fila bloqueada.
func (uc *ApplyMovementUseCase) requestConfirmation(input MovementInput) (*MovementResult, error) {
	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if input.SizeID != nil {
		variant, err := uc.variantRepo.Get(input.ProductID, *input.SizeID)
		if err != nil {
			return nil, err
		}
		if variant == nil {
			return nil, domain.ErrVariantNotFound
		}
	}
	token := uc.confirmations.Issue(input.ProductID, input.SizeID, input.Cantidad)
	return &MovementResult{Pending: true, ConfirmToken: token}, nil
}

// apply ejecuta las tres escrituras dentro de una transacción:
// producto -> variante -> libro, en ese orden.
func (uc *ApplyMovementUseCase) apply(ctx context.Context, input MovementInput) (*MovementResult, error) {
	now := time.Now()
	txID := uuid.New().String()
	var result *MovementResult

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		variantRepo repository.VariantRepository,
		movRepo repository.MovementRepository,
	) error {
		// Bloquea la fila del producto para serializar movimientos concurrentes
		product, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}

		var variant *entity.Variant
		if input.SizeID != nil {
			variant, err = variantRepo.GetForUpdate(input.ProductID, *input.SizeID)
			if err != nil {
				return err
			}
			if variant == nil {
				return domain.ErrVariantNotFound
			}
		}

		delta := entity.MovementDelta(input.Tipo, input.Cantidad)
		newStock := product.Stock + delta
		if newStock < 0 {
			return domain.ErrInsufficientStock
		}
		var newVariantStock *int
		if variant != nil {
			nv := variant.Stock + delta
			if nv < 0 {
				return domain.ErrInsufficientVariantStock
			}
			newVariantStock = &nv
		}

		if err := productRepo.UpdateStock(product.ID, newStock, product.StockMinimo); err != nil {
			return err
		}
		if variant != nil {
			if err := variantRepo.UpdateStock(product.ID, variant.SizeID, *newVariantStock); err != nil {
				return err
			}
		}

		sizeLabel := ""
		if variant != nil {
			sizeLabel = variant.SizeLabel
		}
		mov := &entity.Movement{
			TransactionID: txID,
			ProductID:     product.ID,
			SizeID:        input.SizeID,
			Etiqueta:      domaininv.ResolveLabel(product.Name, sizeLabel),
			Tipo:          input.Tipo,
			Cantidad:      input.Cantidad,
			Fecha:         now,
			Usuario:       input.Usuario,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}

		result = &MovementResult{
			TransactionID:   txID,
			MovementID:      mov.ID,
			NewStock:        newStock,
			NewVariantStock: newVariantStock,
			LowStock:        newStock <= product.StockMinimo,
		}
		if result.LowStock {
			result.Alert = &LowStockAlert{
				ProductID:   product.ID,
				ProductName: product.Name,
				NewStock:    newStock,
				Threshold:   product.StockMinimo,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
