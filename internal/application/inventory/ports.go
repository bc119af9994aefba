package inventory

import (
	"context"

	"github.com/jcastro/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la fila de movimiento y el
// ajuste de stock se apliquen juntos o no se apliquen: un estado parcial
// visible es un bug de corrección, no un resultado aceptable.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
	) error) error
}
