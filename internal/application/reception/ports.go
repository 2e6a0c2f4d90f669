package reception

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dasava11/santuario-api-sub002/internal/domain/entity"
	"github.com/dasava11/santuario-api-sub002/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con los repositorios que el
// workflow de recepciones necesita atados a esa tx. El procesamiento completo
// de una recepción ocurre dentro de una sola llamada a RunReception: si una
// línea falla, ningún cambio de stock de esa corrida persiste.
type TxRunner interface {
	RunReception(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		receptionRepo repository.ReceptionRepository,
	) error) error
}

// VoucherLine línea del comprobante de recepción para el generador PDF.
type VoucherLine struct {
	SKU            string
	ProductName    string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal
}

// VoucherGenerator genera el comprobante PDF de una recepción.
type VoucherGenerator interface {
	GenerateReceptionVoucher(ctx context.Context, reception *entity.Reception, provider *entity.Provider, lines []VoucherLine) ([]byte, error)
}
