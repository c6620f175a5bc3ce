package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/labstock/internal/domain/entity"
	"github.com/jhoicas/labstock/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que un stock recibido y su movimiento de entrada se escriban juntos o no se escriban.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// ReportLine fila del informe de stock.
type ReportLine struct {
	Stock     *entity.Stock
	Product   *entity.Product
	Warehouse *entity.Warehouse
	Alerts    []string
	Value     string // valorización formateada (precio * unidades)
}

// StockReport datos del informe listo para renderizar.
type StockReport struct {
	Title       string
	GeneratedAt time.Time
	Lines       []ReportLine
	TotalValue  string
}

// ReportGenerator puerto para generar el PDF del informe de stock.
type ReportGenerator interface {
	StockReport(report StockReport) ([]byte, error)
}

// Option configura los casos de uso de inventario.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock fija el reloj usado para fechas por defecto y alertas.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
