package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/labstock/internal/domain"
	"github.com/jhoicas/labstock/internal/domain/entity"
	"github.com/jhoicas/labstock/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, sku, name, description, product_type, price, supplier, supplier_ref,
	manufacturer, manufacturer_ref, critical, created_at, updated_at`

// Create persiste un nuevo producto y completa ID y fechas.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (sku, name, description, product_type, price, supplier, supplier_ref, manufacturer, manufacturer_ref, critical)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		p.SKU, p.Name, p.Description, productTypeArg(p.Type), p.Price,
		p.Supplier, p.SupplierRef, p.Manufacturer, p.ManufacturerRef, p.Critical,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return mapWriteErr("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetBySKU obtiene un producto por su referencia interna.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// Update actualiza un producto existente.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET sku = $2, name = $3, description = $4, product_type = $5, price = $6,
			supplier = $7, supplier_ref = $8, manufacturer = $9, manufacturer_ref = $10, critical = $11,
			updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		p.ID, p.SKU, p.Name, p.Description, productTypeArg(p.Type), p.Price,
		p.Supplier, p.SupplierRef, p.Manufacturer, p.ManufacturerRef, p.Critical,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		return mapWriteErr("update product", err)
	}
	return nil
}

// List lista productos con filtros opcionales y paginación.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE ($1::text IS NULL OR product_type = $1) AND ($2::boolean IS NULL OR critical = $2)
		ORDER BY id LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, productTypeArg(f.Type), f.Critical, limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := []*entity.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto por ID; ON DELETE CASCADE borra sus stocks y movimientos.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return affectedOne(tag)
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p   entity.Product
		typ *string
	)
	if err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &typ, &p.Price, &p.Supplier, &p.SupplierRef,
		&p.Manufacturer, &p.ManufacturerRef, &p.Critical, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if typ != nil {
		t, err := entity.ParseProductType(*typ)
		if err != nil {
			return nil, err
		}
		p.Type = &t
	}
	return &p, nil
}

func productTypeArg(t *entity.ProductType) *string {
	if t == nil {
		return nil
	}
	s := string(*t)
	return &s
}
