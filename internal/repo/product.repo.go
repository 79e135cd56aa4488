package repo

import (
	"context"
	"fmt"

	"lavka-stub/internal/database"
	"lavka-stub/internal/domain"
)

type ProductRepo interface {
	// UpsertProduct stores the mapping and reports whether a new row was
	// created (false means an existing product_id was updated).
	UpsertProduct(ctx context.Context, product domain.Product) (bool, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

type productRepo struct {
	db *database.DB
}

func NewProductRepo(db *database.DB) ProductRepo {
	return &productRepo{db: db}
}

func (r *productRepo) UpsertProduct(ctx context.Context, product domain.Product) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO products (product_id, external_id) VALUES ($1, $2) ON CONFLICT (product_id) DO NOTHING",
		product.ProductID, product.ExternalID,
	)
	if err != nil {
		return false, fmt.Errorf("insert product %s: %w", product.ProductID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return true, nil
	}

	_, err = r.db.ExecContext(ctx,
		"UPDATE products SET external_id = $2 WHERE product_id = $1",
		product.ProductID, product.ExternalID,
	)
	if err != nil {
		return false, fmt.Errorf("update product %s: %w", product.ProductID, err)
	}
	return false, nil
}

func (r *productRepo) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT product_id, external_id FROM products ORDER BY product_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ProductID, &p.ExternalID); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
