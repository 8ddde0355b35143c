package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sakashimaa/accessory-shop/pkg/db"
	"github.com/sakashimaa/accessory-shop/pkg/mylogger"
	"github.com/sakashimaa/accessory-shop/services/catalog/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const productCodeConstraint = "products_product_code_key"

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Update(ctx context.Context, id int64, input *domain.UpdateProductInput) error
	DeleteByID(ctx context.Context, id int64) error
}

type productRepo struct {
	pool   *pgxpool.Pool
	tracer trace.Tracer
	logger *zap.Logger
}

func NewProductRepository(pool *pgxpool.Pool, logger *zap.Logger) ProductRepository {
	return &productRepo{
		pool:   pool,
		logger: logger,
		tracer: otel.Tracer("repository/product_repo"),
	}
}

const productSelect = `
		SELECT p.product_id, p.category_id, p.product_code, p.product_name, p.description,
			p.list_price, p.discount_percent, p.date_added, c.category_id, c.category_name
		FROM products p
		JOIN categories c ON c.category_id = p.category_id`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	var c domain.Category

	err := row.Scan(
		&p.ID,
		&p.CategoryID,
		&p.ProductCode,
		&p.ProductName,
		&p.Description,
		&p.ListPrice,
		&p.DiscountPercent,
		&p.DateAdded,
		&c.ID,
		&c.Name,
	)
	if err != nil {
		return nil, err
	}

	p.Category = &c

	return &p, nil
}

func (r *productRepo) Create(ctx context.Context, product *domain.Product) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Create")
	defer span.End()

	span.SetAttributes(
		attribute.String("name", product.ProductName),
		attribute.String("code", product.ProductCode),
	)

	query := `
		INSERT INTO products (category_id, product_code, product_name, description,
			list_price, discount_percent)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING product_id, date_added;
	`

	err := r.pool.QueryRow(
		ctx,
		query,
		product.CategoryID,
		product.ProductCode,
		product.ProductName,
		product.Description,
		product.ListPrice,
		product.DiscountPercent,
	).Scan(&product.ID, &product.DateAdded)
	if err != nil {
		span.RecordError(err)

		switch {
		case db.IsUniqueViolation(err, productCodeConstraint):
			return 0, ErrProductCodeTaken
		case db.IsForeignKeyViolation(err):
			return 0, ErrCategoryNotFound
		}

		mylogger.Error(
			ctx,
			r.logger,
			"Error creating product",
			zap.Error(err),
		)

		return 0, fmt.Errorf("error creating product: %w", err)
	}

	return product.ID, nil
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.GetByID")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("id", id),
	)

	query := productSelect + `
		WHERE p.product_id = $1;
	`

	res, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}

		span.RecordError(err)

		mylogger.Error(
			ctx,
			r.logger,
			"Error get by id",
			zap.Int64("id", id),
			zap.Error(err),
		)

		return nil, fmt.Errorf("error getting product: %w", err)
	}

	return res, nil
}

func (r *productRepo) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.List")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("limit", filter.Limit),
		attribute.Int64("offset", filter.Offset),
		attribute.String("search", filter.Search),
	)

	query := productSelect + ` WHERE TRUE`

	var args []interface{}
	argId := 1

	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND p.category_id = $%d", argId)
		args = append(args, *filter.CategoryID)
		argId++
	}

	if filter.Search != "" {
		query += fmt.Sprintf(" AND (p.product_name ILIKE $%d OR p.description ILIKE $%d)", argId, argId)
		args = append(args, "%"+filter.Search+"%")
		argId++
	}

	if filter.MinPrice != nil {
		query += fmt.Sprintf(" AND p.list_price >= $%d", argId)
		args = append(args, *filter.MinPrice)
		argId++
	}

	if filter.MaxPrice != nil {
		query += fmt.Sprintf(" AND p.list_price <= $%d", argId)
		args = append(args, *filter.MaxPrice)
		argId++
	}

	query += fmt.Sprintf(" ORDER BY p.product_id LIMIT $%d OFFSET $%d", argId, argId+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		span.RecordError(err)

		mylogger.Error(
			ctx,
			r.logger,
			"Error getting products",
			zap.String("search", filter.Search),
			zap.Int64("limit", filter.Limit),
			zap.Int64("offset", filter.Offset),
			zap.Error(err),
		)

		return nil, fmt.Errorf("error selecting products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			span.RecordError(err)

			return nil, fmt.Errorf("error scanning product: %w", err)
		}

		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

func (r *productRepo) Update(ctx context.Context, id int64, input *domain.UpdateProductInput) error {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Update")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("id", id),
	)

	query := `UPDATE products SET `
	var args []interface{}
	argId := 1

	var updates []string

	if input.CategoryID != nil {
		updates = append(updates, fmt.Sprintf("category_id = $%d", argId))
		args = append(args, *input.CategoryID)
		argId++
	}

	if input.ProductCode != nil {
		updates = append(updates, fmt.Sprintf("product_code = $%d", argId))
		args = append(args, *input.ProductCode)
		argId++
	}

	if input.ProductName != nil {
		updates = append(updates, fmt.Sprintf("product_name = $%d", argId))
		args = append(args, *input.ProductName)
		argId++
	}

	if input.Description != nil {
		updates = append(updates, fmt.Sprintf("description = $%d", argId))
		args = append(args, *input.Description)
		argId++
	}

	if input.ListPrice != nil {
		updates = append(updates, fmt.Sprintf("list_price = $%d", argId))
		args = append(args, *input.ListPrice)
		argId++
	}

	if input.DiscountPercent != nil {
		updates = append(updates, fmt.Sprintf("discount_percent = $%d", argId))
		args = append(args, *input.DiscountPercent)
		argId++
	}

	if len(updates) == 0 {
		return nil
	}

	query += strings.Join(updates, ", ")
	query += fmt.Sprintf(" WHERE product_id = $%d", argId)
	args = append(args, id)

	commandTag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		span.RecordError(err)

		switch {
		case db.IsUniqueViolation(err, productCodeConstraint):
			return ErrProductCodeTaken
		case db.IsForeignKeyViolation(err):
			return ErrCategoryNotFound
		}

		mylogger.Error(
			ctx,
			r.logger,
			"Failed to update product",
			zap.Int64("id", id),
			zap.Error(err),
		)

		return fmt.Errorf("error updating product: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (r *productRepo) DeleteByID(ctx context.Context, id int64) error {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.DeleteByID")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("id", id),
	)

	query := `
		DELETE FROM products
		WHERE product_id = $1
	`

	commandTag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		span.RecordError(err)

		mylogger.Error(
			ctx,
			r.logger,
			"Error deleting product by id",
			zap.Int64("id", id),
			zap.Error(err),
		)

		return fmt.Errorf("error deleting product by id: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}
