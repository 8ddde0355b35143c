package repository

import (
	"context"
	"errors"
	"fmt"

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

type CategoryRepository interface {
	Create(ctx context.Context, name string) (*domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

type categoryRepo struct {
	pool   *pgxpool.Pool
	tracer trace.Tracer
	logger *zap.Logger
}

func NewCategoryRepository(pool *pgxpool.Pool, logger *zap.Logger) CategoryRepository {
	return &categoryRepo{
		pool:   pool,
		logger: logger,
		tracer: otel.Tracer("repository/category_repo"),
	}
}

func (r *categoryRepo) Create(ctx context.Context, name string) (*domain.Category, error) {
	ctx, span := r.tracer.Start(ctx, "CategoryRepository.Create")
	defer span.End()

	span.SetAttributes(
		attribute.String("name", name),
	)

	query := `
		INSERT INTO categories (category_name)
		VALUES ($1)
		RETURNING category_id;
	`

	res := domain.Category{Name: name}
	if err := r.pool.QueryRow(ctx, query, name).Scan(&res.ID); err != nil {
		span.RecordError(err)

		if db.IsUniqueViolation(err, "categories_category_name_key") {
			return nil, ErrCategoryAlreadyExist
		}

		mylogger.Error(
			ctx,
			r.logger,
			"Error creating category",
			zap.String("name", name),
			zap.Error(err),
		)

		return nil, fmt.Errorf("error creating category: %w", err)
	}

	return &res, nil
}

func (r *categoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	ctx, span := r.tracer.Start(ctx, "CategoryRepository.GetByID")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("id", id),
	)

	query := `
		SELECT category_id, category_name
		FROM categories
		WHERE category_id = $1;
	`

	var res domain.Category
	if err := r.pool.QueryRow(ctx, query, id).Scan(&res.ID, &res.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}

		span.RecordError(err)

		mylogger.Error(
			ctx,
			r.logger,
			"Error getting category",
			zap.Int64("id", id),
			zap.Error(err),
		)

		return nil, fmt.Errorf("error getting category: %w", err)
	}

	return &res, nil
}

func (r *categoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	ctx, span := r.tracer.Start(ctx, "CategoryRepository.List")
	defer span.End()

	query := `
		SELECT category_id, category_name
		FROM categories
		ORDER BY category_name;
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		span.RecordError(err)

		mylogger.Error(
			ctx,
			r.logger,
			"Error listing categories",
			zap.Error(err),
		)

		return nil, fmt.Errorf("error selecting categories: %w", err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("error scanning category: %w", err)
		}

		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}
