package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sakashimaa/accessory-shop/pkg/mylogger"
	"github.com/sakashimaa/accessory-shop/services/customer/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type AddressRepository interface {
	Create(ctx context.Context, address *domain.Address) (*domain.Address, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Address, error)
}

type addressRepo struct {
	pool   *pgxpool.Pool
	tracer trace.Tracer
	logger *zap.Logger
}

func NewAddressRepository(pool *pgxpool.Pool, logger *zap.Logger) AddressRepository {
	return &addressRepo{
		pool:   pool,
		logger: logger,
		tracer: otel.Tracer("repository/address_repo"),
	}
}

func (r *addressRepo) Create(ctx context.Context, address *domain.Address) (*domain.Address, error) {
	ctx, span := r.tracer.Start(ctx, "AddressRepository.Create")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", address.CustomerID),
	)

	query := `
		INSERT INTO addresses (customer_id, line1, line2, city, state, zip_code, phone, disabled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING address_id;
	`

	err := r.pool.QueryRow(
		ctx,
		query,
		address.CustomerID,
		address.Line1,
		address.Line2,
		address.City,
		address.State,
		address.ZipCode,
		address.Phone,
		address.Disabled,
	).Scan(&address.ID)
	if err != nil {
		span.RecordError(err)

		mylogger.Error(
			ctx,
			r.logger,
			"Error creating address",
			zap.Int64("customer_id", address.CustomerID),
			zap.Error(err),
		)

		return nil, fmt.Errorf("error creating address: %w", err)
	}

	return address, nil
}

func (r *addressRepo) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Address, error) {
	ctx, span := r.tracer.Start(ctx, "AddressRepository.ListByCustomer")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", customerID),
	)

	query := `
		SELECT address_id, customer_id, line1, line2, city, state, zip_code, phone, disabled
		FROM addresses
		WHERE customer_id = $1
		ORDER BY address_id;
	`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		span.RecordError(err)

		mylogger.Error(
			ctx,
			r.logger,
			"Error listing addresses",
			zap.Int64("customer_id", customerID),
			zap.Error(err),
		)

		return nil, fmt.Errorf("error selecting addresses: %w", err)
	}
	defer rows.Close()

	addresses := make([]domain.Address, 0)
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(
			&a.ID,
			&a.CustomerID,
			&a.Line1,
			&a.Line2,
			&a.City,
			&a.State,
			&a.ZipCode,
			&a.Phone,
			&a.Disabled,
		); err != nil {
			span.RecordError(err)

			return nil, fmt.Errorf("error scanning address: %w", err)
		}

		addresses = append(addresses, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating addresses: %w", err)
	}

	return addresses, nil
}
