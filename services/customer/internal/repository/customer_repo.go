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
	"github.com/sakashimaa/accessory-shop/services/customer/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const emailUniqueConstraint = "customers_email_address_key"

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	List(ctx context.Context, limit, offset int64) ([]domain.Customer, error)
	Update(ctx context.Context, id int64, input *domain.UpdateCustomerInput) error
	DeleteByID(ctx context.Context, id int64) error
}

type customerRepo struct {
	pool   *pgxpool.Pool
	tracer trace.Tracer
	logger *zap.Logger
}

func NewCustomerRepository(pool *pgxpool.Pool, logger *zap.Logger) CustomerRepository {
	return &customerRepo{
		pool:   pool,
		logger: logger,
		tracer: otel.Tracer("repository/customer_repo"),
	}
}

const customerColumns = `customer_id, email_address, password, first_name, last_name,
		shipping_address_id, billing_address_id`

func scanCustomer(row pgx.Row, c *domain.Customer) error {
	return row.Scan(
		&c.ID,
		&c.EmailAddress,
		&c.PasswordHash,
		&c.FirstName,
		&c.LastName,
		&c.ShippingAddressID,
		&c.BillingAddressID,
	)
}

func (r *customerRepo) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	ctx, span := r.tracer.Start(ctx, "CustomerRepository.Create")
	defer span.End()

	span.SetAttributes(
		attribute.String("email", customer.EmailAddress),
	)

	query := `
		INSERT INTO customers (email_address, password, first_name, last_name,
			shipping_address_id, billing_address_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING customer_id;
	`

	err := r.pool.QueryRow(
		ctx,
		query,
		customer.EmailAddress,
		customer.PasswordHash,
		customer.FirstName,
		customer.LastName,
		customer.ShippingAddressID,
		customer.BillingAddressID,
	).Scan(&customer.ID)
	if err != nil {
		span.RecordError(err)

		if db.IsUniqueViolation(err, emailUniqueConstraint) {
			return nil, ErrCustomerAlreadyExists
		}

		mylogger.Error(
			ctx,
			r.logger,
			"Error creating customer",
			zap.String("email", customer.EmailAddress),
			zap.Error(err),
		)

		return nil, fmt.Errorf("error creating customer: %w", err)
	}

	return customer, nil
}

func (r *customerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	ctx, span := r.tracer.Start(ctx, "CustomerRepository.GetByID")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("id", id),
	)

	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE customer_id = $1;
	`

	var res domain.Customer
	if err := scanCustomer(r.pool.QueryRow(ctx, query, id), &res); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}

		span.RecordError(err)

		mylogger.Error(
			ctx,
			r.logger,
			"Failed to find customer by id",
			zap.Int64("customer_id", id),
			zap.Error(err),
		)

		return nil, fmt.Errorf("error finding customer: %w", err)
	}

	return &res, nil
}

func (r *customerRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	ctx, span := r.tracer.Start(ctx, "CustomerRepository.GetByEmail")
	defer span.End()

	span.SetAttributes(
		attribute.String("email", email),
	)

	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE email_address = $1;
	`

	var res domain.Customer
	if err := scanCustomer(r.pool.QueryRow(ctx, query, email), &res); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}

		span.RecordError(err)

		mylogger.Error(
			ctx,
			r.logger,
			"Failed to find customer by email",
			zap.String("email", email),
			zap.Error(err),
		)

		return nil, fmt.Errorf("error finding customer: %w", err)
	}

	return &res, nil
}

func (r *customerRepo) List(ctx context.Context, limit, offset int64) ([]domain.Customer, error) {
	ctx, span := r.tracer.Start(ctx, "CustomerRepository.List")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("limit", limit),
		attribute.Int64("offset", offset),
	)

	query := `
		SELECT ` + customerColumns + `
		FROM customers
		ORDER BY customer_id
		LIMIT $1 OFFSET $2;
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		span.RecordError(err)

		mylogger.Error(
			ctx,
			r.logger,
			"Error listing customers",
			zap.Int64("limit", limit),
			zap.Int64("offset", offset),
			zap.Error(err),
		)

		return nil, fmt.Errorf("error selecting customers: %w", err)
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0)
	for rows.Next() {
		var c domain.Customer
		if err := scanCustomer(rows, &c); err != nil {
			span.RecordError(err)

			return nil, fmt.Errorf("error scanning customer: %w", err)
		}

		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		span.RecordError(err)

		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}

func (r *customerRepo) Update(ctx context.Context, id int64, input *domain.UpdateCustomerInput) error {
	ctx, span := r.tracer.Start(ctx, "CustomerRepository.Update")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("id", id),
	)

	query := `UPDATE customers SET `
	var args []interface{}
	argId := 1

	var updates []string

	if input.EmailAddress != nil {
		updates = append(updates, fmt.Sprintf("email_address = $%d", argId))
		args = append(args, *input.EmailAddress)
		argId++
	}

	if input.Password != nil {
		updates = append(updates, fmt.Sprintf("password = $%d", argId))
		args = append(args, *input.Password)
		argId++
	}

	if input.FirstName != nil {
		updates = append(updates, fmt.Sprintf("first_name = $%d", argId))
		args = append(args, *input.FirstName)
		argId++
	}

	if input.LastName != nil {
		updates = append(updates, fmt.Sprintf("last_name = $%d", argId))
		args = append(args, *input.LastName)
		argId++
	}

	if input.ShippingAddressID != nil {
		updates = append(updates, fmt.Sprintf("shipping_address_id = $%d", argId))
		args = append(args, *input.ShippingAddressID)
		argId++
	}

	if input.BillingAddressID != nil {
		updates = append(updates, fmt.Sprintf("billing_address_id = $%d", argId))
		args = append(args, *input.BillingAddressID)
		argId++
	}

	if len(updates) == 0 {
		return nil
	}

	query += strings.Join(updates, ", ")
	query += fmt.Sprintf(" WHERE customer_id = $%d", argId)
	args = append(args, id)

	commandTag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		span.RecordError(err)

		if db.IsUniqueViolation(err, emailUniqueConstraint) {
			return ErrCustomerAlreadyExists
		}

		mylogger.Error(
			ctx,
			r.logger,
			"Failed to update customer",
			zap.Int64("id", id),
			zap.Error(err),
		)

		return fmt.Errorf("error updating customer: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

func (r *customerRepo) DeleteByID(ctx context.Context, id int64) error {
	ctx, span := r.tracer.Start(ctx, "CustomerRepository.DeleteByID")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("id", id),
	)

	query := `
		DELETE FROM customers
		WHERE customer_id = $1
	`

	commandTag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		span.RecordError(err)

		mylogger.Error(
			ctx,
			r.logger,
			"Error deleting customer by id",
			zap.Int64("id", id),
			zap.Error(err),
		)

		return fmt.Errorf("error deleting customer by id: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}

	return nil
}
