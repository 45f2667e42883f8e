package repository

import (
	"context"
	"fmt"
	"net/mail"

	"storefront-backend/internal/apperr"
	"storefront-backend/internal/client"
	"storefront-backend/internal/model"
)

type UpsertCustomerParams struct {
	Email     string `json:"p_email"`
	FirstName string `json:"p_first_name"`
	LastName  string `json:"p_last_name"`
	Phone     string `json:"p_phone"`
}

type CustomerRepository interface {
	// Upsert creates or finds the customer keyed by email and returns its id.
	Upsert(ctx context.Context, params *UpsertCustomerParams) (int64, error)
	FindByEmail(ctx context.Context, email string) (*model.Customer, error)
}

type customerRepoImpl struct {
	data client.DataClient
}

func NewCustomerRepository(data client.DataClient) CustomerRepository {
	return &customerRepoImpl{
		data: data,
	}
}

// Upsert invokes the upsert_customer routine. The store's unique constraint
// on email is the serialization point: when two first-time inserts race, the
// loser sees a constraint violation and retries the lookup instead of
// failing.
func (r *customerRepoImpl) Upsert(ctx context.Context, params *UpsertCustomerParams) (int64, error) {
	if _, err := mail.ParseAddress(params.Email); err != nil {
		return 0, apperr.E(apperr.KindConstraintViolation, "malformed customer email",
			fmt.Errorf("parse email %q: %w", params.Email, err))
	}

	var id int64
	err := r.data.RPC(ctx, "upsert_customer", params, &id)
	if err == nil {
		return id, nil
	}
	if !apperr.Is(err, apperr.KindConstraintViolation) {
		return 0, fmt.Errorf("upsert customer: %w", err)
	}

	// lost the insert race: the row exists now, fetch it
	customer, lookupErr := r.FindByEmail(ctx, params.Email)
	if lookupErr != nil {
		return 0, fmt.Errorf("retry lookup after constraint violation: %w", lookupErr)
	}
	return customer.ID, nil
}

func (r *customerRepoImpl) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	var rows []model.Customer
	err := r.data.Select(ctx, "customers", client.Filter{"email": email}, &rows)
	if err != nil {
		return nil, fmt.Errorf("select customer by email: %w", err)
	}
	if len(rows) == 0 {
		return nil, apperr.E(apperr.KindNotFound, "customer not found", nil)
	}
	return &rows[0], nil
}
