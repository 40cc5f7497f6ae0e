package repository

import (
	"context"

	"rifa-hub/internal/infra"
	"rifa-hub/internal/infra/db"
	"rifa-hub/internal/pkg/pgconv"
	"rifa-hub/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OrganizerRepository struct {
	dbtx db.DBTX
}

func NewOrganizerRepository(dbtx db.DBTX) *OrganizerRepository {
	return &OrganizerRepository{dbtx: dbtx}
}

func (r *OrganizerRepository) FindByID(ctx context.Context, id uuid.UUID) (*shared.OrganizerSnapshot, error) {
	var (
		name, email      string
		gatewayAccountID pgtype.Text
		gatewayAPIKey    pgtype.Text
	)

	err := r.dbtx.QueryRow(ctx, `
		SELECT name, email, gateway_account_id, gateway_api_key
		FROM organizers
		WHERE id = $1`, id).
		Scan(&name, &email, &gatewayAccountID, &gatewayAPIKey)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("organizer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find organizer", err)
	}

	return &shared.OrganizerSnapshot{
		ID:               id,
		Name:             name,
		Email:            email,
		GatewayAccountID: pgconv.StringPtrFromPgtype(gatewayAccountID),
		GatewayAPIKey:    pgconv.StringPtrFromPgtype(gatewayAPIKey),
	}, nil
}
