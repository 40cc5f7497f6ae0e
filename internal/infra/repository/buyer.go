package repository

import (
	"context"

	"rifa-hub/internal/domain/buyer"
	"rifa-hub/internal/infra"
	"rifa-hub/internal/infra/db"
	"rifa-hub/internal/pkg/pgconv"
	"rifa-hub/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BuyerRepository struct {
	dbtx db.DBTX
}

func NewBuyerRepository(dbtx db.DBTX) *BuyerRepository {
	return &BuyerRepository{dbtx: dbtx}
}

// Upsert reuses the buyer row identified by (campaign_id, whatsapp),
// refreshing the display name and filling in email when newly provided.
func (r *BuyerRepository) Upsert(ctx context.Context, campaignID uuid.UUID, contact buyer.Contact) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.dbtx.QueryRow(ctx, `
		INSERT INTO buyers (id, campaign_id, name, whatsapp, email)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (campaign_id, whatsapp)
		DO UPDATE SET
			name = EXCLUDED.name,
			email = COALESCE(EXCLUDED.email, buyers.email)
		RETURNING id`,
		uuid.New(), campaignID, contact.Name(), contact.WhatsApp(),
		pgconv.StringPtrToPgtype(contact.Email())).
		Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to upsert buyer", err)
	}
	return id, nil
}

func (r *BuyerRepository) FindByID(ctx context.Context, id uuid.UUID) (*shared.BuyerSnapshot, error) {
	var (
		name, whatsapp string
		email          pgtype.Text
	)
	err := r.dbtx.QueryRow(ctx, `
		SELECT name, whatsapp, email FROM buyers WHERE id = $1`, id).
		Scan(&name, &whatsapp, &email)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("buyer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find buyer", err)
	}

	return &shared.BuyerSnapshot{
		ID:       id,
		Name:     name,
		WhatsApp: whatsapp,
		Email:    pgconv.StringPtrFromPgtype(email),
	}, nil
}
