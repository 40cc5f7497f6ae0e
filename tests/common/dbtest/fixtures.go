//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// CreateTestOrganizer inserts an organizer. payable controls whether the row
// carries gateway credentials, which organizer-destined checkouts require.
func CreateTestOrganizer(t *testing.T, db DBLike, email string, payable bool) uuid.UUID {
	t.Helper()

	organizerID := uuid.New()
	ctx := context.Background()

	var accountID, apiKey *string
	if payable {
		a, k := "acct_"+organizerID.String()[:8], "sk_org_"+organizerID.String()[:8]
		accountID, apiKey = &a, &k
	}

	tag, err := db.Exec(ctx,
		"INSERT INTO organizers (id, name, email, gateway_account_id, gateway_api_key) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (email) DO NOTHING",
		organizerID, "Test Organizer", email, accountID, apiKey)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM organizers WHERE email = $1", email).Scan(&organizerID)
	}

	return organizerID
}

type CampaignFixture struct {
	OrganizerID         uuid.UUID
	Title               string
	Status              string
	TotalNumbers        int
	UnitPriceCents      int64
	MaxPerBuyer         *int32
	CommissionGoalCents int64
	CommissionPercent   float64
}

// CreateTestCampaign inserts a campaign and, when it is active, seeds its full
// ticket inventory the same way publishing does.
func CreateTestCampaign(t *testing.T, db DBLike, f CampaignFixture) uuid.UUID {
	t.Helper()

	campaignID := uuid.New()
	ctx := context.Background()

	if f.Title == "" {
		f.Title = "Rifa de teste"
	}
	if f.Status == "" {
		f.Status = "active"
	}

	_, err := db.Exec(ctx, `
		INSERT INTO campaigns (id, organizer_id, title, status, total_numbers, unit_price_cents,
		                       max_per_buyer, commission_goal_cents, commission_percent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		campaignID, f.OrganizerID, f.Title, f.Status, f.TotalNumbers, f.UnitPriceCents,
		f.MaxPerBuyer, f.CommissionGoalCents, f.CommissionPercent)
	require.NoError(t, err)

	if f.Status == "active" {
		_, err = db.Exec(ctx, `
			INSERT INTO tickets (campaign_id, number)
			SELECT $1, n FROM generate_series(1, $2) AS n`,
			campaignID, f.TotalNumbers)
		require.NoError(t, err)
	}

	return campaignID
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables between subtests
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
