package source

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/TommyNoLimits/GraphRAG-sub001/internal/schema"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/types"
)

// Fixed projections per source table. Identifiers never come from user
// input; adding a column means extending the matching scan function.
var (
	tenantColumns = []string{"id", "name", "created_at", "updated_at"}

	userColumns = []string{"id", "tenant_id", "email", "username", "created_at", "updated_at"}

	entityColumns = []string{"id", "tenant_id", "investment_entity", "created_at", "updated_at"}

	fundColumns = []string{
		"id", "tenant_id", "fund_name",
		"fund_type", "currency", "target_size", "minimum_investment",
		"management_fee_percent", "carried_interest_percent", "preferred_return_percent",
		"vintage_year", "strategy", "domicile", "administrator", "auditor",
		"status", "managing_entity_id",
		"created_at", "updated_at",
	}

	subscriptionColumns = []string{
		"id", "tenant_id", "fund_id", "entity_id", "user_id",
		"commitment_amount", "status", "subscription_date",
		"created_at", "updated_at",
	}
)

// Columns returns the fixed projection for an entity type.
func Columns(et schema.EntityType) ([]string, error) {
	switch et {
	case schema.EntityTypeTenant:
		return tenantColumns, nil
	case schema.EntityTypeUser:
		return userColumns, nil
	case schema.EntityTypeEntity:
		return entityColumns, nil
	case schema.EntityTypeFund:
		return fundColumns, nil
	case schema.EntityTypeSubscription:
		return subscriptionColumns, nil
	default:
		return nil, types.NewError(types.SOURCE_QUERY_FAILED,
			fmt.Sprintf("no column mapping for entity type %q", et))
	}
}

// CountRows returns the number of rows in the entity's source table.
func (db *DB) CountRows(ctx context.Context, et schema.EntityType) (int, error) {
	table := et.Table()
	if table == "" {
		return 0, types.NewError(types.SOURCE_QUERY_FAILED,
			fmt.Sprintf("no source table for entity type %q", et))
	}

	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
	if err := db.conn.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, types.WrapError(types.SOURCE_QUERY_FAILED,
			fmt.Sprintf("failed to count rows in %s", table), err)
	}
	return count, nil
}

// scanNode scans the current row of rows into the entity struct for et.
// Column order must match the fixed projection for the type.
func scanNode(et schema.EntityType, rows *sql.Rows) (schema.Node, error) {
	switch et {
	case schema.EntityTypeTenant:
		return scanTenant(rows)
	case schema.EntityTypeUser:
		return scanUser(rows)
	case schema.EntityTypeEntity:
		return scanEntity(rows)
	case schema.EntityTypeFund:
		return scanFund(rows)
	case schema.EntityTypeSubscription:
		return scanSubscription(rows)
	default:
		return nil, types.NewError(types.SOURCE_SCAN_FAILED,
			fmt.Sprintf("no scanner for entity type %q", et))
	}
}

func scanTenant(rows *sql.Rows) (*schema.Tenant, error) {
	var t schema.Tenant
	var name sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := rows.Scan(&t.ID, &name, &createdAt, &updatedAt)
	if err != nil {
		return nil, types.WrapError(types.SOURCE_SCAN_FAILED, "failed to scan tenant row", err)
	}

	if name.Valid {
		t.Name = name.String
	}
	t.CreatedAt = nullableTime(createdAt)
	t.UpdatedAt = nullableTime(updatedAt)

	return &t, nil
}

func scanUser(rows *sql.Rows) (*schema.User, error) {
	var u schema.User
	var tenantID, email, username sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := rows.Scan(&u.ID, &tenantID, &email, &username, &createdAt, &updatedAt)
	if err != nil {
		return nil, types.WrapError(types.SOURCE_SCAN_FAILED, "failed to scan user row", err)
	}

	if tenantID.Valid {
		u.TenantID = tenantID.String
	}
	if email.Valid {
		u.Email = email.String
	}
	if username.Valid {
		u.Username = username.String
	}
	u.CreatedAt = nullableTime(createdAt)
	u.UpdatedAt = nullableTime(updatedAt)

	return &u, nil
}

func scanEntity(rows *sql.Rows) (*schema.Entity, error) {
	var e schema.Entity
	var tenantID, name sql.NullString
	var createdAt, updatedAt sql.NullTime

	// Column investment_entity carries the entity's display name.
	err := rows.Scan(&e.ID, &tenantID, &name, &createdAt, &updatedAt)
	if err != nil {
		return nil, types.WrapError(types.SOURCE_SCAN_FAILED, "failed to scan entity row", err)
	}

	if tenantID.Valid {
		e.TenantID = tenantID.String
	}
	if name.Valid {
		e.Name = name.String
	}
	e.CreatedAt = nullableTime(createdAt)
	e.UpdatedAt = nullableTime(updatedAt)

	return &e, nil
}

func scanFund(rows *sql.Rows) (*schema.Fund, error) {
	var f schema.Fund
	var tenantID, fundName sql.NullString
	var fundType, currency sql.NullString
	var targetSize, minimumInvestment sql.NullFloat64
	var managementFee, carriedInterest, preferredReturn sql.NullFloat64
	var vintageYear sql.NullInt64
	var strategy, domicile, administrator, auditor sql.NullString
	var status, managingEntityID sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := rows.Scan(
		&f.ID,
		&tenantID,
		&fundName,
		&fundType,
		&currency,
		&targetSize,
		&minimumInvestment,
		&managementFee,
		&carriedInterest,
		&preferredReturn,
		&vintageYear,
		&strategy,
		&domicile,
		&administrator,
		&auditor,
		&status,
		&managingEntityID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, types.WrapError(types.SOURCE_SCAN_FAILED, "failed to scan fund row", err)
	}

	if tenantID.Valid {
		f.TenantID = tenantID.String
	}
	if fundName.Valid {
		f.FundName = fundName.String
	}
	f.FundType = nullableString(fundType)
	f.Currency = nullableString(currency)
	f.TargetSize = nullableFloat(targetSize)
	f.MinimumInvestment = nullableFloat(minimumInvestment)
	f.ManagementFeePercent = nullableFloat(managementFee)
	f.CarriedInterestPercent = nullableFloat(carriedInterest)
	f.PreferredReturnPercent = nullableFloat(preferredReturn)
	f.VintageYear = nullableInt(vintageYear)
	f.Strategy = nullableString(strategy)
	f.Domicile = nullableString(domicile)
	f.Administrator = nullableString(administrator)
	f.Auditor = nullableString(auditor)
	f.Status = nullableString(status)
	f.ManagingEntityID = nullableString(managingEntityID)
	f.CreatedAt = nullableTime(createdAt)
	f.UpdatedAt = nullableTime(updatedAt)

	return &f, nil
}

func scanSubscription(rows *sql.Rows) (*schema.Subscription, error) {
	var s schema.Subscription
	var tenantID, fundID, entityID, userID, status sql.NullString
	var commitmentAmount sql.NullFloat64
	var subscriptionDate sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err := rows.Scan(
		&s.ID,
		&tenantID,
		&fundID,
		&entityID,
		&userID,
		&commitmentAmount,
		&status,
		&subscriptionDate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, types.WrapError(types.SOURCE_SCAN_FAILED, "failed to scan subscription row", err)
	}

	if tenantID.Valid {
		s.TenantID = tenantID.String
	}
	if fundID.Valid {
		s.FundID = fundID.String
	}
	if entityID.Valid {
		s.EntityID = entityID.String
	}
	if userID.Valid {
		s.UserID = userID.String
	}
	if status.Valid {
		s.Status = status.String
	}
	s.CommitmentAmount = nullableFloat(commitmentAmount)
	s.SubscriptionDate = nullableTime(subscriptionDate)
	s.CreatedAt = nullableTime(createdAt)
	s.UpdatedAt = nullableTime(updatedAt)

	return &s, nil
}

// nullableString converts sql.NullString to a pointer, nil when NULL.
func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// nullableFloat converts sql.NullFloat64 to a pointer, nil when NULL.
func nullableFloat(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}

// nullableInt converts sql.NullInt64 to an int pointer, nil when NULL.
func nullableInt(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	i := int(ni.Int64)
	return &i
}

// nullableTime converts sql.NullTime to a pointer, nil when NULL.
func nullableTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
