package schema

import (
	"fmt"
	"time"
)

// Node label constants for Cypher queries
const (
	// LabelTenant is the graph label for Tenant nodes
	LabelTenant = "Tenant"
	// LabelUser is the graph label for User nodes
	LabelUser = "User"
	// LabelEntity is the graph label for investment entity nodes
	LabelEntity = "Entity"
	// LabelFund is the graph label for Fund nodes
	LabelFund = "Fund"
	// LabelSubscription is the graph label for Subscription nodes
	LabelSubscription = "Subscription"
)

// EntityType identifies one synchronized entity type. It binds together the
// source table, the graph label, and the tenant-scoped name property (if any)
// so pipelines, queries, and the CLI all agree on the mapping.
type EntityType string

const (
	EntityTypeTenant       EntityType = "tenant"
	EntityTypeUser         EntityType = "user"
	EntityTypeEntity       EntityType = "entity"
	EntityTypeFund         EntityType = "fund"
	EntityTypeSubscription EntityType = "subscription"
)

// AllEntityTypes returns every entity type in canonical sync order.
// Tenants come first so membership targets exist before scoped nodes.
func AllEntityTypes() []EntityType {
	return []EntityType{
		EntityTypeTenant,
		EntityTypeUser,
		EntityTypeEntity,
		EntityTypeFund,
		EntityTypeSubscription,
	}
}

// ParseEntityType converts a string (CLI flag, config entry) to an EntityType.
func ParseEntityType(s string) (EntityType, error) {
	et := EntityType(s)
	if err := et.Validate(); err != nil {
		return "", err
	}
	return et, nil
}

// String returns the string representation of EntityType.
func (t EntityType) String() string {
	return string(t)
}

// Validate checks if the EntityType is valid.
func (t EntityType) Validate() error {
	switch t {
	case EntityTypeTenant, EntityTypeUser, EntityTypeEntity, EntityTypeFund, EntityTypeSubscription:
		return nil
	default:
		return fmt.Errorf("invalid entity type: %s", t)
	}
}

// Label returns the graph label for this entity type.
func (t EntityType) Label() string {
	switch t {
	case EntityTypeTenant:
		return LabelTenant
	case EntityTypeUser:
		return LabelUser
	case EntityTypeEntity:
		return LabelEntity
	case EntityTypeFund:
		return LabelFund
	case EntityTypeSubscription:
		return LabelSubscription
	default:
		return ""
	}
}

// Table returns the relational source table for this entity type.
func (t EntityType) Table() string {
	switch t {
	case EntityTypeTenant:
		return "tenants"
	case EntityTypeUser:
		return "users"
	case EntityTypeEntity:
		return "investment_entities"
	case EntityTypeFund:
		return "funds"
	case EntityTypeSubscription:
		return "subscriptions"
	default:
		return ""
	}
}

// NameProperty returns the graph property carrying the tenant-scoped,
// name-like field for this entity type, or "" when the type has none.
func (t EntityType) NameProperty() string {
	switch t {
	case EntityTypeTenant:
		return "name"
	case EntityTypeEntity:
		return "name"
	case EntityTypeFund:
		return "fund_name"
	default:
		return ""
	}
}

// HasScopedName reports whether the type's name-like field is unique only
// within a tenant. Tenant itself has a name but no enclosing scope.
func (t EntityType) HasScopedName() bool {
	return t == EntityTypeEntity || t == EntityTypeFund
}

// Node is implemented by every synchronized entity type. Source readers
// return Node values; the mapper turns them into merge-ready NodeSpecs.
type Node interface {
	Validate() error
	PropertyMap() map[string]any
	Spec() NodeSpec
}

var (
	_ Node = (*Tenant)(nil)
	_ Node = (*User)(nil)
	_ Node = (*Entity)(nil)
	_ Node = (*Fund)(nil)
	_ Node = (*Subscription)(nil)
)

// NodeSpec is one mapped node ready to be merged into the graph: the label,
// the merge key, the tenant scope, and the flattened property map. Props
// always contains the key under "id"; scoped nodes also carry "tenant_id".
type NodeSpec struct {
	Label    string         `json:"label"`
	Key      string         `json:"key"`
	TenantID string         `json:"tenant_id,omitempty"`
	Props    map[string]any `json:"props"`
}

// Validate checks that the spec is complete enough to merge.
func (s *NodeSpec) Validate() error {
	switch s.Label {
	case LabelTenant, LabelUser, LabelEntity, LabelFund, LabelSubscription:
	default:
		return fmt.Errorf("invalid node label: %q", s.Label)
	}
	if s.Key == "" {
		return fmt.Errorf("node key is required")
	}
	if s.Label != LabelTenant && s.TenantID == "" {
		return fmt.Errorf("tenant scope is required for label %s", s.Label)
	}
	if len(s.Props) == 0 {
		return fmt.Errorf("node properties are required")
	}
	return nil
}

// Tenant is the root scoping node. Every scoped node carries its key as
// tenant_id.
type Tenant struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Validate checks that required fields are set.
func (t *Tenant) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("tenant id is required")
	}
	return nil
}

// PropertyMap returns the flattened property map for graph storage.
// Unset optional fields are omitted, never written as nulls.
func (t *Tenant) PropertyMap() map[string]any {
	props := map[string]any{
		"id": t.ID,
	}
	if t.Name != "" {
		props["name"] = t.Name
	}
	if t.CreatedAt != nil {
		props["created_at"] = *t.CreatedAt
	}
	if t.UpdatedAt != nil {
		props["updated_at"] = *t.UpdatedAt
	}
	return props
}

// Spec returns the merge-ready NodeSpec for this tenant.
func (t *Tenant) Spec() NodeSpec {
	return NodeSpec{
		Label: LabelTenant,
		Key:   t.ID,
		Props: t.PropertyMap(),
	}
}

// User is a tenant-scoped account. Email and username are not unique across
// tenants.
type User struct {
	ID        string     `json:"id"`
	TenantID  string     `json:"tenant_id"`
	Email     string     `json:"email,omitempty"`
	Username  string     `json:"username,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Validate checks that required fields are set.
func (u *User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user id is required")
	}
	if u.TenantID == "" {
		return fmt.Errorf("user tenant_id is required")
	}
	return nil
}

// PropertyMap returns the flattened property map for graph storage.
func (u *User) PropertyMap() map[string]any {
	props := map[string]any{
		"id":        u.ID,
		"tenant_id": u.TenantID,
	}
	if u.Email != "" {
		props["email"] = u.Email
	}
	if u.Username != "" {
		props["username"] = u.Username
	}
	if u.CreatedAt != nil {
		props["created_at"] = *u.CreatedAt
	}
	if u.UpdatedAt != nil {
		props["updated_at"] = *u.UpdatedAt
	}
	return props
}

// Spec returns the merge-ready NodeSpec for this user.
func (u *User) Spec() NodeSpec {
	return NodeSpec{
		Label:    LabelUser,
		Key:      u.ID,
		TenantID: u.TenantID,
		Props:    u.PropertyMap(),
	}
}

// Entity is an investment entity. Its name is unique within a tenant;
// identical names across tenants are legal.
type Entity struct {
	ID        string     `json:"id"`
	TenantID  string     `json:"tenant_id"`
	Name      string     `json:"name"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Validate checks that required fields are set.
func (e *Entity) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("entity id is required")
	}
	if e.TenantID == "" {
		return fmt.Errorf("entity tenant_id is required")
	}
	return nil
}

// PropertyMap returns the flattened property map for graph storage.
func (e *Entity) PropertyMap() map[string]any {
	props := map[string]any{
		"id":        e.ID,
		"tenant_id": e.TenantID,
	}
	if e.Name != "" {
		props["name"] = e.Name
	}
	if e.CreatedAt != nil {
		props["created_at"] = *e.CreatedAt
	}
	if e.UpdatedAt != nil {
		props["updated_at"] = *e.UpdatedAt
	}
	return props
}

// Spec returns the merge-ready NodeSpec for this entity.
func (e *Entity) Spec() NodeSpec {
	return NodeSpec{
		Label:    LabelEntity,
		Key:      e.ID,
		TenantID: e.TenantID,
		Props:    e.PropertyMap(),
	}
}

// Fund is a tenant-scoped fund with a large optional property bag of
// financial terms and operational metadata. fund_name is unique within a
// tenant.
type Fund struct {
	ID       string `json:"id"`
	TenantID string `json:"tenant_id"`
	FundName string `json:"fund_name"`

	// Financial terms
	FundType               *string  `json:"fund_type,omitempty"`
	Currency               *string  `json:"currency,omitempty"`
	TargetSize             *float64 `json:"target_size,omitempty"`
	MinimumInvestment      *float64 `json:"minimum_investment,omitempty"`
	ManagementFeePercent   *float64 `json:"management_fee_percent,omitempty"`
	CarriedInterestPercent *float64 `json:"carried_interest_percent,omitempty"`
	PreferredReturnPercent *float64 `json:"preferred_return_percent,omitempty"`
	VintageYear            *int     `json:"vintage_year,omitempty"`

	// Operational metadata
	Strategy         *string `json:"strategy,omitempty"`
	Domicile         *string `json:"domicile,omitempty"`
	Administrator    *string `json:"administrator,omitempty"`
	Auditor          *string `json:"auditor,omitempty"`
	Status           *string `json:"status,omitempty"`
	ManagingEntityID *string `json:"managing_entity_id,omitempty"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Validate checks that required fields are set.
func (f *Fund) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("fund id is required")
	}
	if f.TenantID == "" {
		return fmt.Errorf("fund tenant_id is required")
	}
	return nil
}

// PropertyMap returns the flattened property map for graph storage.
// Unset optional fields are omitted, never written as nulls.
func (f *Fund) PropertyMap() map[string]any {
	props := map[string]any{
		"id":        f.ID,
		"tenant_id": f.TenantID,
	}
	if f.FundName != "" {
		props["fund_name"] = f.FundName
	}
	if f.FundType != nil {
		props["fund_type"] = *f.FundType
	}
	if f.Currency != nil {
		props["currency"] = *f.Currency
	}
	if f.TargetSize != nil {
		props["target_size"] = *f.TargetSize
	}
	if f.MinimumInvestment != nil {
		props["minimum_investment"] = *f.MinimumInvestment
	}
	if f.ManagementFeePercent != nil {
		props["management_fee_percent"] = *f.ManagementFeePercent
	}
	if f.CarriedInterestPercent != nil {
		props["carried_interest_percent"] = *f.CarriedInterestPercent
	}
	if f.PreferredReturnPercent != nil {
		props["preferred_return_percent"] = *f.PreferredReturnPercent
	}
	if f.VintageYear != nil {
		props["vintage_year"] = *f.VintageYear
	}
	if f.Strategy != nil {
		props["strategy"] = *f.Strategy
	}
	if f.Domicile != nil {
		props["domicile"] = *f.Domicile
	}
	if f.Administrator != nil {
		props["administrator"] = *f.Administrator
	}
	if f.Auditor != nil {
		props["auditor"] = *f.Auditor
	}
	if f.Status != nil {
		props["status"] = *f.Status
	}
	if f.ManagingEntityID != nil {
		props["managing_entity_id"] = *f.ManagingEntityID
	}
	if f.CreatedAt != nil {
		props["created_at"] = *f.CreatedAt
	}
	if f.UpdatedAt != nil {
		props["updated_at"] = *f.UpdatedAt
	}
	return props
}

// Spec returns the merge-ready NodeSpec for this fund.
func (f *Fund) Spec() NodeSpec {
	return NodeSpec{
		Label:    LabelFund,
		Key:      f.ID,
		TenantID: f.TenantID,
		Props:    f.PropertyMap(),
	}
}

// Subscription links a Fund to an investing Entity or User. A subscription
// missing one of the foreign keys still syncs as a node; it simply produces
// no edge for the joins that need that key.
type Subscription struct {
	ID               string     `json:"id"`
	TenantID         string     `json:"tenant_id"`
	FundID           string     `json:"fund_id,omitempty"`
	EntityID         string     `json:"entity_id,omitempty"`
	UserID           string     `json:"user_id,omitempty"`
	CommitmentAmount *float64   `json:"commitment_amount,omitempty"`
	Status           string     `json:"status,omitempty"`
	SubscriptionDate *time.Time `json:"subscription_date,omitempty"`
	CreatedAt        *time.Time `json:"created_at,omitempty"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

// Validate checks that required fields are set.
func (s *Subscription) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("subscription id is required")
	}
	if s.TenantID == "" {
		return fmt.Errorf("subscription tenant_id is required")
	}
	return nil
}

// PropertyMap returns the flattened property map for graph storage.
func (s *Subscription) PropertyMap() map[string]any {
	props := map[string]any{
		"id":        s.ID,
		"tenant_id": s.TenantID,
	}
	if s.FundID != "" {
		props["fund_id"] = s.FundID
	}
	if s.EntityID != "" {
		props["entity_id"] = s.EntityID
	}
	if s.UserID != "" {
		props["user_id"] = s.UserID
	}
	if s.CommitmentAmount != nil {
		props["commitment_amount"] = *s.CommitmentAmount
	}
	if s.Status != "" {
		props["status"] = s.Status
	}
	if s.SubscriptionDate != nil {
		props["subscription_date"] = *s.SubscriptionDate
	}
	if s.CreatedAt != nil {
		props["created_at"] = *s.CreatedAt
	}
	if s.UpdatedAt != nil {
		props["updated_at"] = *s.UpdatedAt
	}
	return props
}

// Spec returns the merge-ready NodeSpec for this subscription.
func (s *Subscription) Spec() NodeSpec {
	return NodeSpec{
		Label:    LabelSubscription,
		Key:      s.ID,
		TenantID: s.TenantID,
		Props:    s.PropertyMap(),
	}
}
