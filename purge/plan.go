package purge

import "github.com/beesaferoot/gorm-purge/internal/models"

// Scope names the id set a step is keyed on.
type Scope int

const (
	ScopeUser Scope = iota
	ScopeProperties
	ScopeTenants
)

func (s Scope) String() string {
	switch s {
	case ScopeProperties:
		return "properties"
	case ScopeTenants:
		return "tenants"
	default:
		return "user"
	}
}

// Targets holds the target user and every id that depends on it.
type Targets struct {
	UserID      string
	PropertyIDs []string
	TenantIDs   []string
}

// Step is one delete in the plan.
type Step struct {
	Number     int
	Collection string
	Scope      Scope
	// Template documents the predicate shape, e.g. "tenant_id IN :tenants".
	Template string
	Build    func(Targets) Predicate
}

// Predicate builds the step's predicate for the given targets.
func (s Step) Predicate(t Targets) Predicate {
	return s.Build(t)
}

// Skip reports whether the step's id set is empty. User scoped steps always run.
func (s Step) Skip(t Targets) bool {
	switch s.Scope {
	case ScopeProperties:
		return len(t.PropertyIDs) == 0
	case ScopeTenants:
		return len(t.TenantIDs) == 0
	default:
		return false
	}
}

// Plan is an ordered list of steps. Children come before the parents they reference.
type Plan []Step

func userColumns(columns ...string) func(Targets) Predicate {
	return func(t Targets) Predicate {
		preds := make([]Predicate, 0, len(columns))
		for _, c := range columns {
			preds = append(preds, Eq(c, t.UserID))
		}
		return Or(preds...)
	}
}

func propertyColumn(column string) func(Targets) Predicate {
	return func(t Targets) Predicate { return In(column, t.PropertyIDs) }
}

func tenantColumn(column string) func(Targets) Predicate {
	return func(t Targets) Predicate { return In(column, t.TenantIDs) }
}

// DefaultPlan returns the deletion order for the rental schema.
func DefaultPlan() Plan {
	return Plan{
		{Number: 1, Collection: models.Messages, Scope: ScopeUser,
			Template: "sender_id = :user OR recipient_id = :user", Build: userColumns("sender_id", "recipient_id")},
		{Number: 2, Collection: models.Reminders, Scope: ScopeUser,
			Template: "sender_id = :user OR recipient_id = :user", Build: userColumns("sender_id", "recipient_id")},
		{Number: 3, Collection: models.Payments, Scope: ScopeTenants,
			Template: "tenant_id IN :tenants", Build: tenantColumn("tenant_id")},
		{Number: 4, Collection: models.Payments, Scope: ScopeUser,
			Template: "landlord_id = :user", Build: userColumns("landlord_id")},
		{Number: 5, Collection: models.MaintenanceRequests, Scope: ScopeProperties,
			Template: "property_id IN :properties", Build: propertyColumn("property_id")},
		{Number: 6, Collection: models.MaintenanceRequests, Scope: ScopeTenants,
			Template: "tenant_id IN :tenants", Build: tenantColumn("tenant_id")},
		{Number: 7, Collection: models.Reminders, Scope: ScopeTenants,
			Template: "tenant_id IN :tenants", Build: tenantColumn("tenant_id")},
		{Number: 8, Collection: models.Tenants, Scope: ScopeTenants,
			Template: "id IN :tenants", Build: tenantColumn("id")},
		{Number: 9, Collection: models.Properties, Scope: ScopeProperties,
			Template: "id IN :properties", Build: propertyColumn("id")},
		{Number: 10, Collection: models.Profiles, Scope: ScopeUser,
			Template: "id = :user", Build: userColumns("id")},
	}
}

// RevocationStep is the step number reported when identity revocation fails.
func (p Plan) RevocationStep() int {
	return len(p) + 1
}
