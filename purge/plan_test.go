package purge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beesaferoot/gorm-purge/purge"
)

func stepIndex(plan purge.Plan, collection string, scope purge.Scope) int {
	for i, s := range plan {
		if s.Collection == collection && s.Scope == scope {
			return i
		}
	}
	return -1
}

func TestDefaultPlan_Order(t *testing.T) {
	plan := purge.DefaultPlan()
	require.Len(t, plan, 10)

	for i, step := range plan {
		assert.Equal(t, i+1, step.Number, "steps are numbered in execution order")
	}

	tenants := stepIndex(plan, "tenants", purge.ScopeTenants)
	properties := stepIndex(plan, "properties", purge.ScopeProperties)
	profile := stepIndex(plan, "profiles", purge.ScopeUser)
	require.NotEqual(t, -1, tenants)
	require.NotEqual(t, -1, properties)
	require.NotEqual(t, -1, profile)

	for _, child := range []string{"payments", "maintenance_requests", "reminders"} {
		idx := stepIndex(plan, child, purge.ScopeTenants)
		require.NotEqual(t, -1, idx, child)
		assert.Less(t, idx, tenants, "%s scoped by tenants must go before tenants", child)
	}
	assert.Less(t, stepIndex(plan, "maintenance_requests", purge.ScopeProperties), properties)
	assert.Less(t, tenants, properties)
	assert.Equal(t, len(plan)-1, profile, "profile is removed last")
	assert.Equal(t, 11, plan.RevocationStep())
}

func TestDefaultPlan_Predicates(t *testing.T) {
	targets := purge.Targets{
		UserID:      "u1",
		PropertyIDs: []string{"p1", "p2"},
		TenantIDs:   []string{"t1"},
	}

	want := []string{
		"sender_id = u1 OR recipient_id = u1",
		"sender_id = u1 OR recipient_id = u1",
		"tenant_id = t1",
		"landlord_id = u1",
		"property_id IN (2 ids)",
		"tenant_id = t1",
		"tenant_id = t1",
		"id = t1",
		"id IN (2 ids)",
		"id = u1",
	}

	for i, step := range purge.DefaultPlan() {
		assert.Equal(t, want[i], step.Predicate(targets).String(), "step %d", step.Number)
	}
}

func TestStep_Skip(t *testing.T) {
	empty := purge.Targets{UserID: "u1"}
	full := purge.Targets{UserID: "u1", PropertyIDs: []string{"p1"}, TenantIDs: []string{"t1"}}

	for _, step := range purge.DefaultPlan() {
		assert.False(t, step.Skip(full), "step %d runs when ids exist", step.Number)
		assert.Equal(t, step.Scope != purge.ScopeUser, step.Skip(empty), "step %d", step.Number)
	}
}
