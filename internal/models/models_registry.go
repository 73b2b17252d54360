package models

// Collection names as stored in the database.
const (
	Profiles            = "profiles"
	Properties          = "properties"
	Tenants             = "tenants"
	Payments            = "payments"
	MaintenanceRequests = "maintenance_requests"
	Messages            = "messages"
	Reminders           = "reminders"
)

// CollectionRegistry maps each collection to its model.
var CollectionRegistry = map[string]interface{}{
	Profiles:            &Profile{},
	Properties:          &Property{},
	Tenants:             &Tenant{},
	Payments:            &Payment{},
	MaintenanceRequests: &MaintenanceRequest{},
	Messages:            &Message{},
	Reminders:           &Reminder{},
}

// MigrationOrder lists models parents first so foreign keys resolve on create.
func MigrationOrder() []interface{} {
	return []interface{}{
		&Profile{},
		&Property{},
		&Tenant{},
		&Payment{},
		&MaintenanceRequest{},
		&Message{},
		&Reminder{},
	}
}
