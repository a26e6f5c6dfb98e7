package entity

// Role determines what an account can do in the marketplace. Farmers sell
// produce, delivery agents confirm handovers, consumers buy, admins approve
// the first two.
type Role int16

const (
	// RoleUnknown is mean role is not known / not set.
	RoleUnknown Role = 0

	// RoleConsumer mean account buys produce; active immediately after email verification.
	RoleConsumer Role = 1

	// RoleFarmer mean account lists and sells produce; needs admin approval.
	RoleFarmer Role = 2

	// RoleDeliveryAgent mean account delivers orders and confirms handover; needs admin approval.
	RoleDeliveryAgent Role = 3

	// RoleAdmin mean account manages approvals; never self-registered.
	RoleAdmin Role = 4
)

func (r Role) String() string {
	switch r {
	case RoleConsumer:
		return "consumer"
	case RoleFarmer:
		return "farmer"
	case RoleDeliveryAgent:
		return "delivery_agent"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

func (r Role) IsUnknown() bool {
	switch r {
	case RoleConsumer, RoleFarmer, RoleDeliveryAgent, RoleAdmin:
		return false
	default:
		return true
	}
}

// NeedsApproval reports whether an account with this role stays in
// AccountStatusPendingApproval until an admin signs off.
func (r Role) NeedsApproval() bool {
	return r == RoleFarmer || r == RoleDeliveryAgent
}

// RoleFromString maps the wire representation back to a Role. Admin is
// deliberately not parseable: admin accounts are seeded, never registered.
func RoleFromString(s string) Role {
	switch s {
	case "consumer":
		return RoleConsumer
	case "farmer":
		return RoleFarmer
	case "delivery_agent":
		return RoleDeliveryAgent
	default:
		return RoleUnknown
	}
}

// AccountStatus is the lifecycle state of a verified account.
type AccountStatus int16

const (
	// AccountStatusUnknown is mean status is not known / not set.
	AccountStatusUnknown AccountStatus = 0

	// AccountStatusActive mean account may log in and use the app.
	AccountStatusActive AccountStatus = 1

	// AccountStatusPendingApproval mean email is verified but an admin has
	// not approved the account yet.
	AccountStatusPendingApproval AccountStatus = 2

	// AccountStatusSuspended mean account is blocked from using the app.
	AccountStatusSuspended AccountStatus = 3
)

func (s AccountStatus) String() string {
	switch s {
	case AccountStatusActive:
		return "Active"
	case AccountStatusPendingApproval:
		return "PendingApproval"
	case AccountStatusSuspended:
		return "Suspended"
	default:
		return "Unknown"
	}
}

func (s AccountStatus) IsUnknown() bool {
	switch s {
	case AccountStatusActive, AccountStatusPendingApproval, AccountStatusSuspended:
		return false
	default:
		return true
	}
}
