package models

import (
	"fmt"

	"github.com/google/uuid"
)

// MembershipState is the lifecycle of a (user, organization) pair. A pair
// without a row is unassigned; rows are deactivated, never deleted.
type MembershipState string

const (
	MembershipActive   MembershipState = "ACTIVE"
	MembershipInactive MembershipState = "INACTIVE"
)

var membershipStates = []enumMeta[MembershipState]{
	{MembershipActive, "active", "Đang hoạt động"},
	{MembershipInactive, "inactive", "Ngừng hoạt động"},
}

func MembershipStates() []EnumEntry { return entries(membershipStates) }

func MembershipStateFromValue(v string) (MembershipState, error) {
	if m, ok := lookup(membershipStates, v); ok {
		return m, nil
	}
	return "", fmt.Errorf("unknown MembershipState value: %s", v)
}

type UserOrganization struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	UserID         uuid.UUID       `json:"user_id" db:"user_id"`
	OrganizationID uuid.UUID       `json:"organization_id" db:"organization_id"`
	State          MembershipState `json:"state" db:"state"`
	TitleID        *uuid.UUID      `json:"title_id,omitempty" db:"title_id"`
	PositionID     *uuid.UUID      `json:"position_id,omitempty" db:"position_id"`
	Auditable
}

func (uo *UserOrganization) IsActive() bool {
	return uo.State == MembershipActive
}
