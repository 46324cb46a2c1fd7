package models

import (
	"fmt"

	"github.com/google/uuid"
)

type OrganizationLevel int

const (
	LevelProvince   OrganizationLevel = 1
	LevelCommune    OrganizationLevel = 2
	LevelDepartment OrganizationLevel = 3
	LevelCompany    OrganizationLevel = 4
)

var organizationLevels = []enumMeta[OrganizationLevel]{
	{LevelProvince, "province", "Tỉnh/Thành phố"},
	{LevelCommune, "commune", "Xã/Phường"},
	{LevelDepartment, "department", "Sở/Ban/Ngành"},
	{LevelCompany, "company", "Doanh nghiệp"},
}

func OrganizationLevels() []EnumEntry { return entries(organizationLevels) }

func OrganizationLevelFromValue(v int) (OrganizationLevel, error) {
	for _, m := range organizationLevels {
		if int(m.value) == v {
			return m.value, nil
		}
	}
	return 0, fmt.Errorf("unknown OrganizationLevel value: %d", v)
}

type Organization struct {
	ID          uuid.UUID         `json:"id" db:"id"`
	Name        string            `json:"name" db:"name"`
	Code        string            `json:"code" db:"code"`
	Description string            `json:"description" db:"description"`
	Level       OrganizationLevel `json:"level" db:"level"`
	ParentID    *uuid.UUID        `json:"parent_id,omitempty" db:"parent_id"`
	Auditable
}

// HasParent reports whether o currently sits under parentID.
func (o *Organization) HasParent(parentID uuid.UUID) bool {
	return o.ParentID != nil && *o.ParentID == parentID
}
