package models

import (
	"fmt"

	"github.com/google/uuid"
)

type CategoryCode string

const (
	CategoryOrganizationTitle    CategoryCode = "ORGANIZATION_TITLE"
	CategoryOrganizationPosition CategoryCode = "ORGANIZATION_POSITION"
	CategoryTaskPriority         CategoryCode = "TASK_PRIORITY"
	CategoryTaskLabel            CategoryCode = "TASK_LABEL"
)

// DefaultTitleName is the ORGANIZATION_TITLE given to newly assigned members.
// The row must exist; it is seeded by the bootstrap migration.
const DefaultTitleName = "STAFF"

var categoryCodes = []enumMeta[CategoryCode]{
	{CategoryOrganizationTitle, "organization_title", "Chức danh"},
	{CategoryOrganizationPosition, "organization_position", "Chức vụ"},
	{CategoryTaskPriority, "task_priority", "Độ ưu tiên"},
	{CategoryTaskLabel, "task_label", "Nhãn công việc"},
}

func CategoryCodes() []EnumEntry { return entries(categoryCodes) }

func CategoryCodeFromValue(v string) (CategoryCode, error) {
	if c, ok := lookup(categoryCodes, v); ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown CategoryCode value: %s", v)
}

type Category struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	Code        CategoryCode `json:"code" db:"code"`
	Name        string       `json:"name" db:"name"`
	DisplayName string       `json:"display_name" db:"display_name"`
	Description string       `json:"description" db:"description"`
	Auditable
}
