package service

import (
	"context"
	"strings"

	"baseware/internal/message"
	"baseware/internal/models"
)

type EnumService interface {
	// Lookup returns the entries of any exposed enum.
	Lookup(ctx context.Context, name string) ([]models.EnumEntry, error)
	// LookupTask is Lookup restricted to the enums used by tasks.
	LookupTask(ctx context.Context, name string) ([]models.EnumEntry, error)
}

type enumService struct {
	*Services
}

var enumRegistry = map[string]func() []models.EnumEntry{
	"TaskAction":        models.TaskActions,
	"TaskStatus":        models.TaskStatuses,
	"ProjectType":       models.ProjectTypes,
	"OrganizationLevel": models.OrganizationLevels,
	"CategoryCode":      models.CategoryCodes,
	"MembershipState":   models.MembershipStates,
}

var taskEnums = []string{"TaskAction", "TaskStatus", "ProjectType"}

// EnumNames lists every enum served by Lookup.
func EnumNames() []string {
	return []string{"CategoryCode", "MembershipState", "OrganizationLevel", "ProjectType", "TaskAction", "TaskStatus"}
}

func (s *enumService) resolve(ctx context.Context, name string, allowed []string) ([]models.EnumEntry, error) {
	for _, candidate := range allowed {
		if strings.EqualFold(candidate, name) {
			return enumRegistry[candidate](), nil
		}
	}
	return nil, s.notFound(ctx, message.EnumNotFound, name)
}

func (s *enumService) Lookup(ctx context.Context, name string) ([]models.EnumEntry, error) {
	return s.resolve(ctx, name, EnumNames())
}

func (s *enumService) LookupTask(ctx context.Context, name string) ([]models.EnumEntry, error) {
	return s.resolve(ctx, name, taskEnums)
}
