package mapper

import (
	"github.com/google/uuid"

	"baseware/internal/dto"
	"baseware/internal/models"
)

func ToOrganizationResponse(o *models.Organization) *dto.OrganizationResponse {
	return &dto.OrganizationResponse{
		ID:           o.ID,
		Name:         o.Name,
		Code:         o.Code,
		Description:  o.Description,
		Level:        o.Level,
		ParentID:     o.ParentID,
		Children:     []*dto.OrganizationResponse{},
		CreatedDate:  o.CreatedDate,
		ModifiedDate: o.ModifiedDate,
		CreatedBy:    o.CreatedBy,
		ModifiedBy:   o.ModifiedBy,
	}
}

// MapOrganizationsToTree nests orgs under their parents and returns the
// roots in input order. An organization whose parent is not in orgs is
// treated as a root. Members of a parent cycle are cut at the first one in
// input order, which becomes a root, so every input appears exactly once.
func MapOrganizationsToTree(orgs []models.Organization) []*dto.OrganizationResponse {
	nodes := make(map[uuid.UUID]*dto.OrganizationResponse, len(orgs))
	for i := range orgs {
		nodes[orgs[i].ID] = ToOrganizationResponse(&orgs[i])
	}

	children := make(map[uuid.UUID][]*dto.OrganizationResponse)
	var candidates []*dto.OrganizationResponse
	for i := range orgs {
		node := nodes[orgs[i].ID]
		if parentID := orgs[i].ParentID; parentID != nil && *parentID != node.ID {
			if _, ok := nodes[*parentID]; ok {
				children[*parentID] = append(children[*parentID], node)
				continue
			}
		}
		candidates = append(candidates, node)
	}

	seen := make(map[uuid.UUID]bool, len(orgs))
	var attach func(node *dto.OrganizationResponse)
	attach = func(node *dto.OrganizationResponse) {
		seen[node.ID] = true
		for _, child := range children[node.ID] {
			if seen[child.ID] {
				continue
			}
			attach(child)
			node.Children = append(node.Children, child)
		}
	}

	roots := make([]*dto.OrganizationResponse, 0, len(candidates))
	for _, node := range candidates {
		attach(node)
		roots = append(roots, node)
	}
	for i := range orgs {
		if node := nodes[orgs[i].ID]; !seen[node.ID] {
			attach(node)
			roots = append(roots, node)
		}
	}
	return roots
}

// GroupByParent indexes orgs by parent id, keeping input order within each
// group. Organizations without a parent are left out.
func GroupByParent(orgs []models.Organization) map[uuid.UUID][]models.Organization {
	byParent := make(map[uuid.UUID][]models.Organization)
	for _, o := range orgs {
		if o.ParentID != nil {
			byParent[*o.ParentID] = append(byParent[*o.ParentID], o)
		}
	}
	return byParent
}

// BuildOrganizationTree attaches the descendants of root found in byParent,
// one level at a time.
func BuildOrganizationTree(root *models.Organization, byParent map[uuid.UUID][]models.Organization) *dto.OrganizationResponse {
	seen := map[uuid.UUID]bool{root.ID: true}
	node := ToOrganizationResponse(root)
	attachChildren(node, byParent, seen)
	return node
}

func attachChildren(node *dto.OrganizationResponse, byParent map[uuid.UUID][]models.Organization, seen map[uuid.UUID]bool) {
	for i := range byParent[node.ID] {
		child := &byParent[node.ID][i]
		if seen[child.ID] {
			continue
		}
		seen[child.ID] = true
		childNode := ToOrganizationResponse(child)
		attachChildren(childNode, byParent, seen)
		node.Children = append(node.Children, childNode)
	}
}

// CountNodes returns the number of nodes in the given forest.
func CountNodes(forest []*dto.OrganizationResponse) int {
	n := 0
	for _, node := range forest {
		n += 1 + CountNodes(node.Children)
	}
	return n
}
