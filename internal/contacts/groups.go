package contacts

import (
	"context"

	"github.com/neboloop/nebo-contacts/internal/osascript"
)

// ListGroups returns every group with its current member count.
func (s *Service) ListGroups(ctx context.Context) ([]Group, error) {
	out, err := s.run(ctx, listGroupsScript(s.appName))
	if err != nil {
		return nil, err
	}
	return osascript.Decode[[]Group](out)
}

// CreateGroup creates an empty group and returns its identifier.
func (s *Service) CreateGroup(ctx context.Context, name string) MutationResult {
	out, err := s.run(ctx, createGroupScript(s.appName, name))
	if err != nil {
		return failed(err)
	}
	id, err := osascript.Decode[string](out)
	if err != nil {
		return failed(err)
	}
	return MutationResult{Success: true, ID: id}
}

// DeleteGroup removes a group by name. Its members are not deleted.
func (s *Service) DeleteGroup(ctx context.Context, name string) MutationResult {
	return s.mutate(ctx, deleteGroupScript(s.appName, name))
}

// AddToGroup adds a contact to an existing group. A missing group is not
// created; the store's lookup error is returned in the result.
func (s *Service) AddToGroup(ctx context.Context, contactID, group string) MutationResult {
	return s.mutate(ctx, addToGroupScript(s.appName, contactID, group))
}

// RemoveFromGroup removes a contact from a group.
func (s *Service) RemoveFromGroup(ctx context.Context, contactID, group string) MutationResult {
	return s.mutate(ctx, removeFromGroupScript(s.appName, contactID, group))
}
