package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"connectrpc.com/connect"

	"github.com/mmynk/moneysplits/internal/calculator"
	"github.com/mmynk/moneysplits/internal/models"
	"github.com/mmynk/moneysplits/internal/storage"
	"github.com/mmynk/moneysplits/pkg/api"
	"github.com/mmynk/moneysplits/pkg/api/apiconnect"
)

// GroupService implements the Connect GroupService
type GroupService struct {
	apiconnect.UnimplementedGroupServiceHandler
	store storage.Store
	mu    *sync.Mutex
}

// NewGroupService creates a new GroupService with the given storage backend.
// mu serialises the read-validate-write sequence of every mutating RPC and
// must be shared with every other writer of the same store.
func NewGroupService(store storage.Store, mu *sync.Mutex) *GroupService {
	return &GroupService{store: store, mu: mu}
}

// CreateGroup creates a new group with its initial members.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.MemberNames),
	)

	name := models.SanitizeInput(req.Msg.Name)
	if err := models.ValidateGroupName(name); err != nil {
		return nil, toConnectError(err)
	}
	if len(req.Msg.MemberNames) == 0 {
		return nil, toConnectError(models.NewValidationError("members", "at least one member is required"))
	}

	members := make([]models.Member, 0, len(req.Msg.MemberNames))
	seen := make(map[string]bool, len(req.Msg.MemberNames))
	for _, raw := range req.Msg.MemberNames {
		memberName := models.SanitizeInput(raw)
		if err := models.ValidateMemberName(memberName); err != nil {
			return nil, toConnectError(err)
		}
		key := strings.ToLower(memberName)
		if seen[key] {
			return nil, toConnectError(fmt.Errorf("%w: %s", models.ErrMemberExists, memberName))
		}
		seen[key] = true
		members = append(members, models.Member{Name: memberName, IsActive: true})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkGroupNameFree(ctx, s.store, name, ""); err != nil {
		return nil, toConnectError(err)
	}

	group := &models.Group{
		Name:        name,
		Description: models.SanitizeInput(req.Msg.Description),
		Members:     members,
		Expenses:    []models.Expense{},
		History:     []models.HistoryEvent{{Message: fmt.Sprintf("Group \"%s\" created", name)}},
	}

	// Save to storage (generates IDs and CreatedAt)
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group created", "group_id", group.ID)

	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group)}), nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	if err := requireID("groupId", req.Msg.GroupID); err != nil {
		return nil, err
	}

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("GetGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetGroupResponse{Group: toAPIGroup(group)}), nil
}

// ListGroups retrieves all groups, oldest first.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Group, len(groups))
	for i, group := range groups {
		out[i] = toAPIGroup(group)
	}

	slog.Debug("ListGroups successful", "count", len(groups))

	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// UpdateGroup changes the name and/or description of a group.
func (s *GroupService) UpdateGroup(ctx context.Context, req *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.UpdateGroupResponse], error) {
	slog.Info("UpdateGroup request received", "group_id", req.Msg.GroupID)

	if err := requireID("groupId", req.Msg.GroupID); err != nil {
		return nil, err
	}
	var name string
	if req.Msg.Name != nil {
		name = models.SanitizeInput(*req.Msg.Name)
		if err := models.ValidateGroupName(name); err != nil {
			return nil, toConnectError(err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(err)
	}

	var event *models.HistoryEvent
	if req.Msg.Name != nil && name != group.Name {
		if err := checkGroupNameFree(ctx, s.store, name, group.ID); err != nil {
			return nil, toConnectError(err)
		}
		group.Name = name
		event = &models.HistoryEvent{Message: fmt.Sprintf("Group renamed to \"%s\"", name)}
	}
	if req.Msg.Description != nil {
		group.Description = models.SanitizeInput(*req.Msg.Description)
	}

	if err := s.store.UpdateGroup(ctx, group, event); err != nil {
		slog.Error("UpdateGroup failed", "error", err)
		return nil, toConnectError(err)
	}
	recordHistory(group, event)

	slog.Info("Group updated", "group_id", group.ID)

	return connect.NewResponse(&api.UpdateGroupResponse{Group: toAPIGroup(group)}), nil
}

// DeleteGroup removes a group and everything in it.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	if err := requireID("groupId", req.Msg.GroupID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteGroup(ctx, req.Msg.GroupID); err != nil {
		slog.Error("DeleteGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group deleted", "group_id", req.Msg.GroupID)

	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// GetGroupBalances computes balances and the settlement plan from the
// group's stored members and expenses.
func (s *GroupService) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	if err := requireID("groupId", req.Msg.GroupID); err != nil {
		return nil, err
	}

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(err)
	}

	balances := calculator.CalculateBalances(group.Members, group.Expenses)
	settlements := calculator.CalculateSettlements(balances)

	slog.Debug("GetGroupBalances computed",
		"group_id", group.ID,
		"balances", len(balances),
		"settlements", len(settlements),
	)

	return connect.NewResponse(&api.GetGroupBalancesResponse{
		Balances:    toAPIBalances(balances),
		Settlements: toAPISettlements(settlements),
	}), nil
}

// GetGroupStats summarises spending in a group.
func (s *GroupService) GetGroupStats(ctx context.Context, req *connect.Request[api.GetGroupStatsRequest]) (*connect.Response[api.GetGroupStatsResponse], error) {
	if err := requireID("groupId", req.Msg.GroupID); err != nil {
		return nil, err
	}

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetGroupStatsResponse{
		Stats: toAPIStats(calculator.CalculateGroupStats(group)),
	}), nil
}

// checkGroupNameFree returns ErrGroupExists when another group already uses
// name, compared case-insensitively. exceptID excludes the group being renamed.
func checkGroupNameFree(ctx context.Context, store storage.Store, name, exceptID string) error {
	groups, err := store.ListGroups(ctx)
	if err != nil {
		return err
	}
	key := strings.ToLower(strings.TrimSpace(name))
	for _, g := range groups {
		if g.ID != exceptID && strings.ToLower(g.Name) == key {
			return fmt.Errorf("%w: %s", models.ErrGroupExists, g.Name)
		}
	}
	return nil
}

// recordHistory mirrors a stored event on the in-memory copy of group.
func recordHistory(group *models.Group, event *models.HistoryEvent) {
	if event != nil {
		group.History = append(group.History, *event)
	}
}
