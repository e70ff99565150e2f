package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/moneysplits/internal/models"
	"github.com/mmynk/moneysplits/pkg/api"
)

// AddMember adds a new active member to a group.
func (s *GroupService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	slog.Info("AddMember request received", "group_id", req.Msg.GroupID, "name", req.Msg.Name)

	if err := requireID("groupId", req.Msg.GroupID); err != nil {
		return nil, err
	}
	name := models.SanitizeInput(req.Msg.Name)
	if err := models.ValidateMemberName(name); err != nil {
		return nil, toConnectError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if hasActiveMemberNamed(group, name, "") {
		return nil, toConnectError(fmt.Errorf("%w: %s", models.ErrMemberExists, name))
	}

	member := &models.Member{Name: name, IsActive: true}
	event := &models.HistoryEvent{Message: name + " added to group"}
	if err := s.store.AddMember(ctx, group.ID, member, event); err != nil {
		slog.Error("AddMember failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Member added", "group_id", group.ID, "member_id", member.ID)

	return connect.NewResponse(&api.AddMemberResponse{Member: toAPIMember(member)}), nil
}

// UpdateMember renames a member.
func (s *GroupService) UpdateMember(ctx context.Context, req *connect.Request[api.UpdateMemberRequest]) (*connect.Response[api.UpdateMemberResponse], error) {
	if err := requireID("groupId", req.Msg.GroupID); err != nil {
		return nil, err
	}
	if err := requireID("memberId", req.Msg.MemberID); err != nil {
		return nil, err
	}
	name := models.SanitizeInput(req.Msg.Name)
	if err := models.ValidateMemberName(name); err != nil {
		return nil, toConnectError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(err)
	}
	member := group.FindMember(req.Msg.MemberID)
	if member == nil {
		return nil, toConnectError(fmt.Errorf("%w: %s", models.ErrMemberNotFound, req.Msg.MemberID))
	}
	if member.IsActive && hasActiveMemberNamed(group, name, member.ID) {
		return nil, toConnectError(fmt.Errorf("%w: %s", models.ErrMemberExists, name))
	}

	event := &models.HistoryEvent{Message: fmt.Sprintf("Member renamed from \"%s\" to \"%s\"", member.Name, name)}
	member.Name = name
	if err := s.store.UpdateMember(ctx, group.ID, member, event); err != nil {
		slog.Error("UpdateMember failed", "group_id", group.ID, "member_id", member.ID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.UpdateMemberResponse{Member: toAPIMember(member)}), nil
}

// RemoveMember deactivates a member that any expense refers to and deletes
// one that no expense refers to.
func (s *GroupService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	slog.Info("RemoveMember request received", "group_id", req.Msg.GroupID, "member_id", req.Msg.MemberID)

	if err := requireID("groupId", req.Msg.GroupID); err != nil {
		return nil, err
	}
	if err := requireID("memberId", req.Msg.MemberID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(err)
	}
	member := group.FindMember(req.Msg.MemberID)
	if member == nil {
		return nil, toConnectError(fmt.Errorf("%w: %s", models.ErrMemberNotFound, req.Msg.MemberID))
	}

	deactivated := group.IsReferenced(member.ID)
	event := &models.HistoryEvent{Message: member.Name + " removed from group"}
	if deactivated {
		member.IsActive = false
		event.Message += " (kept in history)"
		err = s.store.UpdateMember(ctx, group.ID, member, event)
	} else {
		err = s.store.DeleteMember(ctx, group.ID, member.ID, event)
	}
	if err != nil {
		slog.Error("RemoveMember failed", "group_id", group.ID, "member_id", member.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Member removed", "group_id", group.ID, "member_id", member.ID, "deactivated", deactivated)

	return connect.NewResponse(&api.RemoveMemberResponse{Deactivated: deactivated}), nil
}

// hasActiveMemberNamed reports whether an active member other than exceptID
// already uses name, compared case-insensitively.
func hasActiveMemberNamed(group *models.Group, name, exceptID string) bool {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, m := range group.Members {
		if m.IsActive && m.ID != exceptID && strings.ToLower(m.Name) == key {
			return true
		}
	}
	return false
}
