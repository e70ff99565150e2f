package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/moneysplits/pkg/api"
)

// GroupServiceName is the fully-qualified name of the GroupService.
const GroupServiceName = Package + ".GroupService"

// Procedure paths, one per RPC.
const (
	GroupServiceCreateGroupProcedure      = "/" + GroupServiceName + "/CreateGroup"
	GroupServiceGetGroupProcedure         = "/" + GroupServiceName + "/GetGroup"
	GroupServiceListGroupsProcedure       = "/" + GroupServiceName + "/ListGroups"
	GroupServiceUpdateGroupProcedure      = "/" + GroupServiceName + "/UpdateGroup"
	GroupServiceDeleteGroupProcedure      = "/" + GroupServiceName + "/DeleteGroup"
	GroupServiceAddMemberProcedure        = "/" + GroupServiceName + "/AddMember"
	GroupServiceUpdateMemberProcedure     = "/" + GroupServiceName + "/UpdateMember"
	GroupServiceRemoveMemberProcedure     = "/" + GroupServiceName + "/RemoveMember"
	GroupServiceGetGroupBalancesProcedure = "/" + GroupServiceName + "/GetGroupBalances"
	GroupServiceGetGroupStatsProcedure    = "/" + GroupServiceName + "/GetGroupStats"
)

// GroupServiceClient is a client for the GroupService.
type GroupServiceClient interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	UpdateGroup(context.Context, *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.UpdateGroupResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	UpdateMember(context.Context, *connect.Request[api.UpdateMemberRequest]) (*connect.Response[api.UpdateMemberResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error)
	GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error)
	GetGroupStats(context.Context, *connect.Request[api.GetGroupStatsRequest]) (*connect.Response[api.GetGroupStatsResponse], error)
}

// NewGroupServiceClient constructs a client for the GroupService. baseURL is the
// server root, e.g. http://localhost:8080.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &groupServiceClient{
		createGroup:      connect.NewClient[api.CreateGroupRequest, api.CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		getGroup:         connect.NewClient[api.GetGroupRequest, api.GetGroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		listGroups:       connect.NewClient[api.ListGroupsRequest, api.ListGroupsResponse](httpClient, baseURL+GroupServiceListGroupsProcedure, opts...),
		updateGroup:      connect.NewClient[api.UpdateGroupRequest, api.UpdateGroupResponse](httpClient, baseURL+GroupServiceUpdateGroupProcedure, opts...),
		deleteGroup:      connect.NewClient[api.DeleteGroupRequest, api.DeleteGroupResponse](httpClient, baseURL+GroupServiceDeleteGroupProcedure, opts...),
		addMember:        connect.NewClient[api.AddMemberRequest, api.AddMemberResponse](httpClient, baseURL+GroupServiceAddMemberProcedure, opts...),
		updateMember:     connect.NewClient[api.UpdateMemberRequest, api.UpdateMemberResponse](httpClient, baseURL+GroupServiceUpdateMemberProcedure, opts...),
		removeMember:     connect.NewClient[api.RemoveMemberRequest, api.RemoveMemberResponse](httpClient, baseURL+GroupServiceRemoveMemberProcedure, opts...),
		getGroupBalances: connect.NewClient[api.GetGroupBalancesRequest, api.GetGroupBalancesResponse](httpClient, baseURL+GroupServiceGetGroupBalancesProcedure, opts...),
		getGroupStats:    connect.NewClient[api.GetGroupStatsRequest, api.GetGroupStatsResponse](httpClient, baseURL+GroupServiceGetGroupStatsProcedure, opts...),
	}
}

type groupServiceClient struct {
	createGroup      *connect.Client[api.CreateGroupRequest, api.CreateGroupResponse]
	getGroup         *connect.Client[api.GetGroupRequest, api.GetGroupResponse]
	listGroups       *connect.Client[api.ListGroupsRequest, api.ListGroupsResponse]
	updateGroup      *connect.Client[api.UpdateGroupRequest, api.UpdateGroupResponse]
	deleteGroup      *connect.Client[api.DeleteGroupRequest, api.DeleteGroupResponse]
	addMember        *connect.Client[api.AddMemberRequest, api.AddMemberResponse]
	updateMember     *connect.Client[api.UpdateMemberRequest, api.UpdateMemberResponse]
	removeMember     *connect.Client[api.RemoveMemberRequest, api.RemoveMemberResponse]
	getGroupBalances *connect.Client[api.GetGroupBalancesRequest, api.GetGroupBalancesResponse]
	getGroupStats    *connect.Client[api.GetGroupStatsRequest, api.GetGroupStatsResponse]
}

func (c *groupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *groupServiceClient) UpdateGroup(ctx context.Context, req *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.UpdateGroupResponse], error) {
	return c.updateGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *groupServiceClient) UpdateMember(ctx context.Context, req *connect.Request[api.UpdateMemberRequest]) (*connect.Response[api.UpdateMemberResponse], error) {
	return c.updateMember.CallUnary(ctx, req)
}

func (c *groupServiceClient) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	return c.getGroupBalances.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroupStats(ctx context.Context, req *connect.Request[api.GetGroupStatsRequest]) (*connect.Response[api.GetGroupStatsResponse], error) {
	return c.getGroupStats.CallUnary(ctx, req)
}

// GroupServiceHandler is implemented by the server side of the GroupService, which manages groups and their members.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	UpdateGroup(context.Context, *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.UpdateGroupResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	UpdateMember(context.Context, *connect.Request[api.UpdateMemberRequest]) (*connect.Response[api.UpdateMemberResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error)
	GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error)
	GetGroupStats(context.Context, *connect.Request[api.GetGroupStatsRequest]) (*connect.Response[api.GetGroupStatsResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(GroupServiceCreateGroupProcedure, connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...))
	mux.Handle(GroupServiceGetGroupProcedure, connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opts...))
	mux.Handle(GroupServiceListGroupsProcedure, connect.NewUnaryHandler(GroupServiceListGroupsProcedure, svc.ListGroups, opts...))
	mux.Handle(GroupServiceUpdateGroupProcedure, connect.NewUnaryHandler(GroupServiceUpdateGroupProcedure, svc.UpdateGroup, opts...))
	mux.Handle(GroupServiceDeleteGroupProcedure, connect.NewUnaryHandler(GroupServiceDeleteGroupProcedure, svc.DeleteGroup, opts...))
	mux.Handle(GroupServiceAddMemberProcedure, connect.NewUnaryHandler(GroupServiceAddMemberProcedure, svc.AddMember, opts...))
	mux.Handle(GroupServiceUpdateMemberProcedure, connect.NewUnaryHandler(GroupServiceUpdateMemberProcedure, svc.UpdateMember, opts...))
	mux.Handle(GroupServiceRemoveMemberProcedure, connect.NewUnaryHandler(GroupServiceRemoveMemberProcedure, svc.RemoveMember, opts...))
	mux.Handle(GroupServiceGetGroupBalancesProcedure, connect.NewUnaryHandler(GroupServiceGetGroupBalancesProcedure, svc.GetGroupBalances, opts...))
	mux.Handle(GroupServiceGetGroupStatsProcedure, connect.NewUnaryHandler(GroupServiceGetGroupStatsProcedure, svc.GetGroupStats, opts...))
	return "/" + GroupServiceName + "/", mux
}

// UnimplementedGroupServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedGroupServiceHandler struct{}

func (UnimplementedGroupServiceHandler) CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("moneysplits.v1.GroupService.CreateGroup is not implemented"))
}

func (UnimplementedGroupServiceHandler) GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("moneysplits.v1.GroupService.GetGroup is not implemented"))
}

func (UnimplementedGroupServiceHandler) ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("moneysplits.v1.GroupService.ListGroups is not implemented"))
}

func (UnimplementedGroupServiceHandler) UpdateGroup(context.Context, *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.UpdateGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("moneysplits.v1.GroupService.UpdateGroup is not implemented"))
}

func (UnimplementedGroupServiceHandler) DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("moneysplits.v1.GroupService.DeleteGroup is not implemented"))
}

func (UnimplementedGroupServiceHandler) AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("moneysplits.v1.GroupService.AddMember is not implemented"))
}

func (UnimplementedGroupServiceHandler) UpdateMember(context.Context, *connect.Request[api.UpdateMemberRequest]) (*connect.Response[api.UpdateMemberResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("moneysplits.v1.GroupService.UpdateMember is not implemented"))
}

func (UnimplementedGroupServiceHandler) RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("moneysplits.v1.GroupService.RemoveMember is not implemented"))
}

func (UnimplementedGroupServiceHandler) GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("moneysplits.v1.GroupService.GetGroupBalances is not implemented"))
}

func (UnimplementedGroupServiceHandler) GetGroupStats(context.Context, *connect.Request[api.GetGroupStatsRequest]) (*connect.Response[api.GetGroupStatsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("moneysplits.v1.GroupService.GetGroupStats is not implemented"))
}
