package api

// CreateGroupRequest creates a group with an initial set of members.
type CreateGroupRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	MemberNames []string `json:"memberNames"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

// UpdateGroupRequest changes only the fields that are set.
type UpdateGroupRequest struct {
	GroupID     string  `json:"groupId"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type UpdateGroupResponse struct {
	Group *Group `json:"group"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"groupId"`
}

type DeleteGroupResponse struct{}

type AddMemberRequest struct {
	GroupID string `json:"groupId"`
	Name    string `json:"name"`
}

type AddMemberResponse struct {
	Member *Member `json:"member"`
}

type UpdateMemberRequest struct {
	GroupID  string `json:"groupId"`
	MemberID string `json:"memberId"`
	Name     string `json:"name"`
}

type UpdateMemberResponse struct {
	Member *Member `json:"member"`
}

type RemoveMemberRequest struct {
	GroupID  string `json:"groupId"`
	MemberID string `json:"memberId"`
}

// RemoveMemberResponse reports whether the member was deactivated (still
// referenced by an expense) rather than deleted.
type RemoveMemberResponse struct {
	Deactivated bool `json:"deactivated"`
}

type GetGroupBalancesRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupBalancesResponse struct {
	Balances    []*Balance    `json:"balances"`
	Settlements []*Settlement `json:"settlements"`
}

type GetGroupStatsRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupStatsResponse struct {
	Stats *GroupStats `json:"stats"`
}
