package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/moneysplits/pkg/api"
)

func TestAddMember(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	group := c.createGroup(t, "Flat", "Alice", "Bob")

	resp, err := c.groups.AddMember(ctx, connect.NewRequest(&api.AddMemberRequest{GroupID: group.ID, Name: "Dev"}))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Msg.Member.ID)
	assert.True(t, resp.Msg.Member.IsActive)

	got := c.getGroup(t, group.ID)
	require.Len(t, got.Members, 3)
	assert.Equal(t, "Dev", got.Members[2].Name)
	assert.Equal(t, "Dev added to group", lastHistory(got))

	_, err = c.groups.AddMember(ctx, connect.NewRequest(&api.AddMemberRequest{GroupID: group.ID, Name: "ALICE"}))
	requireCode(t, err, connect.CodeAlreadyExists)

	_, err = c.groups.AddMember(ctx, connect.NewRequest(&api.AddMemberRequest{GroupID: group.ID, Name: "X"}))
	requireCode(t, err, connect.CodeInvalidArgument)

	_, err = c.groups.AddMember(ctx, connect.NewRequest(&api.AddMemberRequest{GroupID: "missing", Name: "Eve"}))
	requireCode(t, err, connect.CodeNotFound)
}

func TestAddMember_ReusesNameOfInactiveMember(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	group := c.createGroup(t, "Flat", "Alice", "Bob")
	alice, bob := group.Members[0].ID, group.Members[1].ID
	c.addExpense(t, group.ID, "Milk", "40", alice, alice, bob)

	_, err := c.groups.RemoveMember(ctx, connect.NewRequest(&api.RemoveMemberRequest{GroupID: group.ID, MemberID: bob}))
	require.NoError(t, err)

	_, err = c.groups.AddMember(ctx, connect.NewRequest(&api.AddMemberRequest{GroupID: group.ID, Name: "Bob"}))
	require.NoError(t, err)
}

func TestUpdateMember(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	group := c.createGroup(t, "Flat", "Alice", "Bob")
	bob := group.Members[1].ID

	resp, err := c.groups.UpdateMember(ctx, connect.NewRequest(&api.UpdateMemberRequest{
		GroupID:  group.ID,
		MemberID: bob,
		Name:     "Robert",
	}))
	require.NoError(t, err)
	assert.Equal(t, "Robert", resp.Msg.Member.Name)

	got := c.getGroup(t, group.ID)
	assert.Equal(t, "Robert", got.Members[1].Name)
	assert.Equal(t, `Member renamed from "Bob" to "Robert"`, lastHistory(got))

	_, err = c.groups.UpdateMember(ctx, connect.NewRequest(&api.UpdateMemberRequest{GroupID: group.ID, MemberID: bob, Name: "alice"}))
	requireCode(t, err, connect.CodeAlreadyExists)

	_, err = c.groups.UpdateMember(ctx, connect.NewRequest(&api.UpdateMemberRequest{GroupID: group.ID, MemberID: "missing", Name: "Carol"}))
	requireCode(t, err, connect.CodeNotFound)

	_, err = c.groups.UpdateMember(ctx, connect.NewRequest(&api.UpdateMemberRequest{GroupID: group.ID, MemberID: bob, Name: ""}))
	requireCode(t, err, connect.CodeInvalidArgument)
}

func TestRemoveMember(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	group := c.createGroup(t, "Flat", "Alice", "Bob", "Chandra")
	alice, bob, chandra := group.Members[0].ID, group.Members[1].ID, group.Members[2].ID
	c.addExpense(t, group.ID, "Groceries", "90", alice, alice, bob)

	t.Run("referenced member is deactivated", func(t *testing.T) {
		resp, err := c.groups.RemoveMember(ctx, connect.NewRequest(&api.RemoveMemberRequest{GroupID: group.ID, MemberID: bob}))
		require.NoError(t, err)
		assert.True(t, resp.Msg.Deactivated)

		got := c.getGroup(t, group.ID)
		require.Len(t, got.Members, 3)
		assert.False(t, got.Members[1].IsActive)
		assert.Equal(t, "Bob removed from group (kept in history)", lastHistory(got))
	})

	t.Run("unreferenced member is deleted", func(t *testing.T) {
		resp, err := c.groups.RemoveMember(ctx, connect.NewRequest(&api.RemoveMemberRequest{GroupID: group.ID, MemberID: chandra}))
		require.NoError(t, err)
		assert.False(t, resp.Msg.Deactivated)

		got := c.getGroup(t, group.ID)
		require.Len(t, got.Members, 2)
		assert.Equal(t, "Chandra removed from group", lastHistory(got))
	})

	t.Run("inactive member drops out of balances", func(t *testing.T) {
		resp, err := c.groups.GetGroupBalances(ctx, connect.NewRequest(&api.GetGroupBalancesRequest{GroupID: group.ID}))
		require.NoError(t, err)
		require.Len(t, resp.Msg.Balances, 1)
		assert.Equal(t, alice, resp.Msg.Balances[0].MemberID)
	})

	t.Run("missing member", func(t *testing.T) {
		_, err := c.groups.RemoveMember(ctx, connect.NewRequest(&api.RemoveMemberRequest{GroupID: group.ID, MemberID: chandra}))
		requireCode(t, err, connect.CodeNotFound)
	})
}
