// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package permission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morganforge/ownertag/internal/model"
	"github.com/morganforge/ownertag/internal/permission"
)

// =============================================================================
// FIXTURES
// =============================================================================

func testGuild(roles map[string]permission.Permission) *model.Guild {
	g := &model.Guild{ID: "G1", OwnerID: "U1", Roles: map[string]model.Role{}}
	for id, perms := range roles {
		g.Roles[id] = model.Role{ID: id, Permissions: perms}
	}
	return g
}

func member(roles ...string) *model.Member {
	return &model.Member{GuildID: "G1", Roles: roles}
}

// =============================================================================
// RESOLUTION TESTS
// =============================================================================

func TestResolvePermissions_KickMembersRole(t *testing.T) {
	g := testGuild(map[string]permission.Permission{
		"G1": 0,
		"R1": permission.KickMembers,
	})

	perms := permission.ResolvePermissions(g, member("R1"), "U2")
	assert.Equal(t, permission.KickMembers, perms)
	assert.Equal(t, permission.TierManagement, permission.ClassifyTier(perms, false, false))
}

func TestResolvePermissions_OwnerWithoutRoles(t *testing.T) {
	g := testGuild(map[string]permission.Permission{"G1": 0, "R1": permission.KickMembers})

	perms := permission.ResolvePermissions(g, member(), "U1")
	assert.Equal(t, permission.All, perms)

	c := permission.Classify(g, member(), "U1")
	assert.Equal(t, permission.TierOwner, c.Tier)
	assert.True(t, c.IsOwner)
}

func TestClassify_OwnerWithoutMemberRecord(t *testing.T) {
	g := testGuild(map[string]permission.Permission{"G1": 0})

	c := permission.Classify(g, nil, "U1")
	assert.Equal(t, permission.Permission(0), c.Permissions)
	assert.Equal(t, permission.TierOwner, c.Tier)
}

func TestResolvePermissions_AdministratorEscalates(t *testing.T) {
	g := testGuild(map[string]permission.Permission{
		"G1": 0,
		"R9": permission.Administrator,
	})

	perms := permission.ResolvePermissions(g, member("R9"), "U3")
	require.Equal(t, permission.All, perms)
	for _, name := range permission.Defined() {
		bit, err := permission.ParseName(name)
		require.NoError(t, err)
		assert.True(t, perms.Has(bit), "administrator should imply %s", name)
	}
	assert.Equal(t, permission.TierAdmin, permission.ClassifyTier(perms, false, false))
}

func TestResolvePermissions_BaseRoleApplies(t *testing.T) {
	g := testGuild(map[string]permission.Permission{
		"G1": permission.ManageMessages | permission.SendMessages,
	})

	perms := permission.ResolvePermissions(g, member(), "U4")
	assert.Equal(t, permission.ManageMessages|permission.SendMessages, perms)
}

func TestResolvePermissions_BaseRoleGrantsAdministrator(t *testing.T) {
	g := testGuild(map[string]permission.Permission{"G1": permission.Administrator})

	assert.Equal(t, permission.All, permission.ResolvePermissions(g, member(), "U4"))
}

func TestResolvePermissions_MissingRolesContributeNothing(t *testing.T) {
	g := &model.Guild{ID: "G1", OwnerID: "U1"}

	perms := permission.ResolvePermissions(g, member("ghost", "R1"), "U2")
	assert.Equal(t, permission.Permission(0), perms)
}

func TestResolvePermissions_AbsentContext(t *testing.T) {
	g := testGuild(map[string]permission.Permission{"G1": permission.KickMembers})

	var nilGuild *model.Guild
	var nilMember *model.Member

	assert.Equal(t, permission.Permission(0), permission.ResolvePermissions(nil, member(), "U2"))
	assert.Equal(t, permission.Permission(0), permission.ResolvePermissions(nilGuild, member(), "U2"))
	assert.Equal(t, permission.Permission(0), permission.ResolvePermissions(g, nil, "U2"))
	assert.Equal(t, permission.Permission(0), permission.ResolvePermissions(g, nilMember, "U2"))
	assert.Equal(t, permission.TierNone, permission.Classify(nilGuild, nil, "U2").Tier)
}

func TestResolvePermissions_Monotonic(t *testing.T) {
	roles := map[string]permission.Permission{
		"G1": permission.SendMessages,
		"R1": permission.KickMembers,
		"R2": permission.ManageMessages | permission.EmbedLinks,
		"R3": permission.Administrator,
		"R4": 0,
	}
	g := testGuild(roles)
	order := []string{"R4", "R1", "R2", "R3"}

	var held []string
	prev := permission.ResolvePermissions(g, member(), "U2")
	for _, id := range order {
		held = append(held, id)
		next := permission.ResolvePermissions(g, member(held...), "U2")
		assert.True(t, next.Has(prev), "adding %s dropped bits: %v -> %v", id, prev, next)
		prev = next
	}
}

// =============================================================================
// CLASSIFICATION TESTS
// =============================================================================

func TestClassifyTier(t *testing.T) {
	tests := []struct {
		name         string
		perms        permission.Permission
		isOwner      bool
		isGroupOwner bool
		want         permission.Tier
	}{
		{"owner with nothing", 0, true, false, permission.TierOwner},
		{"owner beats admin", permission.All, true, false, permission.TierOwner},
		{"administrator", permission.Administrator, false, false, permission.TierAdmin},
		{"all bits", permission.All, false, false, permission.TierAdmin},
		{"kick", permission.KickMembers, false, false, permission.TierManagement},
		{"ban", permission.BanMembers, false, false, permission.TierManagement},
		{"manage messages", permission.ManageMessages, false, false, permission.TierManagement},
		{"moderation beats group owner", permission.BanMembers, false, true, permission.TierManagement},
		{"group owner", 0, false, true, permission.TierOwner},
		{"unrelated bits", permission.SendMessages | permission.ManageRoles, false, false, permission.TierNone},
		{"nothing", 0, false, false, permission.TierNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := permission.ClassifyTier(tc.perms, tc.isOwner, tc.isGroupOwner)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClassifyTier_GroupConversation(t *testing.T) {
	group := &model.Channel{ID: "C1", Type: model.ChannelGroupDM, OwnerID: "U7"}

	perms := permission.ResolvePermissions(nil, nil, "U7")
	assert.Equal(t, permission.TierOwner, permission.ClassifyTier(perms, false, group.IsGroupOwner("U7")))
	assert.Equal(t, permission.TierNone, permission.ClassifyTier(perms, false, group.IsGroupOwner("U8")))
}

func TestTierOrdering(t *testing.T) {
	assert.Less(t, int(permission.TierNone), int(permission.TierManagement))
	assert.Less(t, int(permission.TierManagement), int(permission.TierAdmin))
	assert.Less(t, int(permission.TierAdmin), int(permission.TierOwner))
}

func TestTierStrings(t *testing.T) {
	tests := []struct {
		tier  permission.Tier
		name  string
		label string
	}{
		{permission.TierNone, "NONE", ""},
		{permission.TierManagement, "MANAGEMENT", "Mod"},
		{permission.TierAdmin, "ADMIN", "Admin"},
		{permission.TierOwner, "OWNER", "Owner"},
		{permission.Tier(42), "UNKNOWN", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.name, tc.tier.String())
		assert.Equal(t, tc.label, tc.tier.Label())
	}

	parsed, err := permission.ParseTier("mod")
	require.NoError(t, err)
	assert.Equal(t, permission.TierManagement, parsed)

	_, err = permission.ParseTier("emperor")
	assert.Error(t, err)
}
