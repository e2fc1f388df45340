package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/models"
	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/testhelpers"
)

func acceptedEdge(t *testing.T, db *gorm.DB, svc *SocialService, follower, target *models.User) {
	t.Helper()
	require.NoError(t, svc.RequestFollow(follower.ID, target.ID))
	require.NoError(t, svc.AcceptFollow(target.ID, follower.ID))
}

func TestFollowLifecycle(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewSocialService(db)
	alice := testhelpers.CreateTestUser(t, db, "alice")
	bob := testhelpers.CreateTestUser(t, db, "bob")

	assert.ErrorIs(t, svc.RequestFollow(alice.ID, alice.ID), ErrSelfFollow)

	require.NoError(t, svc.RequestFollow(alice.ID, bob.ID))
	assert.ErrorIs(t, svc.RequestFollow(alice.ID, bob.ID), ErrFollowExists)

	state, err := svc.FollowState(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FollowPending, state)

	pending, err := svc.PendingRequests(bob.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, alice.ID, pending[0].FollowerID)

	require.NoError(t, svc.AcceptFollow(bob.ID, alice.ID))
	state, err = svc.FollowState(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FollowAccepted, state)

	// Accepting twice is not pending anymore.
	assert.ErrorIs(t, svc.AcceptFollow(bob.ID, alice.ID), ErrNotPending)

	require.NoError(t, svc.Unfollow(alice.ID, bob.ID))
	state, err = svc.FollowState(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, state)
}

func TestDeclineAndCancelFollow(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewSocialService(db)
	alice := testhelpers.CreateTestUser(t, db, "alice")
	bob := testhelpers.CreateTestUser(t, db, "bob")

	require.NoError(t, svc.RequestFollow(alice.ID, bob.ID))
	require.NoError(t, svc.DeclineFollow(bob.ID, alice.ID))
	state, err := svc.FollowState(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, state, "declined request leaves no edge")

	// Declined means a new request is possible.
	require.NoError(t, svc.RequestFollow(alice.ID, bob.ID))
	require.NoError(t, svc.CancelFollow(alice.ID, bob.ID))
	state, err = svc.FollowState(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, state)

	assert.ErrorIs(t, svc.Unfollow(alice.ID, bob.ID), ErrNoSuchFollow)
}

func TestFollowNotifications(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewSocialService(db)
	alice := testhelpers.CreateTestUser(t, db, "alice")
	bob := testhelpers.CreateTestUser(t, db, "bob")

	require.NoError(t, svc.RequestFollow(alice.ID, bob.ID))
	inbox, err := svc.ListNotifications(bob.ID)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, models.NotifFollowRequest, inbox[0].Type)

	require.NoError(t, svc.AcceptFollow(bob.ID, alice.ID))
	inbox, err = svc.ListNotifications(alice.ID)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, models.NotifFollowAccepted, inbox[0].Type)

	require.NoError(t, svc.Unfollow(alice.ID, bob.ID))
	inbox, err = svc.ListNotifications(bob.ID)
	require.NoError(t, err)
	require.Len(t, inbox, 2)
}

func TestCanViewProfile(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewSocialService(db)
	viewer := testhelpers.CreateTestUser(t, db, "viewer")
	follower := testhelpers.CreateTestUser(t, db, "follower")

	target := testhelpers.CreateTestUser(t, db, "target")
	acceptedEdge(t, db, svc, follower, target)

	tests := []struct {
		name       string
		visibility string
		asFollower bool
		want       bool
	}{
		{"open visible to anyone", models.AccountOpen, false, true},
		{"closed hidden from strangers", models.AccountClosed, false, false},
		{"closed visible to followers", models.AccountClosed, true, true},
		{"private hidden from strangers", models.AccountPrivate, false, false},
		{"private hidden even from followers", models.AccountPrivate, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target.AccountVisibility = tt.visibility
			who := viewer
			if tt.asFollower {
				who = follower
			}
			assert.Equal(t, tt.want, svc.CanViewProfile(who.ID, target))
		})
	}

	target.AccountVisibility = models.AccountPrivate
	assert.True(t, svc.CanViewProfile(target.ID, target), "self always sees self")
}

func TestCanViewEntity(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewSocialService(db)
	owner := testhelpers.CreateTestUser(t, db, "owner")
	followerOnly := testhelpers.CreateTestUser(t, db, "follower")
	friend := testhelpers.CreateTestUser(t, db, "friend")
	stranger := testhelpers.CreateTestUser(t, db, "stranger")

	acceptedEdge(t, db, svc, followerOnly, owner)
	acceptedEdge(t, db, svc, friend, owner)
	acceptedEdge(t, db, svc, owner, friend)

	assert.True(t, svc.CanViewEntity(stranger.ID, owner.ID, models.VisibilityPublic))
	assert.False(t, svc.CanViewEntity(stranger.ID, owner.ID, models.VisibilityFollowers))
	assert.True(t, svc.CanViewEntity(followerOnly.ID, owner.ID, models.VisibilityFollowers))
	assert.False(t, svc.CanViewEntity(followerOnly.ID, owner.ID, models.VisibilityFriends))
	assert.True(t, svc.CanViewEntity(friend.ID, owner.ID, models.VisibilityFriends))
	assert.False(t, svc.CanViewEntity(friend.ID, owner.ID, models.VisibilityPrivate))
	assert.True(t, svc.CanViewEntity(owner.ID, owner.ID, models.VisibilityPrivate))
}

func TestFilterFlavors(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewSocialService(db)
	flavors := NewFlavorService(db)
	owner := testhelpers.CreateTestUser(t, db, "owner")
	follower := testhelpers.CreateTestUser(t, db, "follower")
	stranger := testhelpers.CreateTestUser(t, db, "stranger")

	acceptedEdge(t, db, svc, follower, owner)

	for _, v := range []string{
		models.VisibilityPublic,
		models.VisibilityFollowers,
		models.VisibilityFriends,
		models.VisibilityPrivate,
	} {
		_, err := flavors.CreateFlavor(owner.ID, FlavorInput{Name: "Flavor " + v, Visibility: v})
		require.NoError(t, err)
	}
	all, err := flavors.ListFlavors(owner.ID)
	require.NoError(t, err)
	require.Len(t, all, 4)

	assert.Len(t, svc.FilterFlavors(stranger.ID, all), 1, "stranger sees only public")
	assert.Len(t, svc.FilterFlavors(follower.ID, all), 2, "follower also sees followers-level")
	assert.Len(t, svc.FilterFlavors(owner.ID, all), 4)
}
