package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/models"
)

var (
	ErrSelfFollow   = errors.New("cannot follow yourself")
	ErrFollowExists = errors.New("follow request already exists")
	ErrNoSuchFollow = errors.New("no such follow")
	ErrNotPending   = errors.New("follow request is not pending")
	ErrNotAccepted  = errors.New("not currently following")
)

// SocialService owns the follow state machine and every visibility
// decision derived from it.
type SocialService struct {
	db *gorm.DB
}

func NewSocialService(db *gorm.DB) *SocialService {
	return &SocialService{db: db}
}

func (s *SocialService) edge(followerID, followingID uuid.UUID) (*models.Follow, error) {
	var f models.Follow
	err := s.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoSuchFollow
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// RequestFollow creates a pending edge and notifies the target.
func (s *SocialService) RequestFollow(followerID, targetID uuid.UUID) error {
	if followerID == targetID {
		return ErrSelfFollow
	}
	if _, err := s.edge(followerID, targetID); err == nil {
		return ErrFollowExists
	} else if !errors.Is(err, ErrNoSuchFollow) {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		f := models.Follow{FollowerID: followerID, FollowingID: targetID, Status: models.FollowPending}
		if err := tx.Create(&f).Error; err != nil {
			return err
		}
		return notify(tx, targetID, followerID, models.NotifFollowRequest)
	})
}

// AcceptFollow is performed by the followee on a pending request.
func (s *SocialService) AcceptFollow(targetID, followerID uuid.UUID) error {
	f, err := s.edge(followerID, targetID)
	if err != nil {
		return err
	}
	if f.Status != models.FollowPending {
		return ErrNotPending
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Follow{}).
			Where("follower_id = ? AND following_id = ?", followerID, targetID).
			Update("status", models.FollowAccepted).Error
		if err != nil {
			return err
		}
		return notify(tx, followerID, targetID, models.NotifFollowAccepted)
	})
}

// DeclineFollow is performed by the followee; the pending edge is removed.
func (s *SocialService) DeclineFollow(targetID, followerID uuid.UUID) error {
	f, err := s.edge(followerID, targetID)
	if err != nil {
		return err
	}
	if f.Status != models.FollowPending {
		return ErrNotPending
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteEdge(tx, followerID, targetID); err != nil {
			return err
		}
		return notify(tx, followerID, targetID, models.NotifFollowDeclined)
	})
}

// CancelFollow is performed by the follower on their own pending request.
func (s *SocialService) CancelFollow(followerID, targetID uuid.UUID) error {
	f, err := s.edge(followerID, targetID)
	if err != nil {
		return err
	}
	if f.Status != models.FollowPending {
		return ErrNotPending
	}
	return deleteEdge(s.db, followerID, targetID)
}

// Unfollow removes an accepted edge and notifies the ex-followee.
func (s *SocialService) Unfollow(followerID, targetID uuid.UUID) error {
	f, err := s.edge(followerID, targetID)
	if err != nil {
		return err
	}
	if f.Status != models.FollowAccepted {
		return ErrNotAccepted
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteEdge(tx, followerID, targetID); err != nil {
			return err
		}
		return notify(tx, targetID, followerID, models.NotifUnfollow)
	})
}

func deleteEdge(tx *gorm.DB, followerID, targetID uuid.UUID) error {
	return tx.Where("follower_id = ? AND following_id = ?", followerID, targetID).
		Delete(&models.Follow{}).Error
}

func notify(tx *gorm.DB, to, from uuid.UUID, kind string) error {
	n := models.Notification{ID: uuid.New(), ToUserID: to, FromUserID: from, Type: kind}
	return tx.Create(&n).Error
}

// hasAccepted reports an accepted edge from a to b.
func (s *SocialService) hasAccepted(a, b uuid.UUID) bool {
	var count int64
	s.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ? AND status = ?", a, b, models.FollowAccepted).
		Count(&count)
	return count > 0
}

// CanViewProfile decides whether viewer may see target's profile at all.
// Self is always allowed; open accounts are visible to everyone; closed
// accounts require an accepted follow from the viewer; private accounts
// are visible to nobody else.
func (s *SocialService) CanViewProfile(viewerID uuid.UUID, target *models.User) bool {
	if viewerID == target.ID {
		return true
	}
	switch target.AccountVisibility {
	case models.AccountOpen:
		return true
	case models.AccountClosed:
		return s.hasAccepted(viewerID, target.ID)
	default:
		return false
	}
}

// CanViewEntity applies the per-entity visibility overlay on top of the
// profile gate. followers needs an accepted edge in either direction;
// friends needs both directions.
func (s *SocialService) CanViewEntity(viewerID, ownerID uuid.UUID, visibility string) bool {
	if viewerID == ownerID {
		return true
	}
	switch visibility {
	case models.VisibilityPublic:
		return true
	case models.VisibilityFollowers:
		return s.hasAccepted(viewerID, ownerID) || s.hasAccepted(ownerID, viewerID)
	case models.VisibilityFriends:
		return s.hasAccepted(viewerID, ownerID) && s.hasAccepted(ownerID, viewerID)
	default:
		return false
	}
}

// FilterFlavors drops flavors the viewer may not see.
func (s *SocialService) FilterFlavors(viewerID uuid.UUID, flavors []models.Flavor) []models.Flavor {
	visible := make([]models.Flavor, 0, len(flavors))
	for _, f := range flavors {
		if s.CanViewEntity(viewerID, f.UserID, f.Visibility) {
			visible = append(visible, f)
		}
	}
	return visible
}

// FilterSubflavors drops subflavors the viewer may not see.
func (s *SocialService) FilterSubflavors(viewerID uuid.UUID, subs []models.Subflavor) []models.Subflavor {
	visible := make([]models.Subflavor, 0, len(subs))
	for _, sub := range subs {
		if s.CanViewEntity(viewerID, sub.UserID, sub.Visibility) {
			visible = append(visible, sub)
		}
	}
	return visible
}

// FilterIngredients drops ingredients the viewer may not see.
func (s *SocialService) FilterIngredients(viewerID uuid.UUID, ingredients []models.Ingredient) []models.Ingredient {
	visible := make([]models.Ingredient, 0, len(ingredients))
	for _, ing := range ingredients {
		if s.CanViewEntity(viewerID, ing.UserID, ing.Visibility) {
			visible = append(visible, ing)
		}
	}
	return visible
}

// ListNotifications returns the user's inbox, newest first.
func (s *SocialService) ListNotifications(userID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Where("to_user_id = ?", userID).Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

// PendingRequests lists pending inbound follow requests for a user.
func (s *SocialService) PendingRequests(userID uuid.UUID) ([]models.Follow, error) {
	var follows []models.Follow
	err := s.db.Where("following_id = ? AND status = ?", userID, models.FollowPending).
		Find(&follows).Error
	return follows, err
}

// FollowState returns the edge status from follower to target: "", pending
// or accepted.
func (s *SocialService) FollowState(followerID, targetID uuid.UUID) (string, error) {
	f, err := s.edge(followerID, targetID)
	if errors.Is(err, ErrNoSuchFollow) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return f.Status, nil
}
