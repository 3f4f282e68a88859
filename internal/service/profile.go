package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrychef/backend/internal/model"
)

// Profile bundles a user's account fields with their preferences.
type Profile struct {
	ID          uuid.UUID            `json:"id"`
	Email       string               `json:"email"`
	Username    string               `json:"username"`
	DisplayName string               `json:"display_name"`
	Preferences model.UserPreference `json:"preferences"`
}

// UpdateProfileRequest carries the mutable profile fields. Nil pointers
// leave the current value untouched.
type UpdateProfileRequest struct {
	DisplayName         *string   `json:"display_name,omitempty"`
	DietaryRestrictions *[]string `json:"dietary_restrictions,omitempty"`
	Allergies           *[]string `json:"allergies,omitempty"`
	FavoriteCuisines    *[]string `json:"favorite_cuisines,omitempty"`
	SkillLevel          *string   `json:"skill_level,omitempty"`
	DefaultServings     *int      `json:"default_servings,omitempty"`
}

// ProfileService handles user profile and preference operations.
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetProfile loads a user's profile with preferences. A missing
// preferences row is materialized with defaults.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	var prefs model.UserPreference
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&prefs).Error
	if err == gorm.ErrRecordNotFound {
		prefs = model.UserPreference{UserID: userID}
		if err := s.db.WithContext(ctx).Create(&prefs).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	return &Profile{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Preferences: prefs,
	}, nil
}

// UpdateProfile applies the provided fields and returns the fresh profile.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*Profile, error) {
	if req.DisplayName != nil {
		if err := s.db.WithContext(ctx).Model(&model.User{}).
			Where("id = ?", userID).
			Update("display_name", *req.DisplayName).Error; err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{}
	if req.DietaryRestrictions != nil {
		updates["dietary_restrictions"] = model.JSONBStringArray(*req.DietaryRestrictions)
	}
	if req.Allergies != nil {
		updates["allergies"] = model.JSONBStringArray(*req.Allergies)
	}
	if req.FavoriteCuisines != nil {
		updates["favorite_cuisines"] = model.JSONBStringArray(*req.FavoriteCuisines)
	}
	if req.SkillLevel != nil {
		updates["skill_level"] = *req.SkillLevel
	}
	if req.DefaultServings != nil {
		updates["default_servings"] = *req.DefaultServings
	}

	if len(updates) > 0 {
		// GetProfile below creates the row when it is missing.
		if _, err := s.GetProfile(ctx, userID); err != nil {
			return nil, err
		}
		if err := s.db.WithContext(ctx).Model(&model.UserPreference{}).
			Where("user_id = ?", userID).
			Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return s.GetProfile(ctx, userID)
}
