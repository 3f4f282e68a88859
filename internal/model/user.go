package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Email        string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Username     string         `gorm:"size:50;uniqueIndex;not null" json:"username"`
	DisplayName  string         `gorm:"size:100" json:"display_name"`
	PasswordHash string         `gorm:"not null" json:"-"`
}

// BeforeCreate hook for User
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserPreference stores a user's dietary preferences, one row per user.
type UserPreference struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID              uuid.UUID        `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	DietaryRestrictions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"dietary_restrictions"`
	Allergies           JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"allergies"`
	FavoriteCuisines    JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"favorite_cuisines"`
	SkillLevel          string           `gorm:"size:20;default:'beginner'" json:"skill_level"`
	DefaultServings     int              `gorm:"default:2" json:"default_servings"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// BeforeCreate hook for UserPreference
func (p *UserPreference) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// SavedRecipe is a user's cookbook entry with an optional rating and notes.
type SavedRecipe struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index:idx_saved_user_recipe,unique" json:"user_id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index:idx_saved_user_recipe,unique" json:"recipe_id"`
	Rating   int       `gorm:"check:rating >= 0 AND rating <= 5" json:"rating"`
	Notes    string    `gorm:"type:text" json:"notes"`
	SavedAt  time.Time `gorm:"autoCreateTime" json:"saved_at"`
	Recipe   *Recipe   `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
}

// BeforeCreate hook for SavedRecipe
func (s *SavedRecipe) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
