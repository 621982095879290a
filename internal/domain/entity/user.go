package entity

import (
	"time"
)

type User struct {
	ID       string `json:"id" firestore:"id"`
	Email    string `json:"email" firestore:"email"`
	Username string `json:"username" firestore:"username"`
	Phone    string `json:"phone,omitempty" firestore:"phone,omitempty"`
	Bio      string `json:"bio,omitempty" firestore:"bio,omitempty"`
	Role     string `json:"role" firestore:"role"` // user, admin
	Status   string `json:"status" firestore:"status"`

	City     string `json:"city,omitempty" firestore:"city,omitempty"`
	Locality string `json:"locality,omitempty" firestore:"locality,omitempty"`

	HelperRating      float64 `json:"helper_rating,omitempty" firestore:"helperRating,omitempty"`
	HelperReviewCount int     `json:"helper_review_count,omitempty" firestore:"helperReviewCount,omitempty"`
	PosterRating      float64 `json:"poster_rating,omitempty" firestore:"posterRating,omitempty"`
	PosterReviewCount int     `json:"poster_review_count,omitempty" firestore:"posterReviewCount,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
