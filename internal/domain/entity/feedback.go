package entity

import (
	"time"
)

const (
	FeedbackStatusPending  = "Pending"
	FeedbackStatusReviewed = "Reviewed"
	FeedbackStatusResolved = "Resolved"
)

var FeedbackStatuses = []string{FeedbackStatusPending, FeedbackStatusReviewed, FeedbackStatusResolved}

var FeedbackCategories = []string{"User Experience", "Features", "Performance", "Support", "Other"}

const (
	MinFeedbackRating     = 1
	MaxFeedbackRating     = 5
	PositiveRating        = 4
	MinFeedbackMessageLen = 10
)

type Feedback struct {
	ID          string    `json:"id" firestore:"id"`
	UserID      string    `json:"user_id,omitempty" firestore:"userId"`
	Name        string    `json:"name" firestore:"name"`
	Email       string    `json:"email" firestore:"email"`
	Rating      int       `json:"rating" firestore:"rating"`
	Category    string    `json:"category" firestore:"category"`
	Subject     string    `json:"subject" firestore:"subject"`
	Message     string    `json:"message" firestore:"message"`
	IsAnonymous bool      `json:"is_anonymous" firestore:"isAnonymous"`
	Status      string    `json:"status" firestore:"status"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}

// IsTestimonial reports whether the feedback may be shown publicly.
func (f *Feedback) IsTestimonial() bool {
	return f.Rating >= PositiveRating && !f.IsAnonymous
}

// Testimonial is the public projection of positive feedback; it never carries status or owner.
type Testimonial struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Rating    int       `json:"rating"`
	Category  string    `json:"category"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func (f *Feedback) Testimonial() Testimonial {
	return Testimonial{
		ID:        f.ID,
		Name:      f.Name,
		Email:     f.Email,
		Rating:    f.Rating,
		Category:  f.Category,
		Subject:   f.Subject,
		Message:   f.Message,
		CreatedAt: f.CreatedAt,
	}
}

func IsValidFeedbackCategory(c string) bool {
	return contains(FeedbackCategories, c)
}

func IsValidFeedbackStatus(s string) bool {
	return contains(FeedbackStatuses, s)
}
