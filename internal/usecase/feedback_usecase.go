package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/internal/domain/service"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/logger"
)

const (
	DefaultRecentFeedbackLimit = 3
	MaxRecentFeedbackLimit     = 20
)

type FeedbackUseCase struct {
	feedbackRepo repository.FeedbackRepository
	userRepo     repository.UserRepository
	cache        service.FeedbackCache
	validate     *validator.Validate
	policy       Policy
}

func NewFeedbackUseCase(
	feedbackRepo repository.FeedbackRepository,
	userRepo repository.UserRepository,
	cache service.FeedbackCache,
) *FeedbackUseCase {
	if cache == nil {
		cache = service.NewNoopFeedbackCache()
	}
	return &FeedbackUseCase{
		feedbackRepo: feedbackRepo,
		userRepo:     userRepo,
		cache:        cache,
		validate:     validator.New(),
	}
}

type SubmitFeedbackInput struct {
	Name        string
	Email       string
	Rating      int
	Category    string
	Subject     string
	Message     string
	IsAnonymous bool
}

// FeedbackView is feedback joined with the submitting account, when there is one.
type FeedbackView struct {
	*entity.Feedback
	User *entity.UserSummary `json:"user,omitempty"`
}

// Submit stores feedback from any visitor. userID is empty for unauthenticated submissions.
func (uc *FeedbackUseCase) Submit(ctx context.Context, userID string, input SubmitFeedbackInput) (*entity.Feedback, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Subject = strings.TrimSpace(input.Subject)
	input.Email = strings.TrimSpace(input.Email)

	if input.Name == "" {
		return nil, errors.BadRequest("Please provide your name", nil)
	}
	if uc.validate.Var(input.Email, "required,email") != nil {
		return nil, errors.BadRequest("Please provide a valid email", nil)
	}
	if input.Rating < entity.MinFeedbackRating || input.Rating > entity.MaxFeedbackRating {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}
	if !entity.IsValidFeedbackCategory(input.Category) {
		return nil, errors.BadRequest("Please select a category", nil)
	}
	if input.Subject == "" {
		return nil, errors.BadRequest("Please provide a subject", nil)
	}
	if len([]rune(strings.TrimSpace(input.Message))) < entity.MinFeedbackMessageLen {
		return nil, errors.BadRequest("Feedback must be at least 10 characters", nil)
	}

	now := time.Now()
	feedback := &entity.Feedback{
		ID:          uuid.New().String(),
		UserID:      strings.TrimSpace(userID),
		Name:        input.Name,
		Email:       input.Email,
		Rating:      input.Rating,
		Category:    input.Category,
		Subject:     input.Subject,
		Message:     input.Message,
		IsAnonymous: input.IsAnonymous,
		Status:      entity.FeedbackStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, err
	}

	uc.invalidate(ctx)
	return feedback, nil
}

// ListAll is the moderation view: every feedback, newest first.
func (uc *FeedbackUseCase) ListAll(ctx context.Context, principal Principal) ([]*FeedbackView, error) {
	if err := uc.policy.Authorize(principal, nil, ActionModerateFeedback); err != nil {
		return nil, err
	}

	items, err := uc.feedbackRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sortFeedbackNewestFirst(items)

	ids := make([]string, 0, len(items))
	for _, f := range items {
		if f.UserID != "" {
			ids = append(ids, f.UserID)
		}
	}
	users, err := uc.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		logger.Warn("Failed to load submitters for %d feedback: %v", len(items), err)
	}

	views := make([]*FeedbackView, len(items))
	for i, f := range items {
		views[i] = &FeedbackView{Feedback: f}
		if u := users[f.UserID]; u != nil {
			views[i].User = &entity.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
		}
	}
	return views, nil
}

func (uc *FeedbackUseCase) ListMine(ctx context.Context, userID string) ([]*entity.Feedback, error) {
	items, err := uc.feedbackRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	sortFeedbackNewestFirst(items)
	return items, nil
}

func (uc *FeedbackUseCase) UpdateStatus(ctx context.Context, principal Principal, id, status string) (*entity.Feedback, error) {
	if err := uc.policy.Authorize(principal, nil, ActionModerateFeedback); err != nil {
		return nil, err
	}
	if !entity.IsValidFeedbackStatus(status) {
		return nil, errors.BadRequest("Invalid status", nil)
	}

	feedback, err := uc.feedbackRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	feedback.Status = status
	feedback.UpdatedAt = time.Now()
	if err := uc.feedbackRepo.Update(ctx, feedback); err != nil {
		return nil, err
	}

	uc.invalidate(ctx)
	return feedback, nil
}

// Delete removes feedback owned by the requester. Feedback without an owner cannot be deleted here.
func (uc *FeedbackUseCase) Delete(ctx context.Context, id, requesterID string) error {
	feedback, err := uc.feedbackRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.policy.Authorize(Principal{UserID: requesterID}, feedback, ActionDeleteFeedback); err != nil {
		return err
	}

	if err := uc.feedbackRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.invalidate(ctx)
	return nil
}

// RecentPositive returns the newest public testimonials. limit falls back to 3 when not positive.
func (uc *FeedbackUseCase) RecentPositive(ctx context.Context, limit int) ([]entity.Testimonial, error) {
	if limit < 1 {
		limit = DefaultRecentFeedbackLimit
	}
	if limit > MaxRecentFeedbackLimit {
		limit = MaxRecentFeedbackLimit
	}

	if cached, ok, err := uc.cache.GetRecent(ctx, limit); err != nil {
		logger.Warn("Feedback cache read failed: %v", err)
	} else if ok {
		return cached, nil
	}

	items, err := uc.feedbackRepo.ListRecentPositive(ctx, entity.PositiveRating, limit)
	if err != nil {
		return nil, err
	}

	testimonials := make([]entity.Testimonial, 0, len(items))
	for _, f := range items {
		if !f.IsTestimonial() {
			continue
		}
		testimonials = append(testimonials, f.Testimonial())
		if len(testimonials) == limit {
			break
		}
	}

	if err := uc.cache.SetRecent(ctx, limit, testimonials); err != nil {
		logger.Warn("Feedback cache write failed: %v", err)
	}
	return testimonials, nil
}

func (uc *FeedbackUseCase) invalidate(ctx context.Context) {
	if err := uc.cache.InvalidateRecent(ctx); err != nil {
		logger.Warn("Feedback cache invalidation failed: %v", err)
	}
}

func sortFeedbackNewestFirst(items []*entity.Feedback) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
