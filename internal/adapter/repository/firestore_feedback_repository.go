package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/errors"
)

type firestoreFeedbackRepository struct {
	client *firestore.Client
}

func NewFirestoreFeedbackRepository(client *firestore.Client) repository.FeedbackRepository {
	return &firestoreFeedbackRepository{
		client: client,
	}
}

func (r *firestoreFeedbackRepository) Create(ctx context.Context, feedback *entity.Feedback) error {
	if feedback.ID == "" {
		feedback.ID = r.client.Collection(feedbackCollection).NewDoc().ID
	}

	_, err := r.client.Collection(feedbackCollection).Doc(feedback.ID).Set(ctx, feedback)
	if err != nil {
		return errors.Internal("Failed to create feedback", err)
	}
	return nil
}

func (r *firestoreFeedbackRepository) GetByID(ctx context.Context, id string) (*entity.Feedback, error) {
	doc, err := r.client.Collection(feedbackCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, storeError(err, "Feedback", "Failed to get feedback")
	}

	var feedback entity.Feedback
	if err := doc.DataTo(&feedback); err != nil {
		return nil, errors.Internal("Failed to parse feedback data", err)
	}
	return &feedback, nil
}

func (r *firestoreFeedbackRepository) List(ctx context.Context) ([]*entity.Feedback, error) {
	return r.collect(r.client.Collection(feedbackCollection).OrderBy("createdAt", firestore.Desc).Documents(ctx), 0, 0)
}

func (r *firestoreFeedbackRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Feedback, error) {
	return r.collect(r.client.Collection(feedbackCollection).Where("userId", "==", userID).Documents(ctx), 0, 0)
}

// ListRecentPositive walks non-anonymous feedback newest first and keeps the well rated ones.
// Firestore cannot range on rating while ordering by createdAt, so the rating check runs here.
func (r *firestoreFeedbackRepository) ListRecentPositive(ctx context.Context, minRating, limit int) ([]*entity.Feedback, error) {
	iter := r.client.Collection(feedbackCollection).
		Where("isAnonymous", "==", false).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	return r.collect(iter, minRating, limit)
}

func (r *firestoreFeedbackRepository) Update(ctx context.Context, feedback *entity.Feedback) error {
	_, err := r.client.Collection(feedbackCollection).Doc(feedback.ID).Update(ctx, []firestore.Update{
		{Path: "status", Value: feedback.Status},
		{Path: "updatedAt", Value: feedback.UpdatedAt},
	})
	if err != nil {
		return storeError(err, "Feedback", "Failed to update feedback")
	}
	return nil
}

func (r *firestoreFeedbackRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(feedbackCollection).Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete feedback", err)
	}
	return nil
}

// collect drains iter, skipping items rated below minRating and stopping after limit when > 0.
func (r *firestoreFeedbackRepository) collect(iter *firestore.DocumentIterator, minRating, limit int) ([]*entity.Feedback, error) {
	defer iter.Stop()

	items := []*entity.Feedback{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate feedback", err)
		}

		var feedback entity.Feedback
		if err := doc.DataTo(&feedback); err != nil {
			return nil, errors.Internal("Failed to parse feedback data", err)
		}
		if feedback.Rating < minRating {
			continue
		}

		items = append(items, &feedback)
		if limit > 0 && len(items) >= limit {
			break
		}
	}

	return items, nil
}
