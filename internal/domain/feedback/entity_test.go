//go:build unit

package feedback_test

import (
	"testing"
	"time"

	"restobook/internal/domain/feedback"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackLifecycle(t *testing.T) {
	now := time.Now()

	newEntry := func(t *testing.T) *feedback.Feedback {
		rating, err := feedback.NewRating(4)
		require.NoError(t, err)
		comment, err := feedback.NewComment("  great dosa  ")
		require.NoError(t, err)
		return feedback.NewFeedback(uuid.New(), nil, rating, comment, feedback.CategoryFoodQuality, now)
	}

	t.Run("new feedback starts pending with trimmed comment", func(t *testing.T) {
		f := newEntry(t)

		assert.Equal(t, feedback.StatusPending, f.Status())
		assert.Equal(t, "great dosa", f.Comment().String())
		assert.Nil(t, f.OrderID())
	})

	t.Run("author can revise while pending", func(t *testing.T) {
		f := newEntry(t)
		later := now.Add(time.Hour)

		rating, err := feedback.NewRating(2)
		require.NoError(t, err)
		comment, err := feedback.NewComment("cold by the time it arrived")
		require.NoError(t, err)
		require.NoError(t, f.Revise(rating, comment, later))

		assert.Equal(t, int32(2), f.Rating().Value())
		assert.Equal(t, later, f.UpdatedAt())
	})

	t.Run("revision is locked once moderated", func(t *testing.T) {
		f := newEntry(t)
		require.NoError(t, f.Moderate(feedback.StatusReviewed, "spoke to the chef", now))

		rating, err := feedback.NewRating(1)
		require.NoError(t, err)
		assert.ErrorIs(t, f.Revise(rating, f.Comment(), now), feedback.ErrLocked)
	})

	t.Run("moderation records status and notes", func(t *testing.T) {
		f := newEntry(t)
		require.NoError(t, f.Moderate(feedback.StatusResolved, "  refunded the starter  ", now))

		assert.Equal(t, feedback.StatusResolved, f.Status())
		assert.Equal(t, "refunded the starter", f.AdminNotes())
	})
}

func TestFeedbackValueObjects(t *testing.T) {
	t.Run("rating bounds", func(t *testing.T) {
		for _, v := range []int32{1, 3, 5} {
			_, err := feedback.NewRating(v)
			assert.NoError(t, err)
		}
		for _, v := range []int32{0, 6, -1} {
			_, err := feedback.NewRating(v)
			assert.ErrorIs(t, err, feedback.ErrInvalidRating)
		}
	})

	t.Run("category parsing", func(t *testing.T) {
		c, err := feedback.NewCategory("SERVICE")
		require.NoError(t, err)
		assert.Equal(t, feedback.CategoryService, c)

		_, err = feedback.NewCategory("VIBES")
		assert.ErrorIs(t, err, feedback.ErrInvalidCategory)
	})

	t.Run("status parsing", func(t *testing.T) {
		_, err := feedback.NewStatus("REVIEWED")
		assert.NoError(t, err)

		_, err = feedback.NewStatus("ARCHIVED")
		assert.ErrorIs(t, err, feedback.ErrInvalidStatus)
	})
}
