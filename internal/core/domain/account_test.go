package domain_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/studio_booking/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestAccount_CheckMembership(t *testing.T) {
	later := now.Add(24 * time.Hour)
	earlier := now.Add(-24 * time.Hour)

	tests := []struct {
		name   string
		status domain.MembershipStatus
		start  *time.Time
		want   error
	}{
		{"active", domain.MembershipActive, nil, nil},
		{"empty status is active", "", &earlier, nil},
		{"cancelled", domain.MembershipCancelled, &later, domain.ErrMembershipCancelled},
		{"frozen", domain.MembershipFrozen, &later, domain.ErrMembershipFrozen},
		{"inactive", domain.MembershipInactive, &later, domain.ErrMembershipInactive},
		{"not started", domain.MembershipActive, &later, domain.ErrMembershipNotStarted},
		{"starts now", domain.MembershipActive, &now, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := domain.Account{MembershipStatus: tt.status, MembershipStartDate: tt.start}
			err := acc.CheckMembership(now)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want domain.ErrorKind
	}{
		{nil, domain.KindUnknown},
		{domain.ErrLessonFull, domain.KindValidation},
		{&domain.CancelTooLateError{HoursUntilLesson: 3}, domain.KindValidation},
		{fmt.Errorf("book: %w", domain.ErrMembershipFrozen), domain.KindValidation},
		{domain.ErrVersionConflict, domain.KindIntegrity},
		{fmt.Errorf("%w: %w", domain.ErrCompensationFailed, domain.ErrLessonFull), domain.KindIntegrity},
		{fmt.Errorf("%w: %w", domain.ErrTimeout, domain.ErrUnavailable), domain.KindTimeout},
		{domain.ErrLockBusy, domain.KindUnavailable},
		{errors.New("boom"), domain.KindUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.KindOf(tt.err), "%v", tt.err)
	}
}

func TestCancelTooLateError(t *testing.T) {
	err := error(&domain.CancelTooLateError{HoursUntilLesson: 5.5})

	assert.ErrorIs(t, err, domain.ErrCancelTooLate)
	assert.Contains(t, err.Error(), "5.5 hours")
}

func TestCategory(t *testing.T) {
	assert.Equal(t, domain.CategoryPilates, domain.ParseCategory("pilates"))
	assert.Equal(t, domain.CategoryOther, domain.ParseCategory("boxing"))
	assert.Equal(t, domain.CategoryOther.Presentation(), domain.LessonCategory("boxing").Presentation())
	assert.NotEqual(t, domain.CategoryYoga.Presentation(), domain.CategoryMeditation.Presentation())
}

func TestBookingEvent_DedupKeyPerEvent(t *testing.T) {
	lessonID := uuid.New()
	first := domain.BookingEvent{ID: uuid.New(), Action: domain.ActionBooked, UserID: "alice", LessonID: lessonID}
	second := first
	second.ID = uuid.New()

	assert.Equal(t, first.DedupKey(), first.DedupKey())
	assert.NotEqual(t, first.DedupKey(), second.DedupKey())
	assert.Equal(t, "lesson.booked", first.RoutingKey())
}
