package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestSubmitStepsAreIndependent(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewSubmissionService(
		NewAppender(brokenConnector(t, "store offline"), zaptest.NewLogger(t)),
		NewNotifier(mailer, zaptest.NewLogger(t)),
		nil,
		zaptest.NewLogger(t),
	)

	report := svc.Submit(context.Background(), sampleSubmission())

	_, err := uuid.Parse(report.ID)
	assert.NoError(t, err)
	assert.False(t, report.Store.OK)
	assert.Equal(t, "Store connection failed: store offline", report.Store.Message)
	assert.True(t, report.Notification.OK)
	assert.Len(t, mailer.calls, 1)
}

func TestSubmitSavedEvenIfMailFails(t *testing.T) {
	sheet := &memSheet{header: []string{"country", "approved"}}
	conn, _ := connectorFor(t, sheet)
	svc := NewSubmissionService(
		NewAppender(conn, zaptest.NewLogger(t)),
		NewNotifier(&fakeMailer{err: errors.New("timeout")}, zaptest.NewLogger(t)),
		nil,
		zaptest.NewLogger(t),
	)

	report := svc.Submit(context.Background(), sampleSubmission())

	assert.True(t, report.Store.OK)
	assert.False(t, report.Notification.OK)
	require.Len(t, sheet.appended, 1)
	assert.Equal(t, []string{"X", "FALSE"}, sheet.appended[0])
}

func TestSubmitAuditFailureKeepsReport(t *testing.T) {
	db, mock := mockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "submission_logs"`)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	sheet := &memSheet{header: []string{"country"}}
	conn, _ := connectorFor(t, sheet)
	svc := NewSubmissionService(
		NewAppender(conn, zaptest.NewLogger(t)),
		NewNotifier(&fakeMailer{}, zaptest.NewLogger(t)),
		NewAuditLog(db, zaptest.NewLogger(t)),
		zaptest.NewLogger(t),
	)

	report := svc.Submit(context.Background(), sampleSubmission())

	assert.True(t, report.Store.OK)
	assert.True(t, report.Notification.OK)
	assert.NoError(t, mock.ExpectationsWereMet())
}
