package service

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func linkColumns() []string {
	return []string{"token", "project_id", "expires_at", "can_edit_attendance", "is_deleted", "deleted_at", "created_at"}
}

func expectPrune(mock sqlmock.Sqlmock) {
	mock.ExpectExec(`DELETE FROM "guest_links"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "guest_links"`).WillReturnResult(sqlmock.NewResult(0, 0))
}

func TestNewTokenBase64URL(t *testing.T) {
	a, err := newToken()
	require.NoError(t, err)
	b, err := newToken()
	require.NoError(t, err)

	// 16 random bytes, unpadded base64url
	assert.Regexp(t, `^[A-Za-z0-9_-]{22}$`, a)
	assert.Regexp(t, `^[A-Za-z0-9_-]{22}$`, b)
	assert.NotEqual(t, a, b)
}

func TestIssueReusesLiveLinkUnchanged(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewGuestLinkService(db)
	projectID := uuid.New()

	expectPrune(mock)
	mock.ExpectQuery(`SELECT .* FROM "guest_links"`).
		WillReturnRows(sqlmock.NewRows(linkColumns()).
			AddRow("tok-live", projectID.String(), "2099-12-31", true, false, nil, time.Now()))

	requested := "2030-01-01"
	link, existing, err := svc.Issue(projectID, &requested, false)
	require.NoError(t, err)
	assert.True(t, existing)
	assert.Equal(t, "tok-live", link.Token)

	// the stored expiry and edit flag win over the request
	require.NotNil(t, link.ExpiresAt)
	assert.Equal(t, "2099-12-31", *link.ExpiresAt)
	assert.True(t, link.CanEditAttendance)

	// no UPDATE went out for the reuse
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIssueRevivesDeletedLinkWhenNoLiveOne(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewGuestLinkService(db)
	projectID := uuid.New()

	expectPrune(mock)
	mock.ExpectQuery(`SELECT .* FROM "guest_links"`).
		WillReturnRows(sqlmock.NewRows(linkColumns()))
	mock.ExpectQuery(`SELECT .* FROM "guest_links"`).
		WillReturnRows(sqlmock.NewRows(linkColumns()).
			AddRow("tok-revived", projectID.String(), nil, true, true, time.Now().Add(-time.Hour), time.Now()))
	mock.ExpectExec(`UPDATE "guest_links"`).WillReturnResult(sqlmock.NewResult(0, 1))

	link, existing, err := svc.Issue(projectID, nil, false)
	require.NoError(t, err)
	assert.True(t, existing)
	assert.Equal(t, "tok-revived", link.Token)
	assert.False(t, link.IsDeleted)
	assert.Nil(t, link.DeletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIssueCreatesFreshLinkLast(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewGuestLinkService(db)
	projectID := uuid.New()

	expectPrune(mock)
	mock.ExpectQuery(`SELECT .* FROM "guest_links"`).
		WillReturnRows(sqlmock.NewRows(linkColumns()))
	mock.ExpectQuery(`SELECT .* FROM "guest_links"`).
		WillReturnRows(sqlmock.NewRows(linkColumns()))
	mock.ExpectExec(`INSERT INTO "guest_links"`).WillReturnResult(sqlmock.NewResult(0, 1))

	link, existing, err := svc.Issue(projectID, nil, false)
	require.NoError(t, err)
	assert.False(t, existing)
	assert.Regexp(t, `^[A-Za-z0-9_-]{22}$`, link.Token)
	assert.NoError(t, mock.ExpectationsWereMet())
}
