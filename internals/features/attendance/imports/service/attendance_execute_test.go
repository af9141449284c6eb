package service

import (
	"errors"
	"testing"

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

// A failure after some chunks committed still reports what landed.
func TestImportAttendancePartialFailureKeepsSummary(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewImportService(db)
	projectID := uuid.New()
	c1 := uuid.New()
	w1 := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "partners"`).
		WillReturnRows(sqlmock.NewRows([]string{"partner_id", "name"}).
			AddRow(c1.String(), "株式会社田中建設"))
	mock.ExpectQuery(`SELECT .* FROM "workers"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "contractor_id", "name"}).
			AddRow(w1.String(), c1.String(), "山田太郎"))
	mock.ExpectQuery(`SELECT .* FROM "attendance_entries"`).
		WillReturnRows(sqlmock.NewRows([]string{"entry_date", "worker_id", "work_type_text"}))

	// first chunk (roster rows) lands, second (external rows) fails
	mock.ExpectQuery(`INSERT INTO "attendance_entries"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))
	mock.ExpectQuery(`INSERT INTO "attendance_entries"`).
		WillReturnError(errors.New("connection reset"))

	rows := make([][]string, dataStartRow+1)
	rows[dataStartRow] = []string{"2025/1/10", "", "", "", "", "", "", "山田太郎（田中建設）\n佐藤次郎（ネクサス）"}

	summary, err := svc.ImportAttendance(rows, AttendanceImportOptions{
		ProjectID: projectID.String(),
		Mappings:  map[string]string{"ネクサス": "__nexus__"},
		Execute:   true,
	})
	require.Error(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, 2, summary.Planned)
	assert.Equal(t, 1, summary.Inserted)
	assert.False(t, summary.Executed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
