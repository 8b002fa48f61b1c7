package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"simasjid_backend/internals/features/access/model"
	"simasjid_backend/internals/features/access/service"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock
}

func TestFindApprovedEditor(t *testing.T) {
	ctx := context.Background()

	t.Run("mengambil editor approved tertua milik masjid", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAccessRepository(db)
		masjidID := uuid.New()
		editorID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "pengguna" WHERE pengguna_role = \$1 AND pengguna_status = \$2 AND pengguna_masjid_id = \$3 ORDER BY pengguna_created_at asc`).
			WillReturnRows(sqlmock.NewRows(
				[]string{"pengguna_id", "pengguna_name", "pengguna_role", "pengguna_status", "pengguna_masjid_id"}).
				AddRow(editorID.String(), "Ustadz Budi", "editor", "approved", masjidID.String()))

		got, err := repo.FindApprovedEditor(ctx, masjidID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, editorID, got.PenggunaID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("masjid tanpa editor aktif mengembalikan nil", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAccessRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "pengguna"`).
			WillReturnRows(sqlmock.NewRows([]string{"pengguna_id"}))

		got, err := repo.FindApprovedEditor(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestUpdateEditorStatus_GuardsPendingEditor(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccessRepository(db)
	editorID := uuid.New()

	// WHERE mengunci target: hanya baris role=editor status=pending yang berubah
	mock.ExpectExec(`UPDATE "pengguna" SET .*WHERE pengguna_id = \$\d AND pengguna_role = \$\d AND pengguna_status = \$\d`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.UpdateEditorStatus(context.Background(), editorID, "approved")
	require.NoError(t, err)
	assert.EqualValues(t, 0, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListActiveGrantMasjids_FiltersExpiry(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccessRepository(db)
	viewerID := uuid.New()
	masjidID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM "masjids" JOIN viewer_access ON viewer_access\.viewer_access_masjid_id = masjids\.masjid_id WHERE viewer_access\.viewer_access_viewer_id = \$1 AND viewer_access\.viewer_access_status = \$2 AND \(viewer_access\.viewer_access_expires_at IS NULL OR viewer_access\.viewer_access_expires_at > \$3\)`).
		WithArgs(viewerID, "approved", now).
		WillReturnRows(sqlmock.NewRows([]string{"masjid_id", "masjid_name"}).
			AddRow(masjidID.String(), "Masjid Al-Ikhlas"))

	list, err := repo.ListActiveGrantMasjids(context.Background(), viewerID, now)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, masjidID, list[0].MasjidID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateGrant_UniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccessRepository(db)

	mock.ExpectQuery(`INSERT INTO "viewer_access"`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_viewer_access_viewer_masjid"})

	granter := uuid.New()
	err := repo.CreateGrant(context.Background(), &model.ViewerAccessModel{
		ViewerAccessViewerID:  uuid.New(),
		ViewerAccessMasjidID:  uuid.New(),
		ViewerAccessGrantedBy: &granter,
		ViewerAccessStatus:    "pending",
	})
	assert.ErrorIs(t, err, service.ErrAlreadyPending)
}

func TestUpdateGrantStatus_OnlyPendingRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccessRepository(db)
	grantID := uuid.New()
	editorID := uuid.New()
	expiry := time.Now().AddDate(0, 6, 0)

	t.Run("pending berubah", func(t *testing.T) {
		mock.ExpectExec(`UPDATE "viewer_access" SET .*WHERE viewer_access_id = \$\d AND viewer_access_status = \$\d`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		affected, err := repo.UpdateGrantStatus(context.Background(), grantID, "approved", &editorID, &expiry)
		require.NoError(t, err)
		assert.EqualValues(t, 1, affected)
	})

	t.Run("baris non-pending tidak tersentuh", func(t *testing.T) {
		mock.ExpectExec(`UPDATE "viewer_access" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		affected, err := repo.UpdateGrantStatus(context.Background(), grantID, "approved", &editorID, &expiry)
		require.NoError(t, err)
		assert.EqualValues(t, 0, affected)
	})
}

func TestResetGrant(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccessRepository(db)

	// reset hanya mengenai baris rejected atau approved (kedaluwarsa)
	mock.ExpectExec(`UPDATE "viewer_access" SET .*WHERE viewer_access_id = \$\d AND viewer_access_status IN \(\$\d,\$\d\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.ResetGrant(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_CommitsOnSuccess(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccessRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "viewer_access" WHERE viewer_access_id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.WithinTx(context.Background(), func(tx service.Store) error {
		affected, err := tx.DeleteGrant(context.Background(), uuid.New())
		if err != nil {
			return err
		}
		assert.EqualValues(t, 1, affected)
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
