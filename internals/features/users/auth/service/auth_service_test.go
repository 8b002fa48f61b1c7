package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"simasjid_backend/internals/configs"
	"simasjid_backend/internals/constants"
	"simasjid_backend/internals/features/users/auth/dto"
	"simasjid_backend/internals/features/users/user/model"
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

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("editor wajib memilih masjid", func(t *testing.T) {
		svc := NewAuthService(nil) // ditolak sebelum menyentuh DB
		_, err := svc.Register(ctx, dto.RegisterRequest{
			Name:     "Budi",
			Email:    "budi@example.com",
			Password: "rahasia123",
			Role:     constants.RoleEditor,
		})
		assert.ErrorIs(t, err, ErrMasjidRequired)
	})

	t.Run("email sudah terdaftar", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := NewAuthService(db)

		mock.ExpectQuery(`SELECT \* FROM "pengguna" WHERE pengguna_email = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"pengguna_id", "pengguna_email"}).
				AddRow(uuid.New().String(), "budi@example.com"))

		_, err := svc.Register(ctx, dto.RegisterRequest{
			Name:     "Budi",
			Email:    "budi@example.com",
			Password: "rahasia123",
			Role:     constants.RoleViewer,
		})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("viewer langsung approved", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := NewAuthService(db)

		mock.ExpectQuery(`SELECT \* FROM "pengguna" WHERE pengguna_email = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"pengguna_id"}))
		mock.ExpectQuery(`INSERT INTO "pengguna"`).
			WillReturnRows(sqlmock.NewRows([]string{"pengguna_id"}).AddRow(uuid.New().String()))

		u, err := svc.Register(ctx, dto.RegisterRequest{
			Name:     "Siti",
			Email:    "siti@example.com",
			Password: "rahasia123",
			Role:     constants.RoleViewer,
		})
		require.NoError(t, err)
		assert.Equal(t, constants.StatusApproved, u.PenggunaStatus)
		require.NotNil(t, u.PenggunaPassword)
		assert.NotEqual(t, "rahasia123", *u.PenggunaPassword) // selalu di-hash
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("editor dibuat pending", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := NewAuthService(db)
		masjidID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "pengguna" WHERE pengguna_email = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"pengguna_id"}))
		mock.ExpectQuery(`INSERT INTO "pengguna"`).
			WillReturnRows(sqlmock.NewRows([]string{"pengguna_id"}).AddRow(uuid.New().String()))

		u, err := svc.Register(ctx, dto.RegisterRequest{
			Name:     "Budi",
			Email:    "budi@example.com",
			Password: "rahasia123",
			Role:     constants.RoleEditor,
			MasjidID: &masjidID,
		})
		require.NoError(t, err)
		assert.Equal(t, constants.StatusPending, u.PenggunaStatus)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("sukses", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := NewAuthService(db)

		mock.ExpectQuery(`SELECT \* FROM "pengguna" WHERE pengguna_email = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"pengguna_id", "pengguna_email", "pengguna_password"}).
				AddRow(uuid.New().String(), "budi@example.com", string(hash)))

		u, err := svc.Login(ctx, "budi@example.com", "rahasia123")
		require.NoError(t, err)
		assert.Equal(t, "budi@example.com", u.PenggunaEmail)
	})

	t.Run("password salah", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := NewAuthService(db)

		mock.ExpectQuery(`SELECT \* FROM "pengguna" WHERE pengguna_email = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"pengguna_id", "pengguna_password"}).
				AddRow(uuid.New().String(), string(hash)))

		_, err := svc.Login(ctx, "budi@example.com", "salah")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("email tidak terdaftar", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := NewAuthService(db)

		mock.ExpectQuery(`SELECT \* FROM "pengguna" WHERE pengguna_email = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"pengguna_id"}))

		_, err := svc.Login(ctx, "ghost@example.com", "rahasia123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("akun google tanpa password lokal", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := NewAuthService(db)

		mock.ExpectQuery(`SELECT \* FROM "pengguna" WHERE pengguna_email = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"pengguna_id", "pengguna_password"}).
				AddRow(uuid.New().String(), nil))

		_, err := svc.Login(ctx, "budi@example.com", "rahasia123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestIssueTokens_Claims(t *testing.T) {
	configs.JWTSecret = "test-secret"
	configs.JWTRefreshSecret = "test-refresh-secret"

	masjidID := uuid.New()
	u := &model.PenggunaModel{
		PenggunaID:       uuid.New(),
		PenggunaName:     "Budi",
		PenggunaRole:     constants.RoleEditor,
		PenggunaStatus:   constants.StatusApproved,
		PenggunaMasjidID: &masjidID,
	}

	svc := NewAuthService(nil)
	access, refresh, err := svc.IssueTokens(u)
	require.NoError(t, err)
	require.NotEmpty(t, refresh)

	parsed, err := jwt.Parse(access, func(*jwt.Token) (interface{}, error) {
		return []byte(configs.JWTSecret), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, u.PenggunaID.String(), claims["user_id"])
	assert.Equal(t, "Budi", claims["user_name"])
	assert.Equal(t, constants.RoleEditor, claims["role"])
	assert.Equal(t, masjidID.String(), claims["masjid_id"])
}
