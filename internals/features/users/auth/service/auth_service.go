// file: internals/features/users/auth/service/auth_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/futurenda/google-auth-id-token-verifier"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"simasjid_backend/internals/configs"
	"simasjid_backend/internals/constants"
	"simasjid_backend/internals/features/users/auth/dto"
	"simasjid_backend/internals/features/users/user/model"
)

var (
	ErrEmailTaken         = errors.New("email sudah terdaftar")
	ErrInvalidCredentials = errors.New("email atau password salah")
	ErrMasjidRequired     = errors.New("editor wajib memilih masjid")
	ErrGoogleToken        = errors.New("google id token tidak valid")
)

const providerGoogle = "google"

type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db}
}

// Register akun self-service. Editor dibuat pending (menunggu approval admin),
// viewer langsung approved.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*model.PenggunaModel, error) {
	if req.Role == constants.RoleEditor && req.MasjidID == nil {
		return nil, ErrMasjidRequired
	}

	var existing model.PenggunaModel
	err := s.DB.WithContext(ctx).Where("pengguna_email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hash := string(hashed)

	status := constants.StatusApproved
	if req.Role == constants.RoleEditor {
		status = constants.StatusPending
	}

	u := model.PenggunaModel{
		PenggunaName:     req.Name,
		PenggunaEmail:    req.Email,
		PenggunaPassword: &hash,
		PenggunaRole:     req.Role,
		PenggunaStatus:   status,
		PenggunaMasjidID: req.MasjidID,
	}
	if err := s.DB.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*model.PenggunaModel, error) {
	var u model.PenggunaModel
	if err := s.DB.WithContext(ctx).Where("pengguna_email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if u.PenggunaPassword == nil {
		// akun OAuth-only
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PenggunaPassword), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

// LoginGoogle memverifikasi ID token Google lalu mencari / membuat akun viewer
// tanpa password lokal.
func (s *AuthService) LoginGoogle(ctx context.Context, idToken string) (*model.PenggunaModel, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{configs.GoogleClientID}); err != nil {
		return nil, ErrGoogleToken
	}
	claims, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, ErrGoogleToken
	}

	var u model.PenggunaModel
	err = s.DB.WithContext(ctx).
		Where("pengguna_provider = ? AND pengguna_provider_id = ?", providerGoogle, claims.Sub).
		First(&u).Error
	if err == nil {
		return &u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Coba tautkan ke akun existing dengan email yang sama
	err = s.DB.WithContext(ctx).Where("pengguna_email = ?", claims.Email).First(&u).Error
	if err == nil {
		provider := providerGoogle
		sub := claims.Sub
		u.PenggunaProvider = &provider
		u.PenggunaProviderID = &sub
		if err := s.DB.WithContext(ctx).Save(&u).Error; err != nil {
			return nil, err
		}
		return &u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	provider := providerGoogle
	sub := claims.Sub
	u = model.PenggunaModel{
		PenggunaName:       claims.Name,
		PenggunaEmail:      claims.Email,
		PenggunaPassword:   nil,
		PenggunaRole:       constants.RoleViewer,
		PenggunaStatus:     constants.StatusApproved,
		PenggunaProvider:   &provider,
		PenggunaProviderID: &sub,
	}
	if err := s.DB.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// IssueTokens membuat access token (2 jam) + refresh token (7 hari).
func (s *AuthService) IssueTokens(u *model.PenggunaModel) (access string, refresh string, err error) {
	access, err = signToken(u, configs.JWTSecret, 2*time.Hour)
	if err != nil {
		return "", "", err
	}
	refresh, err = signToken(u, configs.JWTRefreshSecret, 7*24*time.Hour)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func signToken(u *model.PenggunaModel, secret string, ttl time.Duration) (string, error) {
	masjidID := ""
	if u.PenggunaMasjidID != nil && *u.PenggunaMasjidID != uuid.Nil {
		masjidID = u.PenggunaMasjidID.String()
	}
	claims := jwt.MapClaims{
		"user_id":   u.PenggunaID.String(),
		"user_name": u.PenggunaName,
		"role":      u.PenggunaRole,
		"status":    u.PenggunaStatus,
		"masjid_id": masjidID,
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
