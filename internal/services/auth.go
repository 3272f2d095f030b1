package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rythumitra/rythumitra-backend/internal/logger"
	"github.com/rythumitra/rythumitra-backend/internal/normalization"
	"github.com/rythumitra/rythumitra-backend/internal/repos"
	"github.com/rythumitra/rythumitra-backend/internal/requestdata"
	"github.com/rythumitra/rythumitra-backend/internal/types"
)

// ErrDestinationRequired is a validation failure, not a rejected
// credential; handlers map it to 400 rather than 401.
var ErrDestinationRequired = errors.New("A phone number or email is required")

// AuthService implements one-time-passcode login. A farmer requests a
// code for a phone number or email, verifies it, and receives a JWT
// access token plus an opaque refresh token. The farmer row and profile
// row are created on first successful verification.
type AuthService interface {
	RequestOTP(ctx context.Context, phone, email string) error
	VerifyOTP(ctx context.Context, phone, email, code string) (string, string, error)
	RefreshTokens(ctx context.Context) (string, string, error)
	Logout(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	farmerRepo   repos.FarmerRepo
	tokenRepo    repos.FarmerTokenRepo
	profileRepo  repos.ProfileRepo
	otpStore     OTPStore
	otpSender    OTPSender
	jwtSecretKey string
	otpTTL       time.Duration
	accessTTL    time.Duration
	refreshTTL   time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	farmerRepo repos.FarmerRepo,
	tokenRepo repos.FarmerTokenRepo,
	profileRepo repos.ProfileRepo,
	otpStore OTPStore,
	otpSender OTPSender,
	jwtSecretKey string,
	otpTTL time.Duration,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:           db,
		log:          serviceLog,
		farmerRepo:   farmerRepo,
		tokenRepo:    tokenRepo,
		profileRepo:  profileRepo,
		otpStore:     otpStore,
		otpSender:    otpSender,
		jwtSecretKey: jwtSecretKey,
		otpTTL:       otpTTL,
		accessTTL:    accessTTL,
		refreshTTL:   refreshTTL,
	}
}

// destination picks the normalized login identifier. Phone wins when
// both are given.
func destination(phone, email string) (string, string, string, error) {
	phone = normalization.NormalizePhone(phone)
	email = normalization.NormalizeEmail(email)
	if phone != "" {
		return phone, phone, "", nil
	}
	if email != "" {
		return email, "", email, nil
	}
	return "", "", "", ErrDestinationRequired
}

func (as *authService) RequestOTP(ctx context.Context, phone, email string) error {
	dest, _, _, err := destination(phone, email)
	if err != nil {
		return err
	}
	code, err := GenerateOTPCode()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("Failed to hash otp code: %w", err)
	}
	if err := as.otpStore.Set(ctx, dest, string(hash), as.otpTTL); err != nil {
		return err
	}
	if err := as.otpSender.Send(ctx, dest, code); err != nil {
		as.log.Warn("OTP delivery failed", "destination", dest, "error", err)
		return fmt.Errorf("Failed to deliver otp code: %w", err)
	}
	as.log.Info("OTP requested", "destination", dest)
	return nil
}

func (as *authService) VerifyOTP(ctx context.Context, phone, email, code string) (string, string, error) {
	dest, normPhone, normEmail, err := destination(phone, email)
	if err != nil {
		return "", "", err
	}
	code = normalization.ParseInputString(code)
	if code == "" {
		return "", "", fmt.Errorf("A passcode is required")
	}

	storedHash, err := as.otpStore.Get(ctx, dest)
	if err != nil {
		return "", "", err
	}
	if storedHash == "" {
		return "", "", fmt.Errorf("Passcode expired or never requested")
	}
	if bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(code)) != nil {
		return "", "", fmt.Errorf("Invalid passcode")
	}
	// A code is consumed by a successful comparison even if token issue
	// fails afterwards.
	if err := as.otpStore.Delete(ctx, dest); err != nil {
		as.log.Warn("Failed to delete consumed otp", "destination", dest, "error", err)
	}

	farmer, err := as.findOrCreateFarmer(ctx, normPhone, normEmail)
	if err != nil {
		return "", "", err
	}

	var accessToken string
	var refreshToken string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		foundTokens, ftErr := as.tokenRepo.GetByFarmerIDs(ctx, tx, []uuid.UUID{farmer.ID})
		if ftErr != nil {
			return fmt.Errorf("Failed to check farmer tokens: %w", ftErr)
		}
		expired := make([]uuid.UUID, 0, len(foundTokens))
		for _, tok := range foundTokens {
			if tok != nil && tok.ExpiresAt.Before(time.Now()) {
				expired = append(expired, tok.ID)
			}
		}
		if dtErr := as.tokenRepo.DeleteByIDs(ctx, tx, expired); dtErr != nil {
			return fmt.Errorf("Failed to delete expired farmer tokens: %w", dtErr)
		}
		tok, genErr := as.generateAccessToken(farmer)
		if genErr != nil {
			return fmt.Errorf("Generate access token error: %w", genErr)
		}
		accessToken = tok
		refreshToken = uuid.New().String()
		farmerToken := types.FarmerToken{
			ID:           uuid.New(),
			FarmerID:     farmer.ID,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, ctErr := as.tokenRepo.Create(ctx, tx, []*types.FarmerToken{&farmerToken}); ctErr != nil {
			return fmt.Errorf("Create farmer token error: %w", ctErr)
		}
		return nil
	}); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (as *authService) findOrCreateFarmer(ctx context.Context, phone, email string) (*types.Farmer, error) {
	var farmer *types.Farmer
	var err error
	if phone != "" {
		farmer, err = as.farmerRepo.GetByPhone(ctx, nil, phone)
	} else {
		farmer, err = as.farmerRepo.GetByEmail(ctx, nil, email)
	}
	if err != nil {
		return nil, fmt.Errorf("Failed to look up farmer: %w", err)
	}
	if farmer != nil {
		return farmer, nil
	}

	farmer = &types.Farmer{ID: uuid.New()}
	if phone != "" {
		farmer.Phone = &phone
	}
	if email != "" {
		farmer.Email = &email
	}
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, cErr := as.farmerRepo.Create(ctx, tx, []*types.Farmer{farmer}); cErr != nil {
			return fmt.Errorf("Failed to create farmer: %w", cErr)
		}
		profile := &types.Profile{
			ID:       uuid.New(),
			FarmerID: farmer.ID,
			Phone:    phone,
		}
		if _, pErr := as.profileRepo.Create(ctx, tx, []*types.Profile{profile}); pErr != nil {
			return fmt.Errorf("Failed to create profile: %w", pErr)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	as.log.Info("New farmer registered", "farmer_id", farmer.ID)
	return farmer, nil
}

func (as *authService) RefreshTokens(ctx context.Context) (string, string, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return "", "", fmt.Errorf("No request data found in context")
	}
	if rd.RefreshToken == "" {
		return "", "", fmt.Errorf("Refresh token not found in request data")
	}

	existing, err := as.tokenRepo.GetByRefreshToken(ctx, nil, rd.RefreshToken)
	if err != nil {
		return "", "", fmt.Errorf("Failed to look up refresh token: %w", err)
	}
	if existing == nil {
		return "", "", fmt.Errorf("Unknown refresh token")
	}
	if existing.ExpiresAt.Before(time.Now()) {
		_ = as.tokenRepo.DeleteByIDs(ctx, nil, []uuid.UUID{existing.ID})
		return "", "", fmt.Errorf("Refresh token expired")
	}

	farmers, err := as.farmerRepo.GetByIDs(ctx, nil, []uuid.UUID{existing.FarmerID})
	if err != nil || len(farmers) == 0 {
		return "", "", fmt.Errorf("Failed to load farmer for refresh")
	}

	var accessToken string
	var refreshToken string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Refresh tokens are single-use.
		if dErr := as.tokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{existing.ID}); dErr != nil {
			return fmt.Errorf("Failed to delete used refresh token: %w", dErr)
		}
		tok, genErr := as.generateAccessToken(farmers[0])
		if genErr != nil {
			return fmt.Errorf("Generate access token error: %w", genErr)
		}
		accessToken = tok
		refreshToken = uuid.New().String()
		farmerToken := types.FarmerToken{
			ID:           uuid.New(),
			FarmerID:     existing.FarmerID,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, ctErr := as.tokenRepo.Create(ctx, tx, []*types.FarmerToken{&farmerToken}); ctErr != nil {
			return fmt.Errorf("Create farmer token error: %w", ctErr)
		}
		return nil
	}); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (as *authService) Logout(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return fmt.Errorf("No token found in context")
	}
	existing, err := as.tokenRepo.GetByAccessToken(ctx, nil, rd.TokenString)
	if err != nil {
		return fmt.Errorf("Failed to look up access token: %w", err)
	}
	if existing == nil {
		return nil
	}
	return as.tokenRepo.DeleteByIDs(ctx, nil, []uuid.UUID{existing.ID})
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return ctx, fmt.Errorf("Empty token")
	}
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !parsed.Valid {
		return ctx, fmt.Errorf("Invalid token")
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return ctx, fmt.Errorf("Invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	farmerID, err := uuid.Parse(sub)
	if err != nil {
		return ctx, fmt.Errorf("Invalid subject in token")
	}
	rd := &requestdata.RequestData{
		TokenString: tokenString,
		FarmerID:    farmerID,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}

func (as *authService) generateAccessToken(farmer *types.Farmer) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": farmer.ID.String(),
		"iat": now.Unix(),
		"exp": now.Add(as.accessTTL).Unix(),
		"jti": uuid.New().String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", fmt.Errorf("Failed to sign access token: %w", err)
	}
	return signed, nil
}
