package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ndemidov/tgdating-backend/internal/domain"
	"github.com/ndemidov/tgdating-backend/internal/pkg/logger"
	"github.com/ndemidov/tgdating-backend/internal/repository"
)

type TelegramAuthUseCase struct {
	profileRepo repository.ProfileRepository
	botToken    string
	jwtSecret   string
	jwtExpiry   time.Duration
	maxAuthAge  time.Duration
	log         *logger.Logger
}

func NewTelegramAuthUseCase(
	profileRepo repository.ProfileRepository,
	botToken string,
	jwtSecret string,
	jwtExpiry time.Duration,
	maxAuthAge time.Duration,
	log *logger.Logger,
) *TelegramAuthUseCase {
	return &TelegramAuthUseCase{
		profileRepo: profileRepo,
		botToken:    botToken,
		jwtSecret:   jwtSecret,
		jwtExpiry:   jwtExpiry,
		maxAuthAge:  maxAuthAge,
		log:         log,
	}
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Profile   *domain.Profile `json:"profile"`
	IsNewUser bool            `json:"is_new_user"`
}

// AuthenticateTelegram verifies a Telegram login payload and issues a
// bearer token. A user seen for the first time gets a skeleton profile
// row; onboarding fills it in later.
func (uc *TelegramAuthUseCase) AuthenticateTelegram(ctx context.Context, authData map[string]string) (*AuthResponse, error) {
	if err := uc.verifySignature(authData); err != nil {
		return nil, err
	}

	authDate, err := strconv.ParseInt(authData["auth_date"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad auth_date", domain.ErrInvalidInput)
	}
	if time.Since(time.Unix(authDate, 0)) > uc.maxAuthAge {
		return nil, fmt.Errorf("%w: login payload expired", domain.ErrInvalidToken)
	}

	userID, err := strconv.ParseInt(authData["id"], 10, 64)
	if err != nil || userID == 0 {
		return nil, fmt.Errorf("%w: bad user id", domain.ErrInvalidInput)
	}

	isNewUser := false
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		profile, err = uc.profileRepo.Create(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}
		isNewUser = true
		uc.log.Info("new user registered", "user_id", userID)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	expiresAt := time.Now().Add(uc.jwtExpiry)
	token, err := uc.issueToken(userID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Profile:   profile,
		IsNewUser: isNewUser,
	}, nil
}

// verifySignature checks the HMAC the Telegram login widget attaches:
// the hash field must equal HMAC-SHA256 over the sorted key=value lines
// keyed with SHA256(bot token).
func (uc *TelegramAuthUseCase) verifySignature(authData map[string]string) error {
	received, ok := authData["hash"]
	if !ok || received == "" {
		return fmt.Errorf("%w: missing hash", domain.ErrInvalidToken)
	}

	keys := make([]string, 0, len(authData))
	for k := range authData {
		if k == "hash" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+authData[k])
	}
	checkString := strings.Join(lines, "\n")

	secret := sha256.Sum256([]byte(uc.botToken))
	mac := hmac.New(sha256.New, secret[:])
	mac.Write([]byte(checkString))
	expected := hex.EncodeToString(mac.Sum(nil))

	if subtle.ConstantTimeCompare([]byte(expected), []byte(received)) != 1 {
		return fmt.Errorf("%w: signature mismatch", domain.ErrInvalidToken)
	}
	return nil
}

func (uc *TelegramAuthUseCase) issueToken(userID int64, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"jti": uuid.NewString(),
		"iat": time.Now().Unix(),
		"exp": expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(uc.jwtSecret))
}

// ParseToken validates a bearer token and returns the user id it was
// issued for. Used by the auth middleware.
func (uc *TelegramAuthUseCase) ParseToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(uc.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, domain.ErrInvalidToken
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return 0, domain.ErrInvalidToken
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || userID == 0 {
		return 0, domain.ErrInvalidToken
	}
	return userID, nil
}
