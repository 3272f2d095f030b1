package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rythumitra/rythumitra-backend/internal/logger"
)

// OTPStore keeps bcrypt hashes of outstanding passcodes keyed by
// destination (phone or email). A destination has at most one live
// code: requesting again overwrites.
type OTPStore interface {
	Set(ctx context.Context, destination, codeHash string, ttl time.Duration) error
	Get(ctx context.Context, destination string) (string, error)
	Delete(ctx context.Context, destination string) error
}

type redisOTPStore struct {
	client *redis.Client
	log    *logger.Logger
}

func NewRedisOTPStore(client *redis.Client, baseLog *logger.Logger) OTPStore {
	storeLog := baseLog.With("service", "RedisOTPStore")
	return &redisOTPStore{client: client, log: storeLog}
}

func otpKey(destination string) string {
	return "otp:" + destination
}

func (s *redisOTPStore) Set(ctx context.Context, destination, codeHash string, ttl time.Duration) error {
	if err := s.client.Set(ctx, otpKey(destination), codeHash, ttl).Err(); err != nil {
		return fmt.Errorf("Failed to store otp hash: %w", err)
	}
	return nil
}

func (s *redisOTPStore) Get(ctx context.Context, destination string) (string, error) {
	val, err := s.client.Get(ctx, otpKey(destination)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("Failed to read otp hash: %w", err)
	}
	return val, nil
}

func (s *redisOTPStore) Delete(ctx context.Context, destination string) error {
	if err := s.client.Del(ctx, otpKey(destination)).Err(); err != nil {
		return fmt.Errorf("Failed to delete otp hash: %w", err)
	}
	return nil
}

// OTPSender delivers the plaintext passcode to the farmer. The default
// implementation only logs (redacted); SMS/email vendors plug in here.
type OTPSender interface {
	Send(ctx context.Context, destination, code string) error
}

type logOTPSender struct {
	log *logger.Logger
}

func NewLogOTPSender(baseLog *logger.Logger) OTPSender {
	return &logOTPSender{log: baseLog.With("service", "LogOTPSender")}
}

func (s *logOTPSender) Send(ctx context.Context, destination, code string) error {
	s.log.Info("OTP generated for delivery", "destination", destination, "otp_code", code)
	return nil
}

// GenerateOTPCode returns a 6-digit zero-padded passcode from
// crypto/rand.
func GenerateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("Failed to generate otp code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
