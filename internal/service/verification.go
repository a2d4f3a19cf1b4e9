package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/unisolve/backend/internal/validation"
)

const codeDigits = 7

// CodeMailer delivers a verification code to an address.
// *EmailService satisfies it; tests stub it.
type CodeMailer interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}

type issuedCode struct {
	code     string
	issuedAt time.Time
}

// VerificationService issues and checks one-time signup codes. The registry
// is process-local: codes do not survive a restart and are overwritten by
// each send (last write wins). Codes are not consumed on verify.
type VerificationService struct {
	mu     sync.Mutex
	codes  map[string]issuedCode
	mailer CodeMailer
	ttl    time.Duration // 0 disables the expiry check
	now    func() time.Time
}

func NewVerificationService(mailer CodeMailer, ttl time.Duration) *VerificationService {
	return &VerificationService{
		codes:  make(map[string]issuedCode),
		mailer: mailer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// SendCode generates a fresh code for the email, registers it, and delivers
// it. The code stays registered even when delivery fails, so a client retry
// of the email alone can still succeed against the same code.
func (s *VerificationService) SendCode(ctx context.Context, email string) error {
	err := validation.ValidateEmail(email)
	if err != nil {
		return err
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	s.mu.Lock()
	s.codes[email] = issuedCode{code: code, issuedAt: s.now()}
	s.mu.Unlock()

	err = s.mailer.SendVerificationCode(ctx, email, code)
	if err != nil {
		slog.Error("failed to send verification code", "error", err, "email", email)
		return err
	}

	return nil
}

// VerifyCode reports whether the submitted code exactly matches the one most
// recently issued for the email and, when a TTL is configured, is still fresh.
func (s *VerificationService) VerifyCode(email, submitted string) bool {
	s.mu.Lock()
	issued, ok := s.codes[email]
	s.mu.Unlock()

	if !ok {
		return false
	}
	if s.ttl > 0 && s.now().Sub(issued.issuedAt) >= s.ttl {
		return false
	}

	return issued.code == submitted
}

func generateCode() (string, error) {
	max := big.NewInt(1)
	max.Exp(big.NewInt(10), big.NewInt(codeDigits), nil)

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", codeDigits, n), nil
}
