package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/unisolve/backend/internal/validation"
)

type stubMailer struct {
	sent []struct{ email, code string }
	err  error
}

func (m *stubMailer) SendVerificationCode(_ context.Context, email, code string) error {
	m.sent = append(m.sent, struct{ email, code string }{email, code})
	return m.err
}

func TestVerificationService(t *testing.T) {
	t.Parallel()

	t.Run("sent code verifies, others do not", func(t *testing.T) {
		mailer := &stubMailer{}
		svc := NewVerificationService(mailer, 0)

		err := svc.SendCode(context.Background(), "a@example.com")
		require.NoError(t, err)
		require.Len(t, mailer.sent, 1)

		code := mailer.sent[0].code
		require.Len(t, code, 7)

		require.True(t, svc.VerifyCode("a@example.com", code))
		require.False(t, svc.VerifyCode("a@example.com", "0000000"))
		require.False(t, svc.VerifyCode("never@example.com", code))
	})

	t.Run("code is not consumed on verify", func(t *testing.T) {
		mailer := &stubMailer{}
		svc := NewVerificationService(mailer, 0)

		require.NoError(t, svc.SendCode(context.Background(), "a@example.com"))
		code := mailer.sent[0].code

		require.True(t, svc.VerifyCode("a@example.com", code))
		require.True(t, svc.VerifyCode("a@example.com", code))
	})

	t.Run("resend overwrites the previous code", func(t *testing.T) {
		mailer := &stubMailer{}
		svc := NewVerificationService(mailer, 0)

		require.NoError(t, svc.SendCode(context.Background(), "a@example.com"))
		require.NoError(t, svc.SendCode(context.Background(), "a@example.com"))

		first := mailer.sent[0].code
		second := mailer.sent[1].code

		require.Equal(t, second == first, svc.VerifyCode("a@example.com", first))
		require.True(t, svc.VerifyCode("a@example.com", second))
	})

	t.Run("code stays registered when delivery fails", func(t *testing.T) {
		mailer := &stubMailer{err: errors.New("smtp down")}
		svc := NewVerificationService(mailer, 0)

		err := svc.SendCode(context.Background(), "a@example.com")
		require.Error(t, err)
		require.Len(t, mailer.sent, 1)

		require.True(t, svc.VerifyCode("a@example.com", mailer.sent[0].code))
	})

	t.Run("rejects malformed addresses", func(t *testing.T) {
		svc := NewVerificationService(&stubMailer{}, 0)

		err := svc.SendCode(context.Background(), "not-an-email")
		require.ErrorIs(t, err, validation.ErrInvalidEmail)
	})

	t.Run("expired codes verify false when TTL is set", func(t *testing.T) {
		mailer := &stubMailer{}
		svc := NewVerificationService(mailer, 10*time.Minute)

		now := time.Now()
		svc.now = func() time.Time { return now }

		require.NoError(t, svc.SendCode(context.Background(), "a@example.com"))
		code := mailer.sent[0].code

		svc.now = func() time.Time { return now.Add(9 * time.Minute) }
		require.True(t, svc.VerifyCode("a@example.com", code))

		svc.now = func() time.Time { return now.Add(11 * time.Minute) }
		require.False(t, svc.VerifyCode("a@example.com", code))
	})
}
