package auth

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/carbon-tracker/internal/logging"
	"github.com/redmonkez12/carbon-tracker/internal/user"
)

const (
	testEmail    = "a@x.com"
	testCodeTTL  = 10 * time.Minute
	testTokenTTL = 7 * 24 * time.Hour
)

var testSecret = []byte("test-secret")

type sentCode struct {
	to   string
	code string
	ttl  time.Duration
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentCode
	err  error
}

func (m *fakeMailer) SendLoginCode(_ context.Context, toEmail, code string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentCode{to: toEmail, code: code, ttl: ttl})
	return nil
}

func (m *fakeMailer) last(t *testing.T) sentCode {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()

	require.NotEmpty(t, m.sent, "no login code was sent")
	return m.sent[len(m.sent)-1]
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// sequenceCodes hands out the given codes in order
func sequenceCodes(codes ...string) func() (string, error) {
	var mu sync.Mutex
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		if len(codes) == 0 {
			return "", errors.New("no more codes")
		}
		code := codes[0]
		codes = codes[1:]
		return code, nil
	}
}

type testEnv struct {
	service *Service
	users   *user.MemoryStore
	mailer  *fakeMailer
	clock   *testClock
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()

	clock := newTestClock()
	tokens, err := NewPasetoService(testSecret)
	require.NoError(t, err)
	tokens.now = clock.Now

	env := &testEnv{
		users:  user.NewMemoryStore(),
		mailer: &fakeMailer{},
		clock:  clock,
	}
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	env.service = NewService(env.users, tokens, env.mailer, logging.Discard(), testCodeTTL, testTokenTTL, opts...)
	return env
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	require.NoError(t, e.service.RequestLoginCode(context.Background(), testEmail))
	return e.mailer.last(t).code
}

func TestRequestLoginCode_CreatesUserAndSendsCode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.service.RequestLoginCode(ctx, testEmail))

	u, err := env.users.GetByEmail(ctx, testEmail)
	require.NoError(t, err)
	require.NotNil(t, u.OTP)
	require.NotNil(t, u.OTPExpiresAt)

	sent := env.mailer.last(t)
	assert.Equal(t, testEmail, sent.to)
	assert.Equal(t, *u.OTP, sent.code)
	assert.Equal(t, testCodeTTL, sent.ttl)
	assert.True(t, env.clock.Now().Add(testCodeTTL).Equal(*u.OTPExpiresAt))
	assert.Len(t, sent.code, 6)
}

func TestRequestLoginCode_ExistingUserKeepsIdentity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	existing, err := env.users.Create(ctx, testEmail)
	require.NoError(t, err)

	require.NoError(t, env.service.RequestLoginCode(ctx, testEmail))

	u, err := env.users.GetByEmail(ctx, testEmail)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, u.ID)
}

func TestRequestLoginCode_EmptyEmail(t *testing.T) {
	env := newTestEnv(t)

	err := env.service.RequestLoginCode(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmailRequired)
	assert.Empty(t, env.mailer.sent)
}

func TestRequestLoginCode_DeliveryFailureKeepsStoredCode(t *testing.T) {
	env := newTestEnv(t, WithCodeGenerator(sequenceCodes("123456")))
	env.mailer.err = errors.New("smtp down")
	ctx := context.Background()

	err := env.service.RequestLoginCode(ctx, testEmail)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailRequired)

	u, err := env.users.GetByEmail(ctx, testEmail)
	require.NoError(t, err)
	require.NotNil(t, u.OTP)
	assert.Equal(t, "123456", *u.OTP)
}

func TestRequestLoginCode_GeneratorFailure(t *testing.T) {
	env := newTestEnv(t, WithCodeGenerator(func() (string, error) {
		return "", errors.New("entropy exhausted")
	}))

	assert.Error(t, env.service.RequestLoginCode(context.Background(), testEmail))
	assert.Empty(t, env.mailer.sent)
}

func TestVerifyLoginCode_Success(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	code := env.login(t)

	token, err := env.service.VerifyLoginCode(ctx, testEmail, code)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	u, err := env.users.GetByEmail(ctx, testEmail)
	require.NoError(t, err)
	assert.Nil(t, u.OTP)
	assert.Nil(t, u.OTPExpiresAt)

	principal, err := env.service.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, principal.UserID)
	assert.Equal(t, testEmail, principal.Email)
	assert.WithinDuration(t, env.clock.Now().Add(testTokenTTL), principal.ExpiresAt, time.Second)
}

func TestVerifyLoginCode_MissingFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.service.VerifyLoginCode(ctx, "", "123456")
	assert.ErrorIs(t, err, ErrEmailAndCodeRequired)

	_, err = env.service.VerifyLoginCode(ctx, testEmail, "")
	assert.ErrorIs(t, err, ErrEmailAndCodeRequired)
}

func TestVerifyLoginCode_UnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.VerifyLoginCode(context.Background(), "nobody@x.com", "123456")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestVerifyLoginCode_NoPendingCode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.Create(ctx, testEmail)
	require.NoError(t, err)

	_, err = env.service.VerifyLoginCode(ctx, testEmail, "123456")
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestVerifyLoginCode_WrongCodeLeavesPendingCode(t *testing.T) {
	env := newTestEnv(t, WithCodeGenerator(sequenceCodes("123456")))
	ctx := context.Background()
	env.login(t)

	_, err := env.service.VerifyLoginCode(ctx, testEmail, "654321")
	assert.ErrorIs(t, err, ErrInvalidCode)

	token, err := env.service.VerifyLoginCode(ctx, testEmail, "123456")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestVerifyLoginCode_NewRequestInvalidatesPreviousCode(t *testing.T) {
	env := newTestEnv(t, WithCodeGenerator(sequenceCodes("111111", "222222")))
	ctx := context.Background()

	first := env.login(t)
	second := env.login(t)
	require.NotEqual(t, first, second)

	_, err := env.service.VerifyLoginCode(ctx, testEmail, first)
	assert.ErrorIs(t, err, ErrInvalidCode)

	_, err = env.service.VerifyLoginCode(ctx, testEmail, second)
	assert.NoError(t, err)
}

func TestVerifyLoginCode_SingleUse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	code := env.login(t)

	_, err := env.service.VerifyLoginCode(ctx, testEmail, code)
	require.NoError(t, err)

	_, err = env.service.VerifyLoginCode(ctx, testEmail, code)
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestVerifyLoginCode_ExpiryBoundary(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		wantErr error
	}{
		{name: "one second before expiry", elapsed: testCodeTTL - time.Second},
		{name: "exactly at expiry", elapsed: testCodeTTL},
		{name: "one second after expiry", elapsed: testCodeTTL + time.Second, wantErr: ErrCodeExpired},
		{name: "long after expiry", elapsed: 24 * time.Hour, wantErr: ErrCodeExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			code := env.login(t)
			env.clock.Advance(tt.elapsed)

			_, err := env.service.VerifyLoginCode(context.Background(), testEmail, code)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestVerifyLoginCode_ExpiredCodeIsNotCleared(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	code := env.login(t)
	env.clock.Advance(testCodeTTL + time.Minute)

	_, err := env.service.VerifyLoginCode(ctx, testEmail, code)
	require.ErrorIs(t, err, ErrCodeExpired)

	u, err := env.users.GetByEmail(ctx, testEmail)
	require.NoError(t, err)
	require.NotNil(t, u.OTP)
	assert.Equal(t, code, *u.OTP)
}

func TestVerifyLoginCode_MismatchCheckedBeforeExpiry(t *testing.T) {
	env := newTestEnv(t, WithCodeGenerator(sequenceCodes("123456")))
	env.login(t)
	env.clock.Advance(time.Hour)

	_, err := env.service.VerifyLoginCode(context.Background(), testEmail, "000000")
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestAuthenticate_TokenLifetime(t *testing.T) {
	env := newTestEnv(t)
	code := env.login(t)

	token, err := env.service.VerifyLoginCode(context.Background(), testEmail, code)
	require.NoError(t, err)

	env.clock.Advance(6 * 24 * time.Hour)
	_, err = env.service.Authenticate(token)
	assert.NoError(t, err)

	env.clock.Advance(2 * 24 * time.Hour)
	_, err = env.service.Authenticate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestAuthenticate_Rejections(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.Authenticate("")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = env.service.Authenticate("garbled")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other, err := NewPasetoService([]byte("another-secret"))
	require.NoError(t, err)
	foreign, err := other.CreateToken(uuid.New(), testEmail, time.Hour)
	require.NoError(t, err)

	_, err = env.service.Authenticate(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u, err := env.users.Create(ctx, testEmail)
	require.NoError(t, err)

	got, err := env.service.Profile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, testEmail, got.Email)

	env.users.Delete(u.ID)
	_, err = env.service.Profile(ctx, u.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestConcurrentFirstLogin(t *testing.T) {
	env := newTestEnv(t)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- env.service.RequestLoginCode(context.Background(), testEmail)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Len(t, env.mailer.sent, 8)
}

func TestGenerateLoginCode(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code, err := GenerateLoginCode()
		require.NoError(t, err)
		require.Len(t, code, 6, "code %q", code)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, loginCodeMin)
		assert.LessOrEqual(t, n, loginCodeMin+loginCodeSpan-1)
	}
}

func TestGenerateLoginCode_CoversWholeRange(t *testing.T) {
	code, err := generateLoginCode(bytes.NewReader(make([]byte, 64)))
	require.NoError(t, err)
	assert.Equal(t, "100000", code)

	leading := make(map[byte]int)
	for i := 0; i < 5000; i++ {
		code, err := GenerateLoginCode()
		require.NoError(t, err)
		leading[code[0]]++
	}

	// each leading digit 1-9 should land near 1/9 of the draws
	for d := byte('1'); d <= '9'; d++ {
		assert.Greater(t, leading[d], 350, "leading digit %c", d)
		assert.Less(t, leading[d], 800, "leading digit %c", d)
	}
	assert.Zero(t, leading['0'])
}
