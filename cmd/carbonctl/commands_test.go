package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/carbon-tracker/internal/auth"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestFactorsCommand(t *testing.T) {
	out, _, err := execute(t, "factors")
	require.NoError(t, err)

	for _, name := range []string{"car_petrol", "flight_short", "electricity", "beef", "chicken"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "kg CO2/kWh")
	assert.Less(t, strings.Index(out, "beef"), strings.Index(out, "chicken"))
}

func TestTokenMintAndInspect(t *testing.T) {
	for _, strategy := range []string{"paseto", "jwt"} {
		t.Run(strategy, func(t *testing.T) {
			t.Setenv("TOKEN_SECRET", "cli-secret")
			t.Setenv("TOKEN_STRATEGY", strategy)
			userID := uuid.New()

			out, _, err := execute(t, "token", "mint", "--user-id", userID.String(), "--email", "a@x.com")
			require.NoError(t, err)
			token := strings.TrimSpace(out)
			require.NotEmpty(t, token)

			out, _, err = execute(t, "token", "inspect", token)
			require.NoError(t, err)
			assert.Contains(t, out, userID.String())
			assert.Contains(t, out, "a@x.com")
		})
	}
}

func TestTokenInspect_RejectsForeignToken(t *testing.T) {
	t.Setenv("TOKEN_STRATEGY", "paseto")
	t.Setenv("TOKEN_SECRET", "one-secret")
	out, _, err := execute(t, "token", "mint", "--user-id", uuid.NewString(), "--email", "a@x.com")
	require.NoError(t, err)

	t.Setenv("TOKEN_SECRET", "another-secret")
	_, stderr, err := execute(t, "token", "inspect", strings.TrimSpace(out))
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
	assert.Contains(t, stderr, "invalid token")
}

func TestTokenMint_InvalidUserID(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "cli-secret")

	_, _, err := execute(t, "token", "mint", "--user-id", "not-a-uuid", "--email", "a@x.com")
	assert.ErrorContains(t, err, "invalid user ID")
}

func TestTokenCommands_RequireSecret(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "")

	_, _, err := execute(t, "token", "inspect", "whatever")
	assert.Error(t, err)
}
