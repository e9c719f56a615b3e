package webhook

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	secret := "test-secret-key"
	body := []byte(`{"type":"invitation.accepted","id":"evt_1"}`)
	expectedSig := Sign(body, secret)

	tests := []struct {
		name      string
		body      []byte
		signature string
		secret    string
		want      bool
	}{
		{name: "valid signature", body: body, signature: expectedSig, secret: secret, want: true},
		{name: "wrong signature", body: body, signature: strings.Repeat("0", 64), secret: secret},
		{name: "anything else", body: body, signature: "anything-else", secret: secret},
		{name: "empty signature", body: body, signature: "", secret: secret},
		{name: "tampered body", body: []byte(`{"type":"invitation.accepted","id":"evt_2"}`), signature: expectedSig, secret: secret},
		{name: "wrong secret", body: body, signature: expectedSig, secret: "wrong-secret"},
		{name: "empty secret", body: body, signature: expectedSig, secret: ""},
		{name: "uppercase hex", body: body, signature: strings.ToUpper(expectedSig), secret: secret},
		{name: "truncated", body: body, signature: expectedSig[:63], secret: secret},
		{name: "github style prefix", body: body, signature: "sha256=" + expectedSig, secret: secret},
		{name: "nil body", body: nil, signature: Sign(nil, secret), secret: secret, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Verify(tt.body, tt.signature, tt.secret))
		})
	}
}

func TestSign(t *testing.T) {
	body := []byte("test payload")

	sig := Sign(body, "test-secret")
	assert.Len(t, sig, 64)
	assert.Equal(t, strings.ToLower(sig), sig)
	assert.Equal(t, sig, Sign(body, "test-secret"))
	assert.NotEqual(t, sig, Sign([]byte("different"), "test-secret"))

	// RFC 4231 test case 2.
	assert.Equal(t,
		"5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843",
		Sign([]byte("what do ya want for nothing?"), "Jefe"))
}

func TestNewVerifierRejectsEmptySecret(t *testing.T) {
	for _, secret := range []string{"", "   ", "\t\n"} {
		v, err := NewVerifier(secret)
		assert.Nil(t, v)
		assert.ErrorIs(t, err, ErrConfiguration)
	}

	v, err := NewVerifier("s3cret")
	require.NoError(t, err)
	assert.NotNil(t, v)
}

func TestVerifierVerify(t *testing.T) {
	v, err := NewVerifier("s3cret")
	require.NoError(t, err)

	body := []byte(`{}`)
	assert.True(t, v.Verify(body, Sign(body, "s3cret")))
	assert.False(t, v.Verify(body, Sign(body, "other")))
	assert.False(t, v.Verify(body, ""))
}
