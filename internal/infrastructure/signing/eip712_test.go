package signing

import (
	"testing"

	"tapinvoice/internal/domain/entities"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInvoice() entities.Invoice {
	return entities.Invoice{
		Version:  entities.InvoiceSchemaVersion,
		Network:  "mantle",
		Token:    "USDC",
		Decimals: 6,
		To:       "0x52908400098527886E0F7030069857D2E4169EE7",
		Amount:   "1250000",
		Memo:     "coffee",
		Nonce:    "9f1c2a",
		Expiry:   1_700_000_600,
	}
}

func TestSignAndVerifyRoundtrip(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	signer := NewInvoiceSigner(key)
	verifier := NewInvoiceVerifier(signer.Address())

	inv := testInvoice()
	sig, err := signer.SignInvoice(inv)
	require.NoError(t, err)
	assert.Len(t, sig, 2+65*2, "0x plus 65 hex bytes")

	inv.Signature = sig
	ok, err := verifier.VerifyInvoice(inv)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyRejectsTamperedFields(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	signer := NewInvoiceSigner(key)
	verifier := NewInvoiceVerifier(signer.Address())

	base := testInvoice()
	sig, err := signer.SignInvoice(base)
	require.NoError(t, err)

	cases := []struct {
		name   string
		mutate func(*entities.Invoice)
	}{
		{"amount", func(i *entities.Invoice) { i.Amount = "9250000" }},
		{"recipient", func(i *entities.Invoice) { i.To = "0x8617E340B3D01FA5F11F306F4090FD50E238070D" }},
		{"expiry", func(i *entities.Invoice) { i.Expiry += 3600 }},
		{"memo", func(i *entities.Invoice) { i.Memo = "dinner" }},
		{"nonce", func(i *entities.Invoice) { i.Nonce = "deadbeef" }},
		{"network", func(i *entities.Invoice) { i.Network = "base" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv := base
			inv.Signature = sig
			tc.mutate(&inv)
			ok, err := verifier.VerifyInvoice(inv)
			require.NoError(t, err)
			assert.False(t, ok, "tampered %s must not verify", tc.name)
		})
	}
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	issuerKey, err := crypto.GenerateKey()
	require.NoError(t, err)
	otherKey, err := crypto.GenerateKey()
	require.NoError(t, err)

	inv := testInvoice()
	sig, err := NewInvoiceSigner(otherKey).SignInvoice(inv)
	require.NoError(t, err)
	inv.Signature = sig

	verifier := NewInvoiceVerifier(crypto.PubkeyToAddress(issuerKey.PublicKey))
	ok, err := verifier.VerifyInvoice(inv)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyMalformedSignature(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	verifier := NewInvoiceVerifier(crypto.PubkeyToAddress(key.PublicKey))

	for _, sig := range []string{"", "not-hex", "0x1234"} {
		inv := testInvoice()
		inv.Signature = sig
		ok, err := verifier.VerifyInvoice(inv)
		assert.Error(t, err, "sig %q", sig)
		assert.False(t, ok)
	}
}

func TestUnsupportedNetwork(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	signer := NewInvoiceSigner(key)

	inv := testInvoice()
	inv.Network = "testnet-of-the-week"
	_, err = signer.SignInvoice(inv)
	assert.ErrorIs(t, err, ErrUnsupportedNetwork)
}

func TestNewInvoiceVerifierFromHex(t *testing.T) {
	_, err := NewInvoiceVerifierFromHex("0x52908400098527886E0F7030069857D2E4169EE7")
	require.NoError(t, err)

	_, err = NewInvoiceVerifierFromHex("not-an-address")
	assert.Error(t, err)
}
