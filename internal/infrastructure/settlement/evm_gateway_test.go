package settlement

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEVMGatewayNotConfigured(t *testing.T) {
	t.Setenv("SETTLEMENT_GATEWAY_MOCK", "")
	t.Setenv("SETTLEMENT_RPC_URL", "")

	_, err := NewEVMGateway(ConfigFromEnv())
	assert.ErrorIs(t, err, ErrGatewayNotConfigured)
}

func TestMockSettle(t *testing.T) {
	t.Setenv("SETTLEMENT_GATEWAY_MOCK", "1")

	g, err := NewEVMGateway(ConfigFromEnv())
	require.NoError(t, err)

	receipt, err := g.Settle(context.Background(), "0x52908400098527886E0F7030069857D2E4169EE7", "1250000", "USDC", "mantle")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(receipt.Hash, "0x"))
	assert.Len(t, receipt.Hash, 66)

	other, err := g.Settle(context.Background(), "0x52908400098527886E0F7030069857D2E4169EE7", "1250000", "USDC", "mantle")
	require.NoError(t, err)
	assert.NotEqual(t, receipt.Hash, other.Hash, "mock receipts must not repeat")
}

func TestMockSettleRejectsBadAmount(t *testing.T) {
	t.Setenv("SETTLEMENT_GATEWAY_MOCK", "1")

	g, err := NewEVMGateway(ConfigFromEnv())
	require.NoError(t, err)

	for _, amt := range []string{"", "1.5", "-1", "abc"} {
		_, err := g.Settle(context.Background(), "0x52908400098527886E0F7030069857D2E4169EE7", amt, "USDC", "mantle")
		assert.Error(t, err, "amount %q", amt)
	}
}

func TestTokenAddressesFromEnv(t *testing.T) {
	t.Setenv("TOKEN_USDC_ADDRESS", "0x52908400098527886E0F7030069857D2E4169EE7")
	t.Setenv("TOKEN_USDT_ADDRESS", "not-an-address")

	tokens := tokenAddressesFromEnv()
	require.Contains(t, tokens, "USDC")
	assert.Equal(t, "0x52908400098527886E0F7030069857D2E4169EE7", tokens["USDC"].Hex())
	assert.NotContains(t, tokens, "USDT", "malformed addresses are skipped")
}

func TestIsSettlementMockEnabled(t *testing.T) {
	for _, v := range []string{"1", "true", "YES", " on ", "mock"} {
		t.Setenv("SETTLEMENT_GATEWAY_MOCK", v)
		assert.True(t, isSettlementMockEnabled(), "value %q", v)
	}
	for _, v := range []string{"", "0", "false", "off"} {
		t.Setenv("SETTLEMENT_GATEWAY_MOCK", v)
		assert.False(t, isSettlementMockEnabled(), "value %q", v)
	}
}
