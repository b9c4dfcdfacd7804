package settlement

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/big"
	"os"
	"strings"
	"time"

	"tapinvoice/internal/domain/entities"
	"tapinvoice/internal/infrastructure/circuitbreaker"
	"tapinvoice/internal/infrastructure/metrics"
	"tapinvoice/internal/infrastructure/signing"
	"tapinvoice/internal/usecase/interfaces"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/google/uuid"
)

var (
	ErrGatewayNotConfigured = errors.New("settlement gateway not configured")
	ErrNetworkMismatch      = errors.New("invoice network does not match gateway network")
	ErrUnknownToken         = errors.New("no contract address configured for token")
	ErrTransferReverted     = errors.New("token transfer reverted on chain")
)

// erc20TransferABI is the only contract surface the gateway needs.
const erc20TransferABI = `[
	{
		"constant": false,
		"inputs": [
			{"name": "_to", "type": "address"},
			{"name": "_value", "type": "uint256"}
		],
		"name": "transfer",
		"outputs": [{"name": "", "type": "bool"}],
		"payable": false,
		"stateMutability": "nonpayable",
		"type": "function"
	}
]`

// Config carries everything needed to settle on one EVM network. Token
// contract addresses come from TOKEN_<SYMBOL>_ADDRESS env vars so new tokens
// need no code change.
type Config struct {
	RPCURL             string
	Network            string
	KeystorePath       string
	KeystorePassphrase string

	BreakerThreshold int
	BreakerWindow    time.Duration
	BreakerCooldown  time.Duration
}

func ConfigFromEnv() Config {
	return Config{
		RPCURL:             os.Getenv("SETTLEMENT_RPC_URL"),
		Network:            getenvDefault("SETTLEMENT_NETWORK", "mantle"),
		KeystorePath:       os.Getenv("PAYER_KEYSTORE_PATH"),
		KeystorePassphrase: os.Getenv("PAYER_KEYSTORE_PASSPHRASE"),
		BreakerThreshold:   5,
		BreakerWindow:      time.Minute,
		BreakerCooldown:    30 * time.Second,
	}
}

// EVMGateway settles invoices with ERC-20 transfers on a single EVM chain.
type EVMGateway struct {
	client   *ethclient.Client
	auth     *bind.TransactOpts
	network  string
	tokens   map[string]common.Address
	breaker  *circuitbreaker.Breaker
	abi      abi.ABI
	mockMode bool
}

var _ interfaces.ISettlementGateway = (*EVMGateway)(nil)

func NewEVMGateway(cfg Config) (*EVMGateway, error) {
	parsed, err := abi.JSON(strings.NewReader(erc20TransferABI))
	if err != nil {
		return nil, fmt.Errorf("parse erc20 abi: %w", err)
	}

	g := &EVMGateway{
		network: strings.ToLower(strings.TrimSpace(cfg.Network)),
		tokens:  tokenAddressesFromEnv(),
		breaker: circuitbreaker.New(cfg.BreakerThreshold, cfg.BreakerWindow, cfg.BreakerCooldown),
		abi:     parsed,
	}

	if isSettlementMockEnabled() {
		log.Printf("[settlement][gateway] mock mode enabled network=%s", g.network)
		g.mockMode = true
		return g, nil
	}

	if cfg.RPCURL == "" {
		log.Printf("[settlement][gateway] missing SETTLEMENT_RPC_URL")
		return nil, ErrGatewayNotConfigured
	}

	chainID, ok := signing.ChainID(g.network)
	if !ok {
		return nil, fmt.Errorf("%w: unknown network %q", ErrGatewayNotConfigured, cfg.Network)
	}

	raw, err := os.ReadFile(cfg.KeystorePath)
	if err != nil {
		return nil, fmt.Errorf("read payer keystore: %w", err)
	}
	key, err := keystore.DecryptKey(raw, cfg.KeystorePassphrase)
	if err != nil {
		return nil, fmt.Errorf("decrypt payer keystore: %w", err)
	}

	auth, err := bind.NewKeyedTransactorWithChainID(key.PrivateKey, big.NewInt(chainID))
	if err != nil {
		return nil, fmt.Errorf("build transactor: %w", err)
	}

	client, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dial settlement rpc: %w", err)
	}

	log.Printf("[settlement][gateway] connected network=%s chain_id=%d payer=%s", g.network, chainID, auth.From.Hex())
	g.client = client
	g.auth = auth
	return g, nil
}

// Settle transfers amount base units of token to the recipient and blocks
// until the transaction is mined. The caller's context bounds the whole
// submit-and-wait cycle.
func (g *EVMGateway) Settle(ctx context.Context, to, amount, token, network string) (entities.Receipt, error) {
	if g.mockMode {
		return g.mockSettle(to, amount, token)
	}
	if g.client == nil {
		return entities.Receipt{}, ErrGatewayNotConfigured
	}
	if strings.ToLower(strings.TrimSpace(network)) != g.network {
		return entities.Receipt{}, fmt.Errorf("%w: invoice %q, gateway %q", ErrNetworkMismatch, network, g.network)
	}
	if g.breaker.IsOpen() {
		log.Printf("[settlement][gateway] circuit open, rejecting settle token=%s", token)
		metrics.SettlementAttempts.WithLabelValues(g.network, "rejected").Inc()
		return entities.Receipt{}, interfaces.ErrSettlementUnavailable
	}

	tokenAddr, ok := g.tokens[strings.ToUpper(strings.TrimSpace(token))]
	if !ok {
		return entities.Receipt{}, fmt.Errorf("%w: %q", ErrUnknownToken, token)
	}
	units, ok := new(big.Int).SetString(amount, 10)
	if !ok || units.Sign() < 0 {
		return entities.Receipt{}, fmt.Errorf("invalid settlement amount %q", amount)
	}

	log.Printf("[settlement][gateway] settle start token=%s amount=%s to=%s", token, amount, to)
	start := time.Now()
	receipt, err := g.transfer(ctx, tokenAddr, common.HexToAddress(to), units)
	if err != nil {
		g.breaker.RecordFailure()
		metrics.SettlementAttempts.WithLabelValues(g.network, "failed").Inc()
		log.Printf("[settlement][gateway] settle failed token=%s err=%v", token, err)
		return entities.Receipt{}, err
	}

	g.breaker.RecordSuccess()
	metrics.SettlementAttempts.WithLabelValues(g.network, "success").Inc()
	metrics.SettlementDuration.Observe(time.Since(start).Seconds())
	log.Printf("[settlement][gateway] settle success token=%s tx=%s", token, receipt.Hash)
	return receipt, nil
}

func (g *EVMGateway) transfer(ctx context.Context, tokenAddr, to common.Address, units *big.Int) (entities.Receipt, error) {
	contract := bind.NewBoundContract(tokenAddr, g.abi, g.client, g.client, g.client)

	opts := *g.auth
	opts.Context = ctx

	tx, err := contract.Transact(&opts, "transfer", to, units)
	if err != nil {
		return entities.Receipt{}, fmt.Errorf("submit transfer: %w", err)
	}

	receipt, err := bind.WaitMined(ctx, g.client, tx)
	if err != nil {
		return entities.Receipt{}, fmt.Errorf("wait for transfer %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status == 0 {
		return entities.Receipt{}, fmt.Errorf("%w: tx %s", ErrTransferReverted, tx.Hash().Hex())
	}
	return entities.Receipt{Hash: tx.Hash().Hex()}, nil
}

func (g *EVMGateway) mockSettle(to, amount, token string) (entities.Receipt, error) {
	units, ok := new(big.Int).SetString(amount, 10)
	if !ok || units.Sign() < 0 {
		return entities.Receipt{}, fmt.Errorf("invalid settlement amount %q", amount)
	}
	hash := crypto.Keccak256Hash([]byte(uuid.NewString()))
	log.Printf("[settlement][gateway] mock settle success token=%s amount=%s to=%s tx=%s", token, amount, to, hash.Hex())
	metrics.SettlementAttempts.WithLabelValues(g.network, "success").Inc()
	return entities.Receipt{Hash: hash.Hex()}, nil
}

// tokenAddressesFromEnv scans TOKEN_<SYMBOL>_ADDRESS vars, e.g.
// TOKEN_USDC_ADDRESS=0x....
func tokenAddressesFromEnv() map[string]common.Address {
	tokens := make(map[string]common.Address)
	for _, kv := range os.Environ() {
		name, value, found := strings.Cut(kv, "=")
		if !found || !strings.HasPrefix(name, "TOKEN_") || !strings.HasSuffix(name, "_ADDRESS") {
			continue
		}
		symbol := strings.TrimSuffix(strings.TrimPrefix(name, "TOKEN_"), "_ADDRESS")
		if symbol == "" || !common.IsHexAddress(value) {
			log.Printf("[settlement][gateway] ignoring malformed token mapping %s", name)
			continue
		}
		tokens[strings.ToUpper(symbol)] = common.HexToAddress(value)
	}
	return tokens
}

func isSettlementMockEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("SETTLEMENT_GATEWAY_MOCK")))
	switch v {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
