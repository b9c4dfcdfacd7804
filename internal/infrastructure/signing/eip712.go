package signing

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"tapinvoice/internal/domain/entities"
	"tapinvoice/internal/usecase/interfaces"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// Invoices are signed with an EIP-712 typed payload so any standard EVM
// wallet or contract can check issuer authenticity. The signature field is
// never part of the signed message.
const (
	signingDomainName    = "TapInvoice"
	signingDomainVersion = "1"
)

var (
	ErrUnsupportedNetwork = errors.New("unsupported settlement network")
	ErrMalformedSignature = errors.New("malformed invoice signature")
)

// chainIDs maps invoice network names onto EIP-155 chain ids. The network is
// part of the signing domain, so a signature for one chain never validates on
// another.
var chainIDs = map[string]int64{
	"ethereum": 1,
	"optimism": 10,
	"polygon":  137,
	"base":     8453,
	"arbitrum": 42161,
	"mantle":   5000,
}

// ChainID resolves an invoice network name to its EIP-155 chain id.
func ChainID(network string) (int64, bool) {
	id, ok := chainIDs[strings.ToLower(strings.TrimSpace(network))]
	return id, ok
}

var invoiceTypes = apitypes.Types{
	"EIP712Domain": {
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
	},
	"Invoice": {
		{Name: "v", Type: "uint256"},
		{Name: "net", Type: "string"},
		{Name: "token", Type: "string"},
		{Name: "dec", Type: "uint256"},
		{Name: "to", Type: "address"},
		{Name: "amt", Type: "uint256"},
		{Name: "memo", Type: "string"},
		{Name: "nonce", Type: "string"},
		{Name: "exp", Type: "uint256"},
	},
}

func invoiceDigest(inv entities.Invoice) ([]byte, error) {
	chainID, ok := chainIDs[strings.ToLower(strings.TrimSpace(inv.Network))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedNetwork, inv.Network)
	}
	if inv.Expiry < 0 {
		return nil, fmt.Errorf("negative expiry %d", inv.Expiry)
	}

	typed := apitypes.TypedData{
		Types:       invoiceTypes,
		PrimaryType: "Invoice",
		Domain: apitypes.TypedDataDomain{
			Name:    signingDomainName,
			Version: signingDomainVersion,
			ChainId: math.NewHexOrDecimal256(chainID),
		},
		Message: apitypes.TypedDataMessage{
			"v":     strconv.Itoa(inv.Version),
			"net":   inv.Network,
			"token": inv.Token,
			"dec":   strconv.Itoa(inv.Decimals),
			"to":    inv.To,
			"amt":   inv.Amount,
			"memo":  inv.Memo,
			"nonce": inv.Nonce,
			"exp":   strconv.FormatInt(inv.Expiry, 10),
		},
	}

	digest, _, err := apitypes.TypedDataAndHash(typed)
	if err != nil {
		return nil, fmt.Errorf("hash typed invoice: %w", err)
	}
	return digest, nil
}

// InvoiceSigner produces issuer signatures over invoice payloads.
type InvoiceSigner struct {
	key *ecdsa.PrivateKey
}

var _ interfaces.IInvoiceSigner = (*InvoiceSigner)(nil)

func NewInvoiceSigner(key *ecdsa.PrivateKey) *InvoiceSigner {
	return &InvoiceSigner{key: key}
}

// NewInvoiceSignerFromKeystore loads the issuer key from an encrypted geth
// keystore file. The file is scrypt plus AES under the hood, so the raw key
// never sits in an env var or in source.
func NewInvoiceSignerFromKeystore(path, passphrase string) (*InvoiceSigner, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keystore file: %w", err)
	}
	key, err := keystore.DecryptKey(raw, passphrase)
	if err != nil {
		return nil, fmt.Errorf("decrypt keystore: %w", err)
	}
	return &InvoiceSigner{key: key.PrivateKey}, nil
}

// Address returns the issuer address derived from the signing key.
func (s *InvoiceSigner) Address() common.Address {
	return crypto.PubkeyToAddress(s.key.PublicKey)
}

func (s *InvoiceSigner) SignInvoice(inv entities.Invoice) (string, error) {
	digest, err := invoiceDigest(inv)
	if err != nil {
		return "", err
	}
	sig, err := crypto.Sign(digest, s.key)
	if err != nil {
		return "", fmt.Errorf("sign invoice digest: %w", err)
	}
	// Wallet-style recovery id: 27 or 28 instead of 0 or 1.
	sig[64] += 27
	return hexutil.Encode(sig), nil
}

// InvoiceVerifier checks invoice signatures against a known issuer address.
// Any parse or recovery problem reports the invoice as unverified.
type InvoiceVerifier struct {
	issuer common.Address
}

var _ interfaces.ISignatureVerifier = (*InvoiceVerifier)(nil)

func NewInvoiceVerifier(issuer common.Address) *InvoiceVerifier {
	return &InvoiceVerifier{issuer: issuer}
}

func NewInvoiceVerifierFromHex(issuer string) (*InvoiceVerifier, error) {
	if !common.IsHexAddress(issuer) {
		return nil, fmt.Errorf("invalid issuer address %q", issuer)
	}
	return &InvoiceVerifier{issuer: common.HexToAddress(issuer)}, nil
}

func (v *InvoiceVerifier) VerifyInvoice(inv entities.Invoice) (bool, error) {
	digest, err := invoiceDigest(inv)
	if err != nil {
		return false, err
	}

	sig, err := hexutil.Decode(inv.Signature)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}
	if len(sig) != crypto.SignatureLength {
		return false, fmt.Errorf("%w: length %d", ErrMalformedSignature, len(sig))
	}
	if sig[64] >= 27 {
		sig = append([]byte(nil), sig...)
		sig[64] -= 27
	}

	pub, err := crypto.SigToPub(digest, sig)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}
	return crypto.PubkeyToAddress(*pub) == v.issuer, nil
}
