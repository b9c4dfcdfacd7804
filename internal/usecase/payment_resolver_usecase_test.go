package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"tapinvoice/internal/domain/entities"
	"tapinvoice/internal/usecase/interfaces"
	mock_interfaces "tapinvoice/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

var testNow = time.Unix(1_700_000_000, 0)

func payableInvoice() entities.Invoice {
	return entities.Invoice{
		ID:        "inv-1",
		Version:   entities.InvoiceSchemaVersion,
		Network:   "mantle",
		Token:     "USDC",
		Decimals:  6,
		To:        "0x52908400098527886E0F7030069857D2E4169EE7",
		Amount:    "1250000",
		Nonce:     "nonce-1",
		Expiry:    testNow.Add(time.Hour).Unix(),
		Signature: "0xdeadbeef",
	}
}

func newResolverForTest(source interfaces.IInvoiceSource, gateway interfaces.ISettlementGateway, verifier interfaces.ISignatureVerifier) *PaymentResolverUseCase {
	u := NewPaymentResolverUseCase(source, gateway, verifier)
	u.now = func() time.Time { return testNow }
	return u
}

func TestPaymentResolverVerify(t *testing.T) {
	t.Run("missing required fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		verifier := mock_interfaces.NewMockISignatureVerifier(ctrl)
		u := newResolverForTest(nil, nil, verifier)

		mutations := []func(*entities.Invoice){
			func(i *entities.Invoice) { i.To = "" },
			func(i *entities.Invoice) { i.Amount = "" },
			func(i *entities.Invoice) { i.Expiry = 0 },
			func(i *entities.Invoice) { i.Signature = "" },
		}
		for n, mutate := range mutations {
			inv := payableInvoice()
			mutate(&inv)
			err := u.Verify(inv, testNow)
			if !errors.Is(err, ErrInvoiceMissingFields) {
				t.Fatalf("case %d: expected ErrInvoiceMissingFields, got %v", n, err)
			}
		}
	})

	t.Run("expired regardless of structural completeness", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		verifier := mock_interfaces.NewMockISignatureVerifier(ctrl)
		u := newResolverForTest(nil, nil, verifier)

		inv := payableInvoice()
		inv.Expiry = testNow.Unix() // boundary: exp == now is expired
		if err := u.Verify(inv, testNow); !errors.Is(err, ErrInvoiceExpired) {
			t.Fatalf("expected ErrInvoiceExpired, got %v", err)
		}

		inv.Expiry = testNow.Add(-time.Hour).Unix()
		if err := u.Verify(inv, testNow); !errors.Is(err, ErrInvoiceExpired) {
			t.Fatalf("expected ErrInvoiceExpired, got %v", err)
		}
	})

	t.Run("complete and unexpired passes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		verifier := mock_interfaces.NewMockISignatureVerifier(ctrl)
		verifier.EXPECT().VerifyInvoice(gomock.Any()).Return(true, nil)
		u := newResolverForTest(nil, nil, verifier)

		if err := u.Verify(payableInvoice(), testNow); err != nil {
			t.Fatalf("expected valid invoice, got %v", err)
		}
	})

	t.Run("signature check fails closed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		verifier := mock_interfaces.NewMockISignatureVerifier(ctrl)
		verifier.EXPECT().VerifyInvoice(gomock.Any()).Return(false, errors.New("rpc unreachable"))
		u := newResolverForTest(nil, nil, verifier)

		if err := u.Verify(payableInvoice(), testNow); !errors.Is(err, ErrInvoiceBadSignature) {
			t.Fatalf("expected ErrInvoiceBadSignature on verifier error, got %v", err)
		}

		verifier.EXPECT().VerifyInvoice(gomock.Any()).Return(false, nil)
		if err := u.Verify(payableInvoice(), testNow); !errors.Is(err, ErrInvoiceBadSignature) {
			t.Fatalf("expected ErrInvoiceBadSignature on mismatch, got %v", err)
		}
	})

	t.Run("non-integer amount rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		verifier := mock_interfaces.NewMockISignatureVerifier(ctrl)
		u := newResolverForTest(nil, nil, verifier)

		inv := payableInvoice()
		inv.Amount = "1.25"
		if err := u.Verify(inv, testNow); !errors.Is(err, ErrInvoiceMissingFields) {
			t.Fatalf("expected structural rejection, got %v", err)
		}
	})
}

func TestPaymentResolverResolve(t *testing.T) {
	t.Run("empty id", func(t *testing.T) {
		u := newResolverForTest(nil, nil, nil)
		if _, err := u.Resolve(context.Background(), "  "); !errors.Is(err, ErrInvalidInvoiceID) {
			t.Fatalf("expected ErrInvalidInvoiceID, got %v", err)
		}
	})

	t.Run("fetch not found propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		source := mock_interfaces.NewMockIInvoiceSource(ctrl)
		source.EXPECT().FetchInvoice(gomock.Any(), "abc123").Return(entities.Invoice{}, interfaces.ErrInvoiceNotFound)
		u := newResolverForTest(source, nil, nil)

		if _, err := u.Resolve(context.Background(), "abc123"); !errors.Is(err, interfaces.ErrInvoiceNotFound) {
			t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
		}
	})

	t.Run("valid invoice resolves payable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		source := mock_interfaces.NewMockIInvoiceSource(ctrl)
		verifier := mock_interfaces.NewMockISignatureVerifier(ctrl)
		want := payableInvoice()
		source.EXPECT().FetchInvoice(gomock.Any(), "inv-1").Return(want, nil)
		verifier.EXPECT().VerifyInvoice(want).Return(true, nil)
		u := newResolverForTest(source, nil, verifier)

		got, err := u.Resolve(context.Background(), "inv-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Nonce != want.Nonce {
			t.Fatalf("expected nonce %s, got %s", want.Nonce, got.Nonce)
		}
	})

	t.Run("expired invoice returned with error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		source := mock_interfaces.NewMockIInvoiceSource(ctrl)
		inv := payableInvoice()
		inv.Expiry = testNow.Add(-time.Minute).Unix()
		source.EXPECT().FetchInvoice(gomock.Any(), "inv-1").Return(inv, nil)
		u := newResolverForTest(source, nil, mock_interfaces.NewMockISignatureVerifier(gomock.NewController(t)))

		got, err := u.Resolve(context.Background(), "inv-1")
		if !errors.Is(err, ErrInvoiceExpired) {
			t.Fatalf("expected ErrInvoiceExpired, got %v", err)
		}
		// The invoice is still returned for display in the error state.
		if got.ID != inv.ID {
			t.Fatalf("expected invoice to be returned alongside the error")
		}
	})
}

func TestPaymentResolverPay(t *testing.T) {
	t.Run("unverified invoice never reaches the gateway", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockISettlementGateway(ctrl) // no EXPECT: any call fails the test
		verifier := mock_interfaces.NewMockISignatureVerifier(ctrl)
		u := newResolverForTest(nil, gateway, verifier)

		inv := payableInvoice()
		inv.Signature = ""
		if _, err := u.Pay(context.Background(), inv); !errors.Is(err, ErrInvoiceMissingFields) {
			t.Fatalf("expected ErrInvoiceMissingFields, got %v", err)
		}
	})

	t.Run("success returns receipt hash and records attempt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockISettlementGateway(ctrl)
		verifier := mock_interfaces.NewMockISignatureVerifier(ctrl)
		verifier.EXPECT().VerifyInvoice(gomock.Any()).Return(true, nil)
		inv := payableInvoice()
		gateway.EXPECT().
			Settle(gomock.Any(), inv.To, inv.Amount, inv.Token, inv.Network).
			Return(entities.Receipt{Hash: "0xabc"}, nil)
		u := newResolverForTest(nil, gateway, verifier)

		if got := u.Attempt(inv.Nonce); got.State != entities.AttemptStateIdle {
			t.Fatalf("expected idle before pay, got %s", got.State)
		}

		receipt, err := u.Pay(context.Background(), inv)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if receipt.Hash != "0xabc" {
			t.Fatalf("expected receipt hash 0xabc, got %s", receipt.Hash)
		}

		attempt := u.Attempt(inv.Nonce)
		if attempt.State != entities.AttemptStateSuccess || attempt.TxHash != "0xabc" {
			t.Fatalf("expected success attempt with hash, got %+v", attempt)
		}
	})

	t.Run("duplicate pay while pending settles exactly once", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockISettlementGateway(ctrl)
		verifier := mock_interfaces.NewMockISignatureVerifier(ctrl)
		verifier.EXPECT().VerifyInvoice(gomock.Any()).Return(true, nil).Times(2)
		u := newResolverForTest(nil, gateway, verifier)
		inv := payableInvoice()

		started := make(chan struct{})
		release := make(chan struct{})
		gateway.EXPECT().
			Settle(gomock.Any(), inv.To, inv.Amount, inv.Token, inv.Network).
			DoAndReturn(func(context.Context, string, string, string, string) (entities.Receipt, error) {
				close(started)
				<-release
				return entities.Receipt{Hash: "0xabc"}, nil
			}).
			Times(1)

		firstDone := make(chan error, 1)
		go func() {
			_, err := u.Pay(context.Background(), inv)
			firstDone <- err
		}()

		<-started
		if attempt := u.Attempt(inv.Nonce); attempt.State != entities.AttemptStatePending {
			t.Fatalf("expected pending while settlement outstanding, got %s", attempt.State)
		}
		if _, err := u.Pay(context.Background(), inv); !errors.Is(err, ErrPaymentInProgress) {
			t.Fatalf("expected ErrPaymentInProgress, got %v", err)
		}

		close(release)
		if err := <-firstDone; err != nil {
			t.Fatalf("first pay failed: %v", err)
		}
	})

	t.Run("in-flight guard released on failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockISettlementGateway(ctrl)
		verifier := mock_interfaces.NewMockISignatureVerifier(ctrl)
		verifier.EXPECT().VerifyInvoice(gomock.Any()).Return(true, nil).Times(2)
		u := newResolverForTest(nil, gateway, verifier)
		inv := payableInvoice()

		gateway.EXPECT().
			Settle(gomock.Any(), inv.To, inv.Amount, inv.Token, inv.Network).
			Return(entities.Receipt{}, errors.New("execution reverted"))
		if _, err := u.Pay(context.Background(), inv); !errors.Is(err, ErrPaymentFailed) {
			t.Fatalf("expected ErrPaymentFailed, got %v", err)
		}
		if attempt := u.Attempt(inv.Nonce); attempt.State != entities.AttemptStateFailed {
			t.Fatalf("expected failed attempt, got %s", attempt.State)
		}

		// A fresh attempt is permitted after the previous one resolved.
		gateway.EXPECT().
			Settle(gomock.Any(), inv.To, inv.Amount, inv.Token, inv.Network).
			Return(entities.Receipt{Hash: "0xdef"}, nil)
		receipt, err := u.Pay(context.Background(), inv)
		if err != nil {
			t.Fatalf("retry after failure should proceed, got %v", err)
		}
		if receipt.Hash != "0xdef" {
			t.Fatalf("expected receipt hash 0xdef, got %s", receipt.Hash)
		}
	})

	t.Run("settlement timeout surfaces distinct error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockISettlementGateway(ctrl)
		verifier := mock_interfaces.NewMockISignatureVerifier(ctrl)
		verifier.EXPECT().VerifyInvoice(gomock.Any()).Return(true, nil)
		u := newResolverForTest(nil, gateway, verifier)
		inv := payableInvoice()

		gateway.EXPECT().
			Settle(gomock.Any(), inv.To, inv.Amount, inv.Token, inv.Network).
			Return(entities.Receipt{}, context.DeadlineExceeded)
		_, err := u.Pay(context.Background(), inv)
		if !errors.Is(err, interfaces.ErrSettlementTimeout) {
			t.Fatalf("expected ErrSettlementTimeout, got %v", err)
		}
		if errors.Is(err, ErrPaymentFailed) {
			t.Fatalf("timeout must stay distinct from ErrPaymentFailed")
		}
	})
}
