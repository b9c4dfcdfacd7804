package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tapinvoice/internal/infrastructure/invoiceapi"
	"tapinvoice/internal/infrastructure/settlement"
	"tapinvoice/internal/infrastructure/signing"
	"tapinvoice/internal/usecase"

	_ "github.com/joho/godotenv/autoload"
)

// payer resolves a single invoice id and settles it on chain. It is the
// command a tap-to-pay device runs after scanning an invoice link.
func main() {
	invoiceID := flag.String("invoice", "", "invoice id to resolve and pay")
	dryRun := flag.Bool("dry-run", false, "resolve and verify only, do not settle")
	flag.Parse()

	if *invoiceID == "" {
		log.Fatalf("usage: payer -invoice <id> [-dry-run]")
	}

	issuer := os.Getenv("ISSUER_ADDRESS")
	verifier, err := signing.NewInvoiceVerifierFromHex(issuer)
	if err != nil {
		log.Fatalf("Issuer address not usable, refusing to pay unverified invoices: %v", err)
	}

	gateway, err := settlement.NewEVMGateway(settlement.ConfigFromEnv())
	if err != nil {
		log.Fatalf("Failed to create settlement gateway: %v", err)
	}

	source := invoiceapi.NewClient(getenvDefault("INVOICE_SERVICE_URL", "http://localhost:8080"), durationFromEnv("INVOICE_FETCH_TIMEOUT"))
	resolver := usecase.NewPaymentResolverUseCase(source, gateway, verifier).
		WithSettleTimeout(durationFromEnv("SETTLE_TIMEOUT"))

	// Set up context with cancellation on SIGINT/SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalCh
		log.Println("Received termination signal, aborting...")
		cancel()
	}()

	inv, err := resolver.Resolve(ctx, *invoiceID)
	if err != nil {
		if errors.Is(err, usecase.ErrInvoiceExpired) {
			log.Fatalf("Invoice %s expired at %d", *invoiceID, inv.Expiry)
		}
		log.Fatalf("Failed to resolve invoice %s: %v", *invoiceID, err)
	}

	display, err := inv.DisplayAmount()
	if err != nil {
		log.Fatalf("Invoice %s carries an unusable amount: %v", *invoiceID, err)
	}
	log.Printf("Invoice %s: pay %s %s to %s on %s (memo %q)", *invoiceID, display.String(), inv.Token, inv.To, inv.Network, inv.Memo)

	if *dryRun {
		log.Println("Dry run, not settling")
		return
	}

	receipt, err := resolver.Pay(ctx, inv)
	if err != nil {
		log.Fatalf("Payment for invoice %s failed: %v", *invoiceID, err)
	}
	log.Printf("Payment settled, tx %s", receipt.Hash)
}

// durationFromEnv parses a duration env var; zero means "use the default".
func durationFromEnv(key string) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Ignoring malformed %s=%q: %v", key, v, err)
		return 0
	}
	return d
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
