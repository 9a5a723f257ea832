package notifier

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/campusledger/internal/domain"
	"github.com/iho/campusledger/internal/infrastructure/metrics"
)

// stallingSMTP accepts connections and never sends a greeting, so clients
// block until their own deadline fires.
func stallingSMTP(t *testing.T) int {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			defer conn.Close()
		}
	}()

	return ln.Addr().(*net.TCPAddr).Port
}

func testEntry() domain.LedgerEntry {
	return domain.LedgerEntry{
		ID:        "01TEST",
		Amount:    decimal.NewFromInt(50),
		Kind:      domain.EntryKindFine,
		Category:  "Library",
		ReceiptNo: "RCP-20260830-12345",
		Date:      time.Now(),
	}
}

func TestSendReceiptHonorsDeadline(t *testing.T) {
	registry := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
	m := metrics.New()

	port := stallingSMTP(t)
	n := NewEmailNotifier(Config{
		Host: "127.0.0.1",
		Port: port,
		From: "accounts@campusledger.local",
	}, zerolog.Nop(), m)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := n.SendReceipt(ctx, "asha@example.edu", "Asha Rao", testEntry())
	if err == nil {
		t.Fatalf("expected error from stalled smtp server")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("send did not return at the deadline, took %v", elapsed)
	}

	if got := testutil.ToFloat64(m.NotificationsFailed); got != 1 {
		t.Fatalf("expected 1 failed notification, got %v", got)
	}
	if got := testutil.ToFloat64(m.NotificationsSent); got != 0 {
		t.Fatalf("expected 0 sent notifications, got %v", got)
	}
}

func TestSendReceiptNilMetrics(t *testing.T) {
	n := NewEmailNotifier(Config{Host: "127.0.0.1", Port: 1}, zerolog.Nop(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := n.SendReceipt(ctx, "asha@example.edu", "Asha Rao", testEntry()); err == nil {
		t.Fatalf("expected error with canceled context")
	}
}
