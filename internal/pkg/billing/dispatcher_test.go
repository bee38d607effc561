package billing

import (
	"context"
	"testing"

	"github.com/confeitapro/confeitapro/app/models"
)

func TestDispatchSyncEvents(t *testing.T) {
	events := []Event{
		SubscriptionCheckoutCompleted{CustomerID: "cus_123"},
		SubscriptionChanged{CustomerID: "cus_123"},
		InvoicePaymentSucceeded{CustomerID: "cus_123", SubscriptionID: "sub_123"},
		InvoicePaymentFailed{CustomerID: "cus_123", SubscriptionID: "sub_123"},
	}

	for _, ev := range events {
		repo := newFakeRepository()
		repo.addLink(1, "cus_123")
		provider := &fakeProvider{sub: activeSub()}
		d := NewDispatcher(NewService(repo, provider))

		if err := d.Dispatch(context.Background(), ev); err != nil {
			t.Fatalf("%T: dispatch failed: %v", ev, err)
		}
		if provider.listCalls != 1 {
			t.Errorf("%T: provider queried %d times, want 1", ev, provider.listCalls)
		}
		if repo.snapshotWrites != 1 {
			t.Errorf("%T: snapshot written %d times, want 1", ev, repo.snapshotWrites)
		}
	}
}

func TestDispatchSubscriptionDeleted(t *testing.T) {
	repo := newFakeRepository()
	repo.addLink(1, "cus_123")
	provider := &fakeProvider{sub: activeSub()}
	svc := NewService(repo, provider)
	if err := svc.SyncCustomerSubscription(context.Background(), "cus_123"); err != nil {
		t.Fatalf("seed sync failed: %v", err)
	}

	d := NewDispatcher(svc)
	if err := d.Dispatch(context.Background(), SubscriptionDeleted{CustomerID: "cus_123"}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	if repo.snapshots["cus_123"].Status != models.SubscriptionStatusCanceled {
		t.Errorf("status = %q after deletion", repo.snapshots["cus_123"].Status)
	}
	if provider.listCalls != 1 {
		t.Error("deletion must not trigger a provider re-fetch")
	}
}

func TestDispatchPaymentCheckout(t *testing.T) {
	repo := newFakeRepository()
	d := NewDispatcher(NewService(repo, &fakeProvider{}))

	err := d.Dispatch(context.Background(), PaymentCheckoutCompleted{Order: OrderInput{
		CheckoutSessionID: "cs_test_1",
		CustomerID:        "cus_123",
		AmountTotal:       1990,
	}})
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	if len(repo.orders) != 1 {
		t.Fatalf("expected one order, got %d", len(repo.orders))
	}
}

func TestDispatchIgnoresOneOffInvoices(t *testing.T) {
	repo := newFakeRepository()
	repo.addLink(1, "cus_123")
	provider := &fakeProvider{sub: activeSub()}
	d := NewDispatcher(NewService(repo, provider))

	for _, ev := range []Event{
		InvoicePaymentSucceeded{CustomerID: "cus_123"},
		InvoicePaymentFailed{CustomerID: "cus_123"},
	} {
		if err := d.Dispatch(context.Background(), ev); err != nil {
			t.Fatalf("%T: dispatch failed: %v", ev, err)
		}
	}
	if provider.listCalls != 0 || repo.snapshotWrites != 0 {
		t.Error("invoices without a subscription must be no-ops")
	}
}

func TestDispatchUnrecognized(t *testing.T) {
	repo := newFakeRepository()
	d := NewDispatcher(NewService(repo, &fakeProvider{}))

	if err := d.Dispatch(context.Background(), Unrecognized{Type: "charge.refunded"}); err != nil {
		t.Fatalf("unrecognized events must be acknowledged, got %v", err)
	}
	if repo.snapshotWrites != 0 || len(repo.orders) != 0 {
		t.Error("unrecognized events must not write anything")
	}
}
