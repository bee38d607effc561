package billing

import (
	"testing"

	"github.com/confeitapro/confeitapro/app/models"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status string
		want   SubscriptionState
	}{
		{"active", StateActive},
		{"incomplete", StatePending},
		{"not_started", StatePending},
		{"canceled", StateCanceled},
		{"trialing", StateUnknown},
		{"past_due", StateUnknown},
		{"unpaid", StateUnknown},
		{"", StateUnknown},
		{"ACTIVE", StateActive},
		{"  canceled  ", StateCanceled},
	}

	for _, tt := range tests {
		if got := ClassifyStatus(tt.status); got != tt.want {
			t.Errorf("ClassifyStatus(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestClassifyNilSnapshot(t *testing.T) {
	if got := Classify(nil); got != StateNoSubscription {
		t.Errorf("Classify(nil) = %q, want %q", got, StateNoSubscription)
	}
}

func TestClassifySnapshot(t *testing.T) {
	snap := &models.StripeSubscription{Status: models.SubscriptionStatusActive}
	if got := Classify(snap); got != StateActive {
		t.Errorf("Classify(active snapshot) = %q, want %q", got, StateActive)
	}
}

func TestEntitled(t *testing.T) {
	states := []SubscriptionState{StateNoSubscription, StatePending, StateCanceled, StateUnknown}
	for _, s := range states {
		if s.Entitled() {
			t.Errorf("%q must not be entitled", s)
		}
	}
	if !StateActive.Entitled() {
		t.Error("active must be entitled")
	}
}
