package payments

import "testing"

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{200, 20000},
		{20, 2000},
		{499.99, 49999},
		{0.1 + 0.2, 30},
	}
	for _, tt := range tests {
		if got := MinorUnits(tt.in); got != tt.want {
			t.Errorf("MinorUnits(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseWebhookNeedsSecret(t *testing.T) {
	s := NewStripe("sk_test_x", "")
	if _, err := s.ParseWebhook([]byte(`{}`), "sig"); err == nil {
		t.Fatal("expected an error without a webhook secret")
	}
}
