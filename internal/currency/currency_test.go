package currency

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Run("identity", func(t *testing.T) {
		if got := Normalize(100, "USD", "USD"); got != 100 {
			t.Errorf("expected 100, got %v", got)
		}
	})

	t.Run("eur_to_usd", func(t *testing.T) {
		// 50 EUR at 0.92 EUR per USD is about 54.35 USD.
		got := Normalize(50, "EUR", "USD")
		if math.Abs(got-54.347826086956523) > 1e-9 {
			t.Errorf("expected ~54.3478, got %v", got)
		}
	})

	t.Run("unknown_code_falls_back_to_rate_1", func(t *testing.T) {
		if got := Normalize(42, "XXX", "USD"); got != 42 {
			t.Errorf("expected 42, got %v", got)
		}
		if got := Normalize(42, "USD", "???"); got != 42 {
			t.Errorf("expected 42, got %v", got)
		}
	})
}

func TestNormalizeRoundTrip(t *testing.T) {
	const amount = 123.45
	for _, from := range Supported {
		for _, to := range Supported {
			back := Normalize(Normalize(amount, from.Code, to.Code), to.Code, from.Code)
			if math.Abs(back-amount) > 1e-9 {
				t.Errorf("%s->%s->%s: expected %v, got %v", from.Code, to.Code, from.Code, amount, back)
			}
		}
	}
}

func TestRate(t *testing.T) {
	if Rate("USD") != 1 {
		t.Errorf("expected USD rate 1, got %v", Rate("USD"))
	}
	if Rate("ALL") != 94.5 {
		t.Errorf("expected ALL rate 94.5, got %v", Rate("ALL"))
	}
	if Rate("nope") != 1 {
		t.Errorf("expected fallback rate 1, got %v", Rate("nope"))
	}
}

func TestIsSupported(t *testing.T) {
	for _, c := range Supported {
		if !IsSupported(c.Code) {
			t.Errorf("expected %s to be supported", c.Code)
		}
	}
	if IsSupported("GBP") {
		t.Error("GBP should not be supported")
	}
}

func TestDefault(t *testing.T) {
	if Default().Code != "USD" {
		t.Errorf("expected default USD, got %s", Default().Code)
	}
}
