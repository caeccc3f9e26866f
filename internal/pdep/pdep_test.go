package pdep

import (
	"math/rand"
	"testing"
)

func TestDepositGeneric(t *testing.T) {
	tests := []struct {
		name      string
		src, mask uint64
		want      uint64
	}{
		{"zero src", 0, 0xFF, 0},
		{"zero mask", 0b101, 0, 0},
		{"full mask passes through", 0x123456789ABCDEF0, ^uint64(0), 0x123456789ABCDEF0},
		{"scatter low bits", 0b101, 0b11010, 0b10010},
		{"single bit", 1, 1 << 63, 1 << 63},
		{"dense into sparse", 0b1111, 0x8080808080808080 >> 7 & 0x0101010101010101, 0x0000000001010101},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := depositGeneric(tt.src, tt.mask); got != tt.want {
				t.Errorf("depositGeneric(%#x, %#x) = %#x, want %#x", tt.src, tt.mask, got, tt.want)
			}
		})
	}
}

// TestDeposit_MatchesGeneric cross-checks the selected strategy
// against the portable loop. On BMI2 hardware this validates the
// PDEP path; elsewhere it is trivially true.
func TestDeposit_MatchesGeneric(t *testing.T) {
	t.Logf("active strategy: %s", Active())

	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 10000; i++ {
		src, mask := rng.Uint64(), rng.Uint64()
		if got, want := Deposit(src, mask), depositGeneric(src, mask); got != want {
			t.Fatalf("Deposit(%#x, %#x) = %#x, generic says %#x", src, mask, got, want)
		}
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in     string
		want   Strategy
		wantOK bool
	}{
		{"generic", Generic, true},
		{"bmi2", BMI2, true},
		{" BMI2 ", BMI2, true},
		{"avx512", Generic, false},
		{"", Generic, false},
	}

	for _, tt := range tests {
		got, ok := ParseStrategy(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseStrategy(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestStrategyString(t *testing.T) {
	if Generic.String() != "generic" || BMI2.String() != "bmi2" {
		t.Error("Strategy string representations wrong")
	}
	if Strategy(99).String() != "unknown" {
		t.Error("unknown strategy not reported")
	}
}

func BenchmarkDeposit(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Deposit(uint64(i)*0x9E3779B97F4A7C15, 0xAAAAAAAAAAAAAAAA)
	}
}

func BenchmarkDepositGeneric(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = depositGeneric(uint64(i)*0x9E3779B97F4A7C15, 0xAAAAAAAAAAAAAAAA)
	}
}
