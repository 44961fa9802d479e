package domain

import "testing"

func TestComputeFeeSplit(t *testing.T) {
	tests := []struct {
		name         string
		gross        int64
		feeBps       int64
		wantFee      int64
		wantProvider int64
	}{
		{name: "five percent of 45000", gross: 45000, feeBps: 500, wantFee: 2250, wantProvider: 42750},
		{name: "exact half rounds toward platform", gross: 1010, feeBps: 500, wantFee: 51, wantProvider: 959},
		{name: "below half rounds down", gross: 1001, feeBps: 500, wantFee: 50, wantProvider: 951},
		{name: "zero fee", gross: 45000, feeBps: 0, wantFee: 0, wantProvider: 45000},
		{name: "full fee", gross: 45000, feeBps: 10000, wantFee: 45000, wantProvider: 0},
		{name: "tiny amount", gross: 1, feeBps: 500, wantFee: 0, wantProvider: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, provider := ComputeFeeSplit(tt.gross, tt.feeBps)
			if fee != tt.wantFee {
				t.Errorf("platform fee = %d, want %d", fee, tt.wantFee)
			}
			if provider != tt.wantProvider {
				t.Errorf("provider amount = %d, want %d", provider, tt.wantProvider)
			}
			if fee+provider != tt.gross {
				t.Errorf("split does not conserve gross: %d + %d != %d", fee, provider, tt.gross)
			}
		})
	}
}

func TestHeldBalance(t *testing.T) {
	record := EscrowRecord{
		GrossAmount:       45000,
		PlatformFeeAmount: 2250,
		ProviderAmount:    42750,
		ReleasedAmount:    6000,
	}
	if got := record.HeldBalance(); got != 36750 {
		t.Errorf("HeldBalance() = %d, want 36750", got)
	}
}
