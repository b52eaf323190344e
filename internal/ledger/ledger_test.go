package ledger

import (
	"strings"
	"testing"
	"time"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDelta(t *testing.T) {
	testCases := []struct {
		name     string
		mutation Mutation
		want     decimal.Decimal
	}{
		{name: "CreateDebit", mutation: Created(d("-300")), want: d("-300")},
		{name: "CreateCredit", mutation: Created(d("12.5")), want: d("12.5")},
		{name: "CreateZero", mutation: Created(d("0")), want: d("0")},
		{name: "UpdateDifference", mutation: Updated(d("-300"), d("-200")), want: d("100")},
		{name: "UpdateSameAmount", mutation: Updated(d("-200"), d("-200.00")), want: d("0")},
		{name: "UpdateSignFlip", mutation: Updated(d("50"), d("-50")), want: d("-100")},
		{name: "DeleteDebit", mutation: Deleted(d("-200")), want: d("200")},
		{name: "DeleteCredit", mutation: Deleted(d("0.0001")), want: d("-0.0001")},
		{name: "Unknown", mutation: Mutation{}, want: decimal.Zero},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := tc.mutation.Delta()
			require.Truef(t, tc.want.Equal(got), "Delta() = %v, want %v", got, tc.want)
		})
	}
}

func TestIsNoop(t *testing.T) {
	require.True(t, Updated(d("10"), d("10.0000")).IsNoop())
	require.False(t, Updated(d("10"), d("10.0001")).IsNoop())
	require.True(t, Created(d("0")).IsNoop())
}

// Scenario: balance 1000, create -300, update to -200, delete.
func TestDeltaSequenceRestoresBalance(t *testing.T) {
	balance := d("1000")

	balance = balance.Add(Created(d("-300")).Delta())
	require.True(t, d("700").Equal(balance), balance.String())

	balance = balance.Add(Updated(d("-300"), d("-200")).Delta())
	require.True(t, d("800").Equal(balance), balance.String())

	balance = balance.Add(Deleted(d("-200")).Delta())
	require.True(t, d("1000").Equal(balance), balance.String())
}

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		input   string
		want    string
		wantErr error
	}{
		{input: "100", want: "100"},
		{input: "-300.25", want: "-300.25"},
		{input: "0", want: "0"},
		{input: "1.50000", want: "1.5"},
		{input: "0.0001", want: "0.0001"},
		{input: "9999999999999999.9999", want: "9999999999999999.9999"},
		{input: "0.00001", wantErr: domain.ErrInvalidAmount},
		{input: "10000000000000000", wantErr: domain.ErrInvalidAmount},
		{input: "-10000000000000000", wantErr: domain.ErrInvalidAmount},
		{input: "", wantErr: domain.ErrInvalidAmount},
		{input: "!@#$", wantErr: domain.ErrInvalidAmount},
		{input: "1,5", wantErr: domain.ErrInvalidAmount},
		{input: "1e3", want: "1000"},
		{input: "12345e-4", want: "1.2345"},
		{input: "1e-5", wantErr: domain.ErrInvalidAmount},
		{input: "1e17", wantErr: domain.ErrInvalidAmount},
		{input: "0." + strings.Repeat("0", 40) + "1", wantErr: domain.ErrInvalidAmount},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseAmount(tc.input)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			require.Truef(t, d(tc.want).Equal(got), "ParseAmount(%q) = %v, want %v", tc.input, got, tc.want)
		})
	}
}

func TestParseAmountExtremeExponents(t *testing.T) {
	inputs := []string{
		"1e-20000000",
		"1e20000000",
		"1e-2000000000",
		"-1E2000000000",
		"0e-2000000000",
		"9.9999e9223372036854775807",
	}

	for _, input := range inputs {
		start := time.Now()

		_, err := ParseAmount(input)
		require.ErrorIsf(t, err, domain.ErrInvalidAmount, "ParseAmount(%q)", input)

		if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
			t.Errorf("ParseAmount(%q) took %v, want under 100ms", input, elapsed)
		}
	}
}

func TestKindString(t *testing.T) {
	require.Equal(t, "create", Create.String())
	require.Equal(t, "update", Update.String())
	require.Equal(t, "delete", Delete.String())
	require.Equal(t, "unknown", Kind(0).String())
}
