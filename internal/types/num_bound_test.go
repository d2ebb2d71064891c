package types

import "testing"

func TestBoundSeeds(t *testing.T) {
	tests := []struct {
		name string
		got  Seed
		want Seed
	}{
		{"int none", IntBound{}.Seed(), Seed{}},
		{"int exact", IntBoundExactly(U32).Seed(), Seed{Kind: SeedExact, Exact: VarU32}},
		{"int signed", IntBoundAtLeastOf(DemandSigned, I8).Seed(), Seed{Kind: SeedRange, Range: IntAtLeastSigned(I8)}},
		{"int any sign", IntBoundAtLeastOf(NoDemand, U8).Seed(), Seed{Kind: SeedRange, Range: IntAtLeastEitherSign(U8)}},
		{"float none", FloatBound{}.Seed(), Seed{}},
		{"float exact", FloatBoundExactly(FloatF64).Seed(), Seed{Kind: SeedExact, Exact: VarF64}},
		{"num none", NumBound{}.Seed(), Seed{}},
		{"num signed", NumBoundAtLeast(DemandSigned, I16).Seed(), Seed{Kind: SeedRange, Range: NumAtLeastSigned(I16)}},
		{"num any sign", NumBoundAtLeast(NoDemand, U8).Seed(), Seed{Kind: SeedRange, Range: NumAtLeastEitherSign(U8)}},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %+v, want %+v", tt.name, tt.got, tt.want)
		}
	}
}

func TestSeedString(t *testing.T) {
	if got := IntBoundExactly(I64).Seed().String(); got != "I64" {
		t.Errorf("exact seed = %q", got)
	}
	if got := NumBoundAtLeast(NoDemand, U8).Seed().String(); got != "NumAtLeastEitherSign(U8)" {
		t.Errorf("range seed = %q", got)
	}
	if got := (Seed{}).String(); got != "none" {
		t.Errorf("empty seed = %q", got)
	}
}
