package bits

import "testing"

func TestPopCountEdges(t *testing.T) {
	if got := PopCount(0); got != 0 {
		t.Errorf("PopCount(0) = %d, want 0", got)
	}
	if got := PopCount(^uint64(0)); got != 64 {
		t.Errorf("PopCount(^0) = %d, want 64", got)
	}
}

func TestCountTrailingZeroesEdges(t *testing.T) {
	if got := CountTrailingZeroes(0); got != -1 {
		t.Errorf("CountTrailingZeroes(0) = %d, want -1", got)
	}
	for sq := 0; sq < 64; sq++ {
		x := uint64(1) << uint(sq)
		if got := CountTrailingZeroes(x); got != sq {
			t.Errorf("CountTrailingZeroes(1<<%d) = %d, want %d", sq, got, sq)
		}
	}
}

func TestLowestSetBitIsolatesSingleBit(t *testing.T) {
	if got := LowestSetBit(0); got != 0 {
		t.Errorf("LowestSetBit(0) = %d, want 0", got)
	}
	for _, x := range []uint64{0b1010, 0b1100, 0xFFFFFFFFFFFFFFFF, 1 << 63} {
		low := LowestSetBit(x)
		if low == 0 {
			t.Fatalf("LowestSetBit(%b) = 0, want nonzero", x)
		}
		if low&(low-1) != 0 {
			t.Errorf("LowestSetBit(%b) = %b, not a single bit", x, low)
		}
		if x&(x-low) != x-low {
			t.Errorf("LowestSetBit(%b) = %b is not actually the lowest bit of x", x, low)
		}
	}
}

func TestHighestSetBit(t *testing.T) {
	if got := HighestSetBit(0); got != 0 {
		t.Errorf("HighestSetBit(0) = %d, want 0", got)
	}
	cases := map[uint64]uint64{
		0b1:                  0b1,
		0b1010:               0b1000,
		0xFF:                 0x80,
		1 << 63:              1 << 63,
		(1 << 63) | 1:        1 << 63,
	}
	for x, want := range cases {
		if got := HighestSetBit(x); got != want {
			t.Errorf("HighestSetBit(%b) = %b, want %b", x, got, want)
		}
	}
}
