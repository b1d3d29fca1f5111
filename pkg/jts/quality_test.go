package jts

import (
	"errors"
	"testing"
)

func TestUserQuality(t *testing.T) {
	tests := []struct {
		name     string
		combined int32
		want     int32
	}{
		{"plain user code", 100, 100},
		{"zero", 0, 0},
		{"max user code", 65535, 65535},
		{"system flagged code", 1<<16 | 165, 165},
		{"negative sentinel", -666, -666},
		{"bounds sentinel", -156, -156},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := userQuality(tt.combined); got != tt.want {
				t.Errorf("userQuality(%d) = %d, want %d", tt.combined, got, tt.want)
			}
		})
	}
}

func TestPackUserQuality(t *testing.T) {
	packed, err := packUserQuality(0, 200)
	if err != nil {
		t.Fatalf("packUserQuality failed: %v", err)
	}
	if packed != 200 {
		t.Errorf("packed = %d, want 200", packed)
	}

	// Packing a user code clears the system flag.
	packed, err = packUserQuality(1<<16|165, 300)
	if err != nil {
		t.Fatalf("packUserQuality failed: %v", err)
	}
	if packed != 300 {
		t.Errorf("packed = %d, want 300", packed)
	}
	if IsSystemQuality(packed) {
		t.Errorf("IsSystemQuality(%d) = true, want false", packed)
	}

	for _, q := range []int32{-1, 65536, 1 << 20} {
		if _, err := packUserQuality(0, q); !errors.Is(err, ErrQualityRange) {
			t.Errorf("packUserQuality(0, %d) error = %v, want ErrQualityRange", q, err)
		}
	}
}

func TestPackSystemQuality(t *testing.T) {
	packed := packSystemQuality(0, SystemQualityGoodNoData)
	if packed != 1<<16|165 {
		t.Errorf("packed = %d, want %d", packed, 1<<16|165)
	}
	if !IsSystemQuality(packed) {
		t.Errorf("IsSystemQuality(%d) = false, want true", packed)
	}
	if got := userQuality(packed); got != 165 {
		t.Errorf("userQuality(%d) = %d, want 165", packed, got)
	}

	// Negative sentinel codes carry their sign through packing.
	packed = packSystemQuality(0, SystemQualityDelete)
	if packed != -666 {
		t.Errorf("packed = %d, want -666", packed)
	}
	if !IsSystemQuality(packed) {
		t.Errorf("IsSystemQuality(%d) = false, want true", packed)
	}
}

func TestIsSystemQuality(t *testing.T) {
	tests := []struct {
		combined int32
		want     bool
	}{
		{100, false},
		{0, false},
		{65535, false},
		{1 << 16, true},
		{1<<16 | 42, true},
		{-5, true},
		{-666, true},
	}
	for _, tt := range tests {
		if got := IsSystemQuality(tt.combined); got != tt.want {
			t.Errorf("IsSystemQuality(%d) = %v, want %v", tt.combined, got, tt.want)
		}
	}
}

func TestSystemQualityString(t *testing.T) {
	tests := []struct {
		code SystemQuality
		want string
	}{
		{SystemQualityUncertainSubnormal, "UNCERTAIN_SUBNORMAL"},
		{SystemQualityBadNoData, "BAD_NO_DATA"},
		{SystemQualityBadDataUnavailable, "BAD_DATA_UNAVAILABLE"},
		{SystemQualityGoodEntryInserted, "GOOD_ENTRY_INSERTED"},
		{SystemQualityGoodNoData, "GOOD_NO_DATA"},
		{SystemQualityBounds, "BOUNDS"},
		{SystemQualityDelete, "DELETE"},
		{SystemQualityUnset, "UNSET"},
		{SystemQualityUnknown, "SystemQuality(-999)"},
		{SystemQuality(42), "SystemQuality(42)"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("SystemQuality(%d).String() = %q, want %q", tt.code.Code(), got, tt.want)
		}
	}
}
