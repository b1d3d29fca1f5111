package jts

import "fmt"

// Quality codes are packed into a single 32-bit integer: bits 0-15 carry the
// user quality (0-65535), bit 16 flags a system-assigned quality, and
// negative values are reserved sentinel codes stored verbatim.
const (
	qualityLeftMask  = int32(-1) &^ 0xffff // 0xffff0000
	qualityRightMask = int32(0x0000ffff)
	systemQualityBit = 16
)

// SystemQuality is a reserved quality code assigned by the system rather
// than the caller.
type SystemQuality int32

const (
	SystemQualityUncertainSubnormal SystemQuality = 149
	SystemQualityBadNoData          SystemQuality = 155
	SystemQualityBadDataUnavailable SystemQuality = 158
	SystemQualityGoodEntryInserted  SystemQuality = 162
	SystemQualityGoodNoData         SystemQuality = 165
	SystemQualityBounds             SystemQuality = -156
	SystemQualityDelete             SystemQuality = -666
	SystemQualityUnset              SystemQuality = -1
	SystemQualityUnknown            SystemQuality = -999
)

func (s SystemQuality) String() string {
	switch s {
	case SystemQualityUncertainSubnormal:
		return "UNCERTAIN_SUBNORMAL"
	case SystemQualityBadNoData:
		return "BAD_NO_DATA"
	case SystemQualityBadDataUnavailable:
		return "BAD_DATA_UNAVAILABLE"
	case SystemQualityGoodEntryInserted:
		return "GOOD_ENTRY_INSERTED"
	case SystemQualityGoodNoData:
		return "GOOD_NO_DATA"
	case SystemQualityBounds:
		return "BOUNDS"
	case SystemQualityDelete:
		return "DELETE"
	case SystemQualityUnset:
		return "UNSET"
	default:
		return fmt.Sprintf("SystemQuality(%d)", int32(s))
	}
}

// Code returns the raw 32-bit code.
func (s SystemQuality) Code() int32 { return int32(s) }

func qualityRight(v int32) int32 { return v & qualityRightMask }

func qualitySetRight(v, right int32) int32 { return (v & qualityLeftMask) | right }

func qualitySetBit(v int32, i uint) int32 { return v | int32(1)<<i }

func qualityClearBit(v int32, i uint) int32 { return v &^ (int32(1) << i) }

func qualityHasBit(v int32, i uint) bool { return v&(int32(1)<<i) != 0 }

// userQuality extracts the caller-visible quality from a combined code:
// negative sentinel codes pass through verbatim, otherwise only the low
// 16 bits are meaningful.
func userQuality(combined int32) int32 {
	if combined < 0 {
		return combined
	}
	return qualityRight(combined)
}

// packUserQuality validates q against the user range and packs it into the
// low bits of combined, clearing the system flag.
func packUserQuality(combined, q int32) (int32, error) {
	if q < 0 || q > 65535 {
		return 0, fmt.Errorf("%w: %d", ErrQualityRange, q)
	}
	v := qualitySetRight(combined, q)
	return qualityClearBit(v, systemQualityBit), nil
}

// packSystemQuality packs a system code into combined and raises the system
// flag. Negative sentinel codes carry their sign bits through unchanged.
func packSystemQuality(combined int32, s SystemQuality) int32 {
	v := qualitySetRight(combined, int32(s))
	return qualitySetBit(v, systemQualityBit)
}

// IsSystemQuality reports whether the combined code has the system flag set
// or is a negative sentinel.
func IsSystemQuality(combined int32) bool {
	return combined < 0 || qualityHasBit(combined, systemQualityBit)
}
