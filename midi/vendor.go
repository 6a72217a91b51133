package midi

import "fmt"

// VendorID is a system-exclusive manufacturer id. Standard ids use the
// first byte only, extended ids are a zero byte followed by two id bytes.
type VendorID [3]uint8

// Well-known vendor ids.
var (
	VendorDevelopment = StandardVendor(0x7d)
	VendorNonRealtime = StandardVendor(0x7e)
	VendorRealtime    = StandardVendor(0x7f)
	VendorRoland      = StandardVendor(0x41)
)

// StandardVendor returns a one-byte vendor id.
func StandardVendor(id uint8) VendorID {
	return VendorID{id, 0, 0}
}

// ExtendedVendor returns a three-byte vendor id (0x00, hi, lo).
func ExtendedVendor(hi, lo uint8) VendorID {
	return VendorID{0, hi, lo}
}

// Extended reports whether v is a three-byte id.
func (v VendorID) Extended() bool {
	return v[0] == 0
}

// Len is the number of bytes v occupies in a sysex message.
func (v VendorID) Len() int {
	if v.Extended() {
		return 3
	}
	return 1
}

func (v VendorID) String() string {
	if v.Extended() {
		return fmt.Sprintf("00 %02X %02X", v[1], v[2])
	}
	return fmt.Sprintf("%02X", v[0])
}
