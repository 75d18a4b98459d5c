package pack

// Flags are the bitwise Pack configuration switches packed into the upper
// 28 bits of the header's combined type+flags field.
type Flags uint32

const (
	// FlagExtendedHeader marks a 20-byte extended header block following
	// the common header fields. Used by Arena.
	FlagExtendedHeader Flags = 1 << 8

	// FlagEncryptedIndex marks an obfuscated file index. Used
	// by Arena.
	FlagEncryptedIndex Flags = 1 << 7

	// FlagIndexTimestamps marks a per-file timestamp in every file index
	// entry.
	FlagIndexTimestamps Flags = 1 << 6

	// FlagEncryptedData marks obfuscated file payload bytes. Seen in
	// music.pack and in Arena.
	FlagEncryptedData Flags = 1 << 4

	roleMask Flags = 0x0F
)

func (f Flags) Has(bit Flags) bool { return f&bit != 0 }

// splitTypeAndFlags decodes the header's combined u32 into a Role and the
// Flags above the low 4 bits.
func splitTypeAndFlags(raw uint32) (Role, Flags) {
	return Role(uint32(roleMask) & raw), Flags(raw) &^ roleMask
}

func joinTypeAndFlags(role Role, flags Flags) uint32 {
	return uint32(role)&uint32(roleMask) | (uint32(flags) &^ uint32(roleMask))
}
