package x86

//go:generate go tool stringer -linecomment -type=PagingMode

// PagingMode is the address translation mode of the MMU.
type PagingMode int

const (
	PAGING_MODE_REAL      = PagingMode(iota) // real
	PAGING_MODE_PROTECTED                    // protected
	PAGING_MODE_LONG                         // long
	PAGING_MODE_LONG_LA57                    // long-la57
)

// Mmu holds the paging mode. It does not translate addresses.
type Mmu struct {
	mode PagingMode
}

// PagingMode returns the current paging mode.
func (mmu *Mmu) PagingMode() PagingMode {
	return mmu.mode
}

// SetPagingMode sets the paging mode.
func (mmu *Mmu) SetPagingMode(mode PagingMode) {
	mmu.mode = mode
}
