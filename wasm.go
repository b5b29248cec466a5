package wasmbase64

// Memory is guest linear memory as seen by the host binding.
// Reads may return views into memory; copy before the next allocation.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
	ReadU32(offset uint32) (uint32, error)
	WriteU32(offset uint32, value uint32) error
}

// MemorySizer provides the current size of guest memory in bytes.
type MemorySizer interface {
	Size() uint32
}

// Allocator allocates in guest memory, normally through the guest's cabi_realloc export.
type Allocator interface {
	Alloc(size, align uint32) (uint32, error)
}
