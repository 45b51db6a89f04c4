package output

import (
	"github.com/davidleathers/transaction-synthesis-engine/internal/domain/transaction"
)

// Sink routes transaction records to output partitions. One partition
// exists per (chunk, profile) pair; a partition opened and closed without
// writes is a legitimate empty output, not an error.
type Sink interface {
	Open(chunk int, profileName string) (PartitionWriter, error)
}

// PartitionWriter receives one partition's records in stream order.
type PartitionWriter interface {
	Write(tx *transaction.Transaction) error
	Close() error
}
