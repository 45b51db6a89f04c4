package output

import (
	"fmt"
	"sync"

	"github.com/davidleathers/transaction-synthesis-engine/internal/domain/transaction"
)

// MemorySink collects partitions in memory, keyed by (chunk, profile).
// Partitions are written by independent chunk goroutines, so the map is
// guarded; each individual partition has a single writer.
type MemorySink struct {
	mu         sync.Mutex
	partitions map[string][]*transaction.Transaction
}

// NewMemorySink returns an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{partitions: make(map[string][]*transaction.Transaction)}
}

// Open registers the partition so an empty partition is still observable.
func (s *MemorySink) Open(chunk int, profileName string) (PartitionWriter, error) {
	key := partitionKey(chunk, profileName)
	s.mu.Lock()
	if _, ok := s.partitions[key]; !ok {
		s.partitions[key] = nil
	}
	s.mu.Unlock()
	return &memoryPartition{sink: s, key: key}, nil
}

// Partition returns the records written to one (chunk, profile) pair and
// whether that partition was opened.
func (s *MemorySink) Partition(chunk int, profileName string) ([]*transaction.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	txs, ok := s.partitions[partitionKey(chunk, profileName)]
	return txs, ok
}

// Partitions returns the number of opened partitions.
func (s *MemorySink) Partitions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.partitions)
}

type memoryPartition struct {
	sink *MemorySink
	key  string
}

func (p *memoryPartition) Write(tx *transaction.Transaction) error {
	p.sink.mu.Lock()
	p.sink.partitions[p.key] = append(p.sink.partitions[p.key], tx)
	p.sink.mu.Unlock()
	return nil
}

func (p *memoryPartition) Close() error {
	return nil
}

func partitionKey(chunk int, profileName string) string {
	return fmt.Sprintf("%d/%s", chunk, profileName)
}
