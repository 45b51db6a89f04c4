package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/davidleathers/transaction-synthesis-engine/internal/domain/transaction"
)

// Header is the column set every CSV partition starts with. Downstream
// consumers key on these names.
var Header = []string{
	"trans_id",
	"timestamp",
	"customer_id",
	"customer_name",
	"merchant_name",
	"category",
	"amount",
	"merch_lat",
	"merch_long",
	"is_fraud",
}

// CSVSink writes one buffered CSV file per (chunk, profile) partition into
// a single output directory, named <profile>_<chunk>.csv.
type CSVSink struct {
	dir string
}

// NewCSVSink creates the output directory if needed.
func NewCSVSink(dir string) (*CSVSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}
	return &CSVSink{dir: dir}, nil
}

// Open creates the partition file and writes the header row.
func (s *CSVSink) Open(chunk int, profileName string) (PartitionWriter, error) {
	path := filepath.Join(s.dir, fmt.Sprintf("%s_%d.csv", profileName, chunk))
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating partition %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing header to %s: %w", path, err)
	}
	return &csvPartition{file: f, writer: w}, nil
}

type csvPartition struct {
	file   *os.File
	writer *csv.Writer
}

func (p *csvPartition) Write(tx *transaction.Transaction) error {
	isFraud := "0"
	if tx.IsFraud {
		isFraud = "1"
	}
	return p.writer.Write([]string{
		tx.ID.String(),
		tx.Timestamp.UTC().Format(time.RFC3339),
		tx.CustomerID.String(),
		tx.CustomerName,
		tx.MerchantName,
		tx.Category,
		tx.Amount.StringFixed(2),
		strconv.FormatFloat(tx.MerchLat, 'f', 6, 64),
		strconv.FormatFloat(tx.MerchLong, 'f', 6, 64),
		isFraud,
	})
}

func (p *csvPartition) Close() error {
	p.writer.Flush()
	if err := p.writer.Error(); err != nil {
		p.file.Close()
		return err
	}
	return p.file.Close()
}
