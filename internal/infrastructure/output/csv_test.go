package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidleathers/transaction-synthesis-engine/internal/domain/transaction"
)

func sampleTransaction(t *testing.T) *transaction.Transaction {
	t.Helper()
	return &transaction.Transaction{
		ID:           uuid.MustParse("11111111-2222-3333-4444-555555555555"),
		Timestamp:    time.Date(2024, 3, 7, 14, 30, 5, 0, time.UTC),
		CustomerID:   uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"),
		CustomerName: "Dana Whitfield",
		MerchantName: "grocery_pos_merchant_a",
		Category:     "grocery_pos",
		Amount:       decimal.RequireFromString("118.40"),
		MerchLat:     40.123456,
		MerchLong:    -74.654321,
		IsFraud:      true,
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVSink_WritesHeaderAndRows(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewCSVSink(dir)
	require.NoError(t, err)

	pw, err := sink.Open(3, "adults_urban")
	require.NoError(t, err)
	require.NoError(t, pw.Write(sampleTransaction(t)))
	require.NoError(t, pw.Close())

	rows := readCSV(t, filepath.Join(dir, "adults_urban_3.csv"))
	require.Len(t, rows, 2)
	assert.Equal(t, Header, rows[0])

	row := rows[1]
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", row[0])
	assert.Equal(t, "2024-03-07T14:30:05Z", row[1])
	assert.Equal(t, "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee", row[2])
	assert.Equal(t, "Dana Whitfield", row[3])
	assert.Equal(t, "grocery_pos_merchant_a", row[4])
	assert.Equal(t, "grocery_pos", row[5])
	assert.Equal(t, "118.40", row[6])
	assert.Equal(t, "40.123456", row[7])
	assert.Equal(t, "-74.654321", row[8])
	assert.Equal(t, "1", row[9])
}

func TestCSVSink_CleanTransactionFlagIsZero(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewCSVSink(dir)
	require.NoError(t, err)

	tx := sampleTransaction(t)
	tx.IsFraud = false

	pw, err := sink.Open(0, "adults_urban")
	require.NoError(t, err)
	require.NoError(t, pw.Write(tx))
	require.NoError(t, pw.Close())

	rows := readCSV(t, filepath.Join(dir, "adults_urban_0.csv"))
	assert.Equal(t, "0", rows[1][9])
}

func TestCSVSink_EmptyPartitionIsHeaderOnly(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewCSVSink(dir)
	require.NoError(t, err)

	pw, err := sink.Open(1, "retirees_rural")
	require.NoError(t, err)
	require.NoError(t, pw.Close())

	rows := readCSV(t, filepath.Join(dir, "retirees_rural_1.csv"))
	require.Len(t, rows, 1)
	assert.Equal(t, Header, rows[0])
}

func TestCSVSink_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	_, err := NewCSVSink(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestMemorySink_TracksPartitions(t *testing.T) {
	sink := NewMemorySink()

	pw, err := sink.Open(0, "adults_urban")
	require.NoError(t, err)
	require.NoError(t, pw.Write(sampleTransaction(t)))
	require.NoError(t, pw.Close())

	_, err = sink.Open(1, "adults_urban")
	require.NoError(t, err)

	assert.Equal(t, 2, sink.Partitions())

	txs, ok := sink.Partition(0, "adults_urban")
	require.True(t, ok)
	require.Len(t, txs, 1)
	assert.Equal(t, "grocery_pos", txs[0].Category)

	txs, ok = sink.Partition(1, "adults_urban")
	require.True(t, ok)
	assert.Empty(t, txs)

	_, ok = sink.Partition(2, "adults_urban")
	assert.False(t, ok)
}
