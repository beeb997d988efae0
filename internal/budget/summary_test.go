package budget

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/cchawn/toolbox/internal/model"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func testSummary() Summary {
	income := model.NewIncomeLedger()
	income.Add("2025-02", dec("2600"))
	income.Add("2025-01", dec("5000"))

	run := &Run{
		ID:     "run-1",
		Income: income,
		Files: []FileSummary{
			{Name: "amex.csv", Format: model.FormatAmex, Transactions: 3, Review: 1},
			{Name: "broken.csv", Format: model.FormatWealthsimpleCard, Err: errors.New("header missing columns")},
			{Name: "td.csv", Format: model.FormatTD, Transactions: 6, Review: 2},
		},
	}
	return run.Summary()
}

func TestRunSummary(t *testing.T) {
	s := testSummary()
	assert.Equal(t, 9, s.Transactions)
	assert.Equal(t, 3, s.Review)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, "run-1", s.RunID)
}

func TestWriteSummary_Batch(t *testing.T) {
	var buf bytes.Buffer
	WriteSummary(&buf, testSummary(), true)
	out := buf.String()

	assert.Contains(t, out, "Processed 3 files")
	assert.Contains(t, out, "amex.csv")
	assert.Contains(t, out, "broken.csv")
	assert.Contains(t, out, "FAILED: header missing columns")
	assert.Contains(t, out, "Total: 9 transactions, 3 need review")
	assert.Contains(t, out, "1 file(s) could not be read")
	assert.Contains(t, out, "Monthly income")

	jan := bytes.Index(buf.Bytes(), []byte("2025-01"))
	feb := bytes.Index(buf.Bytes(), []byte("2025-02"))
	assert.True(t, jan >= 0 && feb > jan, "months should be sorted")
	assert.Contains(t, out, "7600.00")
}

func TestWriteSummary_SingleFile(t *testing.T) {
	var buf bytes.Buffer
	WriteSummary(&buf, testSummary(), false)
	out := buf.String()

	assert.NotContains(t, out, "Processed")
	assert.NotContains(t, out, "Monthly income")
	assert.Contains(t, out, "Total: 9 transactions")
}
