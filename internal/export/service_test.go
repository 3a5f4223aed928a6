package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mes-labs/receipt-extractor/constants"
	"github.com/mes-labs/receipt-extractor/internal/engine"
)

func sampleResult() *engine.Result {
	ex := engine.New(engine.Config{}, nil)
	return ex.Extract([]engine.Line{
		{Text: "한빛커피", Confidence: 0.92},
		{Text: "사업자번호 123-45-67890", Confidence: 0.95},
		{Text: "2024-01-15", Confidence: 0.9},
		{Text: "합계 32,000원", Confidence: 0.88},
		{Text: "카드승인", Confidence: 0.85},
	})
}

func TestResultsXLSX(t *testing.T) {
	svc := NewService(nil)

	data, err := svc.ResultsXLSX([]Row{{Source: "r1.png", Result: sampleResult()}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Receipts")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Source", rows[0][0])
	assert.Equal(t, "r1.png", rows[1][0])
	assert.Equal(t, "2024-01-15", rows[1][1])
	assert.Equal(t, "32000", rows[1][2])
	assert.Equal(t, "한빛커피", rows[1][3])
	assert.Equal(t, "card", rows[1][5])
	assert.Equal(t, "123-45-67890", rows[1][6])
}

func TestResultsXLSXEmpty(t *testing.T) {
	data, err := NewService(nil).ResultsXLSX(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestMinConfidence(t *testing.T) {
	res := sampleResult()
	min := minConfidence(res)
	assert.Equal(t, res.Confidence[constants.FieldMerchantTel], min, "tel is absent so its 0.0 confidence is the floor")
}
