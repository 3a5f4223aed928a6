package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBizNoStrictStage(t *testing.T) {
	lines := []Line{
		{Text: "주식회사 한빛", Confidence: 0.9},
		{Text: "123-45-67890", Confidence: 0.95},
	}
	c, ok := bizNoStrictStage(lines)
	require.True(t, ok)
	assert.Equal(t, "123-45-67890", c.value)
	assert.Equal(t, 0.95, c.conf)
}

func TestBizNoStrictStageSpaceSeparated(t *testing.T) {
	// Space-stripped containment still finds the source line's confidence.
	lines := []Line{{Text: "123 45 67890", Confidence: 0.7}}
	c, ok := bizNoStrictStage(lines)
	require.True(t, ok)
	assert.Equal(t, "123-45-67890", c.value)
	assert.Equal(t, 0.7, c.conf)
}

func TestBizNoKeywordStage(t *testing.T) {
	tests := []struct {
		name     string
		next     string
		want     string
		wantOK   bool
		wantConf float64
	}{
		{"clean digit run", "1234567890", "123-45-67890", true, 0.8},
		{"confused letters", "l23456789O", "123-45-67890", true, 0.8},
		{"seven digits is not enough", "12345б78", "", false, 0},
		{"eight clean digits keep bare", "l2345678", "12345678", true, 0.8},
		{"hopeless", "가나다라", "", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := []Line{
				{Text: "사업자등록번호", Confidence: 0.9},
				{Text: tt.next, Confidence: 0.8},
			}
			c, ok := bizNoKeywordStage(lines)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, c.value)
				assert.Equal(t, tt.wantConf, c.conf)
			}
		})
	}
}

func TestBizNoKeywordStageStopsAtFirstLabel(t *testing.T) {
	// A second labelled line with a perfect number must not rescue the stage.
	lines := []Line{
		{Text: "사업자등록번호", Confidence: 0.9},
		{Text: "없음", Confidence: 0.9},
		{Text: "사업자 번호", Confidence: 0.9},
		{Text: "123-45-67890", Confidence: 0.9},
	}
	_, ok := bizNoKeywordStage(lines)
	assert.False(t, ok)
}

func TestBizNoKeywordStageLabelOnLastLine(t *testing.T) {
	lines := []Line{{Text: "사업자번호", Confidence: 0.9}}
	_, ok := bizNoKeywordStage(lines)
	assert.False(t, ok, "a label with no following line yields nothing")
}

func TestBizNoLooseStage(t *testing.T) {
	lines := []Line{
		{Text: "noise", Confidence: 0.9},
		{Text: "등록 123 45 67890", Confidence: 0.6},
	}
	c, ok := bizNoLooseStage(lines)
	require.True(t, ok)
	assert.Equal(t, "123-45-67890", c.value)
	assert.Equal(t, 0.6, c.conf)
}

func TestBizNoBareStage(t *testing.T) {
	lines := []Line{
		{Text: "가맹점", Confidence: 0.9},
		{Text: "no.12345678901 승인", Confidence: 0.5},
	}
	c, ok := bizNoBareStage(lines)
	require.True(t, ok)
	assert.Equal(t, "123-45-67890", c.value)
	assert.Equal(t, 0.5, c.conf)
}

func TestExtractBizNoStageOrder(t *testing.T) {
	e := New(Config{}, nil)

	// Strict match beats everything else present.
	v, conf, ok := e.extractBizNo([]Line{
		{Text: "사업자번호", Confidence: 0.9},
		{Text: "214-87-12345", Confidence: 0.92},
	})
	require.True(t, ok)
	assert.Equal(t, "214-87-12345", v)
	assert.Equal(t, 0.92, conf)

	// Nothing anywhere.
	_, _, ok = e.extractBizNo([]Line{{Text: "커피 4,500원", Confidence: 0.9}})
	assert.False(t, ok)
}

func TestBizNoTenDigitsRenderAs325(t *testing.T) {
	// Any 10-digit BRN must render as DDD-DD-DDDDD.
	e := New(Config{}, nil)
	inputs := [][]Line{
		{{Text: "1048112345", Confidence: 0.9}},
		{{Text: "104-81-12345", Confidence: 0.9}},
		{{Text: "104 81 12345", Confidence: 0.9}},
	}
	for _, lines := range inputs {
		v, _, ok := e.extractBizNo(lines)
		require.True(t, ok)
		assert.Equal(t, "104-81-12345", v)
	}
}
