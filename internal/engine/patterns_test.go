package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatePattern(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		year  string
		month string
		day   string
	}{
		{"dotted", "2024.01.15", "2024", "01", "15"},
		{"hyphen", "2024-1-5", "2024", "1", "5"},
		{"slash", "2023/12/31", "2023", "12", "31"},
		{"korean words", "2024년 3월 7일", "2024", "3", "7"},
		{"spaced separators", "2024 . 01 . 15", "2024", "01", "15"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := reDate.FindStringSubmatch(tt.in)
			require.NotNil(t, m)
			assert.Equal(t, tt.year, m[1])
			assert.Equal(t, tt.month, m[2])
			assert.Equal(t, tt.day, m[3])
		})
	}

	assert.Nil(t, reDate.FindStringSubmatch("1999-01-01"), "pre-2000 years are not receipt dates")
	assert.Nil(t, reDate.FindStringSubmatch("전화 02-1234-5678"))
}

func TestBizNoPatterns(t *testing.T) {
	m := reBizNo.FindStringSubmatch("사업자 123-45-67890")
	require.NotNil(t, m)
	assert.Equal(t, []string{"123", "45", "67890"}, m[1:])

	m = reBizNo.FindStringSubmatch("1234567890")
	require.NotNil(t, m, "strict pattern tolerates missing separators")

	assert.Nil(t, reBizNoLoose.FindStringSubmatch("1234567890"),
		"loose pattern requires a separator")
	require.NotNil(t, reBizNoLoose.FindStringSubmatch("123 45 67890"))
}

func TestAmountKeywordPattern(t *testing.T) {
	tests := []struct {
		in    string
		group string
	}{
		{"합계 32,000원", "32,000"},
		{"총액: 15000", "15000"},
		{"결제금액 - 9,900원", "9,900"},
		{"승인금액 12,345온", "12,345"}, // 원 misread as 온
		{"미터 요금 8,200", "8,200"},
		{"층 운임 11,000원", "11,000"}, // 총 misread as 층
	}
	for _, tt := range tests {
		m := reAmountKeyword.FindStringSubmatch(tt.in)
		require.NotNil(t, m, "input %q", tt.in)
		assert.Equal(t, tt.group, m[2], "input %q", tt.in)
	}
	assert.Nil(t, reAmountKeyword.FindStringSubmatch("부가세 3,000원"))
}

func TestAmountBarePattern(t *testing.T) {
	ms := reAmountBare.FindAllStringSubmatch("기본요금 4,800원 합계 12,000원", -1)
	require.Len(t, ms, 2)
	assert.Equal(t, "4,800", ms[0][1])
	assert.Equal(t, "12,000", ms[1][1])

	m := reAmountBare.FindStringSubmatch("32,000O") // trailing 원 read as Latin O
	require.NotNil(t, m)
	assert.Equal(t, "32,000", m[1])
}

func TestPaymentHints(t *testing.T) {
	assert.True(t, reCardHint.MatchString("신용카드 승인"))
	assert.True(t, reCardHint.MatchString("visa"))
	assert.True(t, reCashHint.MatchString("현금영수증 발행"))
	assert.True(t, reAppHint.MatchString("카카오페이 결제"))
	assert.True(t, reAppHint.MatchString("Samsung Pay"))
	assert.False(t, reCardHint.MatchString("합계 32,000원"))
}

func TestTelPattern(t *testing.T) {
	tests := []struct{ in, want string }{
		{"TEL 02-1234-5678", "02-1234-5678"},
		{"010 9876 5432", "010 9876 5432"},
		{"0311234567", "0311234567"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, reTel.FindString(tt.in))
	}
	assert.Empty(t, reTel.FindString("123-45-67890"), "BRN must not look like a phone")
}

func TestJoinLines(t *testing.T) {
	lines := []Line{{Text: "a"}, {Text: "b"}}
	assert.Equal(t, "a\nb", joinLines(lines))
	assert.Equal(t, "", joinLines(nil))
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "1234567890", digitsOnly("123-45-67890"))
	assert.Equal(t, "", digitsOnly("no digits"))
}
