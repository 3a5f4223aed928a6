package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mes-labs/receipt-extractor/constants"
)

func TestPromptFor(t *testing.T) {
	assert.Equal(t, "결제금액을 입력해 주세요. 예: 32,000",
		PromptFor(constants.LabelAmount, ""))
	assert.Equal(t, "직접 입력", PromptFor("배송지", "직접 입력"))
	assert.Equal(t, "배송지", PromptFor("배송지", ""), "raw label is the last fallback")
}

func TestMissingFieldPrompts(t *testing.T) {
	res := New(Config{}, nil).Extract(nil)
	prompts := MissingFieldPrompts(res)
	assert.Len(t, prompts, len(constants.RequiredLabels))
	for _, label := range constants.RequiredLabels {
		assert.NotEmpty(t, prompts[label])
	}

	res.ApplyUpdates(FieldUpdate{constants.LabelAmount: "1000"})
	assert.Empty(t, MissingFieldPrompts(res))
}
