package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestID(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, ID(tt.data))
		})
	}
}

func TestIDDeterministic(t *testing.T) {
	got1 := ID("app::HELLO\x00Hello, {=u8}!")
	got2 := ID("app::HELLO\x00Hello, {=u8}!")
	assert.Equal(t, got1, got2)
}

func TestIDDiffersOnSymbolOrFormat(t *testing.T) {
	base := ID("app::HELLO\x00Hello, {=u8}!")
	assert.NotEqual(t, base, ID("app::GOODBYE\x00Hello, {=u8}!"))
	assert.NotEqual(t, base, ID("app::HELLO\x00Hello, {=u16}!"))
}
