package tracklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepairEncoding(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		want   string
		wantOK bool
	}{
		{name: "mojibake umlaut", value: "JÃ¼rgen", want: "Jürgen", wantOK: true},
		{name: "mojibake accent", value: "CafÃ©", want: "Café", wantOK: true},
		{name: "ascii passes through", value: "Jane Doe", want: "Jane Doe", wantOK: true},
		{name: "correct latin text kept", value: "Björk", want: "Björk", wantOK: false},
		{name: "outside latin-1 kept", value: "坂本龍一", want: "坂本龍一", wantOK: false},
		{name: "ellipsis kept", value: "Wait…", want: "Wait…", wantOK: false},
		{name: "empty", value: "", want: "", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RepairEncoding(tt.value)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}
