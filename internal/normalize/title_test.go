package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"CUSTAS PROCESSUAIS", "Custas Processuais"},
		{"honorários de sucumbência", "Honorários de Sucumbência"},
		{"IRPF S/ RRA", "Irpf s/ Rra"},
		{"de ofício", "De Ofício"},
		{"multi-word item", "Multi-Word Item"},
		{"contribuição social da empresa", "Contribuição Social da Empresa"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TitleCase(tt.in), "TitleCase(%q)", tt.in)
	}
}
