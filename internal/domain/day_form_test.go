package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayForm_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected DayForm
		err      bool
	}{
		{
			name:     "Valores como texto",
			body:     `{"date":"2024-03-08","gross_amount":"1800,50","return_amount":"10","notes":"feirão"}`,
			expected: DayForm{Date: "2024-03-08", GrossAmount: "1800,50", ReturnAmount: "10", Notes: "feirão"},
		},
		{
			name:     "Valores como número",
			body:     `{"gross_amount":1800,"return_amount":12.5}`,
			expected: DayForm{GrossAmount: "1800", ReturnAmount: "12.5"},
		},
		{
			name:     "Devolução nula",
			body:     `{"gross_amount":"100","return_amount":null}`,
			expected: DayForm{GrossAmount: "100"},
		},
		{
			name:     "Número negativo chega ao serviço como digitado",
			body:     `{"gross_amount":-1}`,
			expected: DayForm{GrossAmount: "-1"},
		},
		{
			name: "Booleano é rejeitado",
			body: `{"gross_amount":true}`,
			err:  true,
		},
		{
			name: "Objeto é rejeitado",
			body: `{"return_amount":{"valor":1}}`,
			err:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var form DayForm
			err := json.Unmarshal([]byte(tt.body), &form)

			if tt.err {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, form)
		})
	}
}
