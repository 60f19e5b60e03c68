package domain

import (
	"bytes"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// UnmarshalJSON aceita os valores do formulário tanto como texto ("1800,50")
// quanto como número JSON (1800.5). O texto é mantido como digitado para a
// validação do serviço.
func (f *DayForm) UnmarshalJSON(data []byte) error {
	var raw struct {
		Date         string              `json:"date"`
		GrossAmount  jsoniter.RawMessage `json:"gross_amount"`
		ReturnAmount jsoniter.RawMessage `json:"return_amount"`
		Notes        string              `json:"notes"`
		Recorded     bool                `json:"recorded"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	gross, err := amountText(raw.GrossAmount)
	if err != nil {
		return fmt.Errorf("gross_amount: %w", err)
	}

	ret, err := amountText(raw.ReturnAmount)
	if err != nil {
		return fmt.Errorf("return_amount: %w", err)
	}

	*f = DayForm{
		Date:         raw.Date,
		GrossAmount:  gross,
		ReturnAmount: ret,
		Notes:        raw.Notes,
		Recorded:     raw.Recorded,
	}
	return nil
}

func amountText(raw jsoniter.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		return "", nil
	case raw[0] == '"':
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return "", err
		}
		return text, nil
	case raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9'):
		return string(raw), nil
	}

	return "", errors.New("valor deve ser texto ou número")
}
