package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidPeriod = errors.New("período inválido: mês deve estar entre 1 e 12")

// MonthPeriod identifica um mês de calendário (mês 1-12 e ano)
type MonthPeriod struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func NewMonthPeriod(month, year int) (MonthPeriod, error) {
	if month < 1 || month > 12 || year < 1 {
		return MonthPeriod{}, fmt.Errorf("%w (mês=%d, ano=%d)", ErrInvalidPeriod, month, year)
	}

	return MonthPeriod{Month: month, Year: year}, nil
}

// PeriodOf retorna o mês ao qual a data pertence
func PeriodOf(date time.Time) MonthPeriod {
	return MonthPeriod{Month: int(date.Month()), Year: date.Year()}
}

// FirstDay retorna o dia 1 do mês em UTC
func (p MonthPeriod) FirstDay() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// LastDay usa o "dia 0 do mês seguinte", o que cobre anos bissextos
func (p MonthPeriod) LastDay() time.Time {
	return time.Date(p.Year, time.Month(p.Month)+1, 0, 0, 0, 0, 0, time.UTC)
}

func (p MonthPeriod) DaysInMonth() int {
	return p.LastDay().Day()
}

func (p MonthPeriod) Contains(date time.Time) bool {
	return date.Year() == p.Year && int(date.Month()) == p.Month
}

// Before indica se p é anterior a other
func (p MonthPeriod) Before(other MonthPeriod) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

// String no formato mm-yyyy (ex: 03-2024)
func (p MonthPeriod) String() string {
	return fmt.Sprintf("%02d-%d", p.Month, p.Year)
}
