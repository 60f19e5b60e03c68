package utils

import (
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate interpreta uma data no formato yyyy-mm-dd como meia-noite UTC
func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	dateStr = strings.TrimSpace(dateStr)
	if dateStr != "" {
		incomingDate, err := time.Parse(DateLayout, dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// TruncateDate descarta horário e fuso, mantendo o dia civil em UTC
func TruncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today retorna o dia civil corrente no fuso informado
func Today(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return TruncateDate(time.Now().In(loc))
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseIntOrDefault converte s em inteiro, usando def quando s está vazio
func ParseIntOrDefault(s string, def int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}
