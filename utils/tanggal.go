package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatTanggal воспроизводит строку даты кассового чека в локали id-ID:
// "28/8/2026, 10.30.45" - день и месяц без ведущих нулей, время через точки.
func FormatTanggal(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d, %02d.%02d.%02d",
		t.Day(), int(t.Month()), t.Year(), t.Hour(), t.Minute(), t.Second())
}

// ParseTanggal разбирает часть до запятой ("d/m/yyyy") в календарную дату
// (полночь локального времени). Часть после запятой игнорируется.
func ParseTanggal(tanggal string) (time.Time, error) {
	datePart := strings.TrimSpace(strings.SplitN(tanggal, ",", 2)[0])
	parts := strings.Split(datePart, "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid tanggal %q", tanggal)
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid tanggal %q: %v", tanggal, err)
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid tanggal %q: %v", tanggal, err)
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid tanggal %q: %v", tanggal, err)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1 {
		return time.Time{}, fmt.Errorf("invalid tanggal %q", tanggal)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), nil
}

// MonthKey выводит ключ месяца "YYYY-MM" из строки tanggal. Второе значение
// false, если дату разобрать не удалось; решать, что делать с такой записью,
// должен вызывающий.
func MonthKey(tanggal string) (string, bool) {
	d, err := ParseTanggal(tanggal)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d", d.Year(), int(d.Month())), true
}
