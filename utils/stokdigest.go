package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"kasir-backend/models"
	"kasir-backend/store"
)

// DefaultStokMinimum - порог, ниже которого товар попадает в утреннюю сводку.
const DefaultStokMinimum = 5

// CheckLowStock собирает товары с остатком не выше порога (STOK_MINIMUM)
// и отправляет сводку на REPORT_EMAIL. Запускается планировщиком раз в день;
// без настроенного REPORT_EMAIL ничего не делает.
func CheckLowStock(db store.Store) {
	to := os.Getenv("REPORT_EMAIL")
	if to == "" {
		return
	}

	minimum := int64(DefaultStokMinimum)
	if v, err := strconv.ParseInt(os.Getenv("STOK_MINIMUM"), 10, 64); err == nil {
		minimum = v
	}

	barang, err := store.GetAll[models.Barang](context.Background(), db, store.CollBarang)
	if err != nil {
		log.Printf("CheckLowStock: %v", err)
		return
	}

	var rows []string
	for _, b := range barang {
		if b.Stok <= minimum {
			rows = append(rows, fmt.Sprintf("%s  %s  stok %d", b.KodeBarang, b.NamaBarang, b.Stok))
		}
	}
	if len(rows) == 0 {
		return
	}

	body := fmt.Sprintf("Barang dengan stok <= %d:\n\n%s\n", minimum, strings.Join(rows, "\n"))
	if err := SendEmail(to, "Peringatan stok menipis", body); err != nil {
		log.Printf("CheckLowStock: send email: %v", err)
		return
	}
	log.Printf("CheckLowStock: sent digest for %d items", len(rows))
}
