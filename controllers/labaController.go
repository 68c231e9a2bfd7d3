package controllers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"kasir-backend/models"
	"kasir-backend/store"
	"kasir-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// LabaController строит дневной отчёт прибыли из транзакций и списаний.
type LabaController struct {
	DB store.Store
}

func NewLabaController(db store.Store) *LabaController {
	return &LabaController{DB: db}
}

// LabaPerHari - сводка одного календарного дня. LabaBersih уже за вычетом
// списаний этого дня.
type LabaPerHari struct {
	Tanggal         string `json:"tanggal"`
	TotalPenjualan  int64  `json:"total_penjualan"`
	TotalModal      int64  `json:"total_modal"`
	LabaKotor       int64  `json:"laba_kotor"`
	BarangKeluar    int64  `json:"barang_keluar"`
	LabaBersih      int64  `json:"laba_bersih"`
	JumlahTransaksi int    `json:"jumlah_transaksi"`
}

// dateKey обрезает tanggal до части "d/m/yyyy" перед запятой.
func dateKey(tanggal string) string {
	return strings.TrimSpace(strings.SplitN(tanggal, ",", 2)[0])
}

// labaHarian собирает сводки по дням. bulan - фильтр "YYYY-MM", пустая
// строка означает все месяцы. Записи с неразбираемой датой пропускаются.
func (lc *LabaController) labaHarian(ctx context.Context, bulan string) ([]LabaPerHari, error) {
	transaksi, err := store.GetAll[models.Transaksi](ctx, lc.DB, store.CollTransaksi)
	if err != nil {
		return nil, err
	}
	keluar, err := store.GetAll[models.BarangKeluar](ctx, lc.DB, store.CollBarangKeluar)
	if err != nil {
		return nil, err
	}

	inBulan := func(tanggal string) bool {
		key, ok := utils.MonthKey(tanggal)
		if !ok {
			return false
		}
		return bulan == "" || key == bulan
	}

	byDay := map[string]*LabaPerHari{}
	for _, t := range transaksi {
		if !inBulan(t.Tanggal) {
			continue
		}
		day := dateKey(t.Tanggal)
		row, ok := byDay[day]
		if !ok {
			row = &LabaPerHari{Tanggal: day}
			byDay[day] = row
		}
		row.TotalPenjualan += t.Total
		for _, it := range t.Items {
			row.TotalModal += it.HargaBeli * it.Qty
		}
		row.LabaKotor += t.Laba
		row.JumlahTransaksi++
	}
	for _, k := range keluar {
		if !inBulan(k.Tanggal) {
			continue
		}
		day := dateKey(k.Tanggal)
		row, ok := byDay[day]
		if !ok {
			row = &LabaPerHari{Tanggal: day}
			byDay[day] = row
		}
		row.BarangKeluar += k.TotalHarga
	}

	rows := make([]LabaPerHari, 0, len(byDay))
	for _, row := range byDay {
		row.LabaBersih = row.LabaKotor - row.BarangKeluar
		rows = append(rows, *row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return tanggalAfter(rows[i].Tanggal, rows[j].Tanggal)
	})
	return rows, nil
}

func (lc *LabaController) GetLabaHarian(c *gin.Context) {
	rows, err := lc.labaHarian(context.TODO(), c.Query("bulan"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build laba report"})
		return
	}

	var penjualan, modal, kotor, keluar, bersih int64
	var jumlah int
	for _, r := range rows {
		penjualan += r.TotalPenjualan
		modal += r.TotalModal
		kotor += r.LabaKotor
		keluar += r.BarangKeluar
		bersih += r.LabaBersih
		jumlah += r.JumlahTransaksi
	}
	margin := 0.0
	if penjualan > 0 {
		margin = float64(bersih) / float64(penjualan) * 100
	}

	c.JSON(http.StatusOK, gin.H{
		"laba_per_hari": rows,
		"summary": gin.H{
			"total_penjualan":  penjualan,
			"total_modal":      modal,
			"laba_kotor":       kotor,
			"barang_keluar":    keluar,
			"laba_bersih":      bersih,
			"jumlah_transaksi": jumlah,
			"margin_persen":    margin,
		},
	})
}

// GetLabaBulanList отдаёт список месяцев "YYYY-MM", по которым есть данные.
func (lc *LabaController) GetLabaBulanList(c *gin.Context) {
	transaksi, err := store.GetAll[models.Transaksi](context.TODO(), lc.DB, store.CollTransaksi)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaksi"})
		return
	}
	seen := map[string]bool{}
	for _, t := range transaksi {
		if key, ok := utils.MonthKey(t.Tanggal); ok {
			seen[key] = true
		}
	}
	months := make([]string, 0, len(seen))
	for key := range seen {
		months = append(months, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	c.JSON(http.StatusOK, gin.H{"bulan": months})
}

// GetArsip отдаёт архивные сводки, новые месяцы сверху, плюс общий итог.
func (lc *LabaController) GetArsip(c *gin.Context) {
	arsip, err := store.GetAll[models.LabaArsip](context.TODO(), lc.DB, store.CollLabaArsip)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve arsip"})
		return
	}
	sort.SliceStable(arsip, func(i, j int) bool { return arsip[i].Bulan > arsip[j].Bulan })

	var penjualan, modal, laba int64
	var jumlah int
	for _, a := range arsip {
		penjualan += a.TotalPenjualan
		modal += a.TotalModal
		laba += a.TotalLaba
		jumlah += a.JumlahTransaksi
	}

	c.JSON(http.StatusOK, gin.H{
		"arsip": arsip,
		"summary": gin.H{
			"total_penjualan":  penjualan,
			"total_modal":      modal,
			"total_laba":       laba,
			"jumlah_transaksi": jumlah,
		},
	})
}

var labaHeader = []string{"Tanggal", "Total Penjualan", "Total Modal", "Laba Kotor", "Barang Keluar", "Laba Bersih", "Jumlah Transaksi"}

// ExportLaba выгружает дневной отчёт в xlsx со строкой TOTAL внизу.
func (lc *LabaController) ExportLaba(c *gin.Context) {
	rows, err := lc.labaHarian(context.TODO(), c.Query("bulan"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build laba report"})
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, h := range labaHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	var penjualan, modal, kotor, keluar, bersih int64
	var jumlah int
	for i, r := range rows {
		values := []interface{}{r.Tanggal, r.TotalPenjualan, r.TotalModal, r.LabaKotor, r.BarangKeluar, r.LabaBersih, r.JumlahTransaksi}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
		penjualan += r.TotalPenjualan
		modal += r.TotalModal
		kotor += r.LabaKotor
		keluar += r.BarangKeluar
		bersih += r.LabaBersih
		jumlah += r.JumlahTransaksi
	}

	totalRow := len(rows) + 2
	totals := []interface{}{"TOTAL", penjualan, modal, kotor, keluar, bersih, jumlah}
	for j, v := range totals {
		cell, _ := excelize.CoordinatesToCellName(j+1, totalRow)
		f.SetCellValue(sheet, cell, v)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate file"})
		return
	}

	filename := "laporan_laba.xlsx"
	if bulan := c.Query("bulan"); bulan != "" {
		filename = fmt.Sprintf("laporan_laba_%s.xlsx", bulan)
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
