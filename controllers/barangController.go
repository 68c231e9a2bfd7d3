package controllers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"kasir-backend/models"
	"kasir-backend/store"
	"kasir-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

type BarangController struct {
	DB store.Store
}

func NewBarangController(db store.Store) *BarangController {
	return &BarangController{DB: db}
}

func (bc *BarangController) GetAllBarang(c *gin.Context) {
	barang, err := store.GetAll[models.Barang](context.TODO(), bc.DB, store.CollBarang)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve barang"})
		return
	}
	sort.Slice(barang, func(i, j int) bool {
		return barang[i].NamaBarang < barang[j].NamaBarang
	})
	c.JSON(http.StatusOK, barang)
}

func (bc *BarangController) GetBarangByKode(c *gin.Context) {
	kode := c.Param("kode")
	barang, err := store.GetByIndex[models.Barang](context.TODO(), bc.DB, store.CollBarang, "kode_barang", kode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve barang"})
		return
	}
	if barang == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Barang tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, barang)
}

func (bc *BarangController) CreateBarang(c *gin.Context) {
	var input models.BarangInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.HargaBeli < 0 || input.HargaJual < 0 || input.Stok < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Harga dan stok tidak boleh negatif"})
		return
	}
	// Проверяется только при вводе; позже historical-записи не пересчитываются.
	if input.HargaJual < input.HargaBeli {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Harga jual harus lebih besar atau sama dengan harga beli"})
		return
	}

	existing, err := store.GetByIndex[models.Barang](context.TODO(), bc.DB, store.CollBarang, "kode_barang", input.KodeBarang)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check kode barang"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Kode barang sudah digunakan"})
		return
	}

	barang := models.Barang{
		KodeBarang: input.KodeBarang,
		NamaBarang: input.NamaBarang,
		HargaBeli:  input.HargaBeli,
		HargaJual:  input.HargaJual,
		Stok:       input.Stok,
		CreatedAt:  utils.FormatTanggal(time.Now()),
	}
	id, err := bc.DB.Insert(context.TODO(), store.CollBarang, barang)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create barang"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (bc *BarangController) UpdateBarang(c *gin.Context) {
	id := c.Param("id")

	var input models.BarangInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.HargaBeli < 0 || input.HargaJual < 0 || input.Stok < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Harga dan stok tidak boleh negatif"})
		return
	}
	if input.HargaJual < input.HargaBeli {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Harga jual harus lebih besar atau sama dengan harga beli"})
		return
	}

	// Код товара может совпадать только с самим обновляемым документом.
	existing, err := store.GetByIndex[models.Barang](context.TODO(), bc.DB, store.CollBarang, "kode_barang", input.KodeBarang)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check kode barang"})
		return
	}
	if existing != nil && existing.ID.Hex() != id {
		c.JSON(http.StatusConflict, gin.H{"error": "Kode barang sudah digunakan"})
		return
	}

	update := map[string]interface{}{
		"kode_barang": input.KodeBarang,
		"nama_barang": input.NamaBarang,
		"harga_beli":  input.HargaBeli,
		"harga_jual":  input.HargaJual,
		"stok":        input.Stok,
	}
	if err := bc.DB.Update(context.TODO(), store.CollBarang, id, update); err != nil {
		if err == store.ErrNoDocument {
			c.JSON(http.StatusNotFound, gin.H{"error": "Barang tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update barang"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Barang berhasil diperbarui"})
}

func (bc *BarangController) DeleteBarang(c *gin.Context) {
	if err := bc.DB.Delete(context.TODO(), store.CollBarang, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete barang"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Barang berhasil dihapus"})
}

// Колонки файла совпадают с экспортом старой кассы, чтобы старые файлы
// можно было импортировать без правок.
var barangHeader = []string{"Kode Barang", "Nama Barang", "Harga Beli", "Harga Jual", "Stok"}

func (bc *BarangController) ExportBarang(c *gin.Context) {
	barang, err := store.GetAll[models.Barang](context.TODO(), bc.DB, store.CollBarang)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve barang"})
		return
	}
	sort.Slice(barang, func(i, j int) bool {
		return barang[i].NamaBarang < barang[j].NamaBarang
	})

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Barang"
	f.SetSheetName("Sheet1", sheet)
	for col, title := range barangHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for row, b := range barang {
		values := []interface{}{b.KodeBarang, b.NamaBarang, b.HargaBeli, b.HargaJual, b.Stok}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build file"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="data_barang.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ImportBarang заменяет весь справочник товаров содержимым файла,
// как это делал импорт старой кассы: очистка и пакетная вставка.
func (bc *BarangController) ImportBarang(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open file"})
		return
	}
	defer src.Close()

	f, err := excelize.OpenReader(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Gagal membaca file Excel"})
		return
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Gagal membaca file Excel"})
		return
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil || len(rows) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File kosong atau tidak valid"})
		return
	}

	colIndex := make(map[string]int)
	for i, title := range rows[0] {
		colIndex[title] = i
	}
	for _, title := range barangHeader {
		if _, ok := colIndex[title]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Kolom %q tidak ditemukan", title)})
			return
		}
	}

	cell := func(row []string, title string) string {
		i := colIndex[title]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	now := utils.FormatTanggal(time.Now())
	var docs []interface{}
	for _, row := range rows[1:] {
		kode := cell(row, "Kode Barang")
		if kode == "" {
			continue
		}
		hargaBeli, _ := strconv.ParseInt(cell(row, "Harga Beli"), 10, 64)
		hargaJual, _ := strconv.ParseInt(cell(row, "Harga Jual"), 10, 64)
		stok, _ := strconv.ParseInt(cell(row, "Stok"), 10, 64)
		docs = append(docs, models.Barang{
			KodeBarang: kode,
			NamaBarang: cell(row, "Nama Barang"),
			HargaBeli:  hargaBeli,
			HargaJual:  hargaJual,
			Stok:       stok,
			CreatedAt:  now,
		})
	}
	if len(docs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tidak ada baris barang di file"})
		return
	}

	if err := bc.DB.Clear(context.TODO(), store.CollBarang); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear barang"})
		return
	}
	if err := bc.DB.InsertMany(context.TODO(), store.CollBarang, docs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import barang"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": len(docs)})
}
