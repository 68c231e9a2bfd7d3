package controllers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"kasir-backend/models"
	"kasir-backend/store"
	"kasir-backend/utils"

	"github.com/gin-gonic/gin"
)

// MutasiController - приход (barang masuk) и списание (barang keluar).
// Обе записи неизменяемы после создания и несут снимок цены на момент
// операции.
type MutasiController struct {
	DB store.Store
}

func NewMutasiController(db store.Store) *MutasiController {
	return &MutasiController{DB: db}
}

func (mc *MutasiController) CreateBarangMasuk(c *gin.Context) {
	var input models.BarangMasukInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Jumlah <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Jumlah harus lebih dari 0"})
		return
	}

	barang, err := store.GetByIndex[models.Barang](context.TODO(), mc.DB, store.CollBarang, "kode_barang", input.KodeBarang)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve barang"})
		return
	}
	if barang == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Barang tidak ditemukan"})
		return
	}

	masuk := models.BarangMasuk{
		Tanggal:    utils.FormatTanggal(time.Now()),
		KodeBarang: barang.KodeBarang,
		NamaBarang: barang.NamaBarang,
		Jumlah:     input.Jumlah,
		HargaBeli:  barang.HargaBeli,
		TotalHarga: input.Jumlah * barang.HargaBeli,
	}
	id, err := mc.DB.Insert(context.TODO(), store.CollBarangMasuk, masuk)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create barang masuk"})
		return
	}

	barang.Stok += input.Jumlah
	if err := mc.DB.Update(context.TODO(), store.CollBarang, barang.ID.Hex(), barang); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stok"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id, "barang_masuk": masuk})
}

func (mc *MutasiController) GetAllBarangMasuk(c *gin.Context) {
	masuk, err := store.GetAll[models.BarangMasuk](context.TODO(), mc.DB, store.CollBarangMasuk)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve barang masuk"})
		return
	}
	sort.SliceStable(masuk, func(i, j int) bool {
		return tanggalAfter(masuk[i].Tanggal, masuk[j].Tanggal)
	})
	c.JSON(http.StatusOK, masuk)
}

func (mc *MutasiController) CreateBarangKeluar(c *gin.Context) {
	var input models.BarangKeluarInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Jumlah <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Jumlah harus lebih dari 0"})
		return
	}

	barang, err := store.GetByIndex[models.Barang](context.TODO(), mc.DB, store.CollBarang, "kode_barang", input.KodeBarang)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve barang"})
		return
	}
	if barang == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Barang tidak ditemukan"})
		return
	}
	if input.Jumlah > barang.Stok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stok tidak mencukupi"})
		return
	}

	keluar := models.BarangKeluar{
		Tanggal:    utils.FormatTanggal(time.Now()),
		KodeBarang: barang.KodeBarang,
		NamaBarang: barang.NamaBarang,
		Jumlah:     input.Jumlah,
		HargaJual:  barang.HargaJual,
		TotalHarga: input.Jumlah * barang.HargaJual,
		Keterangan: input.Keterangan,
	}
	id, err := mc.DB.Insert(context.TODO(), store.CollBarangKeluar, keluar)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create barang keluar"})
		return
	}

	barang.Stok -= input.Jumlah
	if err := mc.DB.Update(context.TODO(), store.CollBarang, barang.ID.Hex(), barang); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stok"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id, "barang_keluar": keluar})
}

func (mc *MutasiController) GetAllBarangKeluar(c *gin.Context) {
	keluar, err := store.GetAll[models.BarangKeluar](context.TODO(), mc.DB, store.CollBarangKeluar)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve barang keluar"})
		return
	}
	sort.SliceStable(keluar, func(i, j int) bool {
		return tanggalAfter(keluar[i].Tanggal, keluar[j].Tanggal)
	})
	c.JSON(http.StatusOK, keluar)
}

// tanggalAfter - true, если a новее b; неразбираемые даты уходят в конец.
func tanggalAfter(a, b string) bool {
	ta, errA := utils.ParseTanggal(a)
	tb, errB := utils.ParseTanggal(b)
	if errA != nil {
		return false
	}
	if errB != nil {
		return true
	}
	return ta.After(tb)
}
