package controllers

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"kasir-backend/models"
	"kasir-backend/store"
	"kasir-backend/utils"

	"github.com/gin-gonic/gin"
)

type KasirController struct {
	DB store.Store
}

func NewKasirController(db store.Store) *KasirController {
	return &KasirController{DB: db}
}

// CreateTransaksi проводит продажу: цены и названия копируются из Barang в
// чек, остатки уменьшаются. Удаление товара или смена цены задним числом
// на уже пробитые чеки не влияют.
func (kc *KasirController) CreateTransaksi(c *gin.Context) {
	var input models.TransaksiInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(input.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Keranjang kosong"})
		return
	}

	now := time.Now()
	var items []models.TransaksiItem
	var total, laba int64
	// Остаток с учётом уже набранных строк: один и тот же товар может
	// встретиться в нескольких строках чека.
	remaining := make(map[string]int64)

	for _, it := range input.Items {
		if it.Qty <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Qty harus lebih dari 0"})
			return
		}
		barang, err := store.GetByIndex[models.Barang](context.TODO(), kc.DB, store.CollBarang, "kode_barang", it.KodeBarang)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve barang"})
			return
		}
		if barang == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Barang %s tidak ditemukan", it.KodeBarang)})
			return
		}
		if _, ok := remaining[barang.KodeBarang]; !ok {
			remaining[barang.KodeBarang] = barang.Stok
		}
		if it.Qty > remaining[barang.KodeBarang] {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Stok %s tidak cukup. Stok tersedia: %d", barang.NamaBarang, remaining[barang.KodeBarang])})
			return
		}
		remaining[barang.KodeBarang] -= it.Qty

		subtotal := barang.HargaJual * it.Qty
		items = append(items, models.TransaksiItem{
			KodeBarang: barang.KodeBarang,
			NamaBarang: barang.NamaBarang,
			HargaJual:  barang.HargaJual,
			HargaBeli:  barang.HargaBeli,
			Qty:        it.Qty,
			Subtotal:   subtotal,
		})
		total += subtotal
		laba += (barang.HargaJual - barang.HargaBeli) * it.Qty
	}

	if input.UangDibayar < total {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Uang bayar kurang dari total"})
		return
	}

	transaksi := models.Transaksi{
		Tanggal:     utils.FormatTanggal(now),
		Items:       items,
		Total:       total,
		UangDibayar: input.UangDibayar,
		Kembalian:   input.UangDibayar - total,
		Laba:        laba,
		CreatedAt:   now,
	}
	id, err := kc.DB.Insert(context.TODO(), store.CollTransaksi, transaksi)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaksi"})
		return
	}

	for _, item := range items {
		barang, err := store.GetByIndex[models.Barang](context.TODO(), kc.DB, store.CollBarang, "kode_barang", item.KodeBarang)
		if err != nil || barang == nil {
			continue
		}
		barang.Stok -= item.Qty
		if err := kc.DB.Update(context.TODO(), store.CollBarang, barang.ID.Hex(), barang); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stok"})
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{"id": id, "transaksi": transaksi})
}

// GetAllTransaksi - список чеков, новые сверху.
func (kc *KasirController) GetAllTransaksi(c *gin.Context) {
	transaksi, err := store.GetAll[models.Transaksi](context.TODO(), kc.DB, store.CollTransaksi)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaksi"})
		return
	}
	sort.Slice(transaksi, func(i, j int) bool {
		return transaksi[i].CreatedAt.After(transaksi[j].CreatedAt)
	})
	c.JSON(http.StatusOK, transaksi)
}

// DeleteTransaksi удаляет чек. Остатки товаров при этом не восстанавливаются.
func (kc *KasirController) DeleteTransaksi(c *gin.Context) {
	if err := kc.DB.Delete(context.TODO(), store.CollTransaksi, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaksi"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaksi berhasil dihapus"})
}
