package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"sync/atomic"

	"kasir-backend/arsip"
	"kasir-backend/utils"

	"github.com/gin-gonic/gin"
)

// ArsipController - ручки месячной архивации. Сама процедура живёт в
// пакете arsip, здесь только HTTP-обвязка и защита от повторного запуска.
type ArsipController struct {
	Archiver *arsip.Archiver

	running atomic.Bool
}

func NewArsipController(a *arsip.Archiver) *ArsipController {
	return &ArsipController{Archiver: a}
}

// GetCleanupStatus показывает, что именно тронет следующий запуск очистки.
func (ac *ArsipController) GetCleanupStatus(c *gin.Context) {
	status, err := ac.Archiver.CleanupStatus(context.TODO())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check cleanup status"})
		return
	}
	c.JSON(http.StatusOK, status)
}

// RunCleanup архивирует и удаляет старые записи. Пока один запуск идёт,
// второй получает 409.
func (ac *ArsipController) RunCleanup(c *gin.Context) {
	if !ac.running.CompareAndSwap(false, true) {
		c.JSON(http.StatusConflict, gin.H{"error": "Cleanup is already running"})
		return
	}
	defer ac.running.Store(false)

	result, err := ac.Archiver.ArchiveOldData(context.TODO())
	if err != nil {
		log.Printf("arsip: cleanup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cleanup failed"})
		return
	}

	go sendCleanupReport(result)

	c.JSON(http.StatusOK, gin.H{
		"message":   "Cleanup selesai",
		"archived":  result.Archived,
		"deleted":   result.Deleted,
		"summaries": result.Summaries,
	})
}

// sendCleanupReport шлёт итог очистки на REPORT_EMAIL, если тот задан.
func sendCleanupReport(result arsip.Result) {
	to := os.Getenv("REPORT_EMAIL")
	if to == "" {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Arsip selesai: %d bulan diarsipkan, %d record dihapus.\n\n", result.Archived, result.Deleted)
	for _, s := range result.Summaries {
		fmt.Fprintf(&b, "%s: penjualan %s, laba %s, %d transaksi\n",
			s.Bulan, utils.FormatRupiah(s.TotalPenjualan), utils.FormatRupiah(s.TotalLaba), s.JumlahTransaksi)
	}

	if err := utils.SendEmail(to, "Laporan Arsip Bulanan", b.String()); err != nil {
		log.Printf("arsip: report email failed: %v", err)
	}
}
