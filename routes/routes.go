package routes

import (
	"kasir-backend/arsip"
	"kasir-backend/controllers"
	"kasir-backend/middleware"
	"kasir-backend/store"

	"github.com/gin-gonic/gin"
)

func InitializeRoutes(router *gin.Engine, db store.Store) {
	auth := controllers.NewAuthController(db)
	barang := controllers.NewBarangController(db)
	kasirCtl := controllers.NewKasirController(db)
	mutasi := controllers.NewMutasiController(db)
	laba := controllers.NewLabaController(db)
	arsipCtl := controllers.NewArsipController(arsip.New(db))

	router.POST("/login", auth.Login)
	router.Static("/uploads", "./uploads")

	kasir := router.Group("/api")
	kasir.Use(middleware.AuthMiddleware())
	{
		kasir.PUT("/ganti-pin", auth.GantiPin)

		kasir.GET("/barang", barang.GetAllBarang)
		kasir.GET("/barang/:kode", barang.GetBarangByKode)
		kasir.POST("/barang", barang.CreateBarang)
		kasir.PUT("/barang/:id", barang.UpdateBarang)
		kasir.DELETE("/barang/:id", barang.DeleteBarang)
		kasir.POST("/barang/:id/photo", barang.UploadBarangPhoto)
		kasir.GET("/barang/export", barang.ExportBarang)
		kasir.POST("/barang/import", barang.ImportBarang)

		kasir.POST("/transaksi", kasirCtl.CreateTransaksi)
		kasir.GET("/transaksi", kasirCtl.GetAllTransaksi)
		kasir.DELETE("/transaksi/:id", kasirCtl.DeleteTransaksi)

		kasir.POST("/barang-masuk", mutasi.CreateBarangMasuk)
		kasir.GET("/barang-masuk", mutasi.GetAllBarangMasuk)
		kasir.POST("/barang-keluar", mutasi.CreateBarangKeluar)
		kasir.GET("/barang-keluar", mutasi.GetAllBarangKeluar)

		kasir.GET("/laba", laba.GetLabaHarian)
		kasir.GET("/laba/bulan", laba.GetLabaBulanList)
		kasir.GET("/laba/export", laba.ExportLaba)
		kasir.GET("/laba/arsip", laba.GetArsip)

		kasir.GET("/arsip/status", arsipCtl.GetCleanupStatus)
		kasir.POST("/arsip/cleanup", arsipCtl.RunCleanup)
	}
}
