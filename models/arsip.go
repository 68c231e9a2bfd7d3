package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LabaArsip - месячная сводка, остающаяся после удаления старых записей.
// Одна запись на месяц ("bulan" = "YYYY-MM"); при повторной архивации того же
// месяца суммы складываются.
type LabaArsip struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Bulan             string             `bson:"bulan" json:"bulan"`
	Tahun             int                `bson:"tahun" json:"tahun"`
	BulanNum          int                `bson:"bulan_num" json:"bulan_num"`
	TotalPenjualan    int64              `bson:"total_penjualan" json:"total_penjualan"`
	TotalModal        int64              `bson:"total_modal" json:"total_modal"`
	TotalLaba         int64              `bson:"total_laba" json:"total_laba"`
	TotalBarangMasuk  int64              `bson:"total_barang_masuk" json:"total_barang_masuk"`
	TotalBarangKeluar int64              `bson:"total_barang_keluar" json:"total_barang_keluar"`
	JumlahTransaksi   int                `bson:"jumlah_transaksi" json:"jumlah_transaksi"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
}
