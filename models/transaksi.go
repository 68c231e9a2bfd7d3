package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransaksiItem - позиция чека. Цены и название копируются из Barang в момент
// продажи и позже не меняются.
type TransaksiItem struct {
	KodeBarang string `bson:"kode_barang" json:"kode_barang"`
	NamaBarang string `bson:"nama_barang" json:"nama_barang"`
	HargaJual  int64  `bson:"harga_jual" json:"harga_jual"`
	HargaBeli  int64  `bson:"harga_beli" json:"harga_beli"`
	Qty        int64  `bson:"qty" json:"qty"`
	Subtotal   int64  `bson:"subtotal" json:"subtotal"`
}

type Transaksi struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Tanggal     string             `bson:"tanggal" json:"tanggal"`
	Items       []TransaksiItem    `bson:"items" json:"items"`
	Total       int64              `bson:"total" json:"total"`
	UangDibayar int64              `bson:"uang_dibayar" json:"uang_dibayar"`
	Kembalian   int64              `bson:"kembalian" json:"kembalian"`
	Laba        int64              `bson:"laba" json:"laba"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

type TransaksiItemInput struct {
	KodeBarang string `json:"kode_barang" binding:"required"`
	Qty        int64  `json:"qty" binding:"required"`
}

type TransaksiInput struct {
	Items       []TransaksiItemInput `json:"items" binding:"required"`
	UangDibayar int64                `json:"uang_dibayar" binding:"required"`
}
