package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Barang - товар магазина. Цены в рупиях, без дробной части.
type Barang struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	KodeBarang string             `bson:"kode_barang" json:"kode_barang"`
	NamaBarang string             `bson:"nama_barang" json:"nama_barang"`
	HargaBeli  int64              `bson:"harga_beli" json:"harga_beli"`
	HargaJual  int64              `bson:"harga_jual" json:"harga_jual"`
	Stok       int64              `bson:"stok" json:"stok"`
	PhotoURL   string             `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	CreatedAt  string             `bson:"created_at" json:"created_at"`
}

type BarangInput struct {
	KodeBarang string `json:"kode_barang" binding:"required"`
	NamaBarang string `json:"nama_barang" binding:"required"`
	HargaBeli  int64  `json:"harga_beli"`
	HargaJual  int64  `json:"harga_jual"`
	Stok       int64  `json:"stok"`
}

// BarangMasuk - приход товара на склад. Неизменяем после создания.
type BarangMasuk struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Tanggal    string             `bson:"tanggal" json:"tanggal"`
	KodeBarang string             `bson:"kode_barang" json:"kode_barang"`
	NamaBarang string             `bson:"nama_barang" json:"nama_barang"`
	Jumlah     int64              `bson:"jumlah" json:"jumlah"`
	HargaBeli  int64              `bson:"harga_beli" json:"harga_beli"`
	TotalHarga int64              `bson:"total_harga" json:"total_harga"`
}

// BarangKeluar - списание товара вне продажи (порча, потеря и т.д.).
type BarangKeluar struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Tanggal    string             `bson:"tanggal" json:"tanggal"`
	KodeBarang string             `bson:"kode_barang" json:"kode_barang"`
	NamaBarang string             `bson:"nama_barang" json:"nama_barang"`
	Jumlah     int64              `bson:"jumlah" json:"jumlah"`
	HargaJual  int64              `bson:"harga_jual" json:"harga_jual"`
	TotalHarga int64              `bson:"total_harga" json:"total_harga"`
	Keterangan string             `bson:"keterangan" json:"keterangan"`
}

type BarangMasukInput struct {
	KodeBarang string `json:"kode_barang" binding:"required"`
	Jumlah     int64  `json:"jumlah" binding:"required"`
}

type BarangKeluarInput struct {
	KodeBarang string `json:"kode_barang" binding:"required"`
	Jumlah     int64  `json:"jumlah" binding:"required"`
	Keterangan string `json:"keterangan"`
}
