package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"kasir-backend/models"
	"kasir-backend/store"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func seedBarang(t *testing.T, db store.Store, kode, nama string, beli, jual, stok int64) {
	t.Helper()
	_, err := db.Insert(context.TODO(), store.CollBarang, models.Barang{
		KodeBarang: kode,
		NamaBarang: nama,
		HargaBeli:  beli,
		HargaJual:  jual,
		Stok:       stok,
	})
	if err != nil {
		t.Fatalf("seed barang %s: %v", kode, err)
	}
}

func postJSON(t *testing.T, handler gin.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	router := gin.New()
	router.POST(path, handler)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func getStok(t *testing.T, db store.Store, kode string) int64 {
	t.Helper()
	barang, err := store.GetByIndex[models.Barang](context.TODO(), db, store.CollBarang, "kode_barang", kode)
	if err != nil {
		t.Fatalf("get barang %s: %v", kode, err)
	}
	if barang == nil {
		t.Fatalf("barang %s not found", kode)
	}
	return barang.Stok
}

func TestCreateTransaksi(t *testing.T) {
	db := store.NewMemory()
	seedBarang(t, db, "BRG001", "Indomie Goreng", 2500, 3500, 10)
	seedBarang(t, db, "BRG002", "Teh Botol", 3000, 4000, 5)
	kc := NewKasirController(db)

	w := postJSON(t, kc.CreateTransaksi, "/transaksi", models.TransaksiInput{
		Items: []models.TransaksiItemInput{
			{KodeBarang: "BRG001", Qty: 3},
			{KodeBarang: "BRG002", Qty: 2},
		},
		UangDibayar: 20000,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	transaksi, err := store.GetAll[models.Transaksi](context.TODO(), db, store.CollTransaksi)
	if err != nil {
		t.Fatalf("get transaksi: %v", err)
	}
	if len(transaksi) != 1 {
		t.Fatalf("transaksi count = %d, want 1", len(transaksi))
	}
	tr := transaksi[0]
	if tr.Total != 18500 {
		t.Errorf("Total = %d, want 18500", tr.Total)
	}
	if tr.Kembalian != 1500 {
		t.Errorf("Kembalian = %d, want 1500", tr.Kembalian)
	}
	if tr.Laba != 5000 {
		t.Errorf("Laba = %d, want 5000", tr.Laba)
	}
	if len(tr.Items) != 2 || tr.Items[0].NamaBarang != "Indomie Goreng" {
		t.Errorf("unexpected items: %+v", tr.Items)
	}

	if stok := getStok(t, db, "BRG001"); stok != 7 {
		t.Errorf("BRG001 stok = %d, want 7", stok)
	}
	if stok := getStok(t, db, "BRG002"); stok != 3 {
		t.Errorf("BRG002 stok = %d, want 3", stok)
	}
}

func TestCreateTransaksiStokKurang(t *testing.T) {
	db := store.NewMemory()
	seedBarang(t, db, "BRG001", "Indomie Goreng", 2500, 3500, 2)
	kc := NewKasirController(db)

	w := postJSON(t, kc.CreateTransaksi, "/transaksi", models.TransaksiInput{
		Items:       []models.TransaksiItemInput{{KodeBarang: "BRG001", Qty: 5}},
		UangDibayar: 50000,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if stok := getStok(t, db, "BRG001"); stok != 2 {
		t.Errorf("stok changed to %d after rejected checkout", stok)
	}
}

func TestCreateTransaksiBarisGandaStokKurang(t *testing.T) {
	db := store.NewMemory()
	seedBarang(t, db, "BRG001", "Indomie Goreng", 2500, 3500, 5)
	kc := NewKasirController(db)

	// Один товар в двух строках: по отдельности каждая строка проходит,
	// суммарно остатка не хватает.
	w := postJSON(t, kc.CreateTransaksi, "/transaksi", models.TransaksiInput{
		Items: []models.TransaksiItemInput{
			{KodeBarang: "BRG001", Qty: 4},
			{KodeBarang: "BRG001", Qty: 4},
		},
		UangDibayar: 50000,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if stok := getStok(t, db, "BRG001"); stok != 5 {
		t.Errorf("stok = %d after rejected checkout, want 5", stok)
	}
	transaksi, _ := store.GetAll[models.Transaksi](context.TODO(), db, store.CollTransaksi)
	if len(transaksi) != 0 {
		t.Errorf("transaksi written despite insufficient stock")
	}
}

func TestCreateTransaksiBarisGanda(t *testing.T) {
	db := store.NewMemory()
	seedBarang(t, db, "BRG001", "Indomie Goreng", 2500, 3500, 10)
	kc := NewKasirController(db)

	w := postJSON(t, kc.CreateTransaksi, "/transaksi", models.TransaksiInput{
		Items: []models.TransaksiItemInput{
			{KodeBarang: "BRG001", Qty: 4},
			{KodeBarang: "BRG001", Qty: 3},
		},
		UangDibayar: 30000,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if stok := getStok(t, db, "BRG001"); stok != 3 {
		t.Errorf("stok = %d, want 3", stok)
	}
}

func TestCreateTransaksiUangKurang(t *testing.T) {
	db := store.NewMemory()
	seedBarang(t, db, "BRG001", "Indomie Goreng", 2500, 3500, 10)
	kc := NewKasirController(db)

	w := postJSON(t, kc.CreateTransaksi, "/transaksi", models.TransaksiInput{
		Items:       []models.TransaksiItemInput{{KodeBarang: "BRG001", Qty: 2}},
		UangDibayar: 5000,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	transaksi, _ := store.GetAll[models.Transaksi](context.TODO(), db, store.CollTransaksi)
	if len(transaksi) != 0 {
		t.Errorf("transaksi written despite short payment")
	}
}

func TestCreateTransaksiBarangHilang(t *testing.T) {
	db := store.NewMemory()
	kc := NewKasirController(db)

	w := postJSON(t, kc.CreateTransaksi, "/transaksi", models.TransaksiInput{
		Items:       []models.TransaksiItemInput{{KodeBarang: "NONEXISTENT", Qty: 1}},
		UangDibayar: 10000,
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
