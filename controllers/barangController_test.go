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

func putJSONAt(t *testing.T, handler gin.HandlerFunc, route, url string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	router := gin.New()
	router.PUT(route, handler)
	req := httptest.NewRequest(http.MethodPut, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func barangID(t *testing.T, db store.Store, kode string) string {
	t.Helper()
	barang, err := store.GetByIndex[models.Barang](context.TODO(), db, store.CollBarang, "kode_barang", kode)
	if err != nil || barang == nil {
		t.Fatalf("barang %s not found: %v", kode, err)
	}
	return barang.ID.Hex()
}

func TestUpdateBarang(t *testing.T) {
	db := store.NewMemory()
	seedBarang(t, db, "BRG001", "Indomie Goreng", 2500, 3500, 10)
	bc := NewBarangController(db)
	id := barangID(t, db, "BRG001")

	w := putJSONAt(t, bc.UpdateBarang, "/barang/:id", "/barang/"+id, models.BarangInput{
		KodeBarang: "BRG001",
		NamaBarang: "Indomie Goreng Jumbo",
		HargaBeli:  3000,
		HargaJual:  4500,
		Stok:       12,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	barang, _ := store.GetByIndex[models.Barang](context.TODO(), db, store.CollBarang, "kode_barang", "BRG001")
	if barang == nil || barang.NamaBarang != "Indomie Goreng Jumbo" || barang.Stok != 12 {
		t.Errorf("barang after update = %+v", barang)
	}
}

func TestUpdateBarangNilaiNegatif(t *testing.T) {
	db := store.NewMemory()
	seedBarang(t, db, "BRG001", "Indomie Goreng", 2500, 3500, 10)
	bc := NewBarangController(db)
	id := barangID(t, db, "BRG001")

	w := putJSONAt(t, bc.UpdateBarang, "/barang/:id", "/barang/"+id, models.BarangInput{
		KodeBarang: "BRG001",
		NamaBarang: "Indomie Goreng",
		HargaBeli:  2500,
		HargaJual:  3500,
		Stok:       -4,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if stok := getStok(t, db, "BRG001"); stok != 10 {
		t.Errorf("stok = %d after rejected update, want 10", stok)
	}
}

func TestUpdateBarangKodeBentrok(t *testing.T) {
	db := store.NewMemory()
	seedBarang(t, db, "BRG001", "Indomie Goreng", 2500, 3500, 10)
	seedBarang(t, db, "BRG002", "Teh Botol", 3000, 4000, 5)
	bc := NewBarangController(db)
	id := barangID(t, db, "BRG002")

	// Попытка присвоить второму товару код первого.
	w := putJSONAt(t, bc.UpdateBarang, "/barang/:id", "/barang/"+id, models.BarangInput{
		KodeBarang: "BRG001",
		NamaBarang: "Teh Botol",
		HargaBeli:  3000,
		HargaJual:  4000,
		Stok:       5,
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}

	// Свой собственный код - не конфликт.
	w = putJSONAt(t, bc.UpdateBarang, "/barang/:id", "/barang/"+id, models.BarangInput{
		KodeBarang: "BRG002",
		NamaBarang: "Teh Botol Besar",
		HargaBeli:  3000,
		HargaJual:  4000,
		Stok:       5,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("self-kode update status = %d, body %s", w.Code, w.Body.String())
	}
}
