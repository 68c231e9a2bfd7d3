package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kasir-backend/arsip"
	"kasir-backend/models"
	"kasir-backend/store"
	"kasir-backend/utils"

	"github.com/gin-gonic/gin"
)

func getJSON(t *testing.T, handler gin.HandlerFunc, path, query string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.GET(path, handler)
	req := httptest.NewRequest(http.MethodGet, path+query, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRunCleanupConflict(t *testing.T) {
	db := store.NewMemory()
	ac := NewArsipController(arsip.New(db))
	ac.running.Store(true)

	w := postJSON(t, ac.RunCleanup, "/arsip/cleanup", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
	if !ac.running.Load() {
		t.Errorf("guard released by rejected request")
	}
}

func TestRunCleanupArchivesOldData(t *testing.T) {
	db := store.NewMemory()
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.Local)
	a := arsip.New(db)
	a.Now = func() time.Time { return now }
	ac := NewArsipController(a)

	old := now.AddDate(0, -10, 0)
	if _, err := db.Insert(context.TODO(), store.CollTransaksi, models.Transaksi{
		Tanggal: utils.FormatTanggal(old),
		Total:   50000,
		Laba:    10000,
		Items:   []models.TransaksiItem{{KodeBarang: "BRG001", HargaBeli: 4000, Qty: 10}},
	}); err != nil {
		t.Fatalf("seed transaksi: %v", err)
	}

	w := postJSON(t, ac.RunCleanup, "/arsip/cleanup", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Archived int `json:"archived"`
		Deleted  int `json:"deleted"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Archived != 1 || resp.Deleted != 1 {
		t.Errorf("archived/deleted = %d/%d, want 1/1", resp.Archived, resp.Deleted)
	}
	if ac.running.Load() {
		t.Errorf("guard not released after run")
	}

	transaksi, _ := store.GetAll[models.Transaksi](context.TODO(), db, store.CollTransaksi)
	if len(transaksi) != 0 {
		t.Errorf("old transaksi still present after cleanup")
	}
}

func TestGetCleanupStatusEmpty(t *testing.T) {
	db := store.NewMemory()
	ac := NewArsipController(arsip.New(db))

	w := getJSON(t, ac.GetCleanupStatus, "/arsip/status", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var status arsip.Status
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.TotalOldRecords != 0 || status.ArsipCount != 0 {
		t.Errorf("unexpected status: %+v", status)
	}
}
