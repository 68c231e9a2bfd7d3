// Package arsip содержит процедуру архивации: записи старше порога
// группируются по месяцам, сводки сохраняются в laba_arsip, исходные
// записи удаляются пакетами.
package arsip

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"kasir-backend/models"
	"kasir-backend/store"
	"kasir-backend/utils"
)

// DefaultMonthsOld - возраст записей, после которого они подлежат архивации.
const DefaultMonthsOld = 8

// Result - итог одного запуска архивации. В Summaries попадают только новые
// сводки; месяцы, слитые в уже существующие, в списке не отражаются.
type Result struct {
	Archived  int                `json:"archived"`
	Deleted   int                `json:"deleted"`
	Summaries []models.LabaArsip `json:"summaries"`
}

// Status - предпросмотр: сколько записей удалит архивация и сколько сводок
// уже накоплено. Считается той же логикой отбора, что и сама архивация.
type Status struct {
	OldTransaksiCount    int `json:"oldTransaksiCount"`
	OldBarangMasukCount  int `json:"oldBarangMasukCount"`
	OldBarangKeluarCount int `json:"oldBarangKeluarCount"`
	TotalOldRecords      int `json:"totalOldRecords"`
	ArsipCount           int `json:"arsipCount"`
}

type Archiver struct {
	DB        store.Store
	MonthsOld int
	Now       func() time.Time
}

func New(db store.Store) *Archiver {
	return &Archiver{DB: db, MonthsOld: DefaultMonthsOld, Now: time.Now}
}

// Cutoff - граница "старости": текущий момент минус MonthsOld календарных
// месяцев.
func (a *Archiver) Cutoff() time.Time {
	return a.Now().AddDate(0, -a.MonthsOld, 0)
}

// IsOld - запись старая, если её дата строго раньше cutoff. Неразбираемая
// дата означает "не старая": такие записи не считаются, не архивируются и
// не удаляются.
func IsOld(tanggal string, cutoff time.Time) bool {
	d, err := utils.ParseTanggal(tanggal)
	if err != nil {
		return false
	}
	return d.Before(cutoff)
}

type monthGroup struct {
	transaksi    []models.Transaksi
	barangMasuk  []models.BarangMasuk
	barangKeluar []models.BarangKeluar
}

func (a *Archiver) oldRecords(ctx context.Context) ([]models.Transaksi, []models.BarangMasuk, []models.BarangKeluar, error) {
	cutoff := a.Cutoff()

	allTransaksi, err := store.GetAll[models.Transaksi](ctx, a.DB, store.CollTransaksi)
	if err != nil {
		return nil, nil, nil, err
	}
	allMasuk, err := store.GetAll[models.BarangMasuk](ctx, a.DB, store.CollBarangMasuk)
	if err != nil {
		return nil, nil, nil, err
	}
	allKeluar, err := store.GetAll[models.BarangKeluar](ctx, a.DB, store.CollBarangKeluar)
	if err != nil {
		return nil, nil, nil, err
	}

	var oldTransaksi []models.Transaksi
	for _, t := range allTransaksi {
		if IsOld(t.Tanggal, cutoff) {
			oldTransaksi = append(oldTransaksi, t)
		}
	}
	var oldMasuk []models.BarangMasuk
	for _, bm := range allMasuk {
		if IsOld(bm.Tanggal, cutoff) {
			oldMasuk = append(oldMasuk, bm)
		}
	}
	var oldKeluar []models.BarangKeluar
	for _, bk := range allKeluar {
		if IsOld(bk.Tanggal, cutoff) {
			oldKeluar = append(oldKeluar, bk)
		}
	}
	return oldTransaksi, oldMasuk, oldKeluar, nil
}

// ArchiveOldData выполняет полный прогон: отбор, группировка по месяцам,
// upsert сводок, пакетное удаление. Ошибка на этапе записи оставляет уже
// выполненные шаги как есть; повторный запуск безопасен (сводки сливаются,
// удаление по отсутствующему id - no-op).
func (a *Archiver) ArchiveOldData(ctx context.Context) (Result, error) {
	if !a.DB.Configured() {
		return Result{Summaries: []models.LabaArsip{}}, nil
	}

	oldTransaksi, oldMasuk, oldKeluar, err := a.oldRecords(ctx)
	if err != nil {
		return Result{}, err
	}
	if len(oldTransaksi) == 0 && len(oldMasuk) == 0 && len(oldKeluar) == 0 {
		return Result{Summaries: []models.LabaArsip{}}, nil
	}

	groups := make(map[string]*monthGroup)
	group := func(key string) *monthGroup {
		g, ok := groups[key]
		if !ok {
			g = &monthGroup{}
			groups[key] = g
		}
		return g
	}
	for _, t := range oldTransaksi {
		if key, ok := utils.MonthKey(t.Tanggal); ok {
			g := group(key)
			g.transaksi = append(g.transaksi, t)
		}
	}
	for _, bm := range oldMasuk {
		if key, ok := utils.MonthKey(bm.Tanggal); ok {
			g := group(key)
			g.barangMasuk = append(g.barangMasuk, bm)
		}
	}
	for _, bk := range oldKeluar {
		if key, ok := utils.MonthKey(bk.Tanggal); ok {
			g := group(key)
			g.barangKeluar = append(g.barangKeluar, bk)
		}
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	summaries := []models.LabaArsip{}
	for _, key := range keys {
		g := groups[key]

		var totalPenjualan, totalModal, totalLaba int64
		for _, t := range g.transaksi {
			totalPenjualan += t.Total
			totalLaba += t.Laba
			for _, item := range t.Items {
				totalModal += item.HargaBeli * item.Qty
			}
		}
		var totalMasuk int64
		for _, bm := range g.barangMasuk {
			totalMasuk += bm.TotalHarga
		}
		var totalKeluar int64
		for _, bk := range g.barangKeluar {
			totalKeluar += bk.TotalHarga
		}

		existing, err := store.GetByIndex[models.LabaArsip](ctx, a.DB, store.CollLabaArsip, "bulan", key)
		if err != nil {
			return Result{}, err
		}

		if existing != nil {
			existing.TotalPenjualan += totalPenjualan
			existing.TotalModal += totalModal
			existing.TotalLaba += totalLaba
			existing.TotalBarangMasuk += totalMasuk
			existing.TotalBarangKeluar += totalKeluar
			existing.JumlahTransaksi += len(g.transaksi)
			if err := a.DB.Update(ctx, store.CollLabaArsip, existing.ID.Hex(), existing); err != nil {
				return Result{}, err
			}
			continue
		}

		parts := strings.SplitN(key, "-", 2)
		tahun, _ := strconv.Atoi(parts[0])
		bulanNum, _ := strconv.Atoi(parts[1])

		summary := models.LabaArsip{
			Bulan:             key,
			Tahun:             tahun,
			BulanNum:          bulanNum,
			TotalPenjualan:    totalPenjualan,
			TotalModal:        totalModal,
			TotalLaba:         totalLaba,
			TotalBarangMasuk:  totalMasuk,
			TotalBarangKeluar: totalKeluar,
			JumlahTransaksi:   len(g.transaksi),
			CreatedAt:         a.Now(),
		}
		if _, err := a.DB.Insert(ctx, store.CollLabaArsip, summary); err != nil {
			return Result{}, err
		}
		summaries = append(summaries, summary)
	}

	deleted := 0
	var transaksiIDs []string
	for _, t := range oldTransaksi {
		if !t.ID.IsZero() {
			transaksiIDs = append(transaksiIDs, t.ID.Hex())
		}
	}
	if err := a.DB.DeleteBatch(ctx, store.CollTransaksi, transaksiIDs); err != nil {
		return Result{}, err
	}
	deleted += len(transaksiIDs)

	var masukIDs []string
	for _, bm := range oldMasuk {
		if !bm.ID.IsZero() {
			masukIDs = append(masukIDs, bm.ID.Hex())
		}
	}
	if err := a.DB.DeleteBatch(ctx, store.CollBarangMasuk, masukIDs); err != nil {
		return Result{}, err
	}
	deleted += len(masukIDs)

	var keluarIDs []string
	for _, bk := range oldKeluar {
		if !bk.ID.IsZero() {
			keluarIDs = append(keluarIDs, bk.ID.Hex())
		}
	}
	if err := a.DB.DeleteBatch(ctx, store.CollBarangKeluar, keluarIDs); err != nil {
		return Result{}, err
	}
	deleted += len(keluarIDs)

	return Result{
		Archived:  len(summaries),
		Deleted:   deleted,
		Summaries: summaries,
	}, nil
}

// CleanupStatus - дешёвый предпросмотр без записи.
func (a *Archiver) CleanupStatus(ctx context.Context) (Status, error) {
	oldTransaksi, oldMasuk, oldKeluar, err := a.oldRecords(ctx)
	if err != nil {
		return Status{}, err
	}
	arsip, err := store.GetAll[models.LabaArsip](ctx, a.DB, store.CollLabaArsip)
	if err != nil {
		return Status{}, err
	}
	return Status{
		OldTransaksiCount:    len(oldTransaksi),
		OldBarangMasukCount:  len(oldMasuk),
		OldBarangKeluarCount: len(oldKeluar),
		TotalOldRecords:      len(oldTransaksi) + len(oldMasuk) + len(oldKeluar),
		ArsipCount:           len(arsip),
	}, nil
}
