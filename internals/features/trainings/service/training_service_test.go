package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simasjid_backend/internals/constants"
	"simasjid_backend/internals/features/trainings/model"
)

/* =========================
   Fake store (in-memory)
   ========================= */

type fakeStore struct {
	mu   sync.Mutex
	txMu sync.Mutex

	trainings     map[uuid.UUID]*model.PelatihanModel
	registrations map[uuid.UUID]*model.PendaftarPelatihanModel
	userNames     map[uuid.UUID]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		trainings:     map[uuid.UUID]*model.PelatihanModel{},
		registrations: map[uuid.UUID]*model.PendaftarPelatihanModel{},
		userNames:     map[uuid.UUID]string{},
	}
}

func (f *fakeStore) addTraining(quota int, status string, start time.Time) *model.PelatihanModel {
	t := &model.PelatihanModel{
		PelatihanID:        uuid.New(),
		PelatihanName:      "Pelatihan Komposting",
		PelatihanStartTime: start,
		PelatihanEndTime:   start.Add(3 * time.Hour),
		PelatihanQuota:     quota,
		PelatihanStatus:    status,
		PelatihanMasjidID:  uuid.New(),
		PelatihanCreatedBy: uuid.New(),
	}
	f.trainings[t.PelatihanID] = t
	return t
}

func (f *fakeStore) FindTraining(_ context.Context, id uuid.UUID) (*model.PelatihanModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.trainings[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeStore) LockTraining(ctx context.Context, id uuid.UUID) (*model.PelatihanModel, error) {
	// row lock disimulasikan oleh txMu yang dipegang WithinTx
	return f.FindTraining(ctx, id)
}

func (f *fakeStore) CreateTraining(_ context.Context, t *model.PelatihanModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.PelatihanID == uuid.Nil {
		t.PelatihanID = uuid.New()
	}
	cp := *t
	f.trainings[t.PelatihanID] = &cp
	return nil
}

func (f *fakeStore) SaveTraining(_ context.Context, t *model.PelatihanModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *t
	f.trainings[t.PelatihanID] = &cp
	return nil
}

func (f *fakeStore) DeleteTraining(_ context.Context, id uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.trainings[id]; !ok {
		return 0, nil
	}
	delete(f.trainings, id)
	return 1, nil
}

func (f *fakeStore) ListTrainingsByMasjid(_ context.Context, masjidID uuid.UUID) ([]model.PelatihanModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.PelatihanModel
	for _, t := range f.trainings {
		if t.PelatihanMasjidID == masjidID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeStore) CountActiveRegistrations(_ context.Context, trainingID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, p := range f.registrations {
		if p.PendaftarPelatihanID == trainingID && p.HoldsSeat() {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) FindRegistration(_ context.Context, trainingID, userID uuid.UUID) (*model.PendaftarPelatihanModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.registrations {
		if p.PendaftarPelatihanID == trainingID && p.PendaftarUserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindRegistrationByID(_ context.Context, id uuid.UUID) (*model.PendaftarPelatihanModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.registrations[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) CreateRegistration(_ context.Context, p *model.PendaftarPelatihanModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.registrations {
		if existing.PendaftarPelatihanID == p.PendaftarPelatihanID &&
			existing.PendaftarUserID == p.PendaftarUserID {
			return ErrAlreadyRegistered
		}
	}
	if p.PendaftarID == uuid.Nil {
		p.PendaftarID = uuid.New()
	}
	p.PendaftarCreatedAt = time.Now()
	cp := *p
	f.registrations[p.PendaftarID] = &cp
	return nil
}

func (f *fakeStore) UpdateRegistrationStatus(_ context.Context, id uuid.UUID, status string, note *string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.registrations[id]
	if !ok {
		return 0, nil
	}
	p.PendaftarStatus = status
	p.PendaftarNote = note
	return 1, nil
}

func (f *fakeStore) ListParticipants(_ context.Context, trainingID uuid.UUID, status string, offset, limit int) ([]ParticipantRow, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var rows []ParticipantRow
	for _, p := range f.registrations {
		if p.PendaftarPelatihanID != trainingID {
			continue
		}
		if status != "" && p.PendaftarStatus != status {
			continue
		}
		rows = append(rows, ParticipantRow{
			PendaftarID:  p.PendaftarID,
			UserID:       p.PendaftarUserID,
			UserName:     f.userNames[p.PendaftarUserID],
			Status:       p.PendaftarStatus,
			Note:         p.PendaftarNote,
			RegisteredAt: p.PendaftarCreatedAt,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].RegisteredAt.After(rows[j].RegisteredAt) })
	total := int64(len(rows))
	if offset > len(rows) {
		offset = len(rows)
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, total, nil
}

func (f *fakeStore) ListUserRegistrations(_ context.Context, userID uuid.UUID) ([]UserRegistrationRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []UserRegistrationRow
	for _, p := range f.registrations {
		if p.PendaftarUserID != userID {
			continue
		}
		t := f.trainings[p.PendaftarPelatihanID]
		out = append(out, UserRegistrationRow{
			PendaftarID:   p.PendaftarID,
			PelatihanID:   p.PendaftarPelatihanID,
			PelatihanName: t.PelatihanName,
			StartTime:     t.PelatihanStartTime,
			MasjidID:      p.PendaftarMasjidID,
			Status:        p.PendaftarStatus,
			RegisteredAt:  p.PendaftarCreatedAt,
		})
	}
	return out, nil
}

func (f *fakeStore) WithinTx(_ context.Context, fn func(Store) error) error {
	f.txMu.Lock()
	defer f.txMu.Unlock()
	return fn(f)
}

func futureStart() time.Time { return time.Now().Add(48 * time.Hour) }

/* =========================
   Register
   ========================= */

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("sukses membuat pendaftar pending dengan masjid denormalisasi", func(t *testing.T) {
		store := newFakeStore()
		svc := NewTrainingService(store)
		tr := store.addTraining(10, constants.PelatihanUpcoming, futureStart())

		p, err := svc.Register(ctx, tr.PelatihanID, uuid.New(), nil)
		require.NoError(t, err)
		assert.Equal(t, constants.PendaftarPending, p.PendaftarStatus)
		assert.Equal(t, tr.PelatihanMasjidID, p.PendaftarMasjidID)
		assert.NotEqual(t, uuid.Nil, p.PendaftarID)
	})

	t.Run("pelatihan tidak ada", func(t *testing.T) {
		store := newFakeStore()
		svc := NewTrainingService(store)
		_, err := svc.Register(ctx, uuid.New(), uuid.New(), nil)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("pelatihan sudah dimulai", func(t *testing.T) {
		store := newFakeStore()
		svc := NewTrainingService(store)
		tr := store.addTraining(10, constants.PelatihanUpcoming, time.Now().Add(-time.Hour))

		_, err := svc.Register(ctx, tr.PelatihanID, uuid.New(), nil)
		assert.ErrorIs(t, err, ErrTrainingEnded)
	})

	t.Run("pelatihan dibatalkan", func(t *testing.T) {
		store := newFakeStore()
		svc := NewTrainingService(store)
		tr := store.addTraining(10, constants.PelatihanCancelled, futureStart())

		_, err := svc.Register(ctx, tr.PelatihanID, uuid.New(), nil)
		assert.ErrorIs(t, err, ErrTrainingCancelled)
	})

	t.Run("daftar dua kali user yang sama", func(t *testing.T) {
		store := newFakeStore()
		svc := NewTrainingService(store)
		tr := store.addTraining(10, constants.PelatihanUpcoming, futureStart())
		user := uuid.New()

		_, err := svc.Register(ctx, tr.PelatihanID, user, nil)
		require.NoError(t, err)
		_, err = svc.Register(ctx, tr.PelatihanID, user, nil)
		assert.ErrorIs(t, err, ErrAlreadyRegistered)
	})

	t.Run("duplikat dilaporkan sebelum kuota penuh", func(t *testing.T) {
		// user yang sudah terdaftar di pelatihan penuh harus dapat
		// AlreadyRegistered, bukan QuotaExceeded
		store := newFakeStore()
		svc := NewTrainingService(store)
		tr := store.addTraining(1, constants.PelatihanUpcoming, futureStart())
		user := uuid.New()

		_, err := svc.Register(ctx, tr.PelatihanID, user, nil)
		require.NoError(t, err)
		_, err = svc.Register(ctx, tr.PelatihanID, user, nil)
		assert.ErrorIs(t, err, ErrAlreadyRegistered)
	})

	t.Run("kuota penuh", func(t *testing.T) {
		store := newFakeStore()
		svc := NewTrainingService(store)
		tr := store.addTraining(2, constants.PelatihanUpcoming, futureStart())

		for i := 0; i < 2; i++ {
			_, err := svc.Register(ctx, tr.PelatihanID, uuid.New(), nil)
			require.NoError(t, err)
		}
		_, err := svc.Register(ctx, tr.PelatihanID, uuid.New(), nil)
		assert.ErrorIs(t, err, ErrQuotaExceeded)
	})

	t.Run("kursi lepas setelah pendaftar ditolak", func(t *testing.T) {
		store := newFakeStore()
		svc := NewTrainingService(store)
		tr := store.addTraining(1, constants.PelatihanUpcoming, futureStart())

		p, err := svc.Register(ctx, tr.PelatihanID, uuid.New(), nil)
		require.NoError(t, err)

		// penuh
		_, err = svc.Register(ctx, tr.PelatihanID, uuid.New(), nil)
		require.ErrorIs(t, err, ErrQuotaExceeded)

		// rejected tidak menempati kursi, pendaftar berikutnya masuk
		require.NoError(t, svc.UpdateParticipantStatus(ctx, p.PendaftarID, constants.PendaftarRejected, nil))
		_, err = svc.Register(ctx, tr.PelatihanID, uuid.New(), nil)
		assert.NoError(t, err)
	})
}

// Properti kunci engine pendaftaran: N pendaftaran serentak pada kuota K < N
// menghasilkan tepat K sukses dan N-K gagal kuota. Fake store memegang lock
// transaksi selama cek kuota + insert, setara SELECT ... FOR UPDATE di
// implementasi Postgres.
func TestRegister_ConcurrentQuota(t *testing.T) {
	const (
		quota   = 5
		callers = 40
	)

	ctx := context.Background()
	store := newFakeStore()
	svc := NewTrainingService(store)
	tr := store.addTraining(quota, constants.PelatihanUpcoming, futureStart())

	var wg sync.WaitGroup
	errs := make([]error, callers)
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, err := svc.Register(ctx, tr.PelatihanID, uuid.New(), nil)
			errs[i] = err
		}(i)
	}
	close(start)
	wg.Wait()

	var ok, full int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrQuotaExceeded):
			full++
		default:
			t.Fatalf("error tak terduga: %v", err)
		}
	}
	assert.Equal(t, quota, ok)
	assert.Equal(t, callers-quota, full)

	used, err := store.CountActiveRegistrations(ctx, tr.PelatihanID)
	require.NoError(t, err)
	assert.Equal(t, int64(quota), used)
}

/* =========================
   Availability
   ========================= */

func TestGetAvailability(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewTrainingService(store)
	tr := store.addTraining(3, constants.PelatihanUpcoming, futureStart())

	a, err := svc.GetAvailability(ctx, tr.PelatihanID)
	require.NoError(t, err)
	assert.Equal(t, Availability{Quota: 3, Used: 0, Available: 3}, *a)

	p1, err := svc.Register(ctx, tr.PelatihanID, uuid.New(), nil)
	require.NoError(t, err)
	_, err = svc.Register(ctx, tr.PelatihanID, uuid.New(), nil)
	require.NoError(t, err)

	a, err = svc.GetAvailability(ctx, tr.PelatihanID)
	require.NoError(t, err)
	assert.Equal(t, Availability{Quota: 3, Used: 2, Available: 1}, *a)

	// approved tetap menempati kursi, rejected melepasnya
	require.NoError(t, svc.UpdateParticipantStatus(ctx, p1.PendaftarID, constants.PendaftarApproved, nil))
	a, err = svc.GetAvailability(ctx, tr.PelatihanID)
	require.NoError(t, err)
	assert.Equal(t, 2, a.Used)

	require.NoError(t, svc.UpdateParticipantStatus(ctx, p1.PendaftarID, constants.PendaftarRejected, nil))
	a, err = svc.GetAvailability(ctx, tr.PelatihanID)
	require.NoError(t, err)
	assert.Equal(t, Availability{Quota: 3, Used: 1, Available: 2}, *a)

	_, err = svc.GetAvailability(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetAvailability_NeverNegative(t *testing.T) {
	// kuota diturunkan di bawah jumlah pendaftar aktif: available dijepit 0
	ctx := context.Background()
	store := newFakeStore()
	svc := NewTrainingService(store)
	tr := store.addTraining(3, constants.PelatihanUpcoming, futureStart())

	for i := 0; i < 3; i++ {
		_, err := svc.Register(ctx, tr.PelatihanID, uuid.New(), nil)
		require.NoError(t, err)
	}

	tr.PelatihanQuota = 1
	require.NoError(t, svc.UpdateTraining(ctx, tr))

	a, err := svc.GetAvailability(ctx, tr.PelatihanID)
	require.NoError(t, err)
	assert.Equal(t, Availability{Quota: 1, Used: 3, Available: 0}, *a)
}

/* =========================
   Status pendaftar & listing
   ========================= */

func TestUpdateParticipantStatus(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewTrainingService(store)
	tr := store.addTraining(5, constants.PelatihanUpcoming, futureStart())

	p, err := svc.Register(ctx, tr.PelatihanID, uuid.New(), nil)
	require.NoError(t, err)

	note := "hadir penuh"
	require.NoError(t, svc.UpdateParticipantStatus(ctx, p.PendaftarID, constants.PendaftarAttended, &note))
	got, err := svc.GetRegistration(ctx, p.PendaftarID)
	require.NoError(t, err)
	assert.Equal(t, constants.PendaftarAttended, got.PendaftarStatus)
	require.NotNil(t, got.PendaftarNote)
	assert.Equal(t, note, *got.PendaftarNote)

	assert.ErrorIs(t, svc.UpdateParticipantStatus(ctx, p.PendaftarID, "hadir", nil), ErrInvalidStatus)
	assert.ErrorIs(t, svc.UpdateParticipantStatus(ctx, uuid.New(), constants.PendaftarApproved, nil), ErrNotFound)
}

func TestListParticipants(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewTrainingService(store)
	tr := store.addTraining(10, constants.PelatihanUpcoming, futureStart())

	var first *model.PendaftarPelatihanModel
	for i := 0; i < 4; i++ {
		p, err := svc.Register(ctx, tr.PelatihanID, uuid.New(), nil)
		require.NoError(t, err)
		if first == nil {
			first = p
		}
	}
	require.NoError(t, svc.UpdateParticipantStatus(ctx, first.PendaftarID, constants.PendaftarApproved, nil))

	rows, total, err := svc.ListParticipants(ctx, tr.PelatihanID, "", 1, 25)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, rows, 4)

	rows, total, err = svc.ListParticipants(ctx, tr.PelatihanID, constants.PendaftarApproved, 1, 25)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, first.PendaftarID, rows[0].PendaftarID)

	_, _, err = svc.ListParticipants(ctx, tr.PelatihanID, "bukan-status", 1, 25)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, _, err = svc.ListParticipants(ctx, uuid.New(), "", 1, 25)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTraining(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewTrainingService(store)
	tr := store.addTraining(5, constants.PelatihanUpcoming, futureStart())

	require.NoError(t, svc.DeleteTraining(ctx, tr.PelatihanID))
	assert.ErrorIs(t, svc.DeleteTraining(ctx, tr.PelatihanID), ErrNotFound)
}
