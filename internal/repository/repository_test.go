package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kadro-api/internal/domain"
	"github.com/kadro-api/internal/repository"
)

func ptr[T any](v T) *T { return &v }

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	goose.SetLogger(goose.NopLogger())
	require.NoError(t, repository.Migrate(sqlDB, "sqlite3"))
	return db
}

var stamp = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func newPosition(id, dept, name string) domain.Position {
	return domain.Position{
		ID:             id,
		Department:     dept,
		Name:           name,
		Status:         domain.StatusPermanent,
		LastModifiedBy: "test",
		LastModifiedAt: stamp,
	}
}

func newPersonnel(id string, org domain.Organization, registry string) domain.Personnel {
	return domain.Personnel{
		ID:             id,
		Organization:   org,
		FirstName:      "Ayşe",
		LastName:       "Yılmaz",
		RegistryNumber: registry,
		Status:         domain.PersonnelCivilServant,
		LastModifiedBy: "test",
		LastModifiedAt: stamp,
	}
}

func TestPositionRepository_ApplyBatchAndList(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewPositionRepository(setupDB(t))

	head := newPosition("a", "Bilgi İşlem", "Daire Başkanı")
	chief := newPosition("b", "Bilgi İşlem", "Şef")
	chief.ReportsTo = ptr("a")
	chief.StartDate = ptr(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.ApplyBatch(ctx, []domain.Position{head, chief}, nil))

	chief.Status = domain.StatusVacant
	chief.StartDate = nil
	require.NoError(t, repo.ApplyBatch(ctx, nil, []domain.Position{chief}))

	positions, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, positions, 2)
	assert.Equal(t, "a", positions[0].ID)
	assert.Equal(t, domain.StatusVacant, positions[1].Status)
	assert.Nil(t, positions[1].StartDate)
	require.NotNil(t, positions[1].ReportsTo)
	assert.Equal(t, "a", *positions[1].ReportsTo)
}

func TestPositionRepository_ApplyBatchIsAtomic(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewPositionRepository(setupDB(t))

	require.NoError(t, repo.Create(ctx, ptr(newPosition("a", "D", "A"))))

	err := repo.ApplyBatch(ctx, []domain.Position{newPosition("b", "D", "B"), newPosition("a", "D", "A2")}, nil)
	require.Error(t, err)

	positions, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, positions, 1)
}

func TestPositionRepository_DeleteClearsChildren(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewPositionRepository(setupDB(t))

	child := newPosition("b", "D", "B")
	child.ReportsTo = ptr("a")
	require.NoError(t, repo.ApplyBatch(ctx, []domain.Position{newPosition("a", "D", "A"), child}, nil))

	require.NoError(t, repo.Delete(ctx, "a"))

	got, err := repo.GetByID(ctx, "b")
	require.NoError(t, err)
	assert.Nil(t, got.ReportsTo)

	_, err = repo.GetByID(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrPositionNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "a"), domain.ErrPositionNotFound)
}

func TestPositionRepository_ExistsByKey(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewPositionRepository(setupDB(t))
	p := newPosition("a", "Bilgi İşlem", "Şef")
	require.NoError(t, repo.Create(ctx, &p))

	candidate := newPosition("", "BİLGİ İŞLEM", "şef")
	exists, err := repo.ExistsByKey(ctx, candidate.Key(), nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByKey(ctx, candidate.Key(), ptr("a"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPersonnelRepository_RegistryUniquePerOrganization(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewPersonnelRepository(setupDB(t))

	require.NoError(t, repo.Create(ctx, ptr(newPersonnel("p1", domain.OrgMerkez, "239089"))))
	require.NoError(t, repo.Create(ctx, ptr(newPersonnel("p2", domain.OrgTasra, "239089"))))

	err := repo.Create(ctx, ptr(newPersonnel("p3", domain.OrgMerkez, "239089")))
	assert.ErrorIs(t, err, domain.ErrDuplicateRegistry)

	exists, err := repo.ExistsByRegistry(ctx, domain.OrgTasra, "239089")
	require.NoError(t, err)
	assert.True(t, exists)

	merkez, err := repo.List(ctx, domain.OrgMerkez)
	require.NoError(t, err)
	require.Len(t, merkez, 1)
	assert.Equal(t, "p1", merkez[0].ID)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPersonnelRepository_DeleteClearsAssignments(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	personnel := repository.NewPersonnelRepository(db)
	positions := repository.NewPositionRepository(db)
	tasra := repository.NewTasraPositionRepository(db)

	require.NoError(t, personnel.ApplyBatch(ctx, []domain.Personnel{newPersonnel("p1", domain.OrgMerkez, "1001")}))

	pos := newPosition("a", "D", "A")
	pos.AssignedPersonnelID = ptr("p1")
	require.NoError(t, positions.Create(ctx, &pos))

	tp := domain.TasraPosition{
		ID:                  "t1",
		Unit:                "Ankara İl Müdürlüğü",
		Name:                "İl Müdürü",
		Status:              domain.StatusPermanent,
		AssignedPersonnelID: ptr("p1"),
		LastModifiedAt:      stamp,
	}
	require.NoError(t, tasra.ApplyBatch(ctx, []domain.TasraPosition{tp}, nil))

	require.NoError(t, personnel.Delete(ctx, "p1"))

	gotPos, err := positions.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, gotPos.AssignedPersonnelID)

	gotTasra, err := tasra.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Nil(t, gotTasra.AssignedPersonnelID)

	_, err = personnel.GetByID(ctx, "p1")
	assert.ErrorIs(t, err, domain.ErrPersonnelNotFound)
}

func TestTasraPositionRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewTasraPositionRepository(setupDB(t))

	tp := domain.TasraPosition{
		ID:               "t1",
		Unit:             "İzmir İl Müdürlüğü",
		Name:             "İl Müdürü",
		Status:           domain.StatusProxy,
		OriginalTitle:    ptr("Şube Müdürü"),
		ReceivesProxyPay: true,
		LastModifiedAt:   stamp,
	}
	require.NoError(t, repo.Create(ctx, &tp))

	tp.ReceivesProxyPay = false
	require.NoError(t, repo.Update(ctx, &tp))

	got, err := repo.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.False(t, got.ReceivesProxyPay)
	assert.Equal(t, "Şube Müdürü", *got.OriginalTitle)

	exists, err := repo.ExistsByKey(ctx, tp.Key(), nil)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.Delete(ctx, "t1"))
	assert.ErrorIs(t, repo.Delete(ctx, "t1"), domain.ErrPositionNotFound)
}
