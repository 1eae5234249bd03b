package service_test

import (
	"context"
	"slices"

	"github.com/kadro-api/internal/domain"
)

type fakePositionRepo struct {
	items   []domain.Position
	batches int
}

func (m *fakePositionRepo) List(ctx context.Context) ([]domain.Position, error) {
	return slices.Clone(m.items), nil
}

func (m *fakePositionRepo) GetByID(ctx context.Context, id string) (*domain.Position, error) {
	for i := range m.items {
		if m.items[i].ID == id {
			p := m.items[i]
			return &p, nil
		}
	}
	return nil, domain.ErrPositionNotFound
}

func (m *fakePositionRepo) Create(ctx context.Context, p *domain.Position) error {
	m.items = append(m.items, *p)
	return nil
}

func (m *fakePositionRepo) Update(ctx context.Context, p *domain.Position) error {
	for i := range m.items {
		if m.items[i].ID == p.ID {
			m.items[i] = *p
			return nil
		}
	}
	return domain.ErrPositionNotFound
}

func (m *fakePositionRepo) Delete(ctx context.Context, id string) error {
	idx := slices.IndexFunc(m.items, func(p domain.Position) bool { return p.ID == id })
	if idx < 0 {
		return domain.ErrPositionNotFound
	}
	m.items = slices.Delete(m.items, idx, idx+1)
	for i := range m.items {
		if m.items[i].ReportsTo != nil && *m.items[i].ReportsTo == id {
			m.items[i].ReportsTo = nil
		}
	}
	return nil
}

func (m *fakePositionRepo) ExistsByKey(ctx context.Context, key string, excludeID *string) (bool, error) {
	for i := range m.items {
		if excludeID != nil && m.items[i].ID == *excludeID {
			continue
		}
		if m.items[i].Key() == key {
			return true, nil
		}
	}
	return false, nil
}

func (m *fakePositionRepo) ApplyBatch(ctx context.Context, inserts, updates []domain.Position) error {
	m.batches++
	m.items = append(m.items, inserts...)
	for i := range updates {
		if err := m.Update(ctx, &updates[i]); err != nil {
			return err
		}
	}
	return nil
}

type fakeTasraRepo struct {
	items []domain.TasraPosition
}

func (m *fakeTasraRepo) List(ctx context.Context) ([]domain.TasraPosition, error) {
	return slices.Clone(m.items), nil
}

func (m *fakeTasraRepo) GetByID(ctx context.Context, id string) (*domain.TasraPosition, error) {
	for i := range m.items {
		if m.items[i].ID == id {
			p := m.items[i]
			return &p, nil
		}
	}
	return nil, domain.ErrPositionNotFound
}

func (m *fakeTasraRepo) Create(ctx context.Context, p *domain.TasraPosition) error {
	m.items = append(m.items, *p)
	return nil
}

func (m *fakeTasraRepo) Update(ctx context.Context, p *domain.TasraPosition) error {
	for i := range m.items {
		if m.items[i].ID == p.ID {
			m.items[i] = *p
			return nil
		}
	}
	return domain.ErrPositionNotFound
}

func (m *fakeTasraRepo) Delete(ctx context.Context, id string) error {
	idx := slices.IndexFunc(m.items, func(p domain.TasraPosition) bool { return p.ID == id })
	if idx < 0 {
		return domain.ErrPositionNotFound
	}
	m.items = slices.Delete(m.items, idx, idx+1)
	return nil
}

func (m *fakeTasraRepo) ExistsByKey(ctx context.Context, key string, excludeID *string) (bool, error) {
	for i := range m.items {
		if excludeID != nil && m.items[i].ID == *excludeID {
			continue
		}
		if m.items[i].Key() == key {
			return true, nil
		}
	}
	return false, nil
}

func (m *fakeTasraRepo) ApplyBatch(ctx context.Context, inserts, updates []domain.TasraPosition) error {
	m.items = append(m.items, inserts...)
	for i := range updates {
		if err := m.Update(ctx, &updates[i]); err != nil {
			return err
		}
	}
	return nil
}

type fakePersonnelRepo struct {
	items []domain.Personnel
}

func (m *fakePersonnelRepo) List(ctx context.Context, org domain.Organization) ([]domain.Personnel, error) {
	var result []domain.Personnel
	for _, p := range m.items {
		if p.Organization == org {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *fakePersonnelRepo) ListAll(ctx context.Context) ([]domain.Personnel, error) {
	return slices.Clone(m.items), nil
}

func (m *fakePersonnelRepo) GetByID(ctx context.Context, id string) (*domain.Personnel, error) {
	for i := range m.items {
		if m.items[i].ID == id {
			p := m.items[i]
			return &p, nil
		}
	}
	return nil, domain.ErrPersonnelNotFound
}

func (m *fakePersonnelRepo) Create(ctx context.Context, p *domain.Personnel) error {
	if exists, _ := m.ExistsByRegistry(ctx, p.Organization, p.RegistryNumber); exists {
		return domain.ErrDuplicateRegistry
	}
	m.items = append(m.items, *p)
	return nil
}

func (m *fakePersonnelRepo) Delete(ctx context.Context, id string) error {
	idx := slices.IndexFunc(m.items, func(p domain.Personnel) bool { return p.ID == id })
	if idx < 0 {
		return domain.ErrPersonnelNotFound
	}
	m.items = slices.Delete(m.items, idx, idx+1)
	return nil
}

func (m *fakePersonnelRepo) ExistsByRegistry(ctx context.Context, org domain.Organization, registryNumber string) (bool, error) {
	for _, p := range m.items {
		if p.Organization == org && p.RegistryNumber == registryNumber {
			return true, nil
		}
	}
	return false, nil
}

func (m *fakePersonnelRepo) ApplyBatch(ctx context.Context, inserts []domain.Personnel) error {
	m.items = append(m.items, inserts...)
	return nil
}
