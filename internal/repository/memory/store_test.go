package memory

import (
	"context"
	"testing"

	"github.com/frontandrew/taxi/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedManufacturer(t *testing.T, s *Store, name string) *domain.Manufacturer {
	t.Helper()
	m := &domain.Manufacturer{Name: name, Country: "Japan"}
	require.NoError(t, s.Manufacturers().Create(context.Background(), m))
	return m
}

func seedDriver(t *testing.T, s *Store, username, license string) *domain.Driver {
	t.Helper()
	d := &domain.Driver{Username: username, LicenseNumber: license, IsActive: true}
	require.NoError(t, s.Drivers().Create(context.Background(), d))
	return d
}

func TestManufacturers_UniqueName(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedManufacturer(t, s, "Toyota")

	err := s.Manufacturers().Create(ctx, &domain.Manufacturer{Name: "Toyota", Country: "USA"})
	assert.ErrorIs(t, err, domain.ErrUniqueViolation)

	other := seedManufacturer(t, s, "Honda")
	other.Name = "Toyota"
	assert.ErrorIs(t, s.Manufacturers().Update(ctx, other), domain.ErrManufacturerAlreadyExists)
}

func TestManufacturers_DeleteRestrict(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	m := seedManufacturer(t, s, "Toyota")
	car := &domain.Car{Model: "Camry", ManufacturerID: m.ID}
	require.NoError(t, s.Cars().Create(ctx, car))

	err := s.Manufacturers().Delete(ctx, m.ID)
	assert.ErrorIs(t, err, domain.ErrIntegrityViolation)

	require.NoError(t, s.Cars().Delete(ctx, car.ID))
	assert.NoError(t, s.Manufacturers().Delete(ctx, m.ID))
	assert.ErrorIs(t, s.Manufacturers().Delete(ctx, m.ID), domain.ErrNotFound)
}

func TestCars_SearchAndOrder(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	m := seedManufacturer(t, s, "Toyota")
	for _, model := range []string{"Camry", "Corolla", "Prius"} {
		require.NoError(t, s.Cars().Create(ctx, &domain.Car{Model: model, ManufacturerID: m.ID}))
	}

	all, err := s.Cars().List(ctx, domain.NewSearchFilter(""), 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Camry", all[0].Model)
	assert.Equal(t, "Prius", all[2].Model)
	require.NotNil(t, all[0].Manufacturer)
	assert.Equal(t, "Toyota", all[0].Manufacturer.Name)

	found, err := s.Cars().List(ctx, domain.NewSearchFilter("CAM"), 0, 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Camry", found[0].Model)

	paged, err := s.Cars().List(ctx, domain.NewSearchFilter(""), 2, 2)
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "Prius", paged[0].Model)

	count, err := s.Cars().Count(ctx, domain.NewSearchFilter("co"))
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestCarDrivers_SetSemantics(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	m := seedManufacturer(t, s, "Toyota")
	d1 := seedDriver(t, s, "johndoe", "AB12345")
	d2 := seedDriver(t, s, "janedoe", "XY67890")
	car := &domain.Car{Model: "Camry", ManufacturerID: m.ID}
	require.NoError(t, s.Cars().Create(ctx, car))

	links := s.CarDrivers()
	require.NoError(t, links.Add(ctx, car.ID, d1.ID))
	require.NoError(t, links.Add(ctx, car.ID, d2.ID))
	require.NoError(t, links.Add(ctx, car.ID, d1.ID))

	ids, err := links.DriverIDs(ctx, car.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{d1.ID, d2.ID}, ids)

	require.NoError(t, links.Remove(ctx, car.ID, d1.ID))
	ids, err = links.DriverIDs(ctx, car.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{d2.ID}, ids)

	assert.ErrorIs(t, links.Remove(ctx, car.ID, d1.ID), domain.ErrNotFound)
	assert.ErrorIs(t, links.Add(ctx, car.ID, uuid.New()), domain.ErrIntegrityViolation)

	// удаление водителя убирает только его привязки
	require.NoError(t, s.Drivers().Delete(ctx, d2.ID))
	ids, err = links.DriverIDs(ctx, car.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
	_, err = s.Cars().GetByID(ctx, car.ID)
	assert.NoError(t, err)
}

func TestCars_UpdateReplacesDriversOnlyWhenGiven(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	m := seedManufacturer(t, s, "Toyota")
	d1 := seedDriver(t, s, "johndoe", "AB12345")
	d2 := seedDriver(t, s, "janedoe", "XY67890")
	car := &domain.Car{Model: "Camry", ManufacturerID: m.ID, DriverIDs: []uuid.UUID{d1.ID}}
	require.NoError(t, s.Cars().Create(ctx, car))

	require.NoError(t, s.Cars().Update(ctx, &domain.Car{ID: car.ID, Model: "Camry XV70", ManufacturerID: m.ID}))
	ids, _ := s.CarDrivers().DriverIDs(ctx, car.ID)
	assert.Equal(t, []uuid.UUID{d1.ID}, ids)

	require.NoError(t, s.Cars().Update(ctx, &domain.Car{ID: car.ID, Model: "Camry XV70", ManufacturerID: m.ID, DriverIDs: []uuid.UUID{d2.ID}}))
	ids, _ = s.CarDrivers().DriverIDs(ctx, car.ID)
	assert.Equal(t, []uuid.UUID{d2.ID}, ids)

	err := s.Cars().Update(ctx, &domain.Car{ID: car.ID, Model: "Camry", ManufacturerID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrIntegrityViolation)
}

func TestDrivers_UniqueAndLicenseUpdate(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	d1 := seedDriver(t, s, "johndoe", "AB12345")
	seedDriver(t, s, "janedoe", "XY67890")

	err := s.Drivers().Create(ctx, &domain.Driver{Username: "johndoe", LicenseNumber: "ZZ00000"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	err = s.Drivers().UpdateLicenseNumber(ctx, d1.ID, "XY67890")
	assert.ErrorIs(t, err, domain.ErrLicenseNumberTaken)

	require.NoError(t, s.Drivers().UpdateLicenseNumber(ctx, d1.ID, "CD99999"))
	got, err := s.Drivers().GetByID(ctx, d1.ID)
	require.NoError(t, err)
	assert.Equal(t, "CD99999", got.LicenseNumber)
	assert.Equal(t, "johndoe", got.Username)
}
