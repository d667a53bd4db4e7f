package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/entity"
	domainErrors "github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/errors"
)

func newPlaceUseCase(env *testEnv) *PlaceUseCase {
	return NewPlaceUseCase(env.places, env.authz)
}

func TestPlaceCreate(t *testing.T) {
	env := newTestEnv()
	uc := newPlaceUseCase(env)

	admin := env.addUser("admin", "admin@example.com", entity.UserRoleAdmin)
	user := env.addUser("ahmed", "ahmed@example.com", entity.UserRoleUser)

	t.Run("admin only", func(t *testing.T) {
		_, err := uc.Create(context.Background(), env.identity(user), CreatePlaceParams{
			Name: "Downtown Pitch", Location: "Cairo", PlaceType: entity.PlaceTypeFive,
		})
		requireDomainCode(t, err, domainErrors.KindForbidden, domainErrors.Forbidden)
	})

	t.Run("success", func(t *testing.T) {
		place, err := uc.Create(context.Background(), env.identity(admin), CreatePlaceParams{
			Name: "  Downtown Pitch  ", Location: "Cairo", PlaceType: entity.PlaceTypeSeven,
		})
		require.NoError(t, err)
		assert.Equal(t, "Downtown Pitch", place.Name)
		assert.Equal(t, 14, place.PlaceType.Capacity())
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := uc.Create(context.Background(), env.identity(admin), CreatePlaceParams{
			Location: "Cairo", PlaceType: entity.PlaceTypeFive,
		})
		requireDomainCode(t, err, domainErrors.KindValidation, domainErrors.InvalidPlaceName)
	})

	t.Run("empty location", func(t *testing.T) {
		_, err := uc.Create(context.Background(), env.identity(admin), CreatePlaceParams{
			Name: "Pitch", PlaceType: entity.PlaceTypeFive,
		})
		requireDomainCode(t, err, domainErrors.KindValidation, domainErrors.InvalidPlaceLocation)
	})

	t.Run("invalid type", func(t *testing.T) {
		_, err := uc.Create(context.Background(), env.identity(admin), CreatePlaceParams{
			Name: "Pitch", Location: "Cairo", PlaceType: entity.PlaceType("NINE"),
		})
		requireDomainCode(t, err, domainErrors.KindValidation, domainErrors.InvalidPlaceType)
	})
}

func TestPlaceUpdateAndDelete(t *testing.T) {
	env := newTestEnv()
	uc := newPlaceUseCase(env)

	admin := env.addUser("admin", "admin@example.com", entity.UserRoleAdmin)
	user := env.addUser("ahmed", "ahmed@example.com", entity.UserRoleUser)
	place := env.addPlace("Downtown Pitch", entity.PlaceTypeFive)

	t.Run("no data", func(t *testing.T) {
		_, err := uc.Update(context.Background(), env.identity(admin), place.ID, UpdatePlaceParams{})
		requireDomainCode(t, err, domainErrors.KindNoData, domainErrors.NoData)
	})

	t.Run("update type", func(t *testing.T) {
		eleven := entity.PlaceTypeEleven
		updated, err := uc.Update(context.Background(), env.identity(admin), place.ID, UpdatePlaceParams{PlaceType: &eleven})
		require.NoError(t, err)
		assert.Equal(t, entity.PlaceTypeEleven, updated.PlaceType)
	})

	t.Run("delete admin only", func(t *testing.T) {
		err := uc.Delete(context.Background(), env.identity(user), place.ID)
		requireDomainCode(t, err, domainErrors.KindForbidden, domainErrors.Forbidden)

		require.NoError(t, uc.Delete(context.Background(), env.identity(admin), place.ID))

		err = uc.Delete(context.Background(), env.identity(admin), place.ID)
		requireDomainCode(t, err, domainErrors.KindNotFound, domainErrors.PlaceNotFound)
	})
}

func TestPlaceFilter(t *testing.T) {
	env := newTestEnv()
	uc := newPlaceUseCase(env)

	user := env.addUser("ahmed", "ahmed@example.com", entity.UserRoleUser)
	env.addPlace("Downtown Pitch", entity.PlaceTypeFive)
	env.addPlace("Riverside Arena", entity.PlaceTypeEleven)

	places, err := uc.Filter(context.Background(), env.identity(user), entity.PlaceFilter{Name: "downtown"})
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "Downtown Pitch", places[0].Name)

	_, err = uc.Filter(context.Background(), env.identity(user), entity.PlaceFilter{PlaceType: entity.PlaceType("NINE")})
	requireDomainCode(t, err, domainErrors.KindValidation, domainErrors.InvalidPlaceType)

	_, err = uc.Filter(context.Background(), env.identity(user), entity.PlaceFilter{Name: "nowhere"})
	requireDomainCode(t, err, domainErrors.KindNoContent, domainErrors.NoContent)
}
