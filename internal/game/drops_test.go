package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Garsondee/Mags/internal/game"
	"github.com/Garsondee/Mags/internal/game/mocks"
)

func TestDropTable_WeightsFromRarity(t *testing.T) {
	tbl := game.NewDropTable([]game.AmmoDef{game.AmmoRifle, game.AmmoFire, game.AmmoBomb, game.AmmoWeak})
	assert.Equal(t, 3, tbl.Len(), "shop-only rounds are skipped")
	assert.InDelta(t, 1.0+0.6+0.2, tbl.TotalWeight(), 1e-9)
}

func TestDropTable_RollPicksByWeightAndRollsUses(t *testing.T) {
	ctrl := gomock.NewController(t)
	rng := mocks.NewMockRand(ctrl)

	tbl := game.NewDropTable([]game.AmmoDef{game.AmmoRifle, game.AmmoBomb})
	gomock.InOrder(
		rng.EXPECT().Float64().Return(0.5),
		rng.EXPECT().Intn(3).Return(2), // Rifle drops with 2..4 uses
	)

	def, ok := tbl.Roll(rng)
	require.True(t, ok)
	assert.Equal(t, "Rifle", def.Name)
	assert.Equal(t, 4, def.UsesRemaining)
}

func TestDropTable_RollLastEntryFixedUses(t *testing.T) {
	ctrl := gomock.NewController(t)
	rng := mocks.NewMockRand(ctrl)

	tbl := game.NewDropTable([]game.AmmoDef{game.AmmoRifle, game.AmmoBomb})
	// 0.99 * 1.2 lands inside the Bomb's slice; a fixed 1..1 range needs no Intn.
	rng.EXPECT().Float64().Return(0.99)

	def, ok := tbl.Roll(rng)
	require.True(t, ok)
	assert.Equal(t, "Bomb", def.Name)
	assert.Equal(t, 1, def.UsesRemaining)
}

func TestDropTable_EmptyTableNeverRolls(t *testing.T) {
	ctrl := gomock.NewController(t)
	rng := mocks.NewMockRand(ctrl) // any call fails the test

	_, ok := game.NewDropTable([]game.AmmoDef{game.AmmoWeak}).Roll(rng)
	assert.False(t, ok)
}

func TestDropTable_DefaultCoversCatalogue(t *testing.T) {
	tbl := game.DefaultDropTable()
	assert.Equal(t, len(game.DroppableAmmo()), tbl.Len())
}
