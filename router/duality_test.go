package router

import (
	"context"
	"testing"

	"github.com/luxfi/sui-arb/model"
	"github.com/stretchr/testify/require"
)

// TestFindBuyPathsIsReversedFlippedSellPaths exercises spec.md §4.D
// invariant 2 / §8 scenario S5: find_buy_paths(C) must equal
// find_sell_paths(C) with each path reversed and each leg flipped.
func TestFindBuyPathsIsReversedFlippedSellPaths(t *testing.T) {
	const target model.Coin = "0x2::coinc::COINC"
	const mid model.Coin = "0x2::coinb::COINB"

	s := newFakeSearcher()
	s.add(&fakeDex{proto: "cetus", poolID: model.ObjectID{1}, coinIn: target, coinOut: mid, liq: 5000, rate: 10})
	s.add(&fakeDex{proto: "cetus", poolID: model.ObjectID{2}, coinIn: mid, coinOut: model.NativeCoin, liq: 5000, rate: 10})
	// A second, direct pegged-style route straight to native.
	s.add(&fakeDex{proto: "turbos", poolID: model.ObjectID{3}, coinIn: target, coinOut: model.NativeCoin, liq: 8000, rate: 9})

	sellPaths, err := FindSellPaths(context.Background(), s, target)
	require.NoError(t, err)
	require.NotEmpty(t, sellPaths)

	buyPaths, err := FindBuyPaths(context.Background(), s, target)
	require.NoError(t, err)
	require.Len(t, buyPaths, len(sellPaths))

	for i, sell := range sellPaths {
		buy := buyPaths[i]
		require.Equal(t, len(sell.Dexes), len(buy.Dexes))

		// Buy path is sell path walked backwards...
		for j, leg := range buy.Dexes {
			sellLeg := sell.Dexes[len(sell.Dexes)-1-j]
			require.Equal(t, sellLeg.PoolObjectID(), leg.PoolObjectID())
			// ...with coin_in/coin_out flipped on every leg.
			require.Equal(t, sellLeg.CoinOutType(), leg.CoinInType())
			require.Equal(t, sellLeg.CoinInType(), leg.CoinOutType())
			require.Equal(t, !sellLeg.IsA2B(), leg.IsA2B())
		}

		if !sell.Empty() {
			require.Equal(t, sell.CoinOut(), buy.CoinIn())
			require.Equal(t, sell.CoinIn(), buy.CoinOut())
		}
	}
}

// TestFindBuyPathsNativeCoinIsTrivial covers the degenerate case where
// the target coin already is the native coin: both directions are the
// single empty path.
func TestFindBuyPathsNativeCoinIsTrivial(t *testing.T) {
	s := newFakeSearcher()

	sellPaths, err := FindSellPaths(context.Background(), s, model.NativeCoin)
	require.NoError(t, err)
	require.Len(t, sellPaths, 1)
	require.True(t, sellPaths[0].Empty())

	buyPaths, err := FindBuyPaths(context.Background(), s, model.NativeCoin)
	require.NoError(t, err)
	require.Len(t, buyPaths, 1)
	require.True(t, buyPaths[0].Empty())
}
