package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseProductSort(t *testing.T) {
	require.Equal(t, SortPriceAsc, ParseProductSort("price_asc"))
	require.Equal(t, SortPriceDesc, ParseProductSort("price_desc"))
	require.Equal(t, SortNewest, ParseProductSort("new"))
	require.Equal(t, SortDefault, ParseProductSort(""))

	// Unknown keys fall back to the default ordering instead of failing.
	require.Equal(t, SortDefault, ParseProductSort("cheapest"))
	require.Equal(t, SortDefault, ParseProductSort("PRICE_ASC"))
}

func TestDecrementStock(t *testing.T) {
	require.Equal(t, 7, DecrementStock(10, 3))
	require.Equal(t, 0, DecrementStock(5, 5))

	// Oversold lines clamp at zero rather than going negative.
	require.Equal(t, 0, DecrementStock(2, 9))
}
