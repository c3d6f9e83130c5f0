package dice

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// lamportsDecimals is the number of decimal places of one SOL in lamports.
const lamportsDecimals = 9

// FormatSOL renders lamports as a SOL amount, e.g. 1500000000 -> "1.5".
func FormatSOL(lamports uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(lamports), -lamportsDecimals).String()
}
