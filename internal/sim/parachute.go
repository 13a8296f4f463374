package sim

// Parachute computes the terminal payout, in millions, from tenure length,
// lifetime profit and the moral ledger. Evil discounts the package; it
// never goes negative.
func Parachute(t Tenure) int {
	p := t.QuartersSurvived*5 + t.TotalProfit/10 - t.EvilScore/4
	if p < 0 {
		p = 0
	}
	return p
}
