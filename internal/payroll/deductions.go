package payroll

// Worker-share deduction rates over the taxable base, as percentages.
// AFP rates are the 10% pension quota plus each administrator's fee.
var afpRates = map[string]float64{
	"Capital":   11.44,
	"Cuprum":    11.44,
	"Habitat":   11.27,
	"Modelo":    10.58,
	"PlanVital": 11.16,
	"ProVida":   11.45,
	"Uno":       10.49,
}

// The legal health quota. ISAPRE plans can cost more, but the mandatory
// worker share withheld through payroll is the same 7%.
var healthRates = map[string]float64{
	"FONASA": 7.0,
	"ISAPRE": 7.0,
}

// AFC worker share on open-ended contracts.
const unemploymentRate = 0.6

func afpRate(provider string) (float64, bool) {
	rate, ok := afpRates[provider]
	return rate, ok
}

func healthRate(insurer string) (float64, bool) {
	rate, ok := healthRates[insurer]
	return rate, ok
}
