package sim

// Canonical scenario constructors. Defaults match the reference study:
// trials=2000, alpha=0.05. Each constructor fixes the data-generating
// process; the caller picks trials, alpha and seed.

// MeanType1Config simulates the mean test with no real effect: both groups
// share the same normal distribution, so every rejection is a false positive.
func MeanType1Config(nPerGroup int, mean, stdDev float64, trials int, alpha float64, seed int64) SimulationConfig {
	return SimulationConfig{
		NPerGroup: nPerGroup,
		Trials:    trials,
		Alpha:     alpha,
		Seed:      seed,
		GroupA:    NormalModel{Mean: mean, StdDev: stdDev},
		GroupB:    NormalModel{Mean: mean, StdDev: stdDev},
	}
}

// MeanPowerConfig simulates the mean test under a real effect meanB - meanA
func MeanPowerConfig(nPerGroup int, meanA, meanB, stdDev float64, trials int, alpha float64, seed int64) SimulationConfig {
	return SimulationConfig{
		NPerGroup: nPerGroup,
		Trials:    trials,
		Alpha:     alpha,
		Seed:      seed,
		GroupA:    NormalModel{Mean: meanA, StdDev: stdDev},
		GroupB:    NormalModel{Mean: meanB, StdDev: stdDev},
	}
}

// ConversionType1Config simulates the conversion test with both groups at
// the same true conversion probability.
func ConversionType1Config(nPerGroup int, rate float64, trials int, alpha float64, seed int64) SimulationConfig {
	return SimulationConfig{
		NPerGroup: nPerGroup,
		Trials:    trials,
		Alpha:     alpha,
		Seed:      seed,
		GroupA:    BernoulliModel{Rate: rate},
		GroupB:    BernoulliModel{Rate: rate},
	}
}

// ConversionPowerConfig simulates the conversion test when rateB differs from rateA
func ConversionPowerConfig(nPerGroup int, rateA, rateB float64, trials int, alpha float64, seed int64) SimulationConfig {
	return SimulationConfig{
		NPerGroup: nPerGroup,
		Trials:    trials,
		Alpha:     alpha,
		Seed:      seed,
		GroupA:    BernoulliModel{Rate: rateA},
		GroupB:    BernoulliModel{Rate: rateB},
	}
}

// RatioType1Config simulates the revenue-per-visitor test with identical
// purchase behavior in both groups.
func RatioType1Config(nPerGroup int, purchaseProb, purchaseAmount float64, trials int, alpha float64, seed int64) SimulationConfig {
	return SimulationConfig{
		NPerGroup: nPerGroup,
		Trials:    trials,
		Alpha:     alpha,
		Seed:      seed,
		GroupA:    RatioModel{PurchaseProb: purchaseProb, PurchaseAmount: purchaseAmount},
		GroupB:    RatioModel{PurchaseProb: purchaseProb, PurchaseAmount: purchaseAmount},
	}
}

// RatioPowerConfig simulates the revenue-per-visitor test when group B's
// purchase probability differs from group A's.
func RatioPowerConfig(nPerGroup int, purchaseProbA, purchaseProbB, purchaseAmount float64, trials int, alpha float64, seed int64) SimulationConfig {
	return SimulationConfig{
		NPerGroup: nPerGroup,
		Trials:    trials,
		Alpha:     alpha,
		Seed:      seed,
		GroupA:    RatioModel{PurchaseProb: purchaseProbA, PurchaseAmount: purchaseAmount},
		GroupB:    RatioModel{PurchaseProb: purchaseProbB, PurchaseAmount: purchaseAmount},
	}
}
