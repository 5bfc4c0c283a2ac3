package health

import (
	"context"
	"math"

	"github.com/msto63/viscocorrect/foundation/utils/mathx"
	"github.com/msto63/viscocorrect/internal/calculator"
	"github.com/msto63/viscocorrect/internal/calibration"
	"github.com/msto63/viscocorrect/pkg/core/config"
)

// CalibrationCheck reports whether the context finished loading. A
// context still loading when ctx ends is degraded, a failed load unhealthy.
func CalibrationCheck(name string, cc *calibration.Context) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		result := CheckResult{
			Name:    name,
			Details: map[string]interface{}{"source": cc.Source().Name()},
		}

		err := cc.WaitInitialization(ctx)
		switch {
		case err == nil:
			result.Status = StatusHealthy
			result.Message = "calibration loaded"
		case ctx.Err() != nil && !cc.HasError():
			result.Status = StatusDegraded
			result.Message = "calibration still loading"
		default:
			result.Status = StatusUnhealthy
			result.Message = err.Error()
		}
		return result
	})
}

// CoefficientsCheck validates the loaded table and evaluates it at a
// reference operating point. Every factor must be finite and within [0, 1.5].
func CoefficientsCheck(name string, cc *calibration.Context) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		result := CheckResult{Name: name, Status: StatusUnhealthy}

		if err := cc.WaitInitialization(ctx); err != nil {
			result.Message = err.Error()
			return result
		}
		coeffs, err := cc.Coefficients()
		if err == nil {
			err = coeffs.Validate()
		}
		if err != nil {
			result.Message = err.Error()
			return result
		}

		calc, err := calculator.New(coeffs)
		if err != nil {
			result.Message = err.Error()
			return result
		}
		res := calc.Calculate(calculator.InputParameters{
			Flowrate:  mathx.NewFromInt(100),
			Head:      mathx.NewFromInt(100),
			Viscosity: mathx.NewFromInt(100),
			Density:   mathx.NewFromInt(1),
		})
		result.Details = map[string]interface{}{"q": res.Q, "eta": res.Eta, "h10": res.H10()}

		if res.HasError() {
			result.Message = "reference point rejected: " + res.Err.String()
			return result
		}
		for _, f := range append([]float64{res.Q, res.Eta}, res.H[:]...) {
			if math.IsNaN(f) || f < 0 || f > 1.5 {
				result.Message = "reference point outside plausible range"
				return result
			}
		}

		result.Status = StatusHealthy
		result.Message = "coefficients valid"
		return result
	})
}

// ConfigCheck reports which configuration file is in effect. Running on
// defaults is healthy; an invalid configuration is not.
func ConfigCheck(name string, cfg *config.Config) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		result := CheckResult{Name: name, Status: StatusHealthy}
		if cfg == nil {
			result.Status = StatusUnhealthy
			result.Message = "no configuration loaded"
			return result
		}

		if err := cfg.Validate(); err != nil {
			result.Status = StatusUnhealthy
			result.Message = err.Error()
			return result
		}

		if cfg.Path() == "" {
			result.Message = "using defaults"
		} else {
			result.Message = "config loaded"
			result.Details = map[string]interface{}{"path": cfg.Path()}
		}
		return result
	})
}
