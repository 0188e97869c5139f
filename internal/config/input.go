package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rpgo/fire-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// allocationTolerance is how far investment weights may sum away from 1.
var allocationTolerance = decimal.NewFromFloat(1e-6)

// InputParser handles parsing of input snapshot files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a snapshot from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Snapshot, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a snapshot. JSON input is accepted as YAML.
// Amounts decode straight into decimals, so a malformed number is a parse error.
func (ip *InputParser) Parse(data []byte) (*domain.Snapshot, error) {
	var snap domain.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateSnapshot(&snap); err != nil {
		return nil, fmt.Errorf("snapshot validation failed: %w", err)
	}

	return &snap, nil
}

// ValidateSnapshot validates a loaded snapshot
func (ip *InputParser) ValidateSnapshot(snap *domain.Snapshot) error {
	if snap.BirthDate.IsZero() {
		return fmt.Errorf("birth date is required")
	}
	if !snap.AsOf.IsZero() && !snap.BirthDate.Before(snap.AsOf) {
		return fmt.Errorf("birth date must be before the as-of date")
	}

	if err := nonNegative("annual expenses", snap.AnnualExpenses); err != nil {
		return err
	}
	if err := nonNegative("annual contribution", snap.AnnualContribution); err != nil {
		return err
	}
	if err := nonNegative("inflation rate", snap.InflationRate); err != nil {
		return err
	}
	if err := nonNegative("super growth rate", snap.SuperGrowthRate); err != nil {
		return err
	}

	if err := ip.validateHousing(&snap.Housing); err != nil {
		return fmt.Errorf("housing validation failed: %w", err)
	}

	for i := range snap.Debts {
		if err := ip.validateDebt(&snap.Debts[i]); err != nil {
			return fmt.Errorf("debt %d validation failed: %w", i, err)
		}
	}

	if err := ip.validateInvestments(snap.Investments); err != nil {
		return err
	}

	for i, h := range snap.Holdings {
		if err := nonNegative("holding value", h.Value); err != nil {
			return fmt.Errorf("holding %d validation failed: %w", i, err)
		}
		if err := nonNegative("holding expected return", h.ExpectedReturn); err != nil {
			return fmt.Errorf("holding %d validation failed: %w", i, err)
		}
		if h.AutoForecast && h.Symbol == "" {
			return fmt.Errorf("holding %d validation failed: auto forecast requires a symbol", i)
		}
		if h.AutoForecast && h.IsSuper {
			return fmt.Errorf("holding %d validation failed: super holdings grow at the super growth rate and cannot be auto forecast", i)
		}
	}

	for sym, series := range snap.Forecasts {
		if len(series) == 0 {
			return fmt.Errorf("forecast for %s is empty", sym)
		}
	}

	return nil
}

// validateHousing validates the housing block
func (ip *InputParser) validateHousing(h *domain.Housing) error {
	switch h.Mode {
	case "":
		return nil
	case domain.HousingRent:
		return nonNegative("annual rent", h.AnnualRent)
	case domain.HousingMortgage:
		if h.Mortgage == nil {
			return fmt.Errorf("mortgage details are required for mortgage housing")
		}
		return ip.validateDebt(h.Mortgage)
	default:
		return fmt.Errorf("housing mode must be '%s' or '%s'", domain.HousingMortgage, domain.HousingRent)
	}
}

// validateDebt validates a single debt
func (ip *InputParser) validateDebt(d *domain.Debt) error {
	if err := nonNegative("principal", d.Principal); err != nil {
		return err
	}
	if err := nonNegative("annual rate", d.AnnualRate); err != nil {
		return err
	}
	return nonNegative("minimum monthly payment", d.MinimumMonthlyPayment)
}

// validateInvestments validates the future allocation
func (ip *InputParser) validateInvestments(investments []domain.Investment) error {
	if len(investments) == 0 {
		return nil
	}
	sum := decimal.Zero
	for i, inv := range investments {
		if inv.Allocation.LessThan(decimal.Zero) || inv.Allocation.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("investment %d validation failed: allocation must be between 0 and 1", i)
		}
		if err := nonNegative("expected return", inv.ExpectedReturn); err != nil {
			return fmt.Errorf("investment %d validation failed: %w", i, err)
		}
		if inv.AutoForecast && inv.Symbol == "" {
			return fmt.Errorf("investment %d validation failed: auto forecast requires a symbol", i)
		}
		sum = sum.Add(inv.Allocation)
	}
	if sum.Sub(decimal.NewFromInt(1)).Abs().GreaterThan(allocationTolerance) {
		return fmt.Errorf("investment allocations must sum to 1, got %s", sum.String())
	}
	return nil
}

func nonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return fmt.Errorf("%s cannot be negative", field)
	}
	return nil
}

// CreateExampleSnapshot creates an example snapshot
func (ip *InputParser) CreateExampleSnapshot() *domain.Snapshot {
	asOf, _ := time.Parse("2006-01-02", "2025-07-01")
	birthDate, _ := time.Parse("2006-01-02", "1985-03-15")

	return &domain.Snapshot{
		AsOf:               asOf,
		BirthDate:          birthDate,
		AnnualExpenses:     decimal.NewFromInt(42000),
		AnnualContribution: decimal.NewFromInt(36000),
		InflationRate:      decimal.NewFromFloat(0.025),
		SuperGrowthRate:    decimal.NewFromFloat(0.07),
		Housing: domain.Housing{
			Mode: domain.HousingMortgage,
			Mortgage: &domain.Debt{
				Name:                  "Home loan",
				Principal:             decimal.NewFromInt(320000),
				AnnualRate:            decimal.NewFromFloat(0.059),
				MinimumMonthlyPayment: decimal.NewFromInt(2100),
			},
		},
		Debts: []domain.Debt{
			{
				Name:                  "Credit card",
				Principal:             decimal.NewFromInt(4500),
				AnnualRate:            decimal.NewFromFloat(0.199),
				MinimumMonthlyPayment: decimal.NewFromInt(90),
			},
			{
				Name:                  "Car loan",
				Principal:             decimal.NewFromInt(18000),
				AnnualRate:            decimal.NewFromFloat(0.079),
				MinimumMonthlyPayment: decimal.NewFromInt(380),
			},
		},
		Investments: []domain.Investment{
			{Name: "Australian shares", Symbol: "VAS", Allocation: decimal.NewFromFloat(0.6), ExpectedReturn: decimal.NewFromFloat(0.08)},
			{Name: "International shares", Symbol: "VGS", Allocation: decimal.NewFromFloat(0.4), ExpectedReturn: decimal.NewFromFloat(0.09)},
		},
		Holdings: []domain.Holding{
			{Name: "Existing ETF", Symbol: "A200", Value: decimal.NewFromInt(25000), ExpectedReturn: decimal.NewFromFloat(0.075)},
			{Name: "Super fund", Value: decimal.NewFromInt(95000), ExpectedReturn: decimal.NewFromFloat(0.07), IsSuper: true},
		},
	}
}
