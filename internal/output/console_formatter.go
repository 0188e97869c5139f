package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/fire-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter provides a concise console summary of a projection.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(result *domain.RetirementResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "FIRE RETIREMENT PROJECTION")
	fmt.Fprintln(&buf, "================================")

	if result.IsDebtUnresolved() {
		fmt.Fprintln(&buf, "Debts cannot be cleared before the horizon age.")
		fmt.Fprintf(&buf, "Simulated: %s (%d days)\n", FormatMonths(result.MonthsToResolveDebt), result.DaysToResolveDebt)
		writeDebts(&buf, result.UnresolvedDebts)
		return buf.Bytes(), nil
	}

	fmt.Fprintf(&buf, "Time to retirement:  %s (%d days)\n", FormatMonths(result.MonthsWorked), result.DaysWorked)
	fmt.Fprintf(&buf, "Retirement date:     %s (age %d)\n", result.RetirementDate.Format("2006-01-02"), result.RetirementAge)
	fmt.Fprintf(&buf, "Debt free after:     %s\n", FormatMonths(result.MonthsToResolveDebt))
	fmt.Fprintln(&buf)

	superShare := decimal.NewFromInt(1).Sub(result.BrokerProportion)
	fmt.Fprintln(&buf, "Monthly contribution split")
	fmt.Fprintf(&buf, "  Brokerage: %s (%s)\n", FormatCurrency(result.MonthlyContributions.Broker), FormatPercentage(result.BrokerProportion))
	fmt.Fprintf(&buf, "  Super:     %s (%s)\n", FormatCurrency(result.MonthlyContributions.Super), FormatPercentage(superShare))
	if result.MonthlyDebtPayments.IsPositive() {
		fmt.Fprintf(&buf, "  Debt minimums: %s\n", FormatCurrency(result.MonthlyDebtPayments))
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "Balances at retirement (today's dollars)")
	fmt.Fprintf(&buf, "  Brokerage: %s\n", FormatCurrency(result.BalancesAtRetirement.Broker))
	fmt.Fprintf(&buf, "  Super:     %s\n", FormatCurrency(result.BalancesAtRetirement.Super))
	fmt.Fprintf(&buf, "  Total:     %s\n", FormatCurrency(result.BalancesAtRetirement.Total()))

	if len(result.UnresolvedDebts) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "Debts carried into retirement")
		writeDebts(&buf, result.UnresolvedDebts)
	}
	return buf.Bytes(), nil
}

func writeDebts(buf *bytes.Buffer, debts []domain.DebtBalance) {
	for _, d := range debts {
		fmt.Fprintf(buf, "  %-20s %s at %s\n", d.Name, FormatCurrency(d.Balance), FormatPercentage(d.AnnualRate))
	}
}
