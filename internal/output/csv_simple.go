package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/fire-calculator/internal/domain"
)

// CSVMonthlyExporter writes the monthly balance series, one row per month worked.
type CSVMonthlyExporter struct{}

func (c CSVMonthlyExporter) Name() string      { return "csv" }
func (c CSVMonthlyExporter) Extension() string { return "csv" }

func (c CSVMonthlyExporter) Format(result *domain.RetirementResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Month", "Date", "Broker", "Holdings", "Super", "Debt", "NetWorth"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, m := range result.MonthlyBalances {
		row := []string{
			intToString(m.Month),
			m.Date.Format("2006-01-02"),
			m.Broker.StringFixed(2),
			m.Holdings.StringFixed(2),
			m.Super.StringFixed(2),
			m.Debt.StringFixed(2),
			m.Total().Sub(m.Debt).StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// CSVEpochExporter writes the optimizer trace, one row per epoch.
type CSVEpochExporter struct{}

func (c CSVEpochExporter) Name() string      { return "epochs" }
func (c CSVEpochExporter) Extension() string { return "csv" }

func (c CSVEpochExporter) Format(result *domain.RetirementResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Epoch", "BrokerProportion", "Min", "Max", "PreservationRatio", "SuperRatio", "DaysWorked"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, e := range result.Epochs {
		row := []string{
			intToString(e.Epoch),
			floatToString(e.Proportion),
			floatToString(e.Min),
			floatToString(e.Max),
			floatToString(e.PreRatio),
			floatToString(e.PostRatio),
			intToString(e.Days),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
