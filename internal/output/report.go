package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rpgo/fire-calculator/internal/domain"
)

// ErrUnsupportedFormat is returned when no formatter matches a requested name.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// GenerateReport formats result with the named formatter and writes it to w.
func GenerateReport(w io.Writer, result *domain.RetirementResult, format string) error {
	if result == nil {
		return fmt.Errorf("no result to report")
	}
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	data, err := f.Format(result)
	if err != nil {
		return fmt.Errorf("%s formatter failed: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}
