package backtest

import (
	"fmt"
	"io"
	"strings"
)

// WriteReport prints a fixed-width summary of one backtest run.
func WriteReport(w io.Writer, symbol string, r Result) {
	rule := strings.Repeat("=", 45)
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "  BACKTEST RESULTS - %s (%d daily bars)\n", symbol, r.Steps)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  Starting capital : $%12.2f\n", r.StartValue)
	fmt.Fprintf(w, "  Ending value     : $%12.2f\n", r.EndValue)
	fmt.Fprintf(w, "  Total return     : %12.1f%%\n", r.TotalReturn*100)
	fmt.Fprintf(w, "  Sharpe ratio     : %12.2f\n", r.SharpeRatio)
	fmt.Fprintf(w, "  Max drawdown     : %12.1f%%\n", r.MaxDrawdown*100)
	fmt.Fprintf(w, "  Days traded      : %12d\n", r.Steps)
	fmt.Fprintf(w, "  Units held       : %12.0f\n", r.Inventory)
	fmt.Fprintf(w, "  Cash at end      : $%12.2f\n", r.Cash)
	fmt.Fprintf(w, "%s\n\n", rule)
}
