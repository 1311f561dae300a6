package main

import (
	"fmt"
	"math"
	"math/big"
	"os"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/olekukonko/tablewriter"
	xfloat "github.com/shabbyrobe/go-xfloat"
	"github.com/shabbyrobe/go-xfloat/oracle"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Prints error tables comparing float64, DD and MFloat against an exact
// big.Float reference, for quick experiments with specific inputs.

var (
	terms   int
	prec    uint
	dump    bool
	verbose bool

	logger = zap.NewNop()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "errtable",
	Short:        "Compare float64, DD and MFloat error against an exact reference",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if terms < 1 || terms > xfloat.MaxTerms {
			return fmt.Errorf("--terms must be between 1 and %d, found %d", xfloat.MaxTerms, terms)
		}
		if prec < 64 {
			return fmt.Errorf("--prec must be at least 64, found %d", prec)
		}
		config := zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the two-term addition table for DD and MFloat",
	Args:  cobra.NoArgs,
	RunE:  runTable,
}

var exprCmd = &cobra.Command{
	Use:   "expr [a b c d e]",
	Short: "Evaluate a*b + c*d*e",
	Args:  argCount(0, 5),
	RunE:  runExpr,
}

var divCmd = &cobra.Command{
	Use:   "div <a> <b>",
	Short: "Evaluate a / b",
	Args:  cobra.ExactArgs(2),
	RunE:  runDiv,
}

var sqrtCmd = &cobra.Command{
	Use:   "sqrt <a>",
	Short: "Evaluate sqrt(a)",
	Args:  cobra.ExactArgs(1),
	RunE:  runSqrt,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&terms, "terms", 2, "number of MFloat terms")
	rootCmd.PersistentFlags().UintVar(&prec, "prec", 1024, "precision of the big.Float reference in bits")
	rootCmd.PersistentFlags().BoolVar(&dump, "dump", false, "dump the raw components of every result")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(tableCmd, exprCmd, divCmd, sqrtCmd)
}

func argCount(valid ...int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		for _, v := range valid {
			if len(args) == v {
				return nil
			}
		}
		return fmt.Errorf("accepts %v args, received %d", valid, len(args))
	}
}

func parseArgs(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("argument %d: %q is not finite", i+1, a)
		}
		out[i] = v
	}
	return out, nil
}

func bigOf(v float64) *big.Float {
	return new(big.Float).SetPrec(prec).SetFloat64(v)
}

type parts []float64

func (p parts) Components() []float64 { return p }

type addRow struct {
	x0, x1, y0, y1 float64
}

var addRows = []addRow{
	{8.834235326183948e71, 9.578097123275567e53, -4.6316785776358486e77, -2.55523157298961e61},
	{1.4919697328456323e87, 5.521397077432451e70, 4.973223565419703e86, -4.909094196809657e-91},
	{-8191.992462158203, 9.143899130258214e-100, -9.14613152750686e-100, 2.242825269339505e-117},
	{-6.344854596578372e-117, 3.5220749571797036e-133, 4.417117661946964e71, 6.502419267294956e-117},
	{-1.6110451730902522e60, 1.3071815033235768e39, -2.1567956686498734e68, 1.1972619985767064e52},
	{8.84443087277937e-75, -2.4072299075463057e-91, 1.7413332937543717e45, -8.843436600161344e-75},
}

func runTable(cmd *cobra.Command, args []string) error {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"x", "y", "dd", "m", "dd digits", "m digits"})

	for i, row := range addRows {
		x := xfloat.DDFromParts(row.x0, row.x1)
		y := xfloat.DDFromParts(row.y0, row.y1)
		dd := x.Add(y)
		m := x.AsMFloat(terms).Add(y.AsMFloat(terms))

		ref, err := oracle.Sum(parts{row.x0, row.x1, row.y0, row.y1})
		if err != nil {
			return err
		}
		logger.Debug("reference", zap.Int("row", i), zap.String("exact", ref.Text('g', 40)))

		ddDigits, err := oracle.Digits(dd, ref)
		if err != nil {
			return err
		}
		mDigits, err := oracle.Digits(m, ref)
		if err != nil {
			return err
		}

		table.Append([]string{
			fmt.Sprint(x.Components()),
			fmt.Sprint(y.Components()),
			fmt.Sprint(dd.Components()),
			fmt.Sprint(m.Components()),
			formatDigits(ddDigits),
			formatDigits(mDigits),
		})
		if dump {
			spew.Fdump(cmd.ErrOrStderr(), dd, m)
		}
	}
	table.Render()
	return nil
}

func runExpr(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"1.23", "4.56", "7.89", "0.12", "3.45"}
	}
	vs, err := parseArgs(args)
	if err != nil {
		return err
	}
	a, b, c, d, e := vs[0], vs[1], vs[2], vs[3], vs[4]

	ref := new(big.Float).SetPrec(prec).Mul(bigOf(a), bigOf(b))
	cde := new(big.Float).SetPrec(prec).Mul(bigOf(c), bigOf(d))
	cde.Mul(cde, bigOf(e))
	ref.Add(ref, cde)

	dd := func(v float64) xfloat.DD { return xfloat.DDFrom64(v) }
	m := func(v float64) xfloat.MFloat { return xfloat.MFloatFrom64(terms, v) }

	return compare(cmd, ref,
		oracle.Entry{Name: "float64", Value: oracle.Float64(a*b + c*d*e)},
		oracle.Entry{Name: "DD", Value: dd(a).Mul(dd(b)).Add(dd(c).Mul(dd(d)).Mul(dd(e)))},
		oracle.Entry{Name: mName(), Value: m(a).Mul(m(b)).Add(m(c).Mul(m(d)).Mul(m(e)))},
	)
}

func runDiv(cmd *cobra.Command, args []string) error {
	vs, err := parseArgs(args)
	if err != nil {
		return err
	}
	a, b := vs[0], vs[1]

	dd, err := xfloat.DDFrom64(a).Quo(xfloat.DDFrom64(b))
	if err != nil {
		return err
	}
	m, err := xfloat.MFloatFrom64(terms, a).Quo(xfloat.MFloatFrom64(terms, b))
	if err != nil {
		return err
	}
	ref := new(big.Float).SetPrec(prec).Quo(bigOf(a), bigOf(b))

	return compare(cmd, ref,
		oracle.Entry{Name: "float64", Value: oracle.Float64(a / b)},
		oracle.Entry{Name: "DD", Value: dd},
		oracle.Entry{Name: mName(), Value: m},
	)
}

func runSqrt(cmd *cobra.Command, args []string) error {
	vs, err := parseArgs(args)
	if err != nil {
		return err
	}
	a := vs[0]

	dd, err := xfloat.DDFrom64(a).Sqrt()
	if err != nil {
		return err
	}
	m, err := xfloat.MFloatFrom64(terms, a).Sqrt()
	if err != nil {
		return err
	}
	ref := new(big.Float).SetPrec(prec).Sqrt(bigOf(a))

	return compare(cmd, ref,
		oracle.Entry{Name: "float64", Value: oracle.Float64(math.Sqrt(a))},
		oracle.Entry{Name: "DD", Value: dd},
		oracle.Entry{Name: mName(), Value: m},
	)
}

func mName() string { return fmt.Sprintf("MFloat(%d)", terms) }

func compare(cmd *cobra.Command, ref *big.Float, entries ...oracle.Entry) error {
	logger.Debug("reference", zap.Uint("prec", ref.Prec()), zap.String("value", ref.Text('g', 50)))

	rows, err := oracle.Compare(ref, entries...)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Method", "Value", "Error", "Digits"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.Append([]string{"reference", ref.Text('e', 40), "", ""})
	for _, row := range rows {
		table.Append([]string{
			row.Name,
			row.Value.Text('e', 40),
			row.AbsError.Text('e', 2),
			formatDigits(row.Digits),
		})
	}
	table.Render()

	if dump {
		for _, en := range entries {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: ", en.Name)
			spew.Fdump(cmd.ErrOrStderr(), en.Value.Components())
		}
	}
	return nil
}

func formatDigits(d float64) string {
	if math.IsInf(d, 1) {
		return "exact"
	}
	return strconv.FormatFloat(d, 'f', 1, 64)
}
