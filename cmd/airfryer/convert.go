package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/airfryer/internal/conversation"
	"github.com/hammamikhairi/airfryer/internal/convert"
	"github.com/hammamikhairi/airfryer/internal/display"
	"github.com/hammamikhairi/airfryer/internal/domain"
	"github.com/hammamikhairi/airfryer/internal/engine"
)

var convertCmd = &cobra.Command{
	Use:   "convert [phrase]",
	Short: "Convert oven settings to air-fryer settings",
	Example: `  airfryer convert "400F 20 min frozen"
  airfryer convert --temp 200 --unit C --time 45 --category raw_meats`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, ok, err := conversionInput(cmd, args)
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("nothing to convert: pass a phrase or --temp, --time and --category")
		}

		rec, stop := cli.metrics(cmd.Context())
		defer stop()

		eng := engine.New(cli.log.Named("engine"), engine.WithRecorder(rec))
		res, err := eng.Convert(cmd.Context(), in)
		if err != nil {
			return reportConversionError(err)
		}
		fmt.Println(display.RenderResult(*res))
		return nil
	},
}

func init() {
	addConversionFlags(convertCmd)
}

func addConversionFlags(cmd *cobra.Command) {
	cmd.Flags().Int("temp", 0, "oven temperature")
	cmd.Flags().Int("time", 0, "oven cooking time in minutes")
	cmd.Flags().String("category", "", "food category (see `airfryer categories`)")
}

// conversionInput builds the request from a free-text phrase and/or
// flags. Flags win over the phrase. ok is false when neither was given.
func conversionInput(cmd *cobra.Command, args []string) (in domain.ConversionInput, ok bool, err error) {
	flags := cmd.Flags()
	in.Unit = cli.cfg.TemperatureUnit()

	if len(args) > 0 {
		parser := conversation.NewInputParser(cli.log.Named("parser"))
		in, err = parser.Parse(strings.Join(args, " "), in.Unit)
		if err != nil {
			return in, false, err
		}
		ok = true
	}

	changed := 0
	if flags.Changed("temp") {
		in.OvenTemp, _ = flags.GetInt("temp")
		changed++
	}
	if flags.Changed("time") {
		in.OvenMinutes, _ = flags.GetInt("time")
		changed++
	}
	if flags.Changed("category") {
		raw, _ := flags.GetString("category")
		id, perr := domain.ParseCategory(raw)
		if perr != nil {
			// Let the validator report it with the other problems.
			id = domain.CategoryID(strings.ToLower(strings.TrimSpace(raw)))
		}
		in.Category = id
		changed++
	}
	if flags.Changed("unit") && len(args) > 0 {
		// An explicit --unit overrides a unit written in the phrase.
		in.Unit = cli.cfg.TemperatureUnit()
	}

	if !ok && changed > 0 && changed < 3 {
		return in, false, errors.New("--temp, --time and --category must be given together")
	}
	return in, ok || changed > 0, nil
}

// reportConversionError prints a rejection in full and hands back an
// error for the exit status.
func reportConversionError(err error) error {
	var verr *convert.ValidationError
	if errors.As(err, &verr) {
		fmt.Println(display.RenderViolations(verr.Violations))
		return errRejected
	}
	if errors.Is(err, domain.ErrConversionFailed) {
		return errors.New("something went wrong while converting, please try again")
	}
	return err
}
