package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jhoicas/pedidos-api/internal/application/holidays"
	infraholidays "github.com/jhoicas/pedidos-api/internal/infrastructure/holidays"
)

func newHolidaysCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "feriados <año> [país]",
		Aliases: []string{"holidays"},
		Short:   "Lista los feriados públicos de un año",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := GetCLIContext(cmd)
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("año inválido %q", args[0])
			}
			country := ""
			if len(args) == 2 {
				country = args[1]
			}
			uc := holidays.NewUseCase(infraholidays.NewClient(cc.Config.Holidays.BaseURL), nil, 0, cc.Config.Holidays.DefaultCountry, cc.Logger)
			list, err := uc.List(cmd.Context(), year, country)
			if err != nil {
				return err
			}
			if cc.JSON {
				return printJSON(cmd.OutOrStdout(), list)
			}
			for _, h := range list {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", h.Date, h.CountryCode, h.Name)
			}
			return nil
		},
	}
}
