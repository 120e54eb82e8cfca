package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/application/sweep"
	"github.com/jhoicas/pedidos-api/internal/bootstrap"
)

func newSweepCmd() *cobra.Command {
	var companyID string
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Ejecuta una vez el barrido de vencimientos",
		Long: "Recorre las cuotas pendientes y notifica las vencidas y las próximas a vencer.\n" +
			"Pensado para un programador externo (cron del sistema, Kubernetes CronJob).",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := GetCLIContext(cmd)
			container, err := bootstrap.Build(cmd.Context(), cc.Config, cc.Logger)
			if err != nil {
				return err
			}
			defer container.Close()

			now := time.Now().UTC()
			var results []dto.SweepResult
			if companyID != "" {
				report, err := container.Sweeper.Run(cmd.Context(), companyID, now)
				if err != nil {
					return err
				}
				results = report.Results
			} else {
				results, err = container.Sweeper.RunAll(cmd.Context(), now)
				if err != nil {
					return err
				}
			}
			return printSweep(cmd, results)
		},
	}
	cmd.Flags().StringVar(&companyID, "company", "", "barrer solo esta empresa")
	return cmd
}

func printSweep(cmd *cobra.Command, results []dto.SweepResult) error {
	out := cmd.OutOrStdout()
	if GetCLIContext(cmd).JSON {
		return printJSON(out, dto.CronResponse{OK: true, Message: sweep.Summary(results), Results: results})
	}
	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(out, "%s\t%s\t#%d\tERROR\t%s\n", r.CompanyID, r.OrderNumber, r.Installment, r.Error)
			continue
		}
		fmt.Fprintf(out, "%s\t%s\t#%d\t%s\t%s\n", r.CompanyID, r.OrderNumber, r.Installment, r.AlertType, r.DueDate)
	}
	fmt.Fprintln(out, sweep.Summary(results))
	return nil
}
