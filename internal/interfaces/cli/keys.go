package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/pedidos-api/internal/infrastructure/webpush"
)

func newVAPIDKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vapid-keys",
		Short: "Genera un par de claves VAPID para Web Push",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pub, priv, err := webpush.GenerateVAPIDKeys()
			if err != nil {
				return err
			}
			if GetCLIContext(cmd).JSON {
				return printJSON(cmd.OutOrStdout(), map[string]string{"public_key": pub, "private_key": priv})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "VAPID_PUBLIC_KEY=%s\nVAPID_PRIVATE_KEY=%s\n", pub, priv)
			return nil
		},
	}
}
