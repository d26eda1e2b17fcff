package subcommands

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var AddHostCMD = &cobra.Command{
	Use:   "add-host <ip> <mac>",
	Short: "create a host reservation binding mac to ip",
	Args:  cobra.ExactArgs(2),
	RunE:  runAddHost,
}

var UpdateHostCMD = &cobra.Command{
	Use:   "update-host <mac> <ip>",
	Short: "set the ip address of an existing host reservation, creating it if absent",
	Args:  cobra.ExactArgs(2),
	RunE:  runUpdateHost,
}

var DelHostCMD = &cobra.Command{
	Use:   "del-host <mac>",
	Short: "remove a host reservation",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelHost,
}

func runAddHost(cmd *cobra.Command, args []string) error {
	client, err := dial(Ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.AddHost(args[0], args[1]); err != nil {
		return err
	}
	log.Ctx(Ctx).Info().Str("ip", args[0]).Str("mac", args[1]).Msg("omapi: host added")
	return nil
}

func runUpdateHost(cmd *cobra.Command, args []string) error {
	client, err := dial(Ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.UpdateHost(args[0], args[1]); err != nil {
		return err
	}
	log.Ctx(Ctx).Info().Str("mac", args[0]).Str("ip", args[1]).Msg("omapi: host updated")
	return nil
}

func runDelHost(cmd *cobra.Command, args []string) error {
	client, err := dial(Ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.DelHost(args[0]); err != nil {
		return err
	}
	log.Ctx(Ctx).Info().Str("mac", args[0]).Msg("omapi: host deleted")
	return nil
}
