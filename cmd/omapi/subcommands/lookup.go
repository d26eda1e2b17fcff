package subcommands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var LookupIPCMD = &cobra.Command{
	Use:   "lookup-ip <mac>",
	Short: "print the ip address bound to a mac address",
	Args:  cobra.ExactArgs(1),
	RunE:  runLookupIP,
}

var LookupMACCMD = &cobra.Command{
	Use:   "lookup-mac <ip>",
	Short: "print the mac address bound to an ip address",
	Args:  cobra.ExactArgs(1),
	RunE:  runLookupMAC,
}

func runLookupIP(cmd *cobra.Command, args []string) error {
	client, err := dial(Ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	ip, err := client.LookupIP(args[0])
	if err != nil {
		return err
	}
	fmt.Println(ip)
	return nil
}

func runLookupMAC(cmd *cobra.Command, args []string) error {
	client, err := dial(Ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	mac, err := client.LookupMAC(args[0])
	if err != nil {
		return err
	}
	fmt.Println(mac)
	return nil
}
