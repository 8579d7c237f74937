package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/markrepedersen/netparser/decode"
	"github.com/markrepedersen/netparser/sniffer"
	"github.com/markrepedersen/netparser/stream"
)

var (
	readFile    string
	devicesFile string
)

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Replay a recorded capture file and print decoded packets",
	RunE: func(cmd *cobra.Command, args []string) error {
		pkts, err := replay(readFile)
		if err != nil {
			return err
		}
		renderPackets(cmd.OutOrStdout(), pkts)

		return nil
	},
}

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List the devices seen in a recorded capture file",
	RunE: func(cmd *cobra.Command, args []string) error {
		pkts, err := replay(devicesFile)
		if err != nil {
			return err
		}
		renderDevices(cmd.OutOrStdout(), pkts)

		return nil
	},
}

func init() {
	readCmd.Flags().StringVarP(&readFile, "read", "r", "", "capture file to replay")
	readCmd.MarkFlagRequired("read")
	devicesCmd.Flags().StringVarP(&devicesFile, "read", "r", "", "capture file to replay")
	devicesCmd.MarkFlagRequired("read")
}

// replay decode a whole capture file into memory.
func replay(path string) ([]*decode.Packet, error) {
	if path == "" {
		return nil, errors.New("no capture file given")
	}

	scfg := cfg.SnifferConfig()
	scfg.Device = ""
	scfg.Filter = ""
	scfg.Monitor = false
	scfg.File = path

	snf, err := sniffer.New(scfg)
	if err != nil {
		return nil, err
	}

	st := stream.New(snf, nil, cfg.StreamOptions())
	st.Start()

	var pkts []*decode.Packet
	for pkt := range st.Packets() {
		pkts = append(pkts, pkt)
	}
	st.Stop()

	return pkts, st.Err()
}
