package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/markrepedersen/netparser/sniffer"
	"github.com/markrepedersen/netparser/stream"
	"github.com/markrepedersen/netparser/view"
)

var (
	sniffDevice  string
	sniffFilter  string
	sniffMonitor bool
	sniffPromisc bool
)

var sniffCmd = &cobra.Command{
	Use:   "sniff",
	Short: "Capture live traffic and print one line per decoded packet",
	RunE:  runSniff,
}

func init() {
	sniffCmd.Flags().StringVarP(&sniffDevice, "interface", "i", "", "network interface to capture on")
	sniffCmd.Flags().StringVarP(&sniffFilter, "filter", "f", "", "BPF capture filter")
	sniffCmd.Flags().BoolVar(&sniffMonitor, "monitor", false, "802.11 monitor (rfmon) mode")
	sniffCmd.Flags().BoolVar(&sniffPromisc, "promiscuous", false, "promiscuous mode")
}

func runSniff(cmd *cobra.Command, args []string) error {
	scfg := cfg.SnifferConfig()
	scfg.File = ""
	if sniffDevice != "" {
		scfg.Device = sniffDevice
	}
	if sniffFilter != "" {
		scfg.Filter = sniffFilter
	}
	if cmd.Flags().Changed("monitor") {
		scfg.Monitor = sniffMonitor
	}
	if cmd.Flags().Changed("promiscuous") {
		scfg.Promiscuous = sniffPromisc
	}

	snf, err := sniffer.New(scfg)
	if err != nil {
		return err
	}

	st := stream.New(snf, nil, cfg.StreamOptions())
	st.Start()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		log.Info("Stopping capture.")
		st.Stop()
	}()

	log.Infof("Capturing on %s.", scfg.Device)
	for pkt := range st.Packets() {
		fields := view.Project(pkt)
		line := fmt.Sprintf("%s mac=%s ip=%s port=%s",
			pkt.Time.Format("15:04:05.000000"),
			fields[0].Value, fields[1].Value, fields[2].Value)
		if pkt.Faulted() {
			line += fmt.Sprintf(" fault=%s", pkt.Fault.Kind.Name())
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	if stats, serr := snf.Stats(); serr == nil {
		log.Infof("Captured %d packets, dropped %d, interface dropped %d.",
			stats.PktsRecvd, stats.PktsDropped, stats.PktsIfDropped)
	}
	st.Stop()

	return st.Err()
}
