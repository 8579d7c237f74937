package main

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/markrepedersen/netparser/decode"
	"github.com/markrepedersen/netparser/view"
)

// renderPackets write one MAC|IP|PORT row per packet. A faulted packet
// keeps its row and gains a note in the FAULT column.
func renderPackets(w io.Writer, pkts []*decode.Packet) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"MAC", "IP", "PORT", "FAULT"})

	for _, p := range pkts {
		fields := view.Project(p)
		row := make([]string, 0, len(fields)+1)
		for _, f := range fields {
			row = append(row, f.Value)
		}
		if p.Faulted() {
			row = append(row, p.Fault.Kind.Name())
		} else {
			row = append(row, "")
		}
		table.Append(row)
	}

	table.Render()
}

// renderDevices write the sorted, de-duplicated device table.
func renderDevices(w io.Writer, pkts []*decode.Packet) {
	view.Sort(pkts, view.LessMAC)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"MAC", "IP", "PORT"})

	for _, p := range view.Devices(pkts) {
		fields := view.Project(p)
		row := make([]string, 0, len(fields))
		for _, f := range fields {
			row = append(row, f.Value)
		}
		table.Append(row)
	}

	table.Render()
}
