package view

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markrepedersen/netparser/decode"
	"github.com/markrepedersen/netparser/layers"
)

var pipeline = decode.NewPipeline(nil)

func decodeFrame(t *testing.T, data []byte) *decode.Packet {
	t.Helper()

	pkt, err := pipeline.Decode(&decode.RawFrame{
		Datalink: layers.DatalinkTypeEthernet,
		Data:     data,
	})
	require.NoError(t, err)

	return pkt
}

func tcpFrame(t *testing.T, srcMAC []byte, srcIP []byte, srcPort uint16) *decode.Packet {
	t.Helper()

	tcp := make([]byte, 20, 24)
	binary.BigEndian.PutUint16(tcp[0:2], srcPort)
	binary.BigEndian.PutUint16(tcp[2:4], 50000)
	tcp[12] = 5 << 4
	tcp = append(tcp, 0x01, 0x02, 0x03, 0x04)

	ip := make([]byte, 20, 20+len(tcp))
	ip[0] = 0x45
	binary.BigEndian.PutUint16(ip[2:4], uint16(20+len(tcp)))
	ip[8] = 64
	ip[9] = uint8(layers.IPProtocolTCP)
	copy(ip[12:16], srcIP)
	copy(ip[16:20], []byte{10, 0, 0, 1})
	binary.BigEndian.PutUint16(ip[10:12], layers.Checksum(ip))
	ip = append(ip, tcp...)

	frame := make([]byte, 14, 14+len(ip))
	copy(frame[0:6], []byte{0x66, 0x77, 0x88, 0x99, 0xAA, 0xBB})
	copy(frame[6:12], srcMAC)
	binary.BigEndian.PutUint16(frame[12:14], uint16(layers.EthernetTypeIPv4))

	return decodeFrame(t, append(frame, ip...))
}

func arpFrame(t *testing.T, srcMAC []byte, senderIP []byte) *decode.Packet {
	t.Helper()

	arp := make([]byte, 28)
	binary.BigEndian.PutUint16(arp[0:2], 1)
	binary.BigEndian.PutUint16(arp[2:4], uint16(layers.EthernetTypeIPv4))
	arp[4] = 6
	arp[5] = 4
	binary.BigEndian.PutUint16(arp[6:8], uint16(layers.ARPOpcodeRequest))
	copy(arp[8:14], srcMAC)
	copy(arp[14:18], senderIP)

	frame := make([]byte, 14, 14+len(arp))
	copy(frame[0:6], []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF})
	copy(frame[6:12], srcMAC)
	binary.BigEndian.PutUint16(frame[12:14], uint16(layers.EthernetTypeARP))

	return decodeFrame(t, append(frame, arp...))
}

var (
	macA = []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}
	macB = []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0xAB}
)

func TestProject(t *testing.T) {
	pkt := tcpFrame(t, macA, []byte{192, 168, 1, 10}, 443)

	fields := Project(pkt)
	require.Len(t, fields, 3)
	assert.Equal(t, Field{Name: "MAC", Value: "00:11:22:33:44:55"}, fields[0])
	assert.Equal(t, Field{Name: "IP", Value: "192.168.1.10"}, fields[1])
	assert.Equal(t, Field{Name: "PORT", Value: "443"}, fields[2])
}

func TestProjectPlaceholders(t *testing.T) {
	// An ARP packet carries a MAC and an IP, never a port; the PORT field
	// keeps its slot with an empty value.
	pkt := arpFrame(t, macA, []byte{192, 168, 1, 10})

	fields := Project(pkt)
	require.Len(t, fields, 3)
	assert.Equal(t, "00:11:22:33:44:55", fields[0].Value)
	assert.Equal(t, "192.168.1.10", fields[1].Value)
	assert.Equal(t, "", fields[2].Value)
}

func TestFilter(t *testing.T) {
	pkts := []*decode.Packet{
		tcpFrame(t, macA, []byte{192, 168, 1, 10}, 443),
		tcpFrame(t, macB, []byte{192, 168, 1, 11}, 80),
		arpFrame(t, macA, []byte{192, 168, 1, 10}),
	}

	byMAC := Filter(pkts, ByMAC("00:11:22:33:44:55"))
	assert.Len(t, byMAC, 2)

	// Case-insensitive MAC match.
	assert.Len(t, Filter(pkts, ByMAC("00:11:22:33:44:ab")), 1)
	assert.Len(t, Filter(pkts, ByMAC("00:11:22:33:44:AB")), 1)

	byIP := Filter(pkts, ByIP("192.168.1.11"))
	require.Len(t, byIP, 1)
	assert.Same(t, pkts[1], byIP[0])

	byPort := Filter(pkts, ByPort(443))
	require.Len(t, byPort, 1)
	assert.Same(t, pkts[0], byPort[0])

	assert.Empty(t, Filter(pkts, Faulted()))
}

func TestFilterFaulted(t *testing.T) {
	truncated := decodeFrame(t, make([]byte, 8))
	pkts := []*decode.Packet{
		tcpFrame(t, macA, []byte{192, 168, 1, 10}, 443),
		truncated,
	}

	faulted := Filter(pkts, Faulted())
	require.Len(t, faulted, 1)
	assert.Same(t, truncated, faulted[0])
}

func TestSort(t *testing.T) {
	a := tcpFrame(t, macB, []byte{10, 0, 0, 2}, 80)
	b := tcpFrame(t, macA, []byte{10, 0, 0, 3}, 8080)
	c := tcpFrame(t, macA, []byte{10, 0, 0, 1}, 443)

	pkts := []*decode.Packet{a, b, c}

	Sort(pkts, LessMAC)
	// Lexicographic by MAC; equal MACs keep arrival order.
	assert.Equal(t, []*decode.Packet{b, c, a}, pkts)

	Sort(pkts, LessIP)
	assert.Equal(t, []*decode.Packet{c, a, b}, pkts)

	Sort(pkts, LessPort)
	assert.Equal(t, []*decode.Packet{a, c, b}, pkts)
}

func TestDevices(t *testing.T) {
	first := tcpFrame(t, macA, []byte{192, 168, 1, 10}, 443)
	pkts := []*decode.Packet{
		first,
		tcpFrame(t, macA, []byte{192, 168, 1, 10}, 80),
		tcpFrame(t, macB, []byte{192, 168, 1, 11}, 22),
		arpFrame(t, macA, []byte{192, 168, 1, 10}),
	}

	devices := Devices(pkts)
	require.Len(t, devices, 2)
	assert.Same(t, first, devices[0])
	assert.Equal(t, "00:11:22:33:44:ab", SrcMAC(devices[1]).String())
}
