package main

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/sensei2412/eksamen/session"

	"github.com/spf13/cobra"
)

var discardSeq uint16

var receiveCmd = &cobra.Command{
	Use:   "receive",
	Short: "Receive a file as a DRTP server",
	Long: `Binds the given address, waits for a single client, and writes the
received data to received_<unixtime>.dat in the working directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReceive()
	},
}

func runReceive() error {
	pc, err := session.ListenPeer("udp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return err
	}

	cfg := session.DefaultConfig()
	cfg.Logger = log
	if discardSeq > 0 {
		cfg.Drop = session.DropOnce(discardSeq)
	}
	sess := session.Server(pc, cfg)
	defer sess.Close()
	log.Infof("Server listening at %s", pc.LocalAddr())

	log.Info("Connection Establishment Phase:")
	addr, err := sess.Accept()
	if err != nil {
		return err
	}
	log.Infof("Client connected from %s", addr)

	name := fmt.Sprintf("received_%d.dat", time.Now().Unix())
	out, err := os.Create(name)
	if err != nil {
		return err
	}
	defer out.Close()

	stats, err := sess.Receive(out)
	if err != nil {
		return err
	}
	log.Infof("Received %d bytes into %s", stats.Bytes, name)
	log.Infof("The throughput is %.2f Mbps", stats.ThroughputMbps())
	return nil
}

func init() {
	receiveCmd.Flags().Uint16VarP(&discardSeq, "discard", "d", 0, "sequence number to drop once (testing)")
	rootCmd.AddCommand(receiveCmd)
}
