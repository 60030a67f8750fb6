package main

import (
	"net"
	"os"
	"strconv"

	"github.com/sensei2412/eksamen/session"

	"github.com/spf13/cobra"
)

var (
	sendFile   string
	sendWindow int
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a file to a DRTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSend()
	},
}

func runSend() error {
	f, err := os.Open(sendFile)
	if err != nil {
		return err
	}
	defer f.Close()

	conn, err := net.Dial("udp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return err
	}

	cfg := session.DefaultConfig()
	cfg.Window = sendWindow
	cfg.Logger = log
	sess := session.Client(conn, cfg)
	defer sess.Close()

	log.Info("Connection Establishment Phase:")
	window, err := sess.Open()
	if err != nil {
		return err
	}
	log.Infof("Negotiated window size: %d", window)

	chunks, err := session.Chunks(f, cfg.ChunkSize)
	if err != nil {
		return err
	}

	stats, err := sess.Send(chunks)
	if err != nil {
		return err
	}
	log.Infof("Sent %d bytes in %.2f seconds", stats.Bytes, stats.Elapsed.Seconds())
	log.Infof("The throughput is %.2f Mbps", stats.ThroughputMbps())
	return nil
}

func init() {
	sendCmd.Flags().StringVarP(&sendFile, "file", "f", "", "file to send")
	sendCmd.Flags().IntVarP(&sendWindow, "window", "w", session.DefaultWindow, "sender window size")
	if err := sendCmd.MarkFlagRequired("file"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(sendCmd)
}
