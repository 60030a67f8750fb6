package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	host    string
	port    int
	verbose bool
)

var log = &logrus.Logger{
	Out:   os.Stdout,
	Level: logrus.InfoLevel,
	Formatter: &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000000",
	},
}

var rootCmd = &cobra.Command{
	Use:   "drtp",
	Short: "DRTP reliable file transfer over UDP",
	Long: `drtp transfers a single file between one client and one server over
UDP, using a Go-Back-N sliding window for reliable in-order delivery.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&host, "ip", "i", "0.0.0.0", "server IP or local bind address")
	rootCmd.PersistentFlags().IntVarP(&port, "port", "p", 8088, "port number")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable frame-level debug logging")
}
