// Command blackbox-sim drives the platform through one or more dual-path
// pipeline runs from the command line: it generates input buffers, runs
// the pipeline, optionally exercises a transfer-gate query, and prints
// statistics. It stands in for an external test-bench driver exercising
// the platform as a peripheral collaborator.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dpusim/platform"
	"github.com/dpusim/platform/internal/config"
	"github.com/dpusim/platform/internal/logging"
)

func main() {
	var (
		blockSize = flag.Int("size", 4096, "Size in bytes of each generated input block")
		blocks    = flag.Int("blocks", 1, "Number of blocks to run through the pipeline")
		fillByte  = flag.Uint("fill", 0xAA, "Byte value used to fill generated input blocks")
		key       = flag.String("key", "SECRET_KEY_123", "Transfer key written to the marker key file")
		query     = flag.Bool("query", false, "After processing, issue a transfer-gate query for the first block")
		verbose   = flag.Bool("v", false, "Verbose logging")
		nvmeFile  = flag.String("nvme-file", "blackbox-nvme.img", "NVMe backing file path")
		cloudFile = flag.String("cloud-file", "blackbox-cloud-backup.img", "Ethernet cloud backup file path")
		keyFile   = flag.String("key-file", "blackbox-markers.key", "Marker key file path")
	)
	flag.Parse()

	cfg := config.Default()
	cfg.NVMeBackingFile = *nvmeFile
	cfg.CloudBackupFile = *cloudFile
	cfg.MarkerKeyFile = *keyFile

	logConfig := logging.DefaultConfig()
	logConfig.Level = logging.ParseLevel(cfg.LogLevel)
	if *verbose {
		logConfig.Level = logging.LevelDebug
	}
	logger := logging.NewLogger(logConfig)

	if err := os.WriteFile(*keyFile, []byte(*key+"\n"), 0o644); err != nil {
		logger.Error("failed to write marker key file", "error", err)
		os.Exit(1)
	}

	p, err := platform.New(cfg, logger.WithComponent("platform"), &platform.LocalFirstOracle{})
	if err != nil {
		logger.Error("failed to initialize platform", "error", err)
		os.Exit(1)
	}
	defer p.Close()

	input := make([]byte, *blockSize)
	for i := range input {
		input[i] = byte(*fillByte)
	}

	var firstEntry platform.LogIndexEntry
	for i := 0; i < *blocks; i++ {
		entry, err := p.ProcessDataBlock(input)
		if err != nil {
			logger.Error("pipeline run failed", "block", i, "error", err)
			continue
		}
		if i == 0 {
			firstEntry = entry
		}
		logger.Info("pipeline run complete",
			"block", i,
			"uncompressed", entry.UncompressedSize,
			"compressed", entry.CompressedSize,
			"nvme_offset", entry.FileOffset)
	}

	if *query {
		state, err := p.HandleTransferRequest(firstEntry.TimestampStart, *key, true)
		if err != nil {
			logger.Error("transfer gate rejected request", "error", err)
		} else {
			logger.Info("transfer gate succeeded", "state", int(state))
		}
	}

	stats := p.NoCStats()
	fmt.Printf("NoC transactions:     %d\n", stats.TotalTransactions)
	fmt.Printf("NVMe path bytes:      %d\n", stats.NVMePathBytes)
	fmt.Printf("Ethernet path bytes:  %d\n", stats.EthernetPathBytes)
	fmt.Printf("Memory accesses:      %d\n", stats.MemoryAccesses)
	fmt.Printf("Log index entries:    %d\n", len(p.Index()))

	pstats := p.PipelineStats()
	fmt.Printf("Blocks processed:     %d\n", pstats.BlocksProcessed)
	fmt.Printf("Bytes in/out:         %d/%d\n", pstats.TotalUncompBytes, pstats.TotalCompBytes)
	fmt.Printf("Transfers ok/failed:  %d/%d\n", pstats.TransfersOK, pstats.TransfersFailed)
}
