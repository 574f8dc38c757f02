// Package cli is the command-line shell: argument parsing via kong,
// dispatch to the pipeline package, and the handful of usability
// touches (output-path inference, magic sniffing on decompress,
// optional metrics server) that turn the pipeline into a runnable
// tool. It mirrors the teacher's root main.go/lib.go split between
// argument handling and archive operations, generalized from two
// fixed positional commands to a kong command tree.
package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianvb03/GESA/internal/container"
	"github.com/julianvb03/GESA/internal/logging"
	"github.com/julianvb03/GESA/internal/metrics"
	"github.com/julianvb03/GESA/internal/pipeline"
	"github.com/julianvb03/GESA/internal/progress"
)

// Root is the top-level kong-tagged command tree.
type Root struct {
	Debug       bool   `help:"Enable debug logging." short:"d"`
	MetricsAddr string `help:"Serve Prometheus metrics on this address (e.g. :9090) for the duration of the command." name:"metrics-addr"`

	Compress   CompressCmd   `cmd:"" help:"Compress a file or a directory."`
	Decompress DecompressCmd `cmd:"" help:"Decompress a single-file or directory archive."`
	Help       HelpCmd       `cmd:"" default:"1" help:"Show usage and exit."`
}

// HelpCmd implements the explicit "help" command, and also runs when
// no subcommand is given at all (kong's "default" command).
type HelpCmd struct{}

// Run prints the parser's usage text to stdout.
func (c *HelpCmd) Run(ctx *kong.Context) error {
	return ctx.PrintUsage(false)
}

// CompressCmd implements "compress".
type CompressCmd struct {
	Algorithm string `help:"Codec to use." name:"algo" enum:"huffman,lzw" default:"huffman" short:"a"`
	Input     string `arg:"" help:"File or directory to compress."`
	Output    string `help:"Output path. Defaults to <input> plus the codec's extension." short:"o"`
	Threads   int    `help:"Worker pool size when compressing a directory (0 = hardware parallelism)." short:"t" default:"0"`
}

// DecompressCmd implements "decompress".
type DecompressCmd struct {
	Algorithm string `help:"Codec to assume. If unset, it is detected from the container magic." name:"algo" enum:",huffman,lzw" default:"" short:"a"`
	Input     string `arg:"" help:"Archive or single-file container to decompress." type:"existingfile"`
	Output    string `help:"Output path. Defaults to <input> with its container extension stripped." short:"o"`
	Threads   int    `help:"Worker pool size when decompressing a directory archive (0 = hardware parallelism)." short:"t" default:"0"`
}

// Run parses args and executes the selected command. It returns the
// process exit code.
func Run(args []string) int {
	var root Root
	parser, err := kong.New(&root,
		kong.Name("gesa"),
		kong.Description("Huffman/LZW archiver with a worker-pool-backed directory pipeline."),
		kong.UsageOnError(),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logging.SetDebug(root.Debug)

	var stopMetrics func()
	if root.MetricsAddr != "" {
		stopMetrics = serveMetrics(root.MetricsAddr)
	}

	err = ctx.Run()
	if stopMetrics != nil {
		stopMetrics()
	}
	if err != nil {
		logging.Logger.Errorf("%s", err)
		return 1
	}
	return 0
}

func serveMetrics(addr string) func() {
	server := &http.Server{Addr: addr, Handler: metrics.Handler()}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Warnf("metrics server: %s", err)
		}
	}()
	return func() { server.Close() }
}

const (
	huffmanFileExt    = ".ghuf"
	huffmanArchiveExt = ".ghar"
	lzwFileExt        = ".glzw"
	lzwArchiveExt     = ".glza"
)

// Run executes the compress command.
func (c *CompressCmd) Run() error {
	info, err := os.Stat(c.Input)
	if err != nil {
		return fmt.Errorf("cli: stat %s: %w", c.Input, err)
	}

	output := c.Output

	progress.Init(0)
	defer progress.Stop()

	if info.IsDir() {
		if output == "" {
			output = c.Input + archiveExt(c.Algorithm)
		}
		logging.Logger.Infof("compressing directory %s -> %s (algorithm=%s, threads=%d)", c.Input, output, c.Algorithm, c.Threads)
		if c.Algorithm == "lzw" {
			return pipeline.CompressDirectory(pipeline.LZWFormat, c.Input, output, c.Threads)
		}
		return pipeline.CompressDirectory(pipeline.HuffmanFormat, c.Input, output, c.Threads)
	}

	if output == "" {
		output = c.Input + fileExt(c.Algorithm)
	}
	logging.Logger.Infof("compressing file %s -> %s (algorithm=%s)", c.Input, output, c.Algorithm)
	if c.Algorithm == "lzw" {
		return pipeline.CompressFile(pipeline.LZWFormat, c.Input, output)
	}
	return pipeline.CompressFile(pipeline.HuffmanFormat, c.Input, output)
}

// Run executes the decompress command.
func (c *DecompressCmd) Run() error {
	algorithm := c.Algorithm
	kind, detected, err := sniff(c.Input)
	if err != nil {
		return err
	}
	if algorithm == "" {
		algorithm = detected
	}

	output := c.Output

	progress.Init(0)
	defer progress.Stop()

	switch kind {
	case kindArchive:
		if output == "" {
			output = strings.TrimSuffix(c.Input, archiveExt(algorithm))
			if output == c.Input {
				output = c.Input + ".out"
			}
		}
		logging.Logger.Infof("decompressing archive %s -> %s/ (algorithm=%s, threads=%d)", c.Input, output, algorithm, c.Threads)
		if algorithm == "lzw" {
			return pipeline.DecompressArchive(pipeline.LZWFormat, c.Input, output, c.Threads)
		}
		return pipeline.DecompressArchive(pipeline.HuffmanFormat, c.Input, output, c.Threads)

	default:
		if output == "" {
			output = strings.TrimSuffix(c.Input, fileExt(algorithm))
			if output == c.Input {
				output = c.Input + ".out"
			}
		}
		logging.Logger.Infof("decompressing file %s -> %s (algorithm=%s)", c.Input, output, algorithm)
		if algorithm == "lzw" {
			return pipeline.DecompressFile(pipeline.LZWFormat, c.Input, output)
		}
		return pipeline.DecompressFile(pipeline.HuffmanFormat, c.Input, output)
	}
}

type containerKind int

const (
	kindSingleFile containerKind = iota
	kindArchive
)

// sniff reads the 4-byte magic at the start of path and reports
// whether it names a single-file or archive container, and which
// algorithm it belongs to.
func sniff(path string) (containerKind, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, "", fmt.Errorf("cli: open %s: %w", path, err)
	}
	defer f.Close()

	magic := make([]byte, 4)
	if _, err := io.ReadFull(f, magic); err != nil {
		return 0, "", fmt.Errorf("cli: read magic from %s: %w", path, err)
	}

	switch string(magic) {
	case container.HuffmanFileMagic:
		return kindSingleFile, "huffman", nil
	case container.HuffmanArchiveMagic:
		return kindArchive, "huffman", nil
	case container.LZWFileMagic:
		return kindSingleFile, "lzw", nil
	case container.LZWArchiveMagic:
		return kindArchive, "lzw", nil
	default:
		return 0, "", fmt.Errorf("cli: %s: %w", path, container.ErrBadMagic)
	}
}

func fileExt(algorithm string) string {
	if algorithm == "lzw" {
		return lzwFileExt
	}
	return huffmanFileExt
}

func archiveExt(algorithm string) string {
	if algorithm == "lzw" {
		return lzwArchiveExt
	}
	return huffmanArchiveExt
}
