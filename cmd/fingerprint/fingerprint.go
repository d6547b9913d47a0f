package fingerprint

import (
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/remeh/sizedwaitgroup"
	"github.com/spf13/cobra"
	headerkit "github.com/webfold/headerkit"
	"github.com/webfold/headerkit/cmd/utils"
)

// Command represents the fingerprint command
var Command = &cobra.Command{
	Use:   "fingerprint",
	Short: "Compute case-insensitive fingerprints for one or many header block file(s)",
	Long: `Compute a digest over the canonical (case-folded, sorted) form of every
header block in the given file(s). Blocks that differ only in field name
casing or field order produce the same fingerprint.`,
	Args: cobra.MinimumNArgs(1),
	Run:  fingerprint,
}

func init() {
	Command.Flags().IntP("threads", "t", runtime.NumCPU(), "Number of threads to use")
	Command.Flags().StringP("algorithm", "a", "blake3", "Digest algorithm: sha1, sha256, sha256b32 or blake3")
}

func fingerprint(cmd *cobra.Command, files []string) {
	threads := utils.GetThreadsFlag(cmd)

	name, _ := cmd.Flags().GetString("algorithm")
	algorithm, ok := algorithms[name]
	if !ok {
		slog.Error("unknown digest algorithm", "algorithm", name)
		return
	}

	swg := sizedwaitgroup.New(threads)
	for _, filepath := range files {
		swg.Add()
		go func(filepath string) {
			defer swg.Done()
			fingerprintFile(filepath, algorithm)
		}(filepath)
	}
	swg.Wait()
}

var algorithms = map[string]headerkit.DigestAlgorithm{
	"sha1":      headerkit.SHA1,
	"sha256":    headerkit.SHA256Base16,
	"sha256b32": headerkit.SHA256Base32,
	"blake3":    headerkit.BLAKE3,
}

func fingerprintFile(filepath string, algorithm headerkit.DigestAlgorithm) {
	startTime := time.Now()

	reader, f, err := utils.OpenHeaderFile(filepath)
	if err != nil {
		return
	}
	defer f.Close()
	defer reader.Close()

	block := 0
	for {
		header, err := reader.ReadHeader()
		if err == io.EOF {
			break
		}
		if err != nil {
			slog.Error("failed to read header block", "err", err.Error(), "file", filepath, "block", block)
			return
		}

		digest, err := headerkit.Fingerprint(header, algorithm)
		if err != nil {
			slog.Error("failed to fingerprint header block", "err", err.Error(), "file", filepath, "block", block)
			return
		}

		slog.Info("fingerprint", "file", filepath, "block", block, "fields", header.Len(), "digest", digest)
		block++
	}

	slog.Debug("fingerprinted", "file", filepath, "blocks", block, "took", time.Since(startTime).String())
}
