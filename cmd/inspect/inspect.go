package inspect

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	headerkit "github.com/webfold/headerkit"
	"github.com/webfold/headerkit/cmd/utils"
)

// Command represents the inspect command
var Command = &cobra.Command{
	Use:   "inspect",
	Short: "Print the fields of one or many header block file(s)",
	Long:  `Print the fields of one or many header block file(s), with their original casing`,
	Args:  cobra.MinimumNArgs(1),
	Run:   inspect,
}

func init() {
	Command.Flags().Bool("folded", false, "Also print the case-folded form of each field name")
}

func inspect(cmd *cobra.Command, files []string) {
	showFolded, _ := cmd.Flags().GetBool("folded")

	for _, filepath := range files {
		reader, f, err := utils.OpenHeaderFile(filepath)
		if err != nil {
			continue
		}

		block := 0
		for {
			header, err := reader.ReadHeader()
			if err == io.EOF {
				break
			}
			if err != nil {
				slog.Error("failed to read header block", "err", err.Error(), "file", filepath, "block", block)
				break
			}

			fmt.Printf("== %s block %d (%d fields)\n", filepath, block, header.Len())
			for entry := range header.Entries() {
				if showFolded {
					fmt.Printf("%s (%s): %s\n", entry.Key(), headerkit.Fold(entry.Key()), strings.Join(entry.Value(), ", "))
				} else {
					fmt.Printf("%s: %s\n", entry.Key(), strings.Join(entry.Value(), ", "))
				}
			}
			block++
		}

		reader.Close()
		f.Close()
	}
}
