package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lumir-ai/tbi-engine/internal/vocab"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab [KEY...]",
	Short: "Look up indicator keyword expansions",
	Long:  "Resolves indicator keys to their search keyword expansions. With no arguments, lists every known key.",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			for _, key := range vocab.Keys() {
				fmt.Fprintln(out, key)
			}
			return nil
		}

		found, unknown := vocab.Lookup(args)
		for _, entry := range found {
			fmt.Fprintf(out, "%-5s %s\n", entry.Key, strings.Join(entry.Keywords, ", "))
		}
		for _, key := range unknown {
			fmt.Fprintf(out, "%-5s not found\n", key)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(vocabCmd)
}
