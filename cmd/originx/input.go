package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"originx/internal/config"
	"originx/internal/proof"
)

// contentInput binds the flags shared by commands that take content.
type contentInput struct {
	text string
	file string
}

func (in *contentInput) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&in.text, "text", "t", "", "Text to fingerprint (hashed exactly as given)")
	cmd.Flags().StringVarP(&in.file, "file", "f", "", "File to fingerprint")
}

// content builds the proof input. A single "-" argument reads stdin.
func (in *contentInput) content(cmd *cobra.Command, args []string) (proof.Content, error) {
	var c proof.Content
	c.Text = in.text
	if file := strings.TrimSpace(in.file); file != "" {
		path, err := config.ExpandPath(file)
		if err != nil {
			return proof.Content{}, fmt.Errorf("resolve file path: %w", err)
		}
		c.Path = path
	}
	switch {
	case len(args) == 0:
	case len(args) == 1 && args[0] == "-":
		c.Reader = cmd.InOrStdin()
	default:
		return proof.Content{}, fmt.Errorf("unexpected argument %q (use --text, --file, or - for stdin)", args[0])
	}
	return c, nil
}
