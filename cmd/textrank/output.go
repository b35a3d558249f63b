package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cognicore/textrank/pkg/textrank/rank"
)

func printKeywords(w io.Writer, kws []rank.Keyword) error {
	for _, kw := range kws {
		if _, err := fmt.Fprintf(w, "%s: %.4f\n", kw.Word, kw.Score); err != nil {
			return err
		}
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
